package actors

import (
	"github.com/jkivila/aktor/pkg/api"
)

// Register adds the serializable built-in actor classes to reg. The Func*
// adapters are deliberately absent: a function cannot be restored from a
// flow document.
func Register(reg *api.Registry) {
	reg.RegisterClass("Start", func() api.Actor { return NewStart("") })
	reg.RegisterClass("StringConstants", func() api.Actor { return NewStringConstants("") })
	reg.RegisterClass("FileSupplier", func() api.Actor { return NewFileSupplier("") })
	reg.RegisterClass("ForLoop", func() api.Actor { return NewForLoop("", 1, 10, 1) })
	reg.RegisterClass("GetStorageValue", func() api.Actor { return NewGetStorageValue("", "") })

	reg.RegisterClass("PassThrough", func() api.Actor { return NewPassThrough("") })
	reg.RegisterClass("SetStorageValue", func() api.Actor { return NewSetStorageValue("", "") })
	reg.RegisterClass("InitStorageValue", func() api.Actor { return NewInitStorageValue("", "", "") })
	reg.RegisterClass("UpdateStorageValue", func() api.Actor { return NewUpdateStorageValue("", "", "") })
	reg.RegisterClass("DeleteStorageValue", func() api.Actor { return NewDeleteStorageValue("", "") })
	reg.RegisterClass("MathExpression", func() api.Actor { return NewMathExpression("", "") })
	reg.RegisterClass("LoadFile", func() api.Actor { return NewLoadFile("") })

	reg.RegisterClass("Console", func() api.Actor { return NewConsole("", "") })
	reg.RegisterClass("DumpFile", func() api.Actor { return NewDumpFile("", "", false) })
	reg.RegisterClass("Null", func() api.Actor { return NewNull("") })
	reg.RegisterClass("Stop", func() api.Actor { return NewStop("") })
}
