package actors

import (
	"os"

	"github.com/jkivila/aktor/internal/expr"
	"github.com/jkivila/aktor/pkg/api"
)

// storageOf locates the storage of the enclosing flow, reporting a config
// error when the actor is not rooted in a storage handler.
func storageOf(a api.Actor) (api.Storage, error) {
	sh := api.StorageHandlerOf(a)
	if sh == nil {
		return nil, api.NewConfigError(a, "no storage handler in actor tree")
	}
	return sh.Storage(), nil
}

// PassThrough forwards its input token unchanged.
type PassThrough struct {
	api.TransformerBase
}

// NewPassThrough creates a pass-through transformer.
func NewPassThrough(name string) *PassThrough {
	p := &PassThrough{TransformerBase: api.NewTransformerBase("PassThrough")}
	if name != "" {
		p.SetName(name)
	}
	return p
}

func (p *PassThrough) DoExecute() error {
	p.AppendOutput(p.Input())
	return nil
}

// SetStorageValue stores the payload of the input token under the configured
// storage name and forwards the token unchanged.
type SetStorageValue struct {
	api.TransformerBase
}

// NewSetStorageValue creates a transformer storing payloads under storageName.
func NewSetStorageValue(name, storageName string) *SetStorageValue {
	s := &SetStorageValue{TransformerBase: api.NewTransformerBase("SetStorageValue")}
	if name != "" {
		s.SetName(name)
	}
	s.Config()["storage_name"] = storageName
	return s
}

func (s *SetStorageValue) Setup() error {
	if api.OptionString(s, "storage_name", "") == "" {
		return api.NewConfigError(s, "storage_name is required")
	}
	return nil
}

func (s *SetStorageValue) DoExecute() error {
	storage, err := storageOf(s)
	if err != nil {
		return err
	}
	name := api.Extract(api.OptionString(s, "storage_name", ""))
	storage[name] = s.Input().Payload()
	s.AppendOutput(s.Input())
	return nil
}

// InitStorageValue seeds a storage entry from a configured expression the
// first time a token passes through, leaving an existing entry alone. The
// token is forwarded unchanged.
type InitStorageValue struct {
	api.TransformerBase
}

// NewInitStorageValue creates a transformer seeding storageName with the
// result of evaluating value.
func NewInitStorageValue(name, storageName, value string) *InitStorageValue {
	i := &InitStorageValue{TransformerBase: api.NewTransformerBase("InitStorageValue")}
	if name != "" {
		i.SetName(name)
	}
	i.Config()["storage_name"] = storageName
	i.Config()["value"] = value
	return i
}

func (i *InitStorageValue) Setup() error {
	if api.OptionString(i, "storage_name", "") == "" {
		return api.NewConfigError(i, "storage_name is required")
	}
	return nil
}

func (i *InitStorageValue) DoExecute() error {
	storage, err := storageOf(i)
	if err != nil {
		return err
	}
	name := api.Extract(api.OptionString(i, "storage_name", ""))
	if !storage.Has(name) {
		value, err := expr.Eval(api.OptionString(i, "value", ""), storage)
		if err != nil {
			return api.NewConfigError(i, "value: "+err.Error())
		}
		storage[name] = value
	}
	i.AppendOutput(i.Input())
	return nil
}

// UpdateStorageValue rewrites a storage entry by evaluating an expression in
// which x is bound to the current entry value. The input token is forwarded
// unchanged.
type UpdateStorageValue struct {
	api.TransformerBase
}

// NewUpdateStorageValue creates a transformer updating storageName with the
// result of expression.
func NewUpdateStorageValue(name, storageName, expression string) *UpdateStorageValue {
	u := &UpdateStorageValue{TransformerBase: api.NewTransformerBase("UpdateStorageValue")}
	if name != "" {
		u.SetName(name)
	}
	u.Config()["storage_name"] = storageName
	u.Config()["expression"] = expression
	return u
}

func (u *UpdateStorageValue) Setup() error {
	if api.OptionString(u, "storage_name", "") == "" {
		return api.NewConfigError(u, "storage_name is required")
	}
	if api.OptionString(u, "expression", "") == "" {
		return api.NewConfigError(u, "expression is required")
	}
	return nil
}

func (u *UpdateStorageValue) DoExecute() error {
	storage, err := storageOf(u)
	if err != nil {
		return err
	}
	name := api.Extract(api.OptionString(u, "storage_name", ""))
	current, ok := storage[name]
	if !ok {
		return &api.StorageError{Name: name, Str: name}
	}
	vars := map[string]any{}
	for k, v := range storage {
		vars[k] = v
	}
	vars["x"] = current
	value, err := expr.Eval(api.OptionString(u, "expression", ""), vars)
	if err != nil {
		return api.NewConfigError(u, "expression: "+err.Error())
	}
	storage[name] = value
	u.AppendOutput(u.Input())
	return nil
}

// DeleteStorageValue removes a storage entry if present and forwards the
// input token unchanged.
type DeleteStorageValue struct {
	api.TransformerBase
}

// NewDeleteStorageValue creates a transformer removing storageName.
func NewDeleteStorageValue(name, storageName string) *DeleteStorageValue {
	d := &DeleteStorageValue{TransformerBase: api.NewTransformerBase("DeleteStorageValue")}
	if name != "" {
		d.SetName(name)
	}
	d.Config()["storage_name"] = storageName
	return d
}

func (d *DeleteStorageValue) Setup() error {
	if api.OptionString(d, "storage_name", "") == "" {
		return api.NewConfigError(d, "storage_name is required")
	}
	return nil
}

func (d *DeleteStorageValue) DoExecute() error {
	storage, err := storageOf(d)
	if err != nil {
		return err
	}
	delete(storage, api.Extract(api.OptionString(d, "storage_name", "")))
	d.AppendOutput(d.Input())
	return nil
}

// MathExpression evaluates an arithmetic expression per token, with x bound
// to the input payload and storage entries available as further variables.
// The result becomes the payload of the output token.
type MathExpression struct {
	api.TransformerBase
}

// NewMathExpression creates a transformer evaluating expression per token.
func NewMathExpression(name, expression string) *MathExpression {
	m := &MathExpression{TransformerBase: api.NewTransformerBase("MathExpression")}
	if name != "" {
		m.SetName(name)
	}
	m.Config()["expression"] = expression
	return m
}

func (m *MathExpression) Setup() error {
	if api.OptionString(m, "expression", "") == "" {
		return api.NewConfigError(m, "expression is required")
	}
	return nil
}

func (m *MathExpression) DoExecute() error {
	vars := map[string]any{}
	if sh := api.StorageHandlerOf(m); sh != nil {
		for k, v := range sh.Storage() {
			vars[k] = v
		}
	}
	vars["x"] = m.Input().Payload()
	value, err := expr.Eval(api.OptionString(m, "expression", ""), vars)
	if err != nil {
		return api.NewConfigError(m, "expression: "+err.Error())
	}
	m.AppendOutput(api.NewToken(value))
	return nil
}

// LoadFile reads the file named by the input payload and emits its contents
// as a string token. The file name undergoes storage expansion first.
type LoadFile struct {
	api.TransformerBase
}

// NewLoadFile creates a file-reading transformer.
func NewLoadFile(name string) *LoadFile {
	l := &LoadFile{TransformerBase: api.NewTransformerBase("LoadFile")}
	if name != "" {
		l.SetName(name)
	}
	return l
}

func (l *LoadFile) DoExecute() error {
	path, ok := l.Input().Payload().(string)
	if !ok {
		return api.NewInputError(l, "payload is not a file name")
	}
	if sh := api.StorageHandlerOf(l); sh != nil {
		expanded, err := sh.Storage().Expand(path)
		if err != nil {
			return err
		}
		path = expanded
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	l.AppendOutput(api.NewToken(string(data)))
	return nil
}
