package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jkivila/aktor/pkg/api"
)

// tagActor and tagHandler are the capability type tags of the document
// format: plain actors carry only their config, handlers additionally
// carry their children.
const (
	tagActor   = "Actor"
	tagHandler = "ActorHandler"
)

// Register installs the document type handlers and the factories for the
// composite actors into reg.
func Register(reg *api.Registry) {
	reg.RegisterType(tagActor, decodeActor)
	reg.RegisterType(tagHandler, decodeHandler)

	reg.RegisterClass("Flow", func() api.Actor { return NewFlow("") })
	reg.RegisterClass("Sequence", func() api.Actor { return NewSequence("") })
	reg.RegisterClass("Tee", func() api.Actor { return NewTee("") })
	reg.RegisterClass("Trigger", func() api.Actor { return NewTrigger("") })
	reg.RegisterClass("Branch", func() api.Actor { return NewBranch("") })
}

// Encode turns an actor tree into its document form.
func Encode(a api.Actor) *api.Spec {
	spec := &api.Spec{
		Type:   tagActor,
		Class:  a.Class(),
		Name:   a.Name(),
		Config: api.Config{},
	}
	for k, v := range a.Config() {
		spec.Config[k] = v
	}
	if a.Skip() {
		spec.Config["skip"] = true
	}
	if handler, ok := a.(api.Handler); ok {
		spec.Type = tagHandler
		for _, child := range handler.Actors() {
			spec.Actors = append(spec.Actors, Encode(child))
		}
	}
	return spec
}

func decodeActor(spec *api.Spec, reg *api.Registry) (api.Actor, error) {
	a, err := reg.New(spec.Class)
	if err != nil {
		return nil, err
	}
	if spec.Name != "" {
		a.SetName(spec.Name)
	}
	for k, v := range spec.Config {
		if k == "skip" {
			if b, ok := v.(bool); ok {
				a.SetSkip(b)
			}
			continue
		}
		a.Config()[k] = v
	}
	return a, nil
}

func decodeHandler(spec *api.Spec, reg *api.Registry) (api.Actor, error) {
	a, err := decodeActor(spec, reg)
	if err != nil {
		return nil, err
	}
	handler, ok := a.(api.Handler)
	if !ok {
		return nil, fmt.Errorf("class %q is not an actor handler", spec.Class)
	}
	adder, ok := a.(interface{ Add(actors ...api.Actor) })
	if !ok {
		return nil, fmt.Errorf("class %q cannot receive children", spec.Class)
	}
	for _, childSpec := range spec.Actors {
		child, err := reg.Decode(childSpec)
		if err != nil {
			return nil, err
		}
		adder.Add(child)
	}
	return handler, nil
}

// ToJSON renders the actor tree as an indented JSON document.
func ToJSON(a api.Actor) ([]byte, error) {
	return json.MarshalIndent(Encode(a), "", "  ")
}

// FromJSON reconstructs an actor tree from a JSON document.
func FromJSON(data []byte, reg *api.Registry) (api.Actor, error) {
	var spec api.Spec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing flow document: %w", err)
	}
	return reg.Decode(&spec)
}

// ToYAML renders the actor tree as a YAML document.
func ToYAML(a api.Actor) ([]byte, error) {
	return yaml.Marshal(Encode(a))
}

// FromYAML reconstructs an actor tree from a YAML document.
func FromYAML(data []byte, reg *api.Registry) (api.Actor, error) {
	var spec api.Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing flow document: %w", err)
	}
	return reg.Decode(&spec)
}

// Save writes the flow document to path. The format follows the file
// extension: .yaml/.yml produce YAML, everything else JSON.
func Save(f *Flow, path string) error {
	var (
		data []byte
		err  error
	)
	if isYAMLPath(path) {
		data, err = ToYAML(f)
	} else {
		data, err = ToJSON(f)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Load reads a flow document from path, choosing the format by file
// extension like Save does.
func Load(path string, reg *api.Registry) (*Flow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var a api.Actor
	if isYAMLPath(path) {
		a, err = FromYAML(data, reg)
	} else {
		a, err = FromJSON(data, reg)
	}
	if err != nil {
		return nil, err
	}
	flow, ok := a.(*Flow)
	if !ok {
		return nil, fmt.Errorf("document root is %q, not a flow", a.Class())
	}
	return flow, nil
}

func isYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
