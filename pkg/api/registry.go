package api

import "fmt"

// Spec is one node of the serialized flow document. Handlers additionally
// carry their children in Actors; plain actors leave it empty.
type Spec struct {
	Type   string  `json:"type" yaml:"type"`
	Class  string  `json:"class" yaml:"class"`
	Name   string  `json:"name" yaml:"name"`
	Config Config  `json:"config" yaml:"config"`
	Actors []*Spec `json:"actors,omitempty" yaml:"actors,omitempty"`
}

// TypeHandler reconstructs an actor from its document node. The registry is
// passed back in so handlers can restore their children recursively.
type TypeHandler func(spec *Spec, reg *Registry) (Actor, error)

// Factory creates a blank actor of one class, ready to receive its name
// and configuration.
type Factory func() Actor

// Registry maps document type tags to reconstruction functions and class
// tags to actor factories. It is explicit state constructed once at load
// time; there is no process-wide registry.
type Registry struct {
	types   map[string]TypeHandler
	classes map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		types:   make(map[string]TypeHandler),
		classes: make(map[string]Factory),
	}
}

// RegisterType installs the reconstruction function for a type tag
// ("Actor", "ActorHandler").
func (r *Registry) RegisterType(tag string, h TypeHandler) {
	r.types[tag] = h
}

// RegisterClass installs the factory for a class tag.
func (r *Registry) RegisterClass(class string, f Factory) {
	r.classes[class] = f
}

// TypeHandler looks up the reconstruction function for a type tag.
func (r *Registry) TypeHandler(tag string) (TypeHandler, error) {
	h, ok := r.types[tag]
	if !ok {
		return nil, fmt.Errorf("unknown actor type tag: %q", tag)
	}
	return h, nil
}

// New creates a blank actor of the given class.
func (r *Registry) New(class string) (Actor, error) {
	f, ok := r.classes[class]
	if !ok {
		return nil, fmt.Errorf("unknown actor class: %q", class)
	}
	return f(), nil
}

// Decode reconstructs an actor (and, for handlers, its subtree) from a
// document node.
func (r *Registry) Decode(spec *Spec) (Actor, error) {
	if spec == nil {
		return nil, fmt.Errorf("nil actor spec")
	}
	h, err := r.TypeHandler(spec.Type)
	if err != nil {
		return nil, err
	}
	return h(spec, r)
}
