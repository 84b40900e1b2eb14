package api

import (
	"fmt"
	"strings"
)

// Storage is the flat string-keyed mapping shared by every actor in a flow.
// All actors see the same map by reference, via the nearest storage handler
// ancestor; execution is single-threaded so no locking is needed.
type Storage map[string]any

// Has reports whether name is present in storage.
func (s Storage) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Expand replaces every @{name} occurrence in str with the string form of
// the stored value. It returns a *StorageError if a referenced name is not
// present.
func (s Storage) Expand(str string) (string, error) {
	result := str
	for {
		start := strings.Index(result, "@{")
		if start < 0 {
			return result, nil
		}
		end := strings.Index(result[start:], "}")
		if end < 0 {
			return result, nil
		}
		end += start
		name := result[start+2 : end]
		value, ok := s[name]
		if !ok {
			return "", &StorageError{Name: name, Str: str}
		}
		result = result[:start] + fmt.Sprintf("%v", value) + result[end+1:]
	}
}

// Pad wraps a bare storage name in @{...}, leaving already padded names
// untouched.
func Pad(name string) string {
	if strings.HasPrefix(name, "@{") {
		return name
	}
	return "@{" + name + "}"
}

// Extract removes the surrounding @{...} from a padded name. A string that
// is not padded is returned as is.
func Extract(padded string) string {
	if strings.HasPrefix(padded, "@{") && strings.HasSuffix(padded, "}") {
		return padded[2 : len(padded)-1]
	}
	return padded
}

// IsPlaceholder reports whether value is exactly one @{name} placeholder.
func IsPlaceholder(value string) bool {
	return strings.HasPrefix(value, "@{") &&
		strings.HasSuffix(value, "}") &&
		strings.Index(value[1:], "@{") < 0
}

// ResolveOption returns the configured value of the named option. If the
// value is exactly one @{name} placeholder, the live storage value is
// substituted instead of the literal string, enabling late-bound
// configuration. Missing options (and unresolvable placeholders) yield def.
func ResolveOption(a Actor, name string, def any) any {
	value, ok := a.Config()[name]
	if !ok || value == nil {
		return def
	}
	str, isStr := value.(string)
	if !isStr || !IsPlaceholder(str) {
		return value
	}
	sh := StorageHandlerOf(a)
	if sh == nil {
		return def
	}
	if stored, ok := sh.Storage()[Extract(str)]; ok {
		return stored
	}
	return def
}

// OptionString resolves a string option, falling back to def.
func OptionString(a Actor, name, def string) string {
	v := ResolveOption(a, name, def)
	if s, ok := v.(string); ok {
		return s
	}
	if v == nil {
		return def
	}
	return fmt.Sprintf("%v", v)
}

// OptionBool resolves a bool option, falling back to def.
func OptionBool(a Actor, name string, def bool) bool {
	v := ResolveOption(a, name, def)
	if b, ok := v.(bool); ok {
		return b
	}
	return def
}

// OptionInt resolves an int option, tolerating the float64 values produced
// by JSON decoding.
func OptionInt(a Actor, name string, def int) int {
	switch v := ResolveOption(a, name, def).(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}

// OptionStrings resolves a string-slice option, tolerating the []any form
// produced by JSON decoding.
func OptionStrings(a Actor, name string) []string {
	switch v := ResolveOption(a, name, nil).(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			out = append(out, fmt.Sprintf("%v", e))
		}
		return out
	default:
		return nil
	}
}
