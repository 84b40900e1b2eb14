// Package expr evaluates the small condition and arithmetic expressions
// used by flow actors (Tee, Trigger, MathExpression). Expressions use HCL
// expression syntax and are evaluated against an explicitly scoped variable
// set; there is no access to anything that was not injected by the caller.
package expr

import (
	"fmt"
	"math/big"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Eval parses src as a single expression and evaluates it with the given
// variables in scope. Storage values convert to cty values on a best-effort
// basis; strings that cannot be represented natively are injected as their
// string form.
func Eval(src string, vars map[string]any) (any, error) {
	v, err := evalValue(src, vars)
	if err != nil {
		return nil, err
	}
	return fromCty(v)
}

// EvalBool evaluates src and converts the result to a boolean. An empty
// expression evaluates to true, matching the semantics of an unset
// condition option.
func EvalBool(src string, vars map[string]any) (bool, error) {
	if src == "" {
		return true, nil
	}
	v, err := evalValue(src, vars)
	if err != nil {
		return false, err
	}
	b, err := convert.Convert(v, cty.Bool)
	if err != nil {
		return false, fmt.Errorf("expression %q is not boolean: %w", src, err)
	}
	if b.IsNull() {
		return false, fmt.Errorf("expression %q evaluated to null", src)
	}
	return b.True(), nil
}

func evalValue(src string, vars map[string]any) (cty.Value, error) {
	parsed, diags := hclsyntax.ParseExpression([]byte(src), "<expr>", hcl.InitialPos)
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("parsing expression %q: %s", src, diags.Error())
	}
	ectx := &hcl.EvalContext{Variables: make(map[string]cty.Value, len(vars))}
	for name, value := range vars {
		if !hclsyntax.ValidIdentifier(name) {
			continue
		}
		ectx.Variables[name] = toCty(value)
	}
	v, diags := parsed.Value(ectx)
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("evaluating expression %q: %s", src, diags.Error())
	}
	return v, nil
}

func toCty(value any) cty.Value {
	switch v := value.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType)
	case bool:
		return cty.BoolVal(v)
	case int:
		return cty.NumberIntVal(int64(v))
	case int64:
		return cty.NumberIntVal(v)
	case float64:
		return cty.NumberFloatVal(v)
	case string:
		return cty.StringVal(v)
	case []any:
		if len(v) == 0 {
			return cty.EmptyTupleVal
		}
		elems := make([]cty.Value, 0, len(v))
		for _, e := range v {
			elems = append(elems, toCty(e))
		}
		return cty.TupleVal(elems)
	case map[string]any:
		if len(v) == 0 {
			return cty.EmptyObjectVal
		}
		attrs := make(map[string]cty.Value, len(v))
		for k, e := range v {
			attrs[k] = toCty(e)
		}
		return cty.ObjectVal(attrs)
	default:
		return cty.StringVal(fmt.Sprintf("%v", v))
	}
}

func fromCty(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	switch v.Type() {
	case cty.Bool:
		return v.True(), nil
	case cty.Number:
		bf := v.AsBigFloat()
		if i, acc := bf.Int64(); acc == big.Exact {
			return i, nil
		}
		f, _ := bf.Float64()
		return f, nil
	case cty.String:
		return v.AsString(), nil
	}
	if v.Type().IsTupleType() || v.Type().IsListType() {
		out := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			e, err := fromCty(ev)
			if err != nil {
				return nil, err
			}
			out = append(out, e)
		}
		return out, nil
	}
	if v.Type().IsObjectType() || v.Type().IsMapType() {
		out := make(map[string]any, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			kv, ev := it.Element()
			e, err := fromCty(ev)
			if err != nil {
				return nil, err
			}
			out[kv.AsString()] = e
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported expression result type %s", v.Type().FriendlyName())
}
