package specdoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"go.yaml.in/yaml/v4"
)

// maxDocumentDepth bounds document tree construction. This protects against
// pathological nesting and cyclic YAML anchors (e.g. "&a [*a]"), which would
// otherwise recurse forever when following alias nodes.
const maxDocumentDepth = 1000

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindSequence
	KindMapping
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Pair is a single key/value entry of a mapping, in document order.
type Pair struct {
	Key   string
	Value Value
}

// Value is one node of a parsed spec document. The zero value is null.
// Values are immutable after construction; queries share subtrees of the
// loaded document freely.
type Value struct {
	kind  Kind
	b     bool
	i     int64
	f     float64
	s     string
	items []Value
	pairs []Pair
	index map[string]int
}

// NullValue returns the null value.
func NullValue() Value { return Value{} }

// BoolValue returns a boolean value.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// IntValue returns an integer value.
func IntValue(i int64) Value { return Value{kind: KindInt, i: i} }

// FloatValue returns a floating-point value.
func FloatValue(f float64) Value { return Value{kind: KindFloat, f: f} }

// StringValue returns a string value.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// SequenceValue returns a sequence of the given items.
func SequenceValue(items ...Value) Value {
	return Value{kind: KindSequence, items: items}
}

// MappingValue returns a mapping with the given pairs, preserving their
// order. When a key repeats, the first occurrence wins.
func MappingValue(pairs ...Pair) Value {
	v := Value{kind: KindMapping, index: make(map[string]int, len(pairs))}
	for _, p := range pairs {
		if _, dup := v.index[p.Key]; dup {
			continue
		}
		v.index[p.Key] = len(v.pairs)
		v.pairs = append(v.pairs, p)
	}
	return v
}

// Kind returns which variant this value holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsMapping reports whether the value is a mapping.
func (v Value) IsMapping() bool { return v.kind == KindMapping }

// IsSequence reports whether the value is a sequence.
func (v Value) IsSequence() bool { return v.kind == KindSequence }

// Bool returns the boolean payload, or false for other kinds.
func (v Value) Bool() bool { return v.b }

// Int returns the integer payload, or 0 for other kinds.
func (v Value) Int() int64 { return v.i }

// Float returns the float payload. For KindInt the integer is widened.
func (v Value) Float() float64 {
	if v.kind == KindInt {
		return float64(v.i)
	}
	return v.f
}

// Str returns the string payload, or "" for other kinds.
func (v Value) Str() string { return v.s }

// Len returns the number of items (sequence) or pairs (mapping).
func (v Value) Len() int {
	if v.kind == KindSequence {
		return len(v.items)
	}
	return len(v.pairs)
}

// Items returns the sequence items in document order. Callers must not
// modify the returned slice.
func (v Value) Items() []Value { return v.items }

// Pairs returns the mapping entries in document order. Callers must not
// modify the returned slice.
func (v Value) Pairs() []Pair { return v.pairs }

// Get looks up a mapping key. The second result is false when the value is
// not a mapping or the key is absent.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindMapping {
		return Value{}, false
	}
	i, ok := v.index[key]
	if !ok {
		return Value{}, false
	}
	return v.pairs[i].Value, true
}

// Has reports whether a mapping contains the key.
func (v Value) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// GetString returns the string value of a mapping key, or "" when the key is
// absent or not a string.
func (v Value) GetString(key string) string {
	child, ok := v.Get(key)
	if !ok || child.kind != KindString {
		return ""
	}
	return child.s
}

// Strings returns the string items of a sequence, skipping non-string items.
func (v Value) Strings() []string {
	if v.kind != KindSequence || len(v.items) == 0 {
		return nil
	}
	out := make([]string, 0, len(v.items))
	for _, item := range v.items {
		if item.kind == KindString {
			out = append(out, item.s)
		}
	}
	return out
}

// Interface converts the value to plain Go types (map[string]any, []any,
// scalars). Mapping key order is lost; use MarshalJSON when order matters.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindSequence:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.Interface()
		}
		return out
	case KindMapping:
		out := make(map[string]any, len(v.pairs))
		for _, p := range v.pairs {
			out[p.Key] = p.Value.Interface()
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON encodes the value as JSON with mapping keys in document order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encodeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) encodeJSON(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindInt:
		buf.WriteString(strconv.FormatInt(v.i, 10))
	case KindFloat:
		if math.IsInf(v.f, 0) || math.IsNaN(v.f) {
			// JSON has no representation for these; fall back to null.
			buf.WriteString("null")
			return nil
		}
		buf.WriteString(strconv.FormatFloat(v.f, 'g', -1, 64))
	case KindString:
		data, err := json.Marshal(v.s)
		if err != nil {
			return err
		}
		buf.Write(data)
	case KindSequence:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encodeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindMapping:
		buf.WriteByte('{')
		for i, p := range v.pairs {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(p.Key)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := p.Value.encodeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

// fromNode converts a yaml.Node tree into a Value. Mapping key order follows
// the node's content order; duplicate keys keep the first occurrence.
func fromNode(n *yaml.Node, depth int) (Value, error) {
	if n == nil {
		return Value{}, nil
	}
	if depth > maxDocumentDepth {
		return Value{}, fmt.Errorf("document nested deeper than %d levels", maxDocumentDepth)
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Value{}, nil
		}
		return fromNode(n.Content[0], depth+1)
	case yaml.AliasNode:
		return fromNode(n.Alias, depth+1)
	case yaml.MappingNode:
		pairs := make([]Pair, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			child, err := fromNode(n.Content[i+1], depth+1)
			if err != nil {
				return Value{}, err
			}
			pairs = append(pairs, Pair{Key: n.Content[i].Value, Value: child})
		}
		return MappingValue(pairs...), nil
	case yaml.SequenceNode:
		items := make([]Value, 0, len(n.Content))
		for _, c := range n.Content {
			child, err := fromNode(c, depth+1)
			if err != nil {
				return Value{}, err
			}
			items = append(items, child)
		}
		return SequenceValue(items...), nil
	case yaml.ScalarNode:
		return scalarFromNode(n), nil
	default:
		return Value{}, nil
	}
}

// scalarFromNode converts a scalar node using its resolved YAML tag. Scalars
// whose tag does not parse cleanly degrade to strings rather than erroring.
func scalarFromNode(n *yaml.Node) Value {
	switch n.Tag {
	case "!!null":
		return NullValue()
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return StringValue(n.Value)
		}
		return BoolValue(b)
	case "!!int":
		// Base 0 handles YAML 1.2 hex (0x) and octal (0o) forms.
		i, err := strconv.ParseInt(n.Value, 0, 64)
		if err != nil {
			if f, ferr := strconv.ParseFloat(n.Value, 64); ferr == nil {
				return FloatValue(f)
			}
			return StringValue(n.Value)
		}
		return IntValue(i)
	case "!!float":
		switch n.Value {
		case ".inf", "+.inf", ".Inf", "+.Inf":
			return FloatValue(math.Inf(1))
		case "-.inf", "-.Inf":
			return FloatValue(math.Inf(-1))
		case ".nan", ".NaN":
			return FloatValue(math.NaN())
		}
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return StringValue(n.Value)
		}
		return FloatValue(f)
	default:
		return StringValue(n.Value)
	}
}
