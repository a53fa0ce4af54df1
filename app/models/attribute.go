package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AttrKind tags the variant held by an AttrValue.
type AttrKind uint8

const (
	AttrNull AttrKind = iota
	AttrBool
	AttrNumber
	AttrString
	AttrList
	AttrMap
	AttrInt
)

func (k AttrKind) String() string {
	switch k {
	case AttrNull:
		return "null"
	case AttrBool:
		return "bool"
	case AttrNumber:
		return "number"
	case AttrString:
		return "string"
	case AttrList:
		return "list"
	case AttrMap:
		return "map"
	case AttrInt:
		return "int"
	}
	return "unknown"
}

// Attributes is the open, per-product attribute bag ("ram": "16GB", ...).
type Attributes map[string]AttrValue

// AttrValue is one JSON-shaped value: null, bool, number, string, list or
// nested map. Whole numbers are kept as int64 so they survive a round trip
// exactly. The zero value is null.
type AttrValue struct {
	kind AttrKind
	b    bool
	i    int64
	n    float64
	s    string
	list []AttrValue
	m    Attributes
}

func NullValue() AttrValue                   { return AttrValue{} }
func BoolValue(b bool) AttrValue             { return AttrValue{kind: AttrBool, b: b} }
func IntValue(i int64) AttrValue             { return AttrValue{kind: AttrInt, i: i} }
func NumberValue(n float64) AttrValue        { return AttrValue{kind: AttrNumber, n: n} }
func StringValue(s string) AttrValue         { return AttrValue{kind: AttrString, s: s} }
func ListValue(items ...AttrValue) AttrValue { return AttrValue{kind: AttrList, list: items} }

func MapValue(m Attributes) AttrValue {
	if m == nil {
		m = Attributes{}
	}
	return AttrValue{kind: AttrMap, m: m}
}

func (v AttrValue) Kind() AttrKind { return v.kind }

func (v AttrValue) AsBool() (bool, bool)        { return v.b, v.kind == AttrBool }
func (v AttrValue) AsInt() (int64, bool)        { return v.i, v.kind == AttrInt }
func (v AttrValue) AsString() (string, bool)    { return v.s, v.kind == AttrString }
func (v AttrValue) AsList() ([]AttrValue, bool) { return v.list, v.kind == AttrList }
func (v AttrValue) AsMap() (Attributes, bool)   { return v.m, v.kind == AttrMap }

// AsNumber reports any numeric value as a float64, ints included.
func (v AttrValue) AsNumber() (float64, bool) {
	switch v.kind {
	case AttrNumber:
		return v.n, true
	case AttrInt:
		return float64(v.i), true
	}
	return 0, false
}

// Interface converts v to plain Go values: nil, bool, int64, float64,
// string, []any and map[string]any.
func (v AttrValue) Interface() any {
	switch v.kind {
	case AttrBool:
		return v.b
	case AttrInt:
		return v.i
	case AttrNumber:
		return v.n
	case AttrString:
		return v.s
	case AttrList:
		out := make([]any, len(v.list))
		for i, item := range v.list {
			out[i] = item.Interface()
		}
		return out
	case AttrMap:
		return v.m.Interface()
	}
	return nil
}

// Interface converts the bag to a map[string]any.
func (a Attributes) Interface() map[string]any {
	out := make(map[string]any, len(a))
	for k, v := range a {
		out[k] = v.Interface()
	}
	return out
}

// FromAny converts a decoded JSON or BSON value into an AttrValue.
func FromAny(x any) (AttrValue, error) {
	switch t := x.(type) {
	case nil:
		return NullValue(), nil
	case AttrValue:
		return t, nil
	case bool:
		return BoolValue(t), nil
	case float64:
		return NumberValue(t), nil
	case float32:
		return NumberValue(float64(t)), nil
	case int:
		return IntValue(int64(t)), nil
	case int32:
		return IntValue(int64(t)), nil
	case int64:
		return IntValue(t), nil
	case json.Number:
		return numberFromJSON(t)
	case string:
		return StringValue(t), nil
	case []any:
		items := make([]AttrValue, len(t))
		for i, item := range t {
			v, err := FromAny(item)
			if err != nil {
				return AttrValue{}, err
			}
			items[i] = v
		}
		return ListValue(items...), nil
	case primitive.A:
		return FromAny([]any(t))
	case map[string]any:
		m, err := attributesFromMap(t)
		if err != nil {
			return AttrValue{}, err
		}
		return MapValue(m), nil
	case primitive.M:
		return FromAny(map[string]any(t))
	case primitive.D:
		return FromAny(map[string]any(t.Map()))
	}
	return AttrValue{}, fmt.Errorf("unsupported attribute value of type %T", x)
}

// numberFromJSON keeps integer literals that fit in int64 exact and parses
// everything else as a float64.
func numberFromJSON(n json.Number) (AttrValue, error) {
	if !strings.ContainsAny(n.String(), ".eE") {
		if i, err := n.Int64(); err == nil {
			return IntValue(i), nil
		}
	}
	f, err := n.Float64()
	if err != nil {
		return AttrValue{}, fmt.Errorf("attribute number %q: %w", n, err)
	}
	return NumberValue(f), nil
}

func attributesFromMap(raw map[string]any) (Attributes, error) {
	out := make(Attributes, len(raw))
	for k, item := range raw {
		v, err := FromAny(item)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", k, err)
		}
		out[k] = v
	}
	return out, nil
}

// ─── JSON ─────────────────────────────────────────────────────────────────────

func (v AttrValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case AttrNull:
		return []byte("null"), nil
	case AttrNumber:
		if math.IsNaN(v.n) || math.IsInf(v.n, 0) {
			return nil, fmt.Errorf("attribute number %v is not representable in JSON", v.n)
		}
	case AttrList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	case AttrMap:
		return json.Marshal(v.m)
	}
	return json.Marshal(v.Interface())
}

func (v *AttrValue) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	parsed, err := FromAny(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ─── BSON ─────────────────────────────────────────────────────────────────────

func (v AttrValue) MarshalBSONValue() (bsontype.Type, []byte, error) {
	switch v.kind {
	case AttrNull:
		return bson.TypeNull, nil, nil
	case AttrInt:
		if v.i >= math.MinInt32 && v.i <= math.MaxInt32 {
			return bson.MarshalValue(int32(v.i))
		}
		return bson.MarshalValue(v.i)
	case AttrMap:
		return v.m.MarshalBSONValue()
	}
	return bson.MarshalValue(v.Interface())
}

func (v *AttrValue) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	parsed, err := attrFromRaw(bson.RawValue{Type: t, Value: data})
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalBSONValue stores the bag as an embedded document with sorted keys,
// so identical bags always encode to identical bytes.
func (a Attributes) MarshalBSONValue() (bsontype.Type, []byte, error) {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	doc := make(bson.D, 0, len(keys))
	for _, k := range keys {
		doc = append(doc, bson.E{Key: k, Value: a[k]})
	}
	return bson.MarshalValue(doc)
}

func (a *Attributes) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	if t == bson.TypeNull || t == bson.TypeUndefined {
		*a = Attributes{}
		return nil
	}
	if t != bson.TypeEmbeddedDocument {
		return fmt.Errorf("attributes: expected document, got bson type %s", t)
	}
	m, err := attributesFromRawDoc(bson.Raw(data))
	if err != nil {
		return err
	}
	*a = m
	return nil
}

func attributesFromRawDoc(doc bson.Raw) (Attributes, error) {
	elems, err := doc.Elements()
	if err != nil {
		return nil, fmt.Errorf("attributes: %w", err)
	}
	out := make(Attributes, len(elems))
	for _, el := range elems {
		v, err := attrFromRaw(el.Value())
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", el.Key(), err)
		}
		out[el.Key()] = v
	}
	return out, nil
}

func attrFromRaw(rv bson.RawValue) (AttrValue, error) {
	switch rv.Type {
	case bson.TypeNull, bson.TypeUndefined:
		return NullValue(), nil
	case bson.TypeBoolean:
		return BoolValue(rv.Boolean()), nil
	case bson.TypeDouble:
		return NumberValue(rv.Double()), nil
	case bson.TypeInt32:
		return IntValue(int64(rv.Int32())), nil
	case bson.TypeInt64:
		return IntValue(rv.Int64()), nil
	case bson.TypeDecimal128:
		f, err := strconv.ParseFloat(rv.Decimal128().String(), 64)
		if err != nil {
			return AttrValue{}, err
		}
		return NumberValue(f), nil
	case bson.TypeString:
		return StringValue(rv.StringValue()), nil
	case bson.TypeObjectID:
		return StringValue(rv.ObjectID().Hex()), nil
	case bson.TypeDateTime:
		return StringValue(rv.Time().UTC().Format(time.RFC3339Nano)), nil
	case bson.TypeArray:
		values, err := rv.Array().Values()
		if err != nil {
			return AttrValue{}, err
		}
		items := make([]AttrValue, len(values))
		for i, item := range values {
			v, err := attrFromRaw(item)
			if err != nil {
				return AttrValue{}, err
			}
			items[i] = v
		}
		return ListValue(items...), nil
	case bson.TypeEmbeddedDocument:
		m, err := attributesFromRawDoc(rv.Document())
		if err != nil {
			return AttrValue{}, err
		}
		return MapValue(m), nil
	}
	return AttrValue{}, fmt.Errorf("unsupported bson type %s", rv.Type)
}
