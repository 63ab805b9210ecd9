// Package richvalue converts between arbitrary typed Go values and the
// RichValue wire encoding directly, without a JSON intermediate, per
// spec.md §4.2.
package richvalue

import (
	"fmt"
	"math/big"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"

	"github.com/synnergychain/stream-processor-sdk/pkg/errs"
	"github.com/synnergychain/stream-processor-sdk/proto/processorpb"
)

// BigInt is the Go-side representation of the big-integer rich-value
// variant: sign plus magnitude, matching the wire encoding exactly so
// round-tripping never has to guess a sign convention for zero.
type BigInt struct {
	Negative  bool
	Magnitude []byte
}

// NewBigIntFromBig builds a BigInt from a math/big.Int.
func NewBigIntFromBig(v *big.Int) BigInt {
	return BigInt{Negative: v.Sign() < 0, Magnitude: v.Bytes()}
}

// Big returns the math/big.Int value of b.
func (b BigInt) Big() *big.Int {
	v := new(big.Int).SetBytes(b.Magnitude)
	if b.Negative {
		v.Neg(v)
	}
	return v
}

// BigDecimal is the Go-side representation of the big-decimal rich-value
// variant: value == mantissa * 10^exponent, scale == -exponent.
type BigDecimal struct {
	Mantissa BigInt
	Exponent int32
}

// NewBigDecimalFromDecimal builds a BigDecimal from a shopspring/decimal
// value, preserving its exact scale (no normalization of trailing zeros).
func NewBigDecimalFromDecimal(d decimal.Decimal) BigDecimal {
	coeff := d.Coefficient()
	return BigDecimal{
		Mantissa: NewBigIntFromBig(coeff),
		Exponent: d.Exponent(),
	}
}

// Decimal returns the shopspring/decimal value of d.
func (d BigDecimal) Decimal() decimal.Decimal {
	return decimal.NewFromBigInt(d.Mantissa.Big(), d.Exponent)
}

// Token is the Go-side representation of the domain-specific amount+symbol
// rich-value variant, backed by uint256 for the common on-chain amount range.
type Token struct {
	Symbol string
	Amount *uint256.Int
}

// Encode converts an arbitrary Go value into its RichValue wire form. JSON is
// never used as an intermediate: the conversion walks the typed value
// directly via reflection so big-integer/decimal precision is never lost to
// a float64 round-trip.
func Encode(v any) (*processorpb.RichValue, error) {
	if v == nil {
		return nullValue(), nil
	}
	switch x := v.(type) {
	case BigInt:
		return encodeBigInt(x), nil
	case *big.Int:
		if x == nil {
			return nullValue(), nil
		}
		return encodeBigInt(NewBigIntFromBig(x)), nil
	case BigDecimal:
		return encodeBigDecimal(x), nil
	case decimal.Decimal:
		return encodeBigDecimal(NewBigDecimalFromDecimal(x)), nil
	case Token:
		return encodeToken(x), nil
	case uuid.UUID:
		return &processorpb.RichValue{Kind: &processorpb.RichValue_StringValue{StringValue: x.String()}}, nil
	case time.Time:
		return encodeTimestamp(x)
	case []byte:
		return &processorpb.RichValue{Kind: &processorpb.RichValue_BytesValue{BytesValue: x}}, nil
	case string:
		return &processorpb.RichValue{Kind: &processorpb.RichValue_StringValue{StringValue: x}}, nil
	case bool:
		return &processorpb.RichValue{Kind: &processorpb.RichValue_BoolValue{BoolValue: x}}, nil
	case int32:
		return &processorpb.RichValue{Kind: &processorpb.RichValue_Int32Value{Int32Value: x}}, nil
	case int64:
		return &processorpb.RichValue{Kind: &processorpb.RichValue_Int64Value{Int64Value: x}}, nil
	case int:
		return &processorpb.RichValue{Kind: &processorpb.RichValue_Int64Value{Int64Value: int64(x)}}, nil
	case float32:
		return &processorpb.RichValue{Kind: &processorpb.RichValue_FloatValue{FloatValue: float64(x)}}, nil
	case float64:
		return &processorpb.RichValue{Kind: &processorpb.RichValue_FloatValue{FloatValue: x}}, nil
	}

	return encodeReflect(reflect.ValueOf(v))
}

func encodeReflect(rv reflect.Value) (*processorpb.RichValue, error) {
	switch rv.Kind() {
	case reflect.Ptr:
		if rv.IsNil() {
			return nullValue(), nil
		}
		return Encode(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nullValue(), nil
		}
		list := &processorpb.RichValueList{Values: make([]*processorpb.RichValue, rv.Len())}
		for i := 0; i < rv.Len(); i++ {
			elem, err := Encode(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			list.Values[i] = elem
		}
		return &processorpb.RichValue{Kind: &processorpb.RichValue_ListValue{ListValue: list}}, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, errs.New(errs.KindDecode, fmt.Sprintf("map keys must be strings, got %s", rv.Type().Key()))
		}
		st := &processorpb.RichValueStruct{Fields: make(map[string]*processorpb.RichValue, rv.Len())}
		iter := rv.MapRange()
		for iter.Next() {
			val, err := Encode(iter.Value().Interface())
			if err != nil {
				return nil, err
			}
			st.Fields[iter.Key().String()] = val
		}
		return &processorpb.RichValue{Kind: &processorpb.RichValue_StructValue{StructValue: st}}, nil
	case reflect.Struct:
		return encodeStruct(rv)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32:
		return &processorpb.RichValue{Kind: &processorpb.RichValue_Int32Value{Int32Value: int32(rv.Int())}}, nil
	case reflect.Int64:
		return &processorpb.RichValue{Kind: &processorpb.RichValue_Int64Value{Int64Value: rv.Int()}}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return &processorpb.RichValue{Kind: &processorpb.RichValue_Int64Value{Int64Value: int64(rv.Uint())}}, nil
	case reflect.Uint64:
		return &processorpb.RichValue{Kind: &processorpb.RichValue_Int64Value{Int64Value: int64(rv.Uint())}}, nil
	case reflect.Float32, reflect.Float64:
		return &processorpb.RichValue{Kind: &processorpb.RichValue_FloatValue{FloatValue: rv.Float()}}, nil
	case reflect.String:
		return &processorpb.RichValue{Kind: &processorpb.RichValue_StringValue{StringValue: rv.String()}}, nil
	case reflect.Bool:
		return &processorpb.RichValue{Kind: &processorpb.RichValue_BoolValue{BoolValue: rv.Bool()}}, nil
	case reflect.Invalid:
		return nullValue(), nil
	default:
		return nil, errs.New(errs.KindDecode, fmt.Sprintf("unsupported value kind %s", rv.Kind()))
	}
}

// EncodeStruct converts a typed struct into a RichValue struct, recursing
// into nested structs. Field names are taken from the Go field name unless a
// `richvalue:"name"` tag overrides it.
func EncodeStruct(v any) (*processorpb.RichValueStruct, error) {
	rv := reflect.Indirect(reflect.ValueOf(v))
	if rv.Kind() != reflect.Struct {
		return nil, errs.New(errs.KindDecode, fmt.Sprintf("EncodeStruct requires a struct, got %T", v))
	}
	val, err := encodeStruct(rv)
	if err != nil {
		return nil, err
	}
	return val.Kind.(*processorpb.RichValue_StructValue).StructValue, nil
}

func encodeStruct(rv reflect.Value) (*processorpb.RichValue, error) {
	t := rv.Type()
	st := &processorpb.RichValueStruct{Fields: make(map[string]*processorpb.RichValue, t.NumField())}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue // unexported
		}
		name := f.Tag.Get("richvalue")
		if name == "" {
			name = f.Name
		}
		if name == "-" {
			continue
		}
		val, err := Encode(rv.Field(i).Interface())
		if err != nil {
			return nil, err
		}
		st.Fields[name] = val
	}
	return &processorpb.RichValue{Kind: &processorpb.RichValue_StructValue{StructValue: st}}, nil
}

func nullValue() *processorpb.RichValue {
	return &processorpb.RichValue{Kind: &processorpb.RichValue_NullValue{NullValue: true}}
}

func encodeBigInt(b BigInt) *processorpb.RichValue {
	return &processorpb.RichValue{Kind: &processorpb.RichValue_BigIntValue{BigIntValue: &processorpb.BigInt{
		Negative:  b.Negative,
		Magnitude: append([]byte(nil), b.Magnitude...),
	}}}
}

func encodeBigDecimal(d BigDecimal) *processorpb.RichValue {
	return &processorpb.RichValue{Kind: &processorpb.RichValue_BigDecimalValue{BigDecimalValue: &processorpb.BigDecimal{
		Mantissa: &processorpb.BigInt{Negative: d.Mantissa.Negative, Magnitude: append([]byte(nil), d.Mantissa.Magnitude...)},
		Exponent: d.Exponent,
	}}}
}

func encodeToken(tk Token) *processorpb.RichValue {
	amt := BigInt{}
	if tk.Amount != nil {
		amt = NewBigIntFromBig(tk.Amount.ToBig())
	}
	return &processorpb.RichValue{Kind: &processorpb.RichValue_TokenValue{TokenValue: &processorpb.Token{
		Symbol: tk.Symbol,
		Amount: &processorpb.BigInt{Negative: amt.Negative, Magnitude: amt.Magnitude},
	}}}
}

// encodeTimestamp is unbounded: the wire Timestamp's Seconds field is itself
// an int64, the same width time.Time.Unix() returns, so no Go time.Time
// value can ever overflow it.
func encodeTimestamp(t time.Time) (*processorpb.RichValue, error) {
	return &processorpb.RichValue{Kind: &processorpb.RichValue_TimestampValue{TimestampValue: &processorpb.Timestamp{
		Seconds: t.Unix(),
		Nanos:   int32(t.Nanosecond()),
	}}}, nil
}
