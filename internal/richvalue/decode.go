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

var uuidType = reflect.TypeOf(uuid.UUID{})

// Decode writes rv's value into the Go value pointed to by out. out must be
// a non-nil pointer. Numeric widening (32->64 bit) is permitted; narrowing
// fails per spec.md §4.2.
func Decode(rv *processorpb.RichValue, out any) error {
	if rv == nil {
		return errs.New(errs.KindDecode, "nil RichValue")
	}
	ptr := reflect.ValueOf(out)
	if ptr.Kind() != reflect.Ptr || ptr.IsNil() {
		return errs.New(errs.KindDecode, "Decode requires a non-nil pointer")
	}
	return decodeInto(rv, ptr.Elem())
}

func decodeInto(rv *processorpb.RichValue, dst reflect.Value) error {
	switch k := rv.Kind.(type) {
	case *processorpb.RichValue_NullValue:
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	case *processorpb.RichValue_StringValue:
		return assignString(dst, k.StringValue)
	case *processorpb.RichValue_BoolValue:
		return assignBool(dst, k.BoolValue)
	case *processorpb.RichValue_Int32Value:
		return assignInt(dst, int64(k.Int32Value), 32)
	case *processorpb.RichValue_Int64Value:
		return assignInt(dst, k.Int64Value, 64)
	case *processorpb.RichValue_FloatValue:
		return assignFloat(dst, k.FloatValue)
	case *processorpb.RichValue_BytesValue:
		return assignBytes(dst, k.BytesValue)
	case *processorpb.RichValue_TimestampValue:
		return assignTimestamp(dst, k.TimestampValue)
	case *processorpb.RichValue_BigIntValue:
		return assignBigInt(dst, k.BigIntValue)
	case *processorpb.RichValue_BigDecimalValue:
		return assignBigDecimal(dst, k.BigDecimalValue)
	case *processorpb.RichValue_ListValue:
		return assignList(dst, k.ListValue)
	case *processorpb.RichValue_StructValue:
		return assignStruct(dst, k.StructValue)
	case *processorpb.RichValue_TokenValue:
		return assignToken(dst, k.TokenValue)
	default:
		return errs.New(errs.KindDecode, "RichValue has no kind set")
	}
}

func derefAlloc(dst reflect.Value) reflect.Value {
	for dst.Kind() == reflect.Ptr {
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		dst = dst.Elem()
	}
	return dst
}

func assignString(dst reflect.Value, v string) error {
	dst = derefAlloc(dst)
	if dst.Type() == uuidType {
		id, err := uuid.Parse(v)
		if err != nil {
			return errs.New(errs.KindDecode, fmt.Sprintf("decode uuid: %v", err))
		}
		dst.Set(reflect.ValueOf(id))
		return nil
	}
	if dst.Kind() != reflect.String {
		return errs.New(errs.KindDecode, fmt.Sprintf("cannot decode string into %s", dst.Type()))
	}
	dst.SetString(v)
	return nil
}

func assignBool(dst reflect.Value, v bool) error {
	dst = derefAlloc(dst)
	if dst.Kind() != reflect.Bool {
		return errs.New(errs.KindDecode, fmt.Sprintf("cannot decode bool into %s", dst.Type()))
	}
	dst.SetBool(v)
	return nil
}

func assignInt(dst reflect.Value, v int64, srcBits int) error {
	dst = derefAlloc(dst)
	switch dst.Kind() {
	case reflect.Int64, reflect.Int:
		dst.SetInt(v)
		return nil
	case reflect.Int32, reflect.Int16, reflect.Int8:
		bits := dst.Type().Bits()
		if srcBits > bits {
			return errs.New(errs.KindDecode, fmt.Sprintf("narrowing %d-bit value into %d-bit field", srcBits, bits))
		}
		if dst.OverflowInt(v) {
			return errs.New(errs.KindDecode, "value overflows destination int width")
		}
		dst.SetInt(v)
		return nil
	case reflect.Uint64, reflect.Uint, reflect.Uint32, reflect.Uint16, reflect.Uint8:
		if v < 0 {
			return errs.New(errs.KindDecode, "cannot decode negative value into unsigned field")
		}
		if dst.OverflowUint(uint64(v)) {
			return errs.New(errs.KindDecode, "value overflows destination uint width")
		}
		dst.SetUint(uint64(v))
		return nil
	case reflect.Float64, reflect.Float32:
		dst.SetFloat(float64(v))
		return nil
	default:
		return errs.New(errs.KindDecode, fmt.Sprintf("cannot decode int into %s", dst.Type()))
	}
}

func assignFloat(dst reflect.Value, v float64) error {
	dst = derefAlloc(dst)
	if dst.Kind() != reflect.Float64 && dst.Kind() != reflect.Float32 {
		return errs.New(errs.KindDecode, fmt.Sprintf("cannot decode float into %s", dst.Type()))
	}
	dst.SetFloat(v)
	return nil
}

func assignBytes(dst reflect.Value, v []byte) error {
	dst = derefAlloc(dst)
	if dst.Kind() == reflect.Slice && dst.Type().Elem().Kind() == reflect.Uint8 {
		dst.SetBytes(append([]byte(nil), v...))
		return nil
	}
	if dst.Kind() == reflect.Array && dst.Type().Elem().Kind() == reflect.Uint8 {
		if len(v) > dst.Len() {
			return errs.New(errs.KindDecode, "bytes value longer than fixed-size destination array")
		}
		reflect.Copy(dst, reflect.ValueOf(v))
		return nil
	}
	return errs.New(errs.KindDecode, fmt.Sprintf("cannot decode bytes into %s", dst.Type()))
}

func assignTimestamp(dst reflect.Value, ts *processorpb.Timestamp) error {
	dst = derefAlloc(dst)
	t := time.Unix(ts.Seconds, int64(ts.Nanos)).UTC()
	if dst.Type() == reflect.TypeOf(time.Time{}) {
		dst.Set(reflect.ValueOf(t))
		return nil
	}
	return errs.New(errs.KindDecode, fmt.Sprintf("cannot decode timestamp into %s", dst.Type()))
}

var bigIntType = reflect.TypeOf(BigInt{})
var bigPtrType = reflect.TypeOf((*big.Int)(nil))

func assignBigInt(dst reflect.Value, b *processorpb.BigInt) error {
	dst = derefAlloc(dst)
	v := BigInt{Negative: b.Negative, Magnitude: append([]byte(nil), b.Magnitude...)}
	switch dst.Type() {
	case bigIntType:
		dst.Set(reflect.ValueOf(v))
		return nil
	case bigPtrType:
		dst.Set(reflect.ValueOf(v.Big()))
		return nil
	default:
		return errs.New(errs.KindDecode, fmt.Sprintf("cannot decode big-integer into %s", dst.Type()))
	}
}

var bigDecimalType = reflect.TypeOf(BigDecimal{})
var decimalType = reflect.TypeOf(decimal.Decimal{})

func assignBigDecimal(dst reflect.Value, d *processorpb.BigDecimal) error {
	dst = derefAlloc(dst)
	v := BigDecimal{
		Mantissa: BigInt{Negative: d.Mantissa.Negative, Magnitude: append([]byte(nil), d.Mantissa.Magnitude...)},
		Exponent: d.Exponent,
	}
	switch dst.Type() {
	case bigDecimalType:
		dst.Set(reflect.ValueOf(v))
		return nil
	case decimalType:
		dst.Set(reflect.ValueOf(v.Decimal()))
		return nil
	default:
		return errs.New(errs.KindDecode, fmt.Sprintf("cannot decode big-decimal into %s", dst.Type()))
	}
}

func assignToken(dst reflect.Value, tk *processorpb.Token) error {
	dst = derefAlloc(dst)
	if dst.Type() != reflect.TypeOf(Token{}) {
		return errs.New(errs.KindDecode, fmt.Sprintf("cannot decode token into %s", dst.Type()))
	}
	amt := BigInt{Negative: tk.Amount.Negative, Magnitude: tk.Amount.Magnitude}
	u, overflow := uint256.FromBig(amt.Big())
	if overflow {
		return errs.New(errs.KindDecode, "token amount overflows uint256")
	}
	dst.Set(reflect.ValueOf(Token{Symbol: tk.Symbol, Amount: u}))
	return nil
}

func assignList(dst reflect.Value, list *processorpb.RichValueList) error {
	dst = derefAlloc(dst)
	if dst.Kind() != reflect.Slice {
		return errs.New(errs.KindDecode, fmt.Sprintf("cannot decode list into %s", dst.Type()))
	}
	out := reflect.MakeSlice(dst.Type(), len(list.Values), len(list.Values))
	for i, v := range list.Values {
		if err := decodeInto(v, out.Index(i)); err != nil {
			return err
		}
	}
	dst.Set(out)
	return nil
}

func assignStruct(dst reflect.Value, st *processorpb.RichValueStruct) error {
	dst = derefAlloc(dst)
	if dst.Kind() == reflect.Map {
		if dst.Type().Key().Kind() != reflect.String {
			return errs.New(errs.KindDecode, "map destination must have string keys")
		}
		out := reflect.MakeMapWithSize(dst.Type(), len(st.Fields))
		for k, v := range st.Fields {
			elem := reflect.New(dst.Type().Elem()).Elem()
			if err := decodeInto(v, elem); err != nil {
				return err
			}
			out.SetMapIndex(reflect.ValueOf(k).Convert(dst.Type().Key()), elem)
		}
		dst.Set(out)
		return nil
	}
	if dst.Kind() != reflect.Struct {
		return errs.New(errs.KindDecode, fmt.Sprintf("cannot decode struct into %s", dst.Type()))
	}
	t := dst.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		name := f.Tag.Get("richvalue")
		if name == "" {
			name = f.Name
		}
		if name == "-" {
			continue
		}
		val, ok := st.Fields[name]
		if !ok {
			continue
		}
		if err := decodeInto(val, dst.Field(i)); err != nil {
			return fmt.Errorf("field %s: %w", name, err)
		}
	}
	return nil
}
