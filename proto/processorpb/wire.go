// Package processorpb holds the wire messages for the processor streaming
// service. The shapes mirror what protoc-gen-go would emit for
// processor/v1/processor.proto; they are maintained by hand here so the SDK
// has no build-time protoc dependency, but the protobuf struct tags are kept
// so the classic github.com/golang/protobuf marshaller can still encode them.
package processorpb

import (
	"fmt"

	"github.com/golang/protobuf/proto"
)

// RichValue is the tagged-union wire encoding of any typed value appearing
// in entities, events, or metrics. Exactly one of the Kind fields is set.
type RichValue struct {
	Kind isRichValue_Kind `protobuf:"bytes,1,opt,name=kind"`
}

type isRichValue_Kind interface{ isRichValue_Kind() }

type RichValue_StringValue struct {
	StringValue string `protobuf:"bytes,1,opt,name=string_value,json=stringValue,proto3,oneof"`
}
type RichValue_Int32Value struct {
	Int32Value int32 `protobuf:"varint,2,opt,name=int32_value,json=int32Value,proto3,oneof"`
}
type RichValue_Int64Value struct {
	Int64Value int64 `protobuf:"varint,3,opt,name=int64_value,json=int64Value,proto3,oneof"`
}
type RichValue_FloatValue struct {
	FloatValue float64 `protobuf:"fixed64,4,opt,name=float_value,json=floatValue,proto3,oneof"`
}
type RichValue_BoolValue struct {
	BoolValue bool `protobuf:"varint,5,opt,name=bool_value,json=boolValue,proto3,oneof"`
}
type RichValue_BytesValue struct {
	BytesValue []byte `protobuf:"bytes,6,opt,name=bytes_value,json=bytesValue,proto3,oneof"`
}
type RichValue_TimestampValue struct {
	TimestampValue *Timestamp `protobuf:"bytes,7,opt,name=timestamp_value,json=timestampValue,proto3,oneof"`
}
type RichValue_BigIntValue struct {
	BigIntValue *BigInt `protobuf:"bytes,8,opt,name=big_int_value,json=bigIntValue,proto3,oneof"`
}
type RichValue_BigDecimalValue struct {
	BigDecimalValue *BigDecimal `protobuf:"bytes,9,opt,name=big_decimal_value,json=bigDecimalValue,proto3,oneof"`
}
type RichValue_ListValue struct {
	ListValue *RichValueList `protobuf:"bytes,10,opt,name=list_value,json=listValue,proto3,oneof"`
}
type RichValue_StructValue struct {
	StructValue *RichValueStruct `protobuf:"bytes,11,opt,name=struct_value,json=structValue,proto3,oneof"`
}
type RichValue_NullValue struct {
	NullValue bool `protobuf:"varint,12,opt,name=null_value,json=nullValue,proto3,oneof"`
}
type RichValue_TokenValue struct {
	TokenValue *Token `protobuf:"bytes,13,opt,name=token_value,json=tokenValue,proto3,oneof"`
}

func (*RichValue_StringValue) isRichValue_Kind()     {}
func (*RichValue_Int32Value) isRichValue_Kind()      {}
func (*RichValue_Int64Value) isRichValue_Kind()      {}
func (*RichValue_FloatValue) isRichValue_Kind()      {}
func (*RichValue_BoolValue) isRichValue_Kind()       {}
func (*RichValue_BytesValue) isRichValue_Kind()      {}
func (*RichValue_TimestampValue) isRichValue_Kind()  {}
func (*RichValue_BigIntValue) isRichValue_Kind()     {}
func (*RichValue_BigDecimalValue) isRichValue_Kind() {}
func (*RichValue_ListValue) isRichValue_Kind()       {}
func (*RichValue_StructValue) isRichValue_Kind()     {}
func (*RichValue_NullValue) isRichValue_Kind()       {}
func (*RichValue_TokenValue) isRichValue_Kind()      {}

func (m *RichValue) Reset()         { *m = RichValue{} }
func (m *RichValue) String() string { return fmt.Sprintf("%+v", *m) }
func (*RichValue) ProtoMessage()    {}

var _ proto.Message = (*RichValue)(nil)

// Timestamp mirrors well-known (seconds, nanos) semantics without pulling in
// google.golang.org/protobuf/types/known/timestamppb, since big-integer and
// decimal conversions below need the same exact shape.
type Timestamp struct {
	Seconds int64 `protobuf:"varint,1,opt,name=seconds,proto3"`
	Nanos   int32 `protobuf:"varint,2,opt,name=nanos,proto3"`
}

func (m *Timestamp) Reset()         { *m = Timestamp{} }
func (m *Timestamp) String() string { return fmt.Sprintf("%+v", *m) }
func (*Timestamp) ProtoMessage()    {}

// BigInt is a sign + big-endian magnitude encoding of an arbitrary precision
// integer.
type BigInt struct {
	Negative  bool   `protobuf:"varint,1,opt,name=negative,proto3"`
	Magnitude []byte `protobuf:"bytes,2,opt,name=magnitude,proto3"`
}

func (m *BigInt) Reset()         { *m = BigInt{} }
func (m *BigInt) String() string { return fmt.Sprintf("%+v", *m) }
func (*BigInt) ProtoMessage()    {}

// BigDecimal is mantissa * 10^exponent, with scale = -exponent.
type BigDecimal struct {
	Mantissa *BigInt `protobuf:"bytes,1,opt,name=mantissa,proto3"`
	Exponent int32   `protobuf:"varint,2,opt,name=exponent,proto3"`
}

func (m *BigDecimal) Reset()         { *m = BigDecimal{} }
func (m *BigDecimal) String() string { return fmt.Sprintf("%+v", *m) }
func (*BigDecimal) ProtoMessage()    {}

// Token is a domain-specific amount+symbol rich value variant.
type Token struct {
	Symbol string  `protobuf:"bytes,1,opt,name=symbol,proto3"`
	Amount *BigInt `protobuf:"bytes,2,opt,name=amount,proto3"`
}

func (m *Token) Reset()         { *m = Token{} }
func (m *Token) String() string { return fmt.Sprintf("%+v", *m) }
func (*Token) ProtoMessage()    {}

// RichValueList preserves element order.
type RichValueList struct {
	Values []*RichValue `protobuf:"bytes,1,rep,name=values,proto3"`
}

func (m *RichValueList) Reset()         { *m = RichValueList{} }
func (m *RichValueList) String() string { return fmt.Sprintf("%+v", *m) }
func (*RichValueList) ProtoMessage()    {}

// RichValueStruct is a named map of rich values, field-name keyed.
type RichValueStruct struct {
	Fields map[string]*RichValue `protobuf:"bytes,1,rep,name=fields,proto3"`
}

func (m *RichValueStruct) Reset()         { *m = RichValueStruct{} }
func (m *RichValueStruct) String() string { return fmt.Sprintf("%+v", *m) }
func (*RichValueStruct) ProtoMessage()    {}
