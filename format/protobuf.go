package format

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/reoring/jsonmodel"
)

// Protobuf returns the codec for google.protobuf.Value messages in binary
// wire form. structpb numbers are doubles, so integers beyond 2^53 lose
// precision on the way through.
func Protobuf() Codec { return protobufCodec{} }

type protobufCodec struct{}

func (protobufCodec) Name() string { return "protobuf" }

func (protobufCodec) Encode(v jsonmodel.Value) ([]byte, error) {
	pv, err := ToStructpb(v)
	if err != nil {
		return nil, err
	}
	b, err := proto.MarshalOptions{Deterministic: true}.Marshal(pv)
	if err != nil {
		return nil, fmt.Errorf("format: protobuf encode: %w", err)
	}
	return b, nil
}

func (protobufCodec) Decode(b []byte) (jsonmodel.Value, error) {
	pv := &structpb.Value{}
	if err := proto.Unmarshal(b, pv); err != nil {
		return jsonmodel.Value{}, fmt.Errorf("format: protobuf decode: %w", err)
	}
	return FromStructpb(pv), nil
}

// ToStructpb converts v into a structpb.Value.
func ToStructpb(v jsonmodel.Value) (*structpb.Value, error) {
	pv, err := structpb.NewValue(v.ToAny())
	if err != nil {
		return nil, fmt.Errorf("format: protobuf convert: %w", err)
	}
	return pv, nil
}

// FromStructpb converts a structpb.Value into a Value. A nil message or an
// unset kind is null.
func FromStructpb(pv *structpb.Value) jsonmodel.Value {
	switch k := pv.GetKind().(type) {
	case *structpb.Value_BoolValue:
		return jsonmodel.NewBool(k.BoolValue)
	case *structpb.Value_NumberValue:
		return jsonmodel.NewFloat(k.NumberValue)
	case *structpb.Value_StringValue:
		return jsonmodel.NewString(k.StringValue)
	case *structpb.Value_ListValue:
		vals := k.ListValue.GetValues()
		elems := make([]jsonmodel.Value, len(vals))
		for i, e := range vals {
			elems[i] = FromStructpb(e)
		}
		return jsonmodel.NewArray(elems...)
	case *structpb.Value_StructValue:
		fields := k.StructValue.GetFields()
		obj := make(map[string]jsonmodel.Value, len(fields))
		for name, e := range fields {
			obj[name] = FromStructpb(e)
		}
		return jsonmodel.NewObject(obj)
	}
	return jsonmodel.Null()
}
