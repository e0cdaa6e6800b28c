package jsonmodel

import "github.com/google/uuid"

// UUID is the codec for UUID strings in any form uuid.Parse accepts. A
// non-string is InvalidElement and an unparsable string InvalidFormat.
// Encoding writes the canonical lower-case form.
func UUID() Codec[uuid.UUID] { return uuidCodec{} }

type uuidCodec struct{}

func (uuidCodec) Decode(v Value) (uuid.UUID, error) {
	s, ok := v.AsString()
	if !ok {
		return uuid.Nil, invalidElement()
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, &DecodeError{Reason: InvalidFormat, Err: err}
	}
	return id, nil
}

func (uuidCodec) Encode(id uuid.UUID) Value { return NewString(id.String()) }
