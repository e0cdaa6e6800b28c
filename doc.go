// Package jsonmodel provides:
//
// - An immutable JSON Value tree that keeps number text as written
// - Key-schema-aware object access (Object[K]) with typed accessors
// - Path-annotated decode failures (DecodeError) with i18n rendering
// - Codecs for primitives, collections, dates and user model types
// - A pluggable JSON driver (encoding/json by default, go-json available) with
//   duplicate-key, depth and size enforcement
//
// Design policy:
// - Keep public APIs in the root package; token plumbing lives under internal/.
// - Put JSON drivers under source/, alternate wire formats under format/, and
//   the CLI under cmd/jsonmodel.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	type PersonKey string
//
//	const (
//		Name PersonKey = "name"
//		Age  PersonKey = "age"
//	)
//
//	var personCodec = jsonmodel.Model(
//		func(o jsonmodel.Object[PersonKey]) (Person, error) {
//			name, err := jsonmodel.Required(o, jsonmodel.String(), Name)
//			if err != nil {
//				return Person{}, err
//			}
//			age, err := jsonmodel.Optional(o, jsonmodel.Int(), Age)
//			if err != nil {
//				return Person{}, err
//			}
//			return Person{Name: name, Age: age}, nil
//		},
//		func(p Person) jsonmodel.Fields[PersonKey] {
//			return jsonmodel.Fields[PersonKey]{
//				Name: jsonmodel.NewString(p.Name),
//				Age:  jsonmodel.EncodedOptional(p.Age, jsonmodel.Int()),
//			}
//		},
//	)
//
//	p, err := jsonmodel.DecodeBytes(personCodec, data)
//	out, err := jsonmodel.EncodeBytes(personCodec, p)
package jsonmodel
