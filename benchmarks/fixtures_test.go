package benchmarks

import (
	"bytes"
	"strconv"

	"github.com/reoring/jsonmodel"
)

type userKey string

const (
	userID     userKey = "id"
	userName   userKey = "name"
	userAge    userKey = "age"
	userActive userKey = "active"
	userMeta   userKey = "meta"
	metaScore  userKey = "score"
)

type user struct {
	ID     string
	Name   string
	Age    int
	Active bool
	Score  int
}

var userCodec = jsonmodel.Model(
	func(o jsonmodel.Object[userKey]) (user, error) {
		var (
			u   user
			err error
		)
		if u.ID, err = jsonmodel.Required(o, jsonmodel.String(), userID); err != nil {
			return u, err
		}
		if u.Name, err = jsonmodel.Required(o, jsonmodel.String(), userName); err != nil {
			return u, err
		}
		if u.Age, err = jsonmodel.Required(o, jsonmodel.Int(), userAge); err != nil {
			return u, err
		}
		if u.Active, err = jsonmodel.Required(o, jsonmodel.Bool(), userActive); err != nil {
			return u, err
		}
		if u.Score, err = jsonmodel.Required(o, jsonmodel.Int(), userMeta, metaScore); err != nil {
			return u, err
		}
		return u, nil
	},
	func(u user) jsonmodel.Fields[userKey] {
		return jsonmodel.Fields[userKey]{
			userID:     jsonmodel.NewString(u.ID),
			userName:   jsonmodel.NewString(u.Name),
			userAge:    jsonmodel.NewInt(u.Age),
			userActive: jsonmodel.NewBool(u.Active),
			userMeta:   jsonmodel.Build(jsonmodel.Fields[userKey]{metaScore: jsonmodel.NewInt(u.Score)}),
		}
	},
)

func smallUserJSON() []byte {
	return []byte(`{"id":"u_1","name":"alice","age":30,"active":true,"meta":{"score":7}}`)
}

// generateHugeJSONArray returns a JSON array of objects of the form:
// [{"id":"obj_0","name":"n0","age":0,"active":true,"meta":{"score":0},"k0":"v0",...}, ...]
func generateHugeJSONArray(numObjects int, extraFields int) []byte {
	var buf bytes.Buffer
	buf.Grow(numObjects * (64 + extraFields*16))
	buf.WriteByte('[')
	for i := 0; i < numObjects; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		n := strconv.Itoa(i)
		buf.WriteString(`{"id":"obj_` + n + `","name":"n` + n + `","age":` + n + `,"active":` + strconv.FormatBool(i%2 == 0) + `,"meta":{"score":` + n + `}`)
		for k := 0; k < extraFields; k++ {
			ks := strconv.Itoa(k)
			buf.WriteString(`,"k` + ks + `":"v` + n + `_` + ks + `"`)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes()
}
