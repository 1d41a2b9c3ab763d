package rest

import (
	"bytes"
	"encoding/json"
)

// looseString takes a JSON string as is and keeps any other JSON value as
// its literal text, so a field of the wrong JSON type reaches the service
// rules and is reported per field instead of failing the whole body.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = looseString(v)
		return nil
	}
	*s = looseString(data)
	return nil
}

// registerRequest accepts multipart, urlencoded and JSON bodies.
type registerRequest struct {
	Name     looseString `form:"name" json:"name"`
	Email    looseString `form:"email" json:"email"`
	Password looseString `form:"password" json:"password"`
	Age      looseString `form:"age" json:"age"`
	City     looseString `form:"city" json:"city"`
}

type loginRequest struct {
	Email    looseString `form:"email" json:"email"`
	Password looseString `form:"password" json:"password"`
}
