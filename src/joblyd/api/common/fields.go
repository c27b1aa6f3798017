package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/bitswalk/jobly/src/common/errors"
	"github.com/bitswalk/jobly/src/joblyd/db"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FieldRule validates one raw JSON value of a patch body and returns the
// value to store.
type FieldRule func(raw json.RawMessage) (interface{}, error)

// FieldSchema maps each patchable field to its rule
type FieldSchema map[string]FieldRule

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// String accepts a string whose length lies in [min, max]. A max of 0
// means unbounded.
func String(min, max int) FieldRule {
	return func(raw json.RawMessage) (interface{}, error) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("must be a string")
		}
		if len(s) < min {
			return nil, fmt.Errorf("must be at least %d characters", min)
		}
		if max > 0 && len(s) > max {
			return nil, fmt.Errorf("must be at most %d characters", max)
		}
		return s, nil
	}
}

// Email accepts a string holding an email address
func Email() FieldRule {
	return func(raw json.RawMessage) (interface{}, error) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("must be a string")
		}
		if err := validate.Var(s, "required,email"); err != nil {
			return nil, fmt.Errorf("must be an email address")
		}
		return s, nil
	}
}

// NullableURL accepts an absolute URL or null
func NullableURL() FieldRule {
	return func(raw json.RawMessage) (interface{}, error) {
		if isNull(raw) {
			return nil, nil
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("must be a string")
		}
		if err := validate.Var(s, "required,url"); err != nil {
			return nil, fmt.Errorf("must be a URL")
		}
		return s, nil
	}
}

// NullableInt accepts an integer no smaller than min, or null
func NullableInt(min int) FieldRule {
	return func(raw json.RawMessage) (interface{}, error) {
		if isNull(raw) {
			return nil, nil
		}
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, fmt.Errorf("must be an integer")
		}
		i, err := n.Int64()
		if err != nil {
			return nil, fmt.Errorf("must be an integer")
		}
		if i < int64(min) {
			return nil, fmt.Errorf("must be at least %d", min)
		}
		return int(i), nil
	}
}

// NullableEquity accepts a decimal in [0, 1], as number or string, or null
func NullableEquity() FieldRule {
	return func(raw json.RawMessage) (interface{}, error) {
		if isNull(raw) {
			return nil, nil
		}
		var e db.Equity
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, err
		}
		return e, nil
	}
}

// Bool accepts true or false
func Bool() FieldRule {
	return func(raw json.RawMessage) (interface{}, error) {
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, fmt.Errorf("must be a boolean")
		}
		return b, nil
	}
}

// DecodeFields reads a JSON object from r and validates each member
// against schema, keeping document order. Unknown members are rejected.
func DecodeFields(r io.Reader, schema FieldSchema) (db.Fields, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, errors.ErrInvalidJSON.WithMessage("request body must be a JSON object")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.ErrInvalidJSON.WithMessage("request body must be a JSON object")
	}

	fields := db.Fields{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, errors.ErrInvalidJSON.WithCause(err)
		}
		name := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, errors.ErrInvalidJSON.WithCause(err)
		}

		rule, ok := schema[name]
		if !ok {
			return nil, errors.ErrInvalidFieldValue.WithMessagef("unknown field: %s", name)
		}
		value, err := rule(raw)
		if err != nil {
			return nil, errors.ErrInvalidFieldValue.WithMessagef("%s %v", name, err)
		}
		fields = fields.Set(name, value)
	}

	if _, err := dec.Token(); err != nil {
		return nil, errors.ErrInvalidJSON.WithCause(err)
	}

	return fields, nil
}

// BindFields decodes a patch body into ordered fields, answering 400 on
// failure.
func BindFields(c *gin.Context, schema FieldSchema) (db.Fields, bool) {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		Error(c, errors.ErrNoData)
		return nil, false
	}

	fields, err := DecodeFields(http.MaxBytesReader(c.Writer, c.Request.Body, 1<<20), schema)
	if err != nil {
		Error(c, err)
		return nil, false
	}
	return fields, true
}
