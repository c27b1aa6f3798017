package db

import (
	"fmt"
	"strings"

	"github.com/bitswalk/jobly/src/common/errors"
)

// Field is a single column assignment requested by a partial update
type Field struct {
	Name  string
	Value interface{}
}

// Fields is an ordered set of updates. The order decides placeholder numbering.
type Fields []Field

// Get returns the value of the named field
func (f Fields) Get(name string) (interface{}, bool) {
	for _, field := range f {
		if field.Name == name {
			return field.Value, true
		}
	}
	return nil, false
}

// Set replaces the value of an existing field or appends a new one
func (f Fields) Set(name string, value interface{}) Fields {
	for i := range f {
		if f[i].Name == name {
			f[i].Value = value
			return f
		}
	}
	return append(f, Field{Name: name, Value: value})
}

// PartialUpdate is the SET clause of an UPDATE with its bind values
type PartialUpdate struct {
	// SetCols looks like "name"=$1, "num_employees"=$2
	SetCols string
	Values  []interface{}
}

// Next returns the placeholder number following the SET clause
func (p PartialUpdate) Next() int {
	return len(p.Values) + 1
}

// SQLForPartialUpdate builds the SET clause for a partial update. jsToSQL
// maps API field names to column names; names missing from it are used as
// column names unchanged.
func SQLForPartialUpdate(data Fields, jsToSQL map[string]string) (PartialUpdate, error) {
	if len(data) == 0 {
		return PartialUpdate{}, errors.ErrNoData
	}

	cols := make([]string, len(data))
	values := make([]interface{}, len(data))
	for i, field := range data {
		col, ok := jsToSQL[field.Name]
		if !ok {
			col = field.Name
		}
		cols[i] = fmt.Sprintf(`"%s"=$%d`, col, i+1)
		values[i] = field.Value
	}

	return PartialUpdate{
		SetCols: strings.Join(cols, ", "),
		Values:  values,
	}, nil
}
