package common

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bitswalk/jobly/src/common/errors"
	"github.com/bitswalk/jobly/src/joblyd/db"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchema = FieldSchema{
	"name":         String(1, 0),
	"numEmployees": NullableInt(0),
	"logoUrl":      NullableURL(),
	"equity":       NullableEquity(),
	"email":        Email(),
	"isAdmin":      Bool(),
}

func TestDecodeFields_KeepsDocumentOrder(t *testing.T) {
	fields, err := DecodeFields(strings.NewReader(
		`{"numEmployees": 10, "name": "Acme", "equity": 0.4, "logoUrl": null, "isAdmin": true}`), testSchema)
	require.NoError(t, err)

	assert.Equal(t, db.Fields{
		{Name: "numEmployees", Value: 10},
		{Name: "name", Value: "Acme"},
		{Name: "equity", Value: db.Equity("0.4")},
		{Name: "logoUrl", Value: nil},
		{Name: "isAdmin", Value: true},
	}, fields)
}

func TestDecodeFields_Empty(t *testing.T) {
	fields, err := DecodeFields(strings.NewReader(`{}`), testSchema)
	require.NoError(t, err)
	assert.Empty(t, fields)
}

func TestDecodeFields_Rejects(t *testing.T) {
	tests := map[string]string{
		"unknown field":    `{"handle": "new"}`,
		"wrong type":       `{"numEmployees": "ten"}`,
		"fractional int":   `{"numEmployees": 1.5}`,
		"negative int":     `{"numEmployees": -1}`,
		"empty string":     `{"name": ""}`,
		"bad url":          `{"logoUrl": "not a url"}`,
		"bad email":        `{"email": "nope"}`,
		"equity above one": `{"equity": 2}`,
		"not an object":    `["name"]`,
		"truncated":        `{"name": "x"`,
		"bool as string":   `{"isAdmin": "true"}`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeFields(strings.NewReader(body), testSchema)
			require.Error(t, err)
			assert.True(t, errors.IsBadRequest(err), "got %v", err)
		})
	}
}

func TestBindFields_EmptyBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPatch, "/companies/c1", nil)

	_, ok := BindFields(c, testSchema)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No data")
}
