package db

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEquity_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Equity
		wantErr bool
	}{
		{"number", `0.4`, "0.4", false},
		{"string", `"0.40"`, "0.40", false},
		{"zero", `0`, "0", false},
		{"one", `1`, "1", false},
		{"above one", `1.5`, "", true},
		{"negative", `"-0.1"`, "", true},
		{"not a number", `"abc"`, "", true},
		{"bool", `true`, "", true},
		{"leading dot", `".25"`, ".25", false},
		{"one with zeros", `"1.000"`, "1.000", false},
		{"nan", `"NaN"`, "", true},
		{"hex float", `"0x1p-2"`, "", true},
		{"exponent string", `"1e-1"`, "", true},
		{"exponent number", `2.5e-1`, "", true},
		{"infinity", `"Inf"`, "", true},
		{"one point one", `"1.01"`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e Equity
			err := json.Unmarshal([]byte(tt.input), &e)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, e)
		})
	}
}

func TestJob_EquityMarshalsAsString(t *testing.T) {
	job := Job{ID: 1, Title: "newJob", Salary: intPtr(10000), Equity: equityPtr("0.4"), CompanyHandle: "c1"}

	data, err := json.Marshal(job)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"title":"newJob","salary":10000,"equity":"0.4","company_handle":"c1"}`, string(data))

	job.Equity = nil
	data, err = json.Marshal(job)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"equity":null`)
}
