package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func capture(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	SetOutput(&out, &errOut)
	t.Cleanup(func() { SetOutput(nil, nil) })
	return &out, &errOut
}

type item struct {
	Handle string `json:"handle" yaml:"handle"`
	Size   int    `json:"size" yaml:"size"`
}

func TestPrintJSON(t *testing.T) {
	out, _ := capture(t)

	require.NoError(t, PrintJSON(item{Handle: "c1", Size: 3}))

	var got item
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, item{Handle: "c1", Size: 3}, got)
	assert.Contains(t, out.String(), "  \"handle\": \"c1\"")
}

func TestPrintYAML(t *testing.T) {
	out, _ := capture(t)

	require.NoError(t, PrintYAML([]item{{Handle: "c1", Size: 3}}))

	var got []item
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, []item{{Handle: "c1", Size: 3}}, got)
}

func TestPrintTable(t *testing.T) {
	out, _ := capture(t)

	PrintTable([]string{"HANDLE", "NAME"}, [][]string{{"c1", "C1"}, {"longer-handle", "C2"}})

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "HANDLE"))
	// Columns are aligned on the widest cell
	assert.Equal(t, strings.Index(lines[0], "NAME"), strings.Index(lines[2], "C2"))
}

func TestPrintFormatted(t *testing.T) {
	tests := []struct {
		format    string
		wantTable bool
		wantErr   bool
		contains  string
	}{
		{format: "", wantTable: true},
		{format: FormatTable, wantTable: true},
		{format: FormatJSON, contains: `"handle": "c1"`},
		{format: FormatYAML, contains: "handle: c1"},
		{format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, _ := capture(t)
			called := false

			err := PrintFormatted(tt.format, item{Handle: "c1"}, func() error {
				called = true
				return nil
			})

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTable, called)
			assert.Contains(t, out.String(), tt.contains)
		})
	}
}

func TestPrintMessageAndError(t *testing.T) {
	out, errOut := capture(t)

	PrintMessage("done")
	PrintError(errors.New("boom"))

	assert.Equal(t, "done\n", out.String())
	assert.Equal(t, "Error: boom\n", errOut.String())
}
