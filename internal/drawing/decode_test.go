package drawing

import (
	"strings"
	"testing"

	"github.com/abhisek/linedrill/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_Valid(t *testing.T) {
	in := `{"lines":[{"p1":{"x":0,"y":0},"p2":{"x":1,"y":2}},{"p1":{"x":-10,"y":10},"p2":{"x":3,"y":-4}}],"domain":{"min":-10,"max":10}}`
	data, err := Decode(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []geometry.Segment{seg(0, 0, 1, 2), seg(-10, 10, 3, -4)}, data.Lines)
	assert.Equal(t, geometry.DefaultDomain, data.Domain)
}

func TestDecode_DefaultsDomainAndLines(t *testing.T) {
	data, err := Decode(strings.NewReader(`{"lines":[]}`))
	require.NoError(t, err)
	assert.Equal(t, geometry.DefaultDomain, data.Domain)
	assert.NotNil(t, data.Lines)
	assert.Empty(t, data.Lines)
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr string
	}{
		{"not json", `{"lines":`, "invalid drawing JSON"},
		{"missing lines", `{}`, "invalid drawing"},
		{"missing endpoint", `{"lines":[{"p1":{"x":0,"y":0}}]}`, "invalid drawing"},
		{"fractional coordinate", `{"lines":[{"p1":{"x":0.5,"y":0},"p2":{"x":1,"y":1}}]}`, "invalid drawing"},
		{"coordinate beyond grid", `{"lines":[{"p1":{"x":11,"y":0},"p2":{"x":1,"y":1}}]}`, "invalid drawing"},
		{"string coordinate", `{"lines":[{"p1":{"x":"1","y":0},"p2":{"x":1,"y":1}}]}`, "invalid drawing"},
		{"outside declared domain", `{"lines":[{"p1":{"x":0,"y":0},"p2":{"x":6,"y":1}}],"domain":{"min":-5,"max":5}}`, "lines[0].p2: (6, 1) outside domain [-5, 5]"},
		{"inverted domain", `{"lines":[],"domain":{"min":5,"max":-5}}`, "domain: min 5 must be below max -5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
