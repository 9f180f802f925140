package exporter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"chngfilter/internal/filter"
	"chngfilter/internal/shared/testutil"
	"chngfilter/pkg/contracts/domain"
)

func TestFormatChange(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  string
	}{
		{name: "zero", input: 0, want: "0"},
		{name: "positive", input: 0.71, want: "0.71"},
		{name: "negative", input: -1.5, want: "-1.5"},
		{name: "integer", input: 3, want: "3"},
		{name: "missing", input: math.NaN(), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatChange(tt.input))
		})
	}
}

func TestNumericColumns(t *testing.T) {
	raw := testutil.RawTable("t.csv", []string{"SYMBOL", "%CHNG", "PRICE", "EMPTY", "MIXED"},
		[]string{"AAA", "x", "1,234", "", "1"},
		[]string{"BBB", "1", "2", "", "b"},
	)
	table := filter.Normalize(raw, domain.DefaultColumns())

	got := numericColumns(table)

	assert.False(t, got["SYMBOL"])
	assert.True(t, got["%CHNG"])
	assert.False(t, got["PRICE"], "thousands separators keep a column textual")
	assert.False(t, got["EMPTY"])
	assert.False(t, got["MIXED"])
}
