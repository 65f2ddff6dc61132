package layout

import (
	"errors"
	"math"
	"testing"
)

func TestCompute_Rows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n, columns int
		want       int
	}{
		{0, 10, 1},
		{1, 10, 2},
		{10, 10, 2},
		{11, 10, 3},
		{7, 1, 8},
		{99, 7, 16},
	}

	for _, tt := range tests {
		g, err := Compute(tt.n, tt.columns, DefaultCardWidth, DefaultCardHeight)
		if err != nil {
			t.Fatalf("Compute(%d, %d) error = %v", tt.n, tt.columns, err)
		}
		want := int(math.Ceil(float64(tt.n)/float64(tt.columns))) + 1
		if g.Rows != tt.want || g.Rows != want {
			t.Errorf("Compute(%d, %d).Rows = %d, want %d", tt.n, tt.columns, g.Rows, tt.want)
		}
	}
}

func TestCompute_Dimensions(t *testing.T) {
	t.Parallel()

	g, err := Compute(3, 10, 2.5, 3.5)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if g.PageWidth != 25 || g.PageHeight != 7 {
		t.Errorf("page = %vx%v, want 25x7", g.PageWidth, g.PageHeight)
	}
	if g.Columns != 10 || g.CardWidth != 2.5 || g.CardHeight != 3.5 {
		t.Errorf("Geometry = %+v", g)
	}
}

func TestCompute_ConfigurationError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		columns       int
		width, height float64
		field         string
	}{
		{"zero columns", 0, 2.5, 3.5, "columns"},
		{"negative columns", -3, 2.5, 3.5, "columns"},
		{"zero width", 10, 0, 3.5, "card width"},
		{"negative height", 10, 2.5, -1, "card height"},
		{"NaN width", 10, math.NaN(), 3.5, "card width"},
		{"infinite width", 10, math.Inf(1), 3.5, "card width"},
		{"infinite height", 10, 2.5, math.Inf(1), "card height"},
		{"negative infinite height", 10, 2.5, math.Inf(-1), "card height"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Compute(5, tt.columns, tt.width, tt.height)
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("error = %v, want *ConfigurationError", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tt.field)
			}
		})
	}
}
