package layout

import (
	"fmt"
	"math"
)

// safetyRows is added to every sheet. The rendering engine sometimes
// clips the last physical row without it. Magic constant carried over
// from the original print layout, not re-derived.
const safetyRows = 1

const (
	DefaultColumns    = 10
	DefaultCardWidth  = 2.5
	DefaultCardHeight = 3.5
)

// ConfigurationError reports a layout setting that cannot produce a sheet
type ConfigurationError struct {
	Field string
	Value any
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s: %v (must be positive)", e.Field, e.Value)
}

// Geometry is the page geometry of one card sheet. Units are whatever the
// template's CSS uses.
type Geometry struct {
	Columns    int
	Rows       int
	CardWidth  float64
	CardHeight float64
	PageWidth  float64
	PageHeight float64
}

// Validate rejects non-positive and infinite layout settings
func Validate(columns int, cardWidth, cardHeight float64) error {
	if columns <= 0 {
		return &ConfigurationError{Field: "columns", Value: columns}
	}
	if !(cardWidth > 0) || math.IsInf(cardWidth, 0) {
		return &ConfigurationError{Field: "card width", Value: cardWidth}
	}
	if !(cardHeight > 0) || math.IsInf(cardHeight, 0) {
		return &ConfigurationError{Field: "card height", Value: cardHeight}
	}
	return nil
}

// Compute derives the geometry of a sheet holding n cards
func Compute(n, columns int, cardWidth, cardHeight float64) (Geometry, error) {
	if err := Validate(columns, cardWidth, cardHeight); err != nil {
		return Geometry{}, err
	}
	if n < 0 {
		return Geometry{}, fmt.Errorf("card count must not be negative, got %d", n)
	}

	rows := (n+columns-1)/columns + safetyRows
	return Geometry{
		Columns:    columns,
		Rows:       rows,
		CardWidth:  cardWidth,
		CardHeight: cardHeight,
		PageWidth:  float64(columns) * cardWidth,
		PageHeight: float64(rows) * cardHeight,
	}, nil
}
