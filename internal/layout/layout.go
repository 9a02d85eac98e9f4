// Package layout computes the geometry of a parking lot grid: per-space
// rectangles and the overall lot extent, with aisle widths that depend on
// which adjacent row pairs have been merged.
package layout

import (
	"errors"
	"strconv"
	"strings"
)

// Physical dimensions in meters.
const (
	SpaceWidth       = 2.5
	SpaceDepth       = 5.0
	NormalAisleWidth = 6.0
	MergedAisleWidth = 0.1
)

// Errors returned by MergeRows for contract violations.
var (
	ErrInvalidInput = errors.New("row numbers must be valid integers")
	ErrRowRange     = errors.New("row numbers are out of range for this lot")
	ErrNonAdjacent  = errors.New("only adjacent rows can be merged")
)

// Config describes a lot grid. MergedAfterRows holds 0-based row indices
// after which the aisle is collapsed; every index lies in [0, Rows-2].
type Config struct {
	Rows            int
	Cols            int
	MergedAfterRows map[int]bool
}

// NewConfig creates a grid config with no merged aisles.
func NewConfig(rows, cols int) Config {
	return Config{Rows: rows, Cols: cols, MergedAfterRows: map[int]bool{}}
}

// SpaceCoordinate is the computed rectangle for one parking space.
// IDs are assigned in row-major order starting at 1 and are positionally
// deterministic: the same (row, col) always yields the same ID for a
// given column count.
type SpaceCoordinate struct {
	ID     int     `json:"id"`
	Row    int     `json:"row"`
	Col    int     `json:"col"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Extent is the total footprint of the lot.
type Extent struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// AisleWidthAfter returns the width of the aisle below the given 0-based
// row. Only rows strictly before the last have an aisle; callers must not
// query the last row.
func AisleWidthAfter(cfg Config, row int) float64 {
	if cfg.MergedAfterRows[row] {
		return MergedAisleWidth
	}
	return NormalAisleWidth
}

// Height returns the total depth of the lot: one space depth per row plus
// the aisle after every row except the last. Zero rows yield zero.
func Height(cfg Config) float64 {
	var h float64
	for r := 0; r < cfg.Rows; r++ {
		h += SpaceDepth
		if r < cfg.Rows-1 {
			h += AisleWidthAfter(cfg, r)
		}
	}
	return h
}

// RowY returns the Y offset of the given row's top edge.
func RowY(cfg Config, row int) float64 {
	var y float64
	for r := 0; r < row; r++ {
		y += SpaceDepth + AisleWidthAfter(cfg, r)
	}
	return y
}

// Width returns the total width of the lot.
func Width(cfg Config) float64 {
	return float64(cfg.Cols) * SpaceWidth
}

// Size returns the lot's total extent.
func Size(cfg Config) Extent {
	return Extent{Width: Width(cfg), Height: Height(cfg)}
}

// Spaces lays out every space in the grid. The layout is recomputed from
// scratch on every call; merge state shifts the Y position of all rows
// below a collapsed aisle, so incremental patching is never attempted.
func Spaces(cfg Config) []SpaceCoordinate {
	spaces := make([]SpaceCoordinate, 0, cfg.Rows*cfg.Cols)
	for row := 0; row < cfg.Rows; row++ {
		y := RowY(cfg, row)
		for col := 0; col < cfg.Cols; col++ {
			spaces = append(spaces, SpaceCoordinate{
				ID:     row*cfg.Cols + col + 1,
				Row:    row,
				Col:    col,
				X:      float64(col) * SpaceWidth,
				Y:      y,
				Width:  SpaceWidth,
				Height: SpaceDepth,
			})
		}
	}
	return spaces
}

// MergeRows collapses the aisle between two adjacent rows. Row numbers
// arrive as the user typed them, 1-based. The input config is not
// modified; on success a copy with the extra merged index is returned.
func MergeRows(cfg Config, rowAText, rowBText string) (Config, error) {
	rowA, errA := strconv.Atoi(strings.TrimSpace(rowAText))
	rowB, errB := strconv.Atoi(strings.TrimSpace(rowBText))
	if errA != nil || errB != nil {
		return cfg, ErrInvalidInput
	}
	if rowA < 1 || rowA > cfg.Rows || rowB < 1 || rowB > cfg.Rows {
		return cfg, ErrRowRange
	}
	if rowA == rowB || rowA-rowB != 1 && rowB-rowA != 1 {
		return cfg, ErrNonAdjacent
	}

	merged := make(map[int]bool, len(cfg.MergedAfterRows)+1)
	for k := range cfg.MergedAfterRows {
		merged[k] = true
	}
	upper := rowA
	if rowB < rowA {
		upper = rowB
	}
	merged[upper-1] = true // 0-based index of the row above the collapsed aisle

	out := cfg
	out.MergedAfterRows = merged
	return out, nil
}

// ResetMerges restores every aisle to its normal width.
func ResetMerges(cfg Config) Config {
	out := cfg
	out.MergedAfterRows = map[int]bool{}
	return out
}
