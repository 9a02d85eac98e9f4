package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeightAdditivity(t *testing.T) {
	testCases := []struct {
		name     string
		rows     int
		merged   []int
		expected float64
	}{
		{name: "Empty lot", rows: 0, expected: 0},
		{name: "Single row has no aisle", rows: 1, expected: 5.0},
		{name: "Two rows", rows: 2, expected: 2*5.0 + 6.0},
		{name: "Two rows merged", rows: 2, merged: []int{0}, expected: 2*5.0 + 0.1},
		{name: "Four rows, middle aisle merged", rows: 4, merged: []int{1}, expected: 4*5.0 + 2*6.0 + 0.1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewConfig(tc.rows, 3)
			for _, idx := range tc.merged {
				cfg.MergedAfterRows[idx] = true
			}
			assert.InDelta(t, tc.expected, Height(cfg), 1e-9)

			// Height is exactly the per-row sum.
			var sum float64
			for r := 0; r < tc.rows; r++ {
				sum += SpaceDepth
				if r < tc.rows-1 {
					sum += AisleWidthAfter(cfg, r)
				}
			}
			assert.InDelta(t, sum, Height(cfg), 1e-9)
		})
	}
}

func TestMergeMonotonicity(t *testing.T) {
	cfg := NewConfig(3, 4)
	before := Height(cfg)

	merged, err := MergeRows(cfg, "1", "2")
	require.NoError(t, err)
	assert.InDelta(t, before-(NormalAisleWidth-MergedAisleWidth), Height(merged), 1e-9)

	// The input config must be untouched.
	assert.InDelta(t, before, Height(cfg), 1e-9)

	// Reset restores the original height.
	assert.InDelta(t, before, Height(ResetMerges(merged)), 1e-9)
}

func TestMergeRowsRejection(t *testing.T) {
	cfg := NewConfig(4, 2)

	testCases := []struct {
		name        string
		rowA, rowB  string
		expectedErr error
	}{
		{name: "Not adjacent", rowA: "1", rowB: "3", expectedErr: ErrNonAdjacent},
		{name: "Same row", rowA: "2", rowB: "2", expectedErr: ErrNonAdjacent},
		{name: "Zero is out of range", rowA: "0", rowB: "1", expectedErr: ErrRowRange},
		{name: "Beyond last row", rowA: "4", rowB: "5", expectedErr: ErrRowRange},
		{name: "Non-numeric input", rowA: "two", rowB: "3", expectedErr: ErrInvalidInput},
		{name: "Empty input", rowA: "", rowB: "1", expectedErr: ErrInvalidInput},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := MergeRows(cfg, tc.rowA, tc.rowB)
			assert.ErrorIs(t, err, tc.expectedErr)
			assert.Empty(t, out.MergedAfterRows, "config must be unchanged on failure")
		})
	}
}

func TestMergeRowsOrderIndependent(t *testing.T) {
	cfg := NewConfig(3, 1)

	a, err := MergeRows(cfg, "2", "3")
	require.NoError(t, err)
	b, err := MergeRows(cfg, "3", "2")
	require.NoError(t, err)

	assert.Equal(t, a.MergedAfterRows, b.MergedAfterRows)
	assert.True(t, a.MergedAfterRows[1], "aisle after 0-based row 1 collapses")
}

func TestSpacesRowMajorIDs(t *testing.T) {
	cfg := NewConfig(4, 10)
	spaces := Spaces(cfg)
	require.Len(t, spaces, 40)

	// row=2, col=5 always gets id 26 regardless of merge state.
	find := func(spaces []SpaceCoordinate, row, col int) SpaceCoordinate {
		for _, s := range spaces {
			if s.Row == row && s.Col == col {
				return s
			}
		}
		t.Fatalf("space (%d,%d) not found", row, col)
		return SpaceCoordinate{}
	}
	assert.Equal(t, 26, find(spaces, 2, 5).ID)

	merged, err := MergeRows(cfg, "1", "2")
	require.NoError(t, err)
	assert.Equal(t, 26, find(Spaces(merged), 2, 5).ID)

	// IDs ascend in generation order starting at 1.
	for i, s := range spaces {
		assert.Equal(t, i+1, s.ID)
	}
}

func TestSpaceGeometry(t *testing.T) {
	cfg := NewConfig(3, 2)
	cfg.MergedAfterRows[0] = true
	spaces := Spaces(cfg)

	for _, s := range spaces {
		assert.InDelta(t, float64(s.Col)*SpaceWidth, s.X, 1e-9)
		assert.InDelta(t, SpaceWidth, s.Width, 1e-9)
		assert.InDelta(t, SpaceDepth, s.Height, 1e-9)
	}

	// Row 1 sits right below the merged aisle; row 2 below a normal one.
	assert.InDelta(t, SpaceDepth+MergedAisleWidth, RowY(cfg, 1), 1e-9)
	assert.InDelta(t, 2*SpaceDepth+MergedAisleWidth+NormalAisleWidth, RowY(cfg, 2), 1e-9)
	assert.InDelta(t, 0, RowY(cfg, 0), 1e-9)
}

func TestEndToEndExample(t *testing.T) {
	cfg := NewConfig(2, 3)
	assert.InDelta(t, 16.0, Height(cfg), 1e-9)
	assert.InDelta(t, 7.5, Width(cfg), 1e-9)

	merged, err := MergeRows(cfg, "1", "2")
	require.NoError(t, err)
	assert.True(t, merged.MergedAfterRows[0])
	assert.InDelta(t, 10.1, Height(merged), 1e-9)
}

func TestZeroSizedLot(t *testing.T) {
	cfg := NewConfig(0, 0)
	assert.Empty(t, Spaces(cfg))
	assert.InDelta(t, 0, Height(cfg), 1e-9)
	assert.InDelta(t, 0, Width(cfg), 1e-9)

	// Zero columns with rows still yields no spaces but a real height.
	tall := NewConfig(2, 0)
	assert.Empty(t, Spaces(tall))
	assert.InDelta(t, 16.0, Height(tall), 1e-9)
}
