package store

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"parking-lot-backend/internal/db"
	"parking-lot-backend/internal/model"
)

func newSQLiteStore(t *testing.T) (Store, *gorm.DB) {
	t.Helper()

	// A named shared-cache DSN keeps every pooled connection on the same
	// in-memory database, one database per test.
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(testDB))
	return NewGormStore(testDB), testDB
}

func spaceAt(t *testing.T, lot *model.ParkingLot, row, col int) model.Space {
	t.Helper()
	for _, sp := range lot.Spaces {
		if sp.Row == row && sp.Col == col {
			return sp
		}
	}
	t.Fatalf("no space at (%d,%d)", row, col)
	return model.Space{}
}

func TestResizeLotMigratesMetadata(t *testing.T) {
	s, testDB := newSQLiteStore(t)
	ctx := context.Background()

	lot, err := s.CreateLot(ctx, "East Lot", 3, 3)
	require.NoError(t, err)
	require.Len(t, lot.Spaces, 9)

	// Assign a space in the middle of the grid and merge the first two
	// rows so both kinds of state are present before the resize.
	userID := int64(7)
	require.NoError(t, testDB.Model(&model.Space{}).
		Where("lot_id = ? AND row = ? AND col = ?", lot.ID, 1, 1).
		Updates(map[string]any{"type": "compact", "status": "reserved", "user_id": userID}).Error)

	lot, err = s.MergeLotRows(ctx, lot.ID, "1", "2")
	require.NoError(t, err)
	require.Equal(t, "[0]", lot.MergedAisles)

	// Shrinking to 2x2 drops the positions outside the new grid, keeps
	// metadata at surviving positions, and clears the merge state since
	// its indices refer to the old grid.
	lot, err = s.ResizeLot(ctx, lot.ID, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, lot.Rows)
	assert.Equal(t, 2, lot.Cols)
	assert.Equal(t, "[]", lot.MergedAisles)
	require.Len(t, lot.Spaces, 4)

	kept := spaceAt(t, lot, 1, 1)
	assert.Equal(t, "compact", kept.Type)
	assert.Equal(t, "reserved", kept.Status)
	require.NotNil(t, kept.UserID)
	assert.Equal(t, userID, *kept.UserID)
	// Display IDs are positional and regenerated: (1,1) in a 2x2 grid is
	// the fourth space.
	assert.Equal(t, 4, kept.DisplayID)

	fresh := spaceAt(t, lot, 0, 0)
	assert.Equal(t, "standard", fresh.Type)
	assert.Equal(t, "free", fresh.Status)
	assert.Nil(t, fresh.UserID)

	// Growing again renumbers once more while the assignment stays put.
	lot, err = s.ResizeLot(ctx, lot.ID, 2, 4)
	require.NoError(t, err)
	require.Len(t, lot.Spaces, 8)
	kept = spaceAt(t, lot, 1, 1)
	assert.Equal(t, "reserved", kept.Status)
	assert.Equal(t, 6, kept.DisplayID)
}

func TestResizeLotNotFound(t *testing.T) {
	s, _ := newSQLiteStore(t)

	_, err := s.ResizeLot(context.Background(), 99, 2, 2)
	assert.ErrorIs(t, err, ErrNotFound)
}
