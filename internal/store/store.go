package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"parking-lot-backend/internal/layout"
	"parking-lot-backend/internal/model"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for all database operations.
type Store interface {
	CreateLot(ctx context.Context, name string, rows, cols int) (*model.ParkingLot, error)
	GetLot(ctx context.Context, id int64) (*model.ParkingLot, error)
	ListLots(ctx context.Context) ([]model.ParkingLot, error)
	ResizeLot(ctx context.Context, id int64, rows, cols int) (*model.ParkingLot, error)
	MergeLotRows(ctx context.Context, id int64, rowA, rowB string) (*model.ParkingLot, error)
	ResetLotMerges(ctx context.Context, id int64) (*model.ParkingLot, error)
	DeleteLot(ctx context.Context, id int64) error

	CreateUser(ctx context.Context, u *model.User) error
	GetUser(ctx context.Context, id int64) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	DeleteUser(ctx context.Context, id int64) error

	CreateVehicle(ctx context.Context, v *model.Vehicle) error
	ListVehicles(ctx context.Context, userID int64) ([]model.Vehicle, error)
	DeleteVehicle(ctx context.Context, id int64) error

	CreateSchedule(ctx context.Context, s *model.Schedule) error
	ListSchedules(ctx context.Context, userID int64) ([]model.Schedule, error)
	DeleteSchedule(ctx context.Context, id int64) error

	CreateIssueReport(ctx context.Context, r *model.IssueReport) error
	ListIssueReports(ctx context.Context) ([]model.IssueReport, error)
	ResolveIssueReport(ctx context.Context, id int64, at time.Time) error

	PruneSchedulesBefore(ctx context.Context, dayKey string) (int64, error)
	PruneResolvedIssuesBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// LotConfig decodes a lot record into a layout config. Merged-aisle
// data that fails to decode is treated as no merges.
func LotConfig(lot *model.ParkingLot) layout.Config {
	cfg := layout.NewConfig(lot.Rows, lot.Cols)
	for _, idx := range decodeIntList(lot.MergedAisles) {
		if idx >= 0 && idx <= lot.Rows-2 {
			cfg.MergedAfterRows[idx] = true
		}
	}
	return cfg
}

// CreateLot creates a lot and generates its space grid transactionally.
func (s *gormStore) CreateLot(ctx context.Context, name string, rows, cols int) (*model.ParkingLot, error) {
	lot := &model.ParkingLot{
		Name:         name,
		Rows:         rows,
		Cols:         cols,
		MergedAisles: "[]",
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(lot).Error; err != nil {
			return fmt.Errorf("failed to create lot: %w", err)
		}
		return createSpaces(tx, lot.ID, layout.Spaces(LotConfig(lot)))
	})
	if err != nil {
		return nil, err
	}
	return s.GetLot(ctx, lot.ID)
}

// GetLot loads a lot with its spaces.
func (s *gormStore) GetLot(ctx context.Context, id int64) (*model.ParkingLot, error) {
	var lot model.ParkingLot
	err := s.db.WithContext(ctx).
		Preload("Spaces", func(db *gorm.DB) *gorm.DB { return db.Order("display_id") }).
		First(&lot, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load lot %d: %w", id, err)
	}
	return &lot, nil
}

// ListLots returns all lots without their space associations.
func (s *gormStore) ListLots(ctx context.Context) ([]model.ParkingLot, error) {
	var lots []model.ParkingLot
	if err := s.db.WithContext(ctx).Order("id").Find(&lots).Error; err != nil {
		return nil, fmt.Errorf("failed to list lots: %w", err)
	}
	return lots, nil
}

// ResizeLot changes a lot's grid dimensions and regenerates its spaces.
// Space assignment metadata is positional, so it is migrated by
// (row, col) matching: positions that still exist keep their type,
// status, and occupant; positions outside the new grid are dropped.
// Merge state is cleared because merged indices refer to the old grid.
func (s *gormStore) ResizeLot(ctx context.Context, id int64, rows, cols int) (*model.ParkingLot, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lot model.ParkingLot
		if err := tx.First(&lot, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var existing []model.Space
		if err := tx.Where("lot_id = ?", id).Find(&existing).Error; err != nil {
			return fmt.Errorf("failed to load spaces for lot %d: %w", id, err)
		}
		type pos struct{ row, col int }
		keep := make(map[pos]model.Space, len(existing))
		for _, sp := range existing {
			keep[pos{sp.Row, sp.Col}] = sp
		}

		if err := tx.Where("lot_id = ?", id).Delete(&model.Space{}).Error; err != nil {
			return fmt.Errorf("failed to clear spaces for lot %d: %w", id, err)
		}

		lot.Rows = rows
		lot.Cols = cols
		lot.MergedAisles = "[]"
		if err := tx.Save(&lot).Error; err != nil {
			return fmt.Errorf("failed to update lot %d: %w", id, err)
		}

		coords := layout.Spaces(layout.NewConfig(rows, cols))
		spaces := make([]model.Space, len(coords))
		for i, c := range coords {
			sp := model.Space{LotID: id, Row: c.Row, Col: c.Col, DisplayID: c.ID}
			if old, ok := keep[pos{c.Row, c.Col}]; ok {
				sp.Type = old.Type
				sp.Status = old.Status
				sp.UserID = old.UserID
			}
			spaces[i] = sp
		}
		if len(spaces) == 0 {
			return nil
		}
		return tx.Create(&spaces).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetLot(ctx, id)
}

// MergeLotRows applies a user-requested merge of two adjacent rows.
// Layout engine errors pass through unchanged so handlers can map them
// to descriptive responses; on any failure the stored config is
// untouched.
func (s *gormStore) MergeLotRows(ctx context.Context, id int64, rowA, rowB string) (*model.ParkingLot, error) {
	var lot model.ParkingLot
	if err := s.db.WithContext(ctx).First(&lot, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load lot %d: %w", id, err)
	}

	merged, err := layout.MergeRows(LotConfig(&lot), rowA, rowB)
	if err != nil {
		return nil, err
	}

	if err := s.saveMergeState(ctx, &lot, merged); err != nil {
		return nil, err
	}
	return s.GetLot(ctx, id)
}

// ResetLotMerges clears every merged aisle on the lot.
func (s *gormStore) ResetLotMerges(ctx context.Context, id int64) (*model.ParkingLot, error) {
	var lot model.ParkingLot
	if err := s.db.WithContext(ctx).First(&lot, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load lot %d: %w", id, err)
	}

	if err := s.saveMergeState(ctx, &lot, layout.ResetMerges(LotConfig(&lot))); err != nil {
		return nil, err
	}
	return s.GetLot(ctx, id)
}

// DeleteLot removes a lot and its spaces.
func (s *gormStore) DeleteLot(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lot_id = ?", id).Delete(&model.Space{}).Error; err != nil {
			return fmt.Errorf("failed to delete spaces for lot %d: %w", id, err)
		}
		res := tx.Delete(&model.ParkingLot{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete lot %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *gormStore) saveMergeState(ctx context.Context, lot *model.ParkingLot, cfg layout.Config) error {
	indices := make([]int, 0, len(cfg.MergedAfterRows))
	for idx := range cfg.MergedAfterRows {
		indices = append(indices, idx)
	}
	// Stable column contents regardless of map order.
	sort.Ints(indices)

	err := s.db.WithContext(ctx).Model(lot).
		Update("merged_aisles", encodeJSON(indices)).Error
	if err != nil {
		return fmt.Errorf("failed to save merge state for lot %d: %w", lot.ID, err)
	}
	return nil
}

func createSpaces(tx *gorm.DB, lotID int64, coords []layout.SpaceCoordinate) error {
	if len(coords) == 0 {
		return nil
	}
	spaces := make([]model.Space, len(coords))
	for i, c := range coords {
		spaces[i] = model.Space{LotID: lotID, Row: c.Row, Col: c.Col, DisplayID: c.ID}
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "lot_id"}, {Name: "row"}, {Name: "col"}},
		DoUpdates: clause.AssignmentColumns([]string{"display_id", "updated_at"}),
	}).Create(&spaces).Error; err != nil {
		return fmt.Errorf("failed to create spaces for lot %d: %w", lotID, err)
	}
	return nil
}
