package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"parking-lot-backend/internal/agenda"
	"parking-lot-backend/internal/model"
)

func (s *gormStore) CreateUser(ctx context.Context, u *model.User) error {
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *gormStore) GetUser(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	err := s.db.WithContext(ctx).Preload("Vehicles").First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user %d: %w", id, err)
	}
	return &u, nil
}

func (s *gormStore) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *gormStore) DeleteUser(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&model.User{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) CreateVehicle(ctx context.Context, v *model.Vehicle) error {
	if err := s.db.WithContext(ctx).Create(v).Error; err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}
	return nil
}

// ListVehicles returns all vehicles, or only one user's when userID is
// non-zero.
func (s *gormStore) ListVehicles(ctx context.Context, userID int64) ([]model.Vehicle, error) {
	q := s.db.WithContext(ctx).Order("id")
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	var vehicles []model.Vehicle
	if err := q.Find(&vehicles).Error; err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	return vehicles, nil
}

func (s *gormStore) DeleteVehicle(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&model.Vehicle{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete vehicle %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) CreateSchedule(ctx context.Context, sched *model.Schedule) error {
	if sched.RecurringDays == "" {
		sched.RecurringDays = "[]"
	}
	if err := s.db.WithContext(ctx).Create(sched).Error; err != nil {
		return fmt.Errorf("failed to create schedule: %w", err)
	}
	return nil
}

// ListSchedules returns all schedules, or only one user's when userID is
// non-zero.
func (s *gormStore) ListSchedules(ctx context.Context, userID int64) ([]model.Schedule, error) {
	q := s.db.WithContext(ctx).Order("id")
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	var schedules []model.Schedule
	if err := q.Find(&schedules).Error; err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return schedules, nil
}

func (s *gormStore) DeleteSchedule(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&model.Schedule{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete schedule %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ToAgendaSchedule converts a stored record into the agenda package's
// raw form, decoding the recurrence-day column tolerantly.
func ToAgendaSchedule(s model.Schedule) agenda.Schedule {
	return agenda.Schedule{
		ID:            s.ID,
		Date:          s.Date,
		StartTime:     s.StartTime,
		EndTime:       s.EndTime,
		UserID:        s.UserID,
		ParkingLot:    s.ParkingLot,
		Row:           s.Row,
		Col:           s.Col,
		RecurringDays: decodeStringList(s.RecurringDays),
	}
}

func (s *gormStore) CreateIssueReport(ctx context.Context, r *model.IssueReport) error {
	if r.Status == "" {
		r.Status = model.IssueStatusOpen
	}
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return fmt.Errorf("failed to create issue report: %w", err)
	}
	return nil
}

func (s *gormStore) ListIssueReports(ctx context.Context) ([]model.IssueReport, error) {
	var reports []model.IssueReport
	if err := s.db.WithContext(ctx).Order("id desc").Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to list issue reports: %w", err)
	}
	return reports, nil
}

func (s *gormStore) ResolveIssueReport(ctx context.Context, id int64, at time.Time) error {
	res := s.db.WithContext(ctx).Model(&model.IssueReport{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": model.IssueStatusResolved, "resolved_at": at})
	if res.Error != nil {
		return fmt.Errorf("failed to resolve issue report %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// PruneSchedulesBefore deletes non-recurring schedules whose day is
// strictly before the cutoff day key. Recurring schedules are kept; the
// base date alone does not bound their last occurrence.
func (s *gormStore) PruneSchedulesBefore(ctx context.Context, dayKey string) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("is_recurring = ? AND date < ?", false, dayKey).
		Delete(&model.Schedule{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to prune schedules: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// PruneResolvedIssuesBefore deletes issue reports resolved before the
// cutoff instant.
func (s *gormStore) PruneResolvedIssuesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("status = ? AND resolved_at < ?", model.IssueStatusResolved, cutoff).
		Delete(&model.IssueReport{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to prune issue reports: %w", res.Error)
	}
	return res.RowsAffected, nil
}
