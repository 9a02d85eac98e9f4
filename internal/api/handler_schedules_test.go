package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parking-lot-backend/internal/model"
	"parking-lot-backend/internal/store"
)

type scheduleStubStore struct {
	store.Store
	schedules []model.Schedule
}

func (s *scheduleStubStore) ListSchedules(ctx context.Context, userID int64) ([]model.Schedule, error) {
	return s.schedules, nil
}

func setupAgendaRouter(s store.Store, now time.Time) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(s, nil, "UTC")
	handler.now = func() time.Time { return now }
	r.GET("/api/agenda", handler.GetAgenda)
	return r
}

func TestGetAgenda(t *testing.T) {
	now := time.Date(2025, 12, 8, 9, 0, 0, 0, time.UTC)
	s := &scheduleStubStore{
		schedules: []model.Schedule{
			{
				ID: 1, Date: "2025-12-09", StartTime: "2:00 p.m.", EndTime: "4:00 PM",
				UserID: 7, ParkingLot: "North", RecurringDays: "[]",
			},
			{
				ID: 2, Date: "2025-12-08", StartTime: "8:00 a.m.", EndTime: "5:00 p.m.",
				UserID: 7, ParkingLot: "North", IsRecurring: true,
				RecurringDays: `["2025-12-09"]`,
			},
			{
				ID: 3, Date: "2025-12-08", StartTime: "broken", EndTime: "5:00 PM",
				UserID: 7, ParkingLot: "North", RecurringDays: "[]",
			},
		},
	}
	router := setupAgendaRouter(s, now)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/agenda?user_id=7", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp agendaResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// Schedule 3's day is skipped, not erased silently.
	require.Len(t, resp.Skipped, 1)
	assert.Equal(t, int64(3), resp.Skipped[0].ScheduleID)

	// Two day sections, oldest first by default; the recurring schedule
	// contributes an occurrence to both days.
	require.Len(t, resp.Sections, 2)
	assert.Equal(t, "2025-12-08", resp.Sections[0].DayKey)
	assert.Equal(t, "Today", resp.Sections[0].Label)
	assert.Equal(t, "2025-12-09", resp.Sections[1].DayKey)
	assert.Equal(t, "Tomorrow", resp.Sections[1].Label)

	require.Len(t, resp.Sections[0].Occurrences, 1)
	require.Len(t, resp.Sections[1].Occurrences, 2)

	// Within tomorrow, the 8 AM occurrence precedes the 2 PM one.
	tomorrow := resp.Sections[1].Occurrences
	assert.Equal(t, int64(2), tomorrow[0].ScheduleID)
	assert.Equal(t, int64(1), tomorrow[1].ScheduleID)
	assert.Equal(t, "8:00 AM–5:00 PM", tomorrow[0].TimeRange)
	assert.Equal(t, "2:00 PM–4:00 PM", tomorrow[1].TimeRange)
}

func TestGetAgendaNewestFirst(t *testing.T) {
	now := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	s := &scheduleStubStore{
		schedules: []model.Schedule{
			{ID: 1, Date: "2025-12-08", StartTime: "8:00 AM", EndTime: "9:00 AM", RecurringDays: "[]"},
			{ID: 2, Date: "2025-12-09", StartTime: "8:00 AM", EndTime: "9:00 AM", RecurringDays: "[]"},
		},
	}
	router := setupAgendaRouter(s, now)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/agenda?order=desc", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp agendaResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Sections, 2)
	assert.Equal(t, "2025-12-09", resp.Sections[0].DayKey)
	assert.Equal(t, "2025-12-08", resp.Sections[1].DayKey)
}

func TestGetAgendaBadParams(t *testing.T) {
	router := setupAgendaRouter(&scheduleStubStore{}, time.Now())

	for _, url := range []string{"/api/agenda?order=sideways", "/api/agenda?user_id=abc"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", url, nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, url)
	}
}
