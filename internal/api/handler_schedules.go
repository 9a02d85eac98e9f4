package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"parking-lot-backend/internal/agenda"
	"parking-lot-backend/internal/model"
	"parking-lot-backend/internal/store"
)

type createScheduleRequest struct {
	Date          string   `json:"date" binding:"required"`
	StartTime     string   `json:"start_time" binding:"required"`
	EndTime       string   `json:"end_time" binding:"required"`
	UserID        int64    `json:"user_id" binding:"required"`
	ParkingLot    string   `json:"parking_lot" binding:"required"`
	Row           int      `json:"row"`
	Col           int      `json:"col"`
	RecurringDays []string `json:"recurring_days"`
}

type scheduleResponse struct {
	ID            int64    `json:"id"`
	Date          string   `json:"date"`
	StartTime     string   `json:"start_time"`
	EndTime       string   `json:"end_time"`
	UserID        int64    `json:"user_id"`
	ParkingLot    string   `json:"parking_lot"`
	Row           int      `json:"row"`
	Col           int      `json:"col"`
	IsRecurring   bool     `json:"is_recurring"`
	RecurringDays []string `json:"recurring_days"`
}

func toScheduleResponse(s model.Schedule) scheduleResponse {
	raw := store.ToAgendaSchedule(s)
	return scheduleResponse{
		ID:            s.ID,
		Date:          s.Date,
		StartTime:     s.StartTime,
		EndTime:       s.EndTime,
		UserID:        s.UserID,
		ParkingLot:    s.ParkingLot,
		Row:           s.Row,
		Col:           s.Col,
		IsRecurring:   s.IsRecurring,
		RecurringDays: raw.RecurringDays,
	}
}

// CreateSchedule handles POST /api/schedules. Time strings are stored
// exactly as entered; normalization happens on read in the agenda
// package.
func (h *Handler) CreateSchedule(c *gin.Context) {
	var req createScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sched := model.Schedule{
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		UserID:        req.UserID,
		ParkingLot:    req.ParkingLot,
		Row:           req.Row,
		Col:           req.Col,
		IsRecurring:   len(req.RecurringDays) > 0,
		RecurringDays: "[]",
	}
	if len(req.RecurringDays) > 0 {
		sched.RecurringDays = store.EncodeStringList(req.RecurringDays)
	}

	if err := h.store.CreateSchedule(c.Request.Context(), &sched); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create schedule"})
		return
	}
	c.JSON(http.StatusCreated, toScheduleResponse(sched))
}

// ListSchedules handles GET /api/schedules?user_id=.
func (h *Handler) ListSchedules(c *gin.Context) {
	userID, ok := queryUserID(c)
	if !ok {
		return
	}
	schedules, err := h.store.ListSchedules(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve schedules"})
		return
	}
	responses := make([]scheduleResponse, 0, len(schedules))
	for _, s := range schedules {
		responses = append(responses, toScheduleResponse(s))
	}
	c.JSON(http.StatusOK, responses)
}

// DeleteSchedule handles DELETE /api/schedules/{schedule_id}.
func (h *Handler) DeleteSchedule(c *gin.Context) {
	id, ok := pathID(c, "schedule_id")
	if !ok {
		return
	}
	err := h.store.DeleteSchedule(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.Status(http.StatusNoContent)
}

type daySectionResponse struct {
	DayKey      string               `json:"day_key"`
	Label       string               `json:"label"`
	Occurrences []occurrenceResponse `json:"occurrences"`
}

type occurrenceResponse struct {
	agenda.Occurrence
	TimeRange string `json:"time_range"`
}

type agendaResponse struct {
	Sections []daySectionResponse `json:"sections"`
	Skipped  []agenda.Skipped     `json:"skipped,omitempty"`
}

// GetAgenda handles GET /api/agenda?user_id=&order=. Schedules are
// expanded to occurrences and grouped by day; entries whose time
// strings failed to parse are reported in the skipped list rather than
// silently vanishing.
func (h *Handler) GetAgenda(c *gin.Context) {
	userID, ok := queryUserID(c)
	if !ok {
		return
	}

	order := agenda.OldestFirst
	switch c.DefaultQuery("order", "asc") {
	case "asc":
	case "desc":
		order = agenda.NewestFirst
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "order must be 'asc' or 'desc'"})
		return
	}

	schedules, err := h.store.ListSchedules(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve schedules"})
		return
	}

	raw := make([]agenda.Schedule, 0, len(schedules))
	for _, s := range schedules {
		raw = append(raw, store.ToAgendaSchedule(s))
	}
	occs, skipped := agenda.ExpandAll(raw, h.loc)
	sections := agenda.GroupByDay(occs, order, h.now().In(h.loc))

	resp := agendaResponse{Sections: make([]daySectionResponse, 0, len(sections)), Skipped: skipped}
	for _, section := range sections {
		out := daySectionResponse{
			DayKey:      section.DayKey,
			Label:       section.Label,
			Occurrences: make([]occurrenceResponse, 0, len(section.Occurrences)),
		}
		for _, occ := range section.Occurrences {
			out.Occurrences = append(out.Occurrences, occurrenceResponse{
				Occurrence: occ,
				TimeRange:  agenda.FormatTimeRange(occ.Start, occ.End),
			})
		}
		resp.Sections = append(resp.Sections, out)
	}
	c.JSON(http.StatusOK, resp)
}

// queryUserID parses the optional user_id query parameter; zero means
// all users.
func queryUserID(c *gin.Context) (int64, bool) {
	raw := c.Query("user_id")
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid user_id"})
		return 0, false
	}
	return id, true
}
