package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"parking-lot-backend/internal/issue"
	"parking-lot-backend/internal/store"
)

type submitIssueRequest struct {
	UserID  int64  `json:"user_id" binding:"required"`
	LotID   *int64 `json:"lot_id"`
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

// SubmitIssueReport handles POST /api/issues. The report is queued to
// the intake pool and the reference is returned immediately; the write
// happens off the request path.
func (h *Handler) SubmitIssueReport(c *gin.Context) {
	var req submitIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reference := h.pool.Dispatch(issue.Report{
		UserID:  req.UserID,
		LotID:   req.LotID,
		Subject: req.Subject,
		Body:    req.Body,
	})
	c.JSON(http.StatusAccepted, gin.H{"reference": reference})
}

// ListIssueReports handles GET /api/issues.
func (h *Handler) ListIssueReports(c *gin.Context) {
	reports, err := h.store.ListIssueReports(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue reports"})
		return
	}
	c.JSON(http.StatusOK, reports)
}

// ResolveIssueReport handles POST /api/issues/{issue_id}/resolve.
func (h *Handler) ResolveIssueReport(c *gin.Context) {
	id, ok := pathID(c, "issue_id")
	if !ok {
		return
	}
	err := h.store.ResolveIssueReport(c.Request.Context(), id, h.now())
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue report not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.Status(http.StatusNoContent)
}
