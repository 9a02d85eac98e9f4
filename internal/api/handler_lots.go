package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"parking-lot-backend/internal/layout"
	"parking-lot-backend/internal/model"
	"parking-lot-backend/internal/store"
)

type createLotRequest struct {
	Name string `json:"name" binding:"required"`
	Rows int    `json:"rows" binding:"min=0"`
	Cols int    `json:"cols" binding:"min=0"`
}

type resizeLotRequest struct {
	Rows int `json:"rows" binding:"min=0"`
	Cols int `json:"cols" binding:"min=0"`
}

type mergeRowsRequest struct {
	RowA string `json:"row_a" binding:"required"`
	RowB string `json:"row_b" binding:"required"`
}

// lotResponse is the API shape of a lot record. MergedAisles is decoded
// from its storage form into a native array before leaving the server.
type lotResponse struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`
	Rows         int           `json:"rows"`
	Cols         int           `json:"cols"`
	MergedAisles []int         `json:"merged_aisles"`
	Spaces       []model.Space `json:"spaces,omitempty"`
}

func toLotResponse(lot *model.ParkingLot) lotResponse {
	cfg := store.LotConfig(lot)
	merged := make([]int, 0, len(cfg.MergedAfterRows))
	for r := 0; r < lot.Rows; r++ {
		if cfg.MergedAfterRows[r] {
			merged = append(merged, r)
		}
	}
	return lotResponse{
		ID:           lot.ID,
		Name:         lot.Name,
		Rows:         lot.Rows,
		Cols:         lot.Cols,
		MergedAisles: merged,
		Spaces:       lot.Spaces,
	}
}

// spaceGeometry pairs a computed rectangle with the per-space metadata
// stored at that position.
type spaceGeometry struct {
	layout.SpaceCoordinate
	Type     string `json:"type"`
	Status   string `json:"status"`
	UserID   *int64 `json:"user_id,omitempty"`
	Occupied int    `json:"occupied"`
}

type lotLayoutResponse struct {
	LotID  int64           `json:"lot_id"`
	Extent layout.Extent   `json:"extent"`
	Spaces []spaceGeometry `json:"spaces"`
}

// CreateLot handles POST /api/lots.
func (h *Handler) CreateLot(c *gin.Context) {
	var req createLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lot, err := h.store.CreateLot(c.Request.Context(), req.Name, req.Rows, req.Cols)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create lot"})
		return
	}
	c.JSON(http.StatusCreated, toLotResponse(lot))
}

// ListLots handles GET /api/lots.
func (h *Handler) ListLots(c *gin.Context) {
	lots, err := h.store.ListLots(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve lots"})
		return
	}
	responses := make([]lotResponse, 0, len(lots))
	for i := range lots {
		responses = append(responses, toLotResponse(&lots[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// GetLot handles GET /api/lots/{lot_id}.
func (h *Handler) GetLot(c *gin.Context) {
	id, ok := pathID(c, "lot_id")
	if !ok {
		return
	}
	lot, err := h.store.GetLot(c.Request.Context(), id)
	if err != nil {
		lotError(c, err)
		return
	}
	c.JSON(http.StatusOK, toLotResponse(lot))
}

// DeleteLot handles DELETE /api/lots/{lot_id}.
func (h *Handler) DeleteLot(c *gin.Context) {
	id, ok := pathID(c, "lot_id")
	if !ok {
		return
	}
	if err := h.store.DeleteLot(c.Request.Context(), id); err != nil {
		lotError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ResizeLot handles PUT /api/lots/{lot_id}/grid.
func (h *Handler) ResizeLot(c *gin.Context) {
	id, ok := pathID(c, "lot_id")
	if !ok {
		return
	}
	var req resizeLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	lot, err := h.store.ResizeLot(c.Request.Context(), id, req.Rows, req.Cols)
	if err != nil {
		lotError(c, err)
		return
	}
	c.JSON(http.StatusOK, toLotResponse(lot))
}

// GetLotLayout handles GET /api/lots/{lot_id}/layout. Geometry is
// recomputed from the stored config on every request; occupancy
// tracking is out of scope, so occupied is always reported as 0.
func (h *Handler) GetLotLayout(c *gin.Context) {
	id, ok := pathID(c, "lot_id")
	if !ok {
		return
	}
	lot, err := h.store.GetLot(c.Request.Context(), id)
	if err != nil {
		lotError(c, err)
		return
	}

	cfg := store.LotConfig(lot)
	coords := layout.Spaces(cfg)

	type pos struct{ row, col int }
	meta := make(map[pos]model.Space, len(lot.Spaces))
	for _, sp := range lot.Spaces {
		meta[pos{sp.Row, sp.Col}] = sp
	}

	spaces := make([]spaceGeometry, 0, len(coords))
	for _, coord := range coords {
		g := spaceGeometry{SpaceCoordinate: coord, Type: "standard", Status: "free"}
		if sp, ok := meta[pos{coord.Row, coord.Col}]; ok {
			g.Type = sp.Type
			g.Status = sp.Status
			g.UserID = sp.UserID
		}
		spaces = append(spaces, g)
	}

	c.JSON(http.StatusOK, lotLayoutResponse{
		LotID:  lot.ID,
		Extent: layout.Size(cfg),
		Spaces: spaces,
	})
}

// MergeLotRows handles POST /api/lots/{lot_id}/merges. Row numbers are
// passed through as the user typed them; the layout engine owns
// validation and its errors become descriptive 400s.
func (h *Handler) MergeLotRows(c *gin.Context) {
	id, ok := pathID(c, "lot_id")
	if !ok {
		return
	}
	var req mergeRowsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lot, err := h.store.MergeLotRows(c.Request.Context(), id, req.RowA, req.RowB)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, toLotResponse(lot))
	case errors.Is(err, layout.ErrInvalidInput),
		errors.Is(err, layout.ErrRowRange),
		errors.Is(err, layout.ErrNonAdjacent):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		lotError(c, err)
	}
}

// ResetLotMerges handles DELETE /api/lots/{lot_id}/merges.
func (h *Handler) ResetLotMerges(c *gin.Context) {
	id, ok := pathID(c, "lot_id")
	if !ok {
		return
	}
	lot, err := h.store.ResetLotMerges(c.Request.Context(), id)
	if err != nil {
		lotError(c, err)
		return
	}
	c.JSON(http.StatusOK, toLotResponse(lot))
}

// pathID parses a numeric path parameter, writing the 400 itself.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}

func lotError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lot not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
}
