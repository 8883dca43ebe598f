package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"workboard_backend/internal/board/service"
	"workboard_backend/internal/board/transport"
	"workboard_backend/platform/httpkit"
)

// Refresher triggers a full board rebuild and fans the result out to
// connected clients and peer instances.
type Refresher interface {
	RefreshAndNotify(ctx context.Context, source string) error
}

// Handler handles HTTP requests for the board read model.
type Handler struct {
	engine    *service.Engine
	refresher Refresher
}

const (
	msgInvalidRequest = "invalid request"
	msgInvalidOrderID = "invalid order ID filter"
	msgInvalidColumn  = "invalid column ID"
)

// New creates a new board handler.
func New(engine *service.Engine, refresher Refresher) *Handler {
	return &Handler{engine: engine, refresher: refresher}
}

// ListColumns returns the ordered column set for the requested view.
// GET /api/v1/board/columns
func (h *Handler) ListColumns(c *gin.Context) {
	query, filter, ok := h.bindQuery(c)
	if !ok {
		return
	}

	columns := h.engine.Columns(query.ActiveWorkflow, filter)
	httpkit.OK(c, transport.ToColumnList(query.ActiveWorkflow, columns))
}

// ListColumnItems returns a column's items in display order.
// GET /api/v1/board/columns/:columnId/items
func (h *Handler) ListColumnItems(c *gin.Context) {
	columnID := c.Param("columnId")
	if columnID == "" {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidColumn, nil)
		return
	}

	query, filter, ok := h.bindQuery(c)
	if !ok {
		return
	}

	items := h.engine.ItemsForColumn(query.ActiveWorkflow, columnID, filter)
	httpkit.OK(c, transport.ToItemList(items))
}

// ListItems returns the flat derived item set, including items that no
// column of the current view claims.
// GET /api/v1/board/items
func (h *Handler) ListItems(c *gin.Context) {
	_, filter, ok := h.bindQuery(c)
	if !ok {
		return
	}

	httpkit.OK(c, transport.ToItemList(h.engine.Items(filter)))
}

// Refresh forces a snapshot rebuild, bypassing the event-driven path.
// POST /api/v1/board/refresh
func (h *Handler) Refresh(c *gin.Context) {
	if err := h.refresher.RefreshAndNotify(c.Request.Context(), "manual"); err != nil {
		if httpkit.HandleError(c, err) {
			return
		}
	}
	httpkit.OK(c, transport.RefreshResponse{Status: "refreshed"})
}

func (h *Handler) bindQuery(c *gin.Context) (transport.BoardQuery, service.ItemFilter, bool) {
	var query transport.BoardQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return query, service.ItemFilter{}, false
	}
	if query.ActiveWorkflow == "" {
		query.ActiveWorkflow = service.ActiveAll
	}

	var filter service.ItemFilter
	for _, raw := range query.OrderIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidOrderID, raw)
			return query, service.ItemFilter{}, false
		}
		filter.OrderIDs = append(filter.OrderIDs, id)
	}
	return query, filter, true
}
