package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atelieflow/production-scheduling/internal/service/backlog"
)

type BacklogHandler struct {
	backlogService *backlog.Service
}

func NewBacklogHandler(backlogService *backlog.Service) *BacklogHandler {
	return &BacklogHandler{
		backlogService: backlogService,
	}
}

// HandleTriage classifies every incomplete stage across all stored plans
// into overdue/today/future buckets. An optional `now` query parameter
// (RFC3339) triages against a virtual day.
func (h *BacklogHandler) HandleTriage(c *gin.Context) {
	ctx := c.Request.Context()

	now, virtual, err := parseVirtualNow(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid now time format, expected RFC3339")
		return
	}
	if virtual {
		slog.InfoContext(ctx, "using virtual time for triage",
			slog.Time("virtual_now", now),
		)
	}

	resp, err := h.backlogService.Triage(ctx, now, runID(c))
	if err != nil {
		slog.ErrorContext(ctx, "backlog triage failed",
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, resp)
}
