package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/atelieflow/production-scheduling/internal/domain"
	"github.com/atelieflow/production-scheduling/internal/service/schedule"
)

type PlanHandler struct {
	scheduleService *schedule.Service
}

func NewPlanHandler(scheduleService *schedule.Service) *PlanHandler {
	return &PlanHandler{
		scheduleService: scheduleService,
	}
}

type upsertPlanRequest struct {
	OrderNumber string                `json:"order_number"`
	ItemName    string                `json:"item_name"`
	Responsible string                `json:"responsible,omitempty"`
	Stages      []schedule.StageInput `json:"stages"`
}

// HandleUpsertPlan stores a plan and returns it fully recomputed.
func (h *PlanHandler) HandleUpsertPlan(c *gin.Context) {
	ctx := c.Request.Context()
	planID := c.Param("planID")

	var req upsertPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid plan payload: "+err.Error())
		return
	}

	plan := domain.NewProductionPlan(planID, req.OrderNumber, req.ItemName)
	plan.Responsible = req.Responsible
	for _, in := range req.Stages {
		if plan.StageByName(in.Name) >= 0 {
			respondError(c, http.StatusBadRequest, "duplicate stage name: "+in.Name)
			return
		}
		status := domain.StageStatus(in.Status)
		if in.Status != "" && !status.Valid() {
			respondError(c, http.StatusBadRequest, "invalid stage status: "+in.Status)
			return
		}
		if in.Status == "" {
			status = domain.StagePending
		}
		plan.Stages = append(plan.Stages, domain.ProductionStage{
			Name:            in.Name,
			Status:          status,
			StartDate:       in.StartDate,
			DurationDays:    in.DurationDays,
			UseBusinessDays: in.UseBusinessDays,
		})
	}

	resp, err := h.scheduleService.UpsertPlan(ctx, plan, runID(c))
	if err != nil {
		slog.ErrorContext(ctx, "failed to upsert plan",
			slog.String("plan_id", planID),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PlanHandler) HandleGetPlan(c *gin.Context) {
	ctx := c.Request.Context()
	planID := c.Param("planID")

	plan, err := h.scheduleService.GetPlan(ctx, planID)
	if err != nil {
		if errors.Is(err, domain.ErrPlanNotFound) {
			respondError(c, http.StatusNotFound, "plan not found")
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, plan)
}

// HandleApplyEdit applies one edit event and returns the recomputed plan.
func (h *PlanHandler) HandleApplyEdit(c *gin.Context) {
	ctx := c.Request.Context()
	planID := c.Param("planID")

	var edit schedule.Edit
	if err := c.ShouldBindJSON(&edit); err != nil {
		respondError(c, http.StatusBadRequest, "invalid edit payload: "+err.Error())
		return
	}

	resp, err := h.scheduleService.ApplyEdit(ctx, planID, edit, runID(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPlanNotFound):
			respondError(c, http.StatusNotFound, "plan not found")
		case errors.Is(err, domain.ErrStageNotFound):
			respondError(c, http.StatusNotFound, "stage not found")
		case errors.Is(err, domain.ErrInvalidStatus),
			errors.Is(err, schedule.ErrUnknownEditKind),
			errors.Is(err, schedule.ErrMissingPayload),
			errors.Is(err, schedule.ErrDuplicateStage):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			slog.ErrorContext(ctx, "failed to apply plan edit",
				slog.String("plan_id", planID),
				slog.String("error", err.Error()),
			)
			respondError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PlanHandler) HandleDeletePlan(c *gin.Context) {
	ctx := c.Request.Context()
	planID := c.Param("planID")

	if err := h.scheduleService.DeletePlan(ctx, planID); err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.Status(http.StatusNoContent)
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, errorResponse{
		Error:   "processing_error",
		Message: message,
	})
}

func runID(c *gin.Context) string {
	if id := c.GetHeader("X-Run-ID"); id != "" {
		return id
	}
	return uuid.NewString()
}

// parseVirtualNow resolves an optional RFC3339 "now" override, used by
// batch tooling to triage against a virtual day.
func parseVirtualNow(c *gin.Context) (time.Time, bool, error) {
	raw := c.Query("now")
	if raw == "" {
		return time.Now().UTC(), false, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false, err
	}
	return parsed, true, nil
}
