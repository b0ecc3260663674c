package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/atelieflow/production-scheduling/internal/domain"
)

type CalendarHandler struct {
	holidayRepo domain.HolidayRepository
}

func NewCalendarHandler(holidayRepo domain.HolidayRepository) *CalendarHandler {
	return &CalendarHandler{
		holidayRepo: holidayRepo,
	}
}

type upsertCalendarRequest struct {
	Version  string   `json:"version"`
	Holidays []string `json:"holidays"`
}

// HandleUpsertCalendar injects the holiday list for one year. Dates are
// plain YYYY-MM-DD strings; the engine never computes holidays itself.
func (h *CalendarHandler) HandleUpsertCalendar(c *gin.Context) {
	ctx := c.Request.Context()

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year <= 0 {
		respondError(c, http.StatusBadRequest, "invalid year")
		return
	}

	var req upsertCalendarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid calendar payload: "+err.Error())
		return
	}

	holidays := make([]time.Time, 0, len(req.Holidays))
	for _, raw := range req.Holidays {
		day, err := domain.ParseDayKey(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid holiday date: "+raw)
			return
		}
		if day.Year() != year {
			respondError(c, http.StatusBadRequest, "holiday outside calendar year: "+raw)
			return
		}
		holidays = append(holidays, day)
	}

	cal := &domain.HolidayCalendar{
		Year:      year,
		Version:   req.Version,
		Holidays:  holidays,
		FetchedAt: time.Now().UTC(),
	}

	if err := h.holidayRepo.SaveCalendar(ctx, cal); err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, cal)
}

func (h *CalendarHandler) HandleGetCalendar(c *gin.Context) {
	ctx := c.Request.Context()

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year <= 0 {
		respondError(c, http.StatusBadRequest, "invalid year")
		return
	}

	cal, err := h.holidayRepo.GetCalendar(ctx, year)
	if err != nil {
		if errors.Is(err, domain.ErrCalendarNotFound) {
			respondError(c, http.StatusNotFound, "calendar not found")
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, cal)
}
