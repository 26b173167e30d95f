package handlers

import (
	"net/http"
	"strconv"
	"time"

	"clinicbook/services/scheduling"
	"clinicbook/utils"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler serves the read path: resolved availability,
// bookable windows, and the current-status classifier.
type AvailabilityHandler struct {
	Service scheduling.Service
}

func NewAvailabilityHandler(svc scheduling.Service) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc}
}

func parseDateParam(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "missing date query parameter")
		return time.Time{}, false
	}
	date, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "date must be formatted YYYY-MM-DD")
		return time.Time{}, false
	}
	return date, true
}

func parseDurationParam(c *gin.Context) (int, bool) {
	raw := c.Query("duration")
	if raw == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "missing duration query parameter")
		return 0, false
	}
	duration, err := strconv.Atoi(raw)
	if err != nil || duration <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "duration must be a positive number of minutes")
		return 0, false
	}
	return duration, true
}

func (h *AvailabilityHandler) GetDayAvailabilityHandler(c *gin.Context) {
	date, ok := parseDateParam(c)
	if !ok {
		return
	}
	day, err := h.Service.GetDayAvailability(c.Request.Context(), c.Param("orgID"), c.Param("resourceID"), date)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}

func (h *AvailabilityHandler) GetWeekAvailabilityHandler(c *gin.Context) {
	date, ok := parseDateParam(c)
	if !ok {
		return
	}
	week, err := h.Service.GetWeekAvailability(c.Request.Context(), c.Param("orgID"), c.Param("resourceID"), date)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"weekStart": scheduling.WeekStartUTC(date).Format("2006-01-02"), "days": week})
}

func (h *AvailabilityHandler) GetBookableWindowsHandler(c *gin.Context) {
	date, ok := parseDateParam(c)
	if !ok {
		return
	}
	duration, ok := parseDurationParam(c)
	if !ok {
		return
	}
	windows, err := h.Service.GetBookableWindows(c.Request.Context(), c.Param("orgID"), c.Param("resourceID"), duration, date)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date.Format("2006-01-02"), "windows": windows})
}

func (h *AvailabilityHandler) GetAggregatedWindowsHandler(c *gin.Context) {
	date, ok := parseDateParam(c)
	if !ok {
		return
	}
	duration, ok := parseDurationParam(c)
	if !ok {
		return
	}
	windows, err := h.Service.GetAggregatedBookableWindows(c.Request.Context(), c.Param("orgID"), c.Param("serviceID"), duration, date)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date.Format("2006-01-02"), "windows": windows})
}

func (h *AvailabilityHandler) GetCurrentStatusHandler(c *gin.Context) {
	status, err := h.Service.GetCurrentStatus(c.Request.Context(), c.Param("orgID"), c.Param("resourceID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}
