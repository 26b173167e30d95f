package handlers

import (
	"net/http"
	"time"

	"clinicbook/models"
	"clinicbook/services/scheduling"
	"clinicbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ScheduleHandler serves schedule administration: base templates and
// per-week overrides.
type ScheduleHandler struct {
	Service scheduling.Service
}

func NewScheduleHandler(svc scheduling.Service) *ScheduleHandler {
	return &ScheduleHandler{Service: svc}
}

type setBaseAvailabilityRequest struct {
	Days []models.DaySchedule `json:"days" binding:"required"`
}

func (h *ScheduleHandler) SetBaseAvailabilityHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req setBaseAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	orgID, resourceID := c.Param("orgID"), c.Param("resourceID")
	if err := h.Service.SetBaseAvailability(c.Request.Context(), orgID, resourceID, req.Days); err != nil {
		writeError(c, err)
		return
	}
	logger.Info("base availability replaced",
		zap.String("resourceID", resourceID), zap.Int("days", len(req.Days)))
	c.JSON(http.StatusOK, gin.H{"message": "base availability replaced"})
}

type setWeekOverrideRequest struct {
	WeekDate  string            `json:"weekDate" binding:"required"` // any date within the target week
	DayOfWeek string            `json:"dayOfWeek" binding:"required"`
	Slots     []models.SlotTime `json:"slots"`
}

func (h *ScheduleHandler) SetWeekOverrideHandler(c *gin.Context) {
	var req setWeekOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	weekRef, err := time.ParseInLocation("2006-01-02", req.WeekDate, time.UTC)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "weekDate must be formatted YYYY-MM-DD")
		return
	}

	day := models.DaySchedule{DayOfWeek: req.DayOfWeek, Slots: req.Slots}
	if err := h.Service.SetWeekOverride(c.Request.Context(), c.Param("orgID"), c.Param("resourceID"), weekRef, day); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "week override saved",
		"weekStart": scheduling.WeekStartUTC(weekRef).Format("2006-01-02"),
	})
}
