package handlers

import (
	"net/http"
	"time"

	"clinicbook/services/scheduling"
	"clinicbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the write path: booking, reassignment,
// rescheduling, release, and administrative blocks.
type BookingHandler struct {
	Service scheduling.Service
}

func NewBookingHandler(svc scheduling.Service) *BookingHandler {
	return &BookingHandler{Service: svc}
}

type bookSlotRequest struct {
	ResourceID string    `json:"resourceId" binding:"required"`
	ServiceID  string    `json:"serviceId"`
	PatientID  string    `json:"patientId"`
	StartTime  time.Time `json:"startTime" binding:"required"`
	EndTime    time.Time `json:"endTime" binding:"required"`
	Notes      string    `json:"notes"`
}

func (h *BookingHandler) BookSlotHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req bookSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	appt, err := h.Service.BookSlot(c.Request.Context(), scheduling.BookingRequest{
		OrganisationID: c.Param("orgID"),
		ResourceID:     req.ResourceID,
		ServiceID:      req.ServiceID,
		PatientID:      req.PatientID,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Notes:          req.Notes,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	logger.Info("booking committed",
		zap.String("appointmentID", appt.ID),
		zap.String("resourceID", appt.ResourceID))
	c.JSON(http.StatusCreated, appt)
}

type reassignRequest struct {
	NewResourceID string    `json:"newResourceId" binding:"required"`
	StartTime     time.Time `json:"startTime" binding:"required"`
	EndTime       time.Time `json:"endTime" binding:"required"`
}

func (h *BookingHandler) ReassignSlotHandler(c *gin.Context) {
	var req reassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	err := h.Service.ReassignSlot(c.Request.Context(), scheduling.ReassignRequest{
		OrganisationID: c.Param("orgID"),
		AppointmentID:  c.Param("appointmentID"),
		NewResourceID:  req.NewResourceID,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "appointment reassigned"})
}

type rescheduleRequest struct {
	StartTime time.Time `json:"startTime" binding:"required"`
	EndTime   time.Time `json:"endTime" binding:"required"`
}

func (h *BookingHandler) RescheduleSlotHandler(c *gin.Context) {
	var req rescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	err := h.Service.RescheduleSlot(c.Request.Context(), c.Param("orgID"), c.Param("appointmentID"), req.StartTime, req.EndTime)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "appointment rescheduled"})
}

func (h *BookingHandler) ReleaseSlotHandler(c *gin.Context) {
	resourceID := c.Query("resourceId")
	if resourceID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "missing resourceId query parameter")
		return
	}
	err := h.Service.ReleaseSlot(c.Request.Context(), c.Param("orgID"), resourceID, c.Param("appointmentID"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "appointment released"})
}

type blockIntervalRequest struct {
	StartTime  time.Time `json:"startTime" binding:"required"`
	EndTime    time.Time `json:"endTime" binding:"required"`
	SourceType string    `json:"sourceType"`
	Reason     string    `json:"reason"`
}

func (h *BookingHandler) BlockIntervalHandler(c *gin.Context) {
	var req blockIntervalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	occ, err := h.Service.BlockInterval(c.Request.Context(), c.Param("orgID"), c.Param("resourceID"),
		req.StartTime, req.EndTime, req.SourceType, req.Reason)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, occ)
}
