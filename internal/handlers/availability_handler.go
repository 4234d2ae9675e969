package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/meeting-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/meeting-scheduler/internal/httperr"
	"github.com/BruksfildServices01/meeting-scheduler/internal/middleware"
	"github.com/BruksfildServices01/meeting-scheduler/internal/models"
	ucAvailability "github.com/BruksfildServices01/meeting-scheduler/internal/usecase/availability"
	ucMeeting "github.com/BruksfildServices01/meeting-scheduler/internal/usecase/meeting"
)

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	schedule *ucAvailability.Schedule
	check    *ucMeeting.CheckAvailability
	conflict *ucMeeting.CheckTimeConflict
}

func NewAvailabilityHandler(
	schedule *ucAvailability.Schedule,
	check *ucMeeting.CheckAvailability,
	conflict *ucMeeting.CheckTimeConflict,
) *AvailabilityHandler {
	return &AvailabilityHandler{schedule: schedule, check: check, conflict: conflict}
}

// ======================================================
// REQUESTS
// ======================================================

type SlotRequest struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type DayRequest struct {
	IsAvailable *bool         `json:"is_available" binding:"required"`
	Slots       []SlotRequest `json:"slots"`
}

type WeekendRequest struct {
	Saturday *DayRequest `json:"saturday"`
	Sunday   *DayRequest `json:"sunday"`
}

type CopySlotsRequest struct {
	Source  string   `json:"source" binding:"required"`
	Targets []string `json:"targets" binding:"required,min=1"`
}

type WindowRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type AvailabilityCheckRequest struct {
	WindowRequest
	UserID string `json:"user_id"`
}

type ConflictCheckRequest struct {
	WindowRequest
	// User id or email; defaults to the caller.
	User             string `json:"user"`
	ExcludeMeetingID string `json:"exclude_meeting_id"`
}

func (r DayRequest) update() domain.DayUpdate {
	slots := make([]models.Slot, 0, len(r.Slots))
	for _, s := range r.Slots {
		slots = append(slots, models.Slot{StartTime: s.StartTime, EndTime: s.EndTime})
	}
	return domain.DayUpdate{IsAvailable: *r.IsAvailable, Slots: slots}
}

// ======================================================
// SCHEDULE
// ======================================================

func (h *AvailabilityHandler) Get(c *gin.Context) {
	days, err := h.schedule.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": days})
}

func (h *AvailabilityHandler) SetDay(c *gin.Context) {
	var req DayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	days, err := h.schedule.SetDay(c.Request.Context(), middleware.UserID(c), c.Param("day"), req.update())
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": days})
}

func (h *AvailabilityHandler) SetWeekend(c *gin.Context) {
	var req WeekendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	var in domain.WeekendUpdate
	if req.Saturday != nil {
		if req.Saturday.IsAvailable == nil {
			httperr.BadRequest(c, "invalid_request", "saturday.is_available is required.")
			return
		}
		u := req.Saturday.update()
		in.Saturday = &u
	}
	if req.Sunday != nil {
		if req.Sunday.IsAvailable == nil {
			httperr.BadRequest(c, "invalid_request", "sunday.is_available is required.")
			return
		}
		u := req.Sunday.update()
		in.Sunday = &u
	}

	days, err := h.schedule.SetWeekend(c.Request.Context(), middleware.UserID(c), in)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": days})
}

func (h *AvailabilityHandler) CopySlots(c *gin.Context) {
	var req CopySlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	days, err := h.schedule.CopySlots(c.Request.Context(), middleware.UserID(c), req.Source, req.Targets)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": days})
}

// ======================================================
// CHECKS
// ======================================================

func (h *AvailabilityHandler) Check(c *gin.Context) {
	var req AvailabilityCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	userID := req.UserID
	if userID == "" {
		userID = middleware.UserID(c)
	}

	res, err := h.check.Execute(c.Request.Context(), ucMeeting.AvailabilityInput{
		UserID:    userID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AvailabilityHandler) CheckConflict(c *gin.Context) {
	var req ConflictCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	user := req.User
	if user == "" {
		user = middleware.UserID(c)
	}

	res, err := h.conflict.Execute(c.Request.Context(), ucMeeting.TimeConflictInput{
		UserID:           user,
		Date:             req.Date,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		ExcludeMeetingID: req.ExcludeMeetingID,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
