package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/meeting-scheduler/internal/httperr"
	"github.com/BruksfildServices01/meeting-scheduler/internal/middleware"
	ucMeeting "github.com/BruksfildServices01/meeting-scheduler/internal/usecase/meeting"
)

// ======================================================
// HANDLER
// ======================================================

type MeetingHandler struct {
	createUC    *ucMeeting.CreateMeeting
	getUC       *ucMeeting.GetMeeting
	updateUC    *ucMeeting.UpdateMeeting
	deleteUC    *ucMeeting.DeleteMeeting
	cancelUC    *ucMeeting.CancelMeeting
	cycleUC     *ucMeeting.CycleMeetingStatus
	toggleUC    *ucMeeting.ToggleMeetingActive
	duplicateUC *ucMeeting.DuplicateMeeting
	respondUC   *ucMeeting.RespondToInvitation
}

func NewMeetingHandler(deps ucMeeting.Deps) *MeetingHandler {
	return &MeetingHandler{
		createUC:    ucMeeting.NewCreateMeeting(deps),
		getUC:       ucMeeting.NewGetMeeting(deps.Repo),
		updateUC:    ucMeeting.NewUpdateMeeting(deps),
		deleteUC:    ucMeeting.NewDeleteMeeting(deps),
		cancelUC:    ucMeeting.NewCancelMeeting(deps),
		cycleUC:     ucMeeting.NewCycleMeetingStatus(deps),
		toggleUC:    ucMeeting.NewToggleMeetingActive(deps),
		duplicateUC: ucMeeting.NewDuplicateMeeting(deps),
		respondUC:   ucMeeting.NewRespondToInvitation(deps),
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateMeetingRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Date        string   `json:"date" binding:"required"`
	StartTime   string   `json:"start_time" binding:"required"`
	EndTime     string   `json:"end_time" binding:"required"`
	Duration    int      `json:"duration"`
	Timezone    string   `json:"timezone"`
	Invitees    []string `json:"invitees"`
}

type UpdateMeetingRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	Duration    *int    `json:"duration"`
	Timezone    *string `json:"timezone"`

	AddInvitees    []string `json:"add_invitees"`
	RemoveInvitees []string `json:"remove_invitees"`
}

type ToggleActiveRequest struct {
	IsActive *bool `json:"is_active"`
}

type RespondRequest struct {
	Status string `json:"status" binding:"required,oneof=accepted rejected"`
}

// ======================================================
// CRUD
// ======================================================

func (h *MeetingHandler) Create(c *gin.Context) {
	var req CreateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	res, err := h.createUC.Execute(c.Request.Context(), ucMeeting.CreateMeetingInput{
		HostID:      middleware.UserID(c),
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Duration:    req.Duration,
		Timezone:    req.Timezone,
		Invitees:    req.Invitees,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *MeetingHandler) Get(c *gin.Context) {
	m, err := h.getUC.Execute(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meeting": m})
}

func (h *MeetingHandler) Update(c *gin.Context) {
	var req UpdateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	res, err := h.updateUC.Execute(c.Request.Context(), ucMeeting.UpdateMeetingInput{
		MeetingID:      c.Param("id"),
		ActorID:        middleware.UserID(c),
		Title:          req.Title,
		Description:    req.Description,
		Date:           req.Date,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Duration:       req.Duration,
		Timezone:       req.Timezone,
		AddInvitees:    req.AddInvitees,
		RemoveInvitees: req.RemoveInvitees,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *MeetingHandler) Delete(c *gin.Context) {
	if err := h.deleteUC.Execute(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		httperr.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ======================================================
// LIFECYCLE
// ======================================================

func (h *MeetingHandler) Cancel(c *gin.Context) {
	m, err := h.cancelUC.Execute(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meeting": m})
}

func (h *MeetingHandler) CycleStatus(c *gin.Context) {
	m, err := h.cycleUC.Execute(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meeting": m})
}

// ToggleActive flips is_active, or sets it when the body carries a value.
func (h *MeetingHandler) ToggleActive(c *gin.Context) {
	var req ToggleActiveRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, "invalid_request", "Invalid request body.")
			return
		}
	}

	m, err := h.toggleUC.Execute(c.Request.Context(), c.Param("id"), middleware.UserID(c), req.IsActive)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meeting": m})
}

func (h *MeetingHandler) Duplicate(c *gin.Context) {
	m, err := h.duplicateUC.Execute(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"meeting": m})
}

// ======================================================
// INVITATIONS
// ======================================================

// Respond accepts either an invitation id or a meeting id in :id.
func (h *MeetingHandler) Respond(c *gin.Context) {
	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	res, err := h.respondUC.Execute(c.Request.Context(), ucMeeting.RespondInput{
		ID:     c.Param("id"),
		UserID: middleware.UserID(c),
		Status: req.Status,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
