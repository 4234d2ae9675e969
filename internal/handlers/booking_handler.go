package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/meeting-scheduler/internal/calendar"
	"github.com/BruksfildServices01/meeting-scheduler/internal/httperr"
	"github.com/BruksfildServices01/meeting-scheduler/internal/middleware"
	ucBooking "github.com/BruksfildServices01/meeting-scheduler/internal/usecase/booking"
)

type BookingHandler struct {
	dashboard *ucBooking.GetDashboard
	rebuild   *ucBooking.RebuildBooking
	export    *ucBooking.ExportCalendar
	publish   *ucBooking.PublishCalendar
}

func NewBookingHandler(
	dashboard *ucBooking.GetDashboard,
	rebuild *ucBooking.RebuildBooking,
	export *ucBooking.ExportCalendar,
	publish *ucBooking.PublishCalendar,
) *BookingHandler {
	return &BookingHandler{dashboard: dashboard, rebuild: rebuild, export: export, publish: publish}
}

// List serves GET /me/bookings?bucket=&q=&page=&limit=.
func (h *BookingHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(ucBooking.DefaultLimit)))

	res, err := h.dashboard.Execute(c.Request.Context(), ucBooking.DashboardQuery{
		UserID: middleware.UserID(c),
		Bucket: c.Query("bucket"),
		Search: c.Query("q"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *BookingHandler) Refresh(c *gin.Context) {
	b, err := h.rebuild.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if b == nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

func (h *BookingHandler) Calendar(c *gin.Context) {
	data, err := h.export.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="meetings.ics"`)
	c.Data(http.StatusOK, calendar.ContentType, data)
}

func (h *BookingHandler) PublishCalendar(c *gin.Context) {
	key, err := h.publish.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key})
}
