package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/meeting-scheduler/internal/audit"
	"github.com/BruksfildServices01/meeting-scheduler/internal/clock"
	"github.com/BruksfildServices01/meeting-scheduler/internal/config"
	"github.com/BruksfildServices01/meeting-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/meeting-scheduler/internal/domain/meeting"
	"github.com/BruksfildServices01/meeting-scheduler/internal/handlers"
	"github.com/BruksfildServices01/meeting-scheduler/internal/lock"
	"github.com/BruksfildServices01/meeting-scheduler/internal/middleware"
	ucAvailability "github.com/BruksfildServices01/meeting-scheduler/internal/usecase/availability"
	ucBooking "github.com/BruksfildServices01/meeting-scheduler/internal/usecase/booking"
	ucMeeting "github.com/BruksfildServices01/meeting-scheduler/internal/usecase/meeting"
)

// Store is everything the API reads and writes.
type Store interface {
	meeting.Repository
	booking.Repository
}

type Dependencies struct {
	Config      *config.Config
	Store       Store
	AuditReader audit.Reader
	Audit       *audit.Dispatcher
	Locker      lock.UserLocker
	Clock       clock.Clock
	// Publisher is nil when calendar publishing is not configured.
	Publisher ucBooking.FeedPublisher
	Logger    *slog.Logger

	// EmailDomainValid overrides the DNS check run on registration.
	EmailDomainValid func(email string) bool
}

func RegisterRoutes(r *gin.Engine, deps Dependencies) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware(deps.Config.CORSAllowedOrigins))
	r.Use(middleware.RequestLogger(deps.Logger))

	// ======================================================
	// USE CASES
	// ======================================================
	clk := clock.OrSystem(deps.Clock)

	rebuildUC := ucBooking.NewRebuildBooking(deps.Store, deps.Store, clk, deps.Logger)
	refresher := ucBooking.NewRefresher(rebuildUC, deps.Logger)
	dashboardUC := ucBooking.NewGetDashboard(deps.Store, rebuildUC)
	exportUC := ucBooking.NewExportCalendar(dashboardUC, clk)
	publishUC := ucBooking.NewPublishCalendar(exportUC, deps.Publisher, deps.Audit)

	meetingDeps := ucMeeting.Deps{
		Repo:      deps.Store,
		Refresher: refresher,
		Locker:    deps.Locker,
		Clock:     clk,
		Audit:     deps.Audit,
		Logger:    deps.Logger,
	}

	schedule := ucAvailability.NewSchedule(deps.Store, deps.Audit, deps.Logger)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(deps.Store, refresher, deps.Config, clk)
	if deps.EmailDomainValid != nil {
		authHandler.EmailDomainValid = deps.EmailDomainValid
	}
	meHandler := handlers.NewMeHandler(deps.Store)
	availabilityHandler := handlers.NewAvailabilityHandler(
		schedule,
		ucMeeting.NewCheckAvailability(deps.Store),
		ucMeeting.NewCheckTimeConflict(deps.Store),
	)
	meetingHandler := handlers.NewMeetingHandler(meetingDeps)
	bookingHandler := handlers.NewBookingHandler(dashboardUC, rebuildUC, exportUC, publishUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(deps.AuditReader)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(deps.Config))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/availability", availabilityHandler.Get)
			secured.PUT("/me/availability/weekend", availabilityHandler.SetWeekend)
			secured.PUT("/me/availability/:day", availabilityHandler.SetDay)
			secured.POST("/me/availability/copy", availabilityHandler.CopySlots)
			secured.POST("/me/availability/check", availabilityHandler.Check)
			secured.POST("/me/conflicts/check", availabilityHandler.CheckConflict)

			// ------------------------------
			// MEETINGS
			// ------------------------------
			secured.POST("/meetings", meetingHandler.Create)
			secured.GET("/meetings/:id", meetingHandler.Get)
			secured.PATCH("/meetings/:id", meetingHandler.Update)
			secured.DELETE("/meetings/:id", meetingHandler.Delete)
			secured.PATCH("/meetings/:id/cancel", meetingHandler.Cancel)
			secured.PATCH("/meetings/:id/status", meetingHandler.CycleStatus)
			secured.PATCH("/meetings/:id/active", meetingHandler.ToggleActive)
			secured.POST("/meetings/:id/duplicate", meetingHandler.Duplicate)

			secured.POST("/invitations/:id/respond", meetingHandler.Respond)

			// ------------------------------
			// DASHBOARD
			// ------------------------------
			secured.GET("/me/bookings", bookingHandler.List)
			secured.POST("/me/bookings/refresh", bookingHandler.Refresh)
			secured.GET("/me/bookings/calendar.ics", bookingHandler.Calendar)
			secured.POST("/me/bookings/calendar/publish", bookingHandler.PublishCalendar)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
