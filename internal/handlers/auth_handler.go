package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/meeting-scheduler/internal/clock"
	"github.com/BruksfildServices01/meeting-scheduler/internal/config"
	"github.com/BruksfildServices01/meeting-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/meeting-scheduler/internal/domain/meeting"
	"github.com/BruksfildServices01/meeting-scheduler/internal/httperr"
	"github.com/BruksfildServices01/meeting-scheduler/internal/logging"
	"github.com/BruksfildServices01/meeting-scheduler/internal/models"
	ucMeeting "github.com/BruksfildServices01/meeting-scheduler/internal/usecase/meeting"
	"github.com/BruksfildServices01/meeting-scheduler/internal/validators"
)

type AuthHandler struct {
	repo      meeting.Repository
	refresher ucMeeting.Refresher
	config    *config.Config
	clock     clock.Clock

	// EmailDomainValid checks the registration email domain. Defaults to a DNS lookup.
	EmailDomainValid func(email string) bool
	NewID            func() string
}

func NewAuthHandler(
	repo meeting.Repository,
	refresher ucMeeting.Refresher,
	cfg *config.Config,
	clk clock.Clock,
) *AuthHandler {
	return &AuthHandler{
		repo:             repo,
		refresher:        refresher,
		config:           cfg,
		clock:            clock.OrSystem(clk),
		EmailDomainValid: validators.IsEmailDomainValid,
		NewID:            uuid.NewString,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Timezone string `json:"timezone" binding:"omitempty,timezone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	ctx := c.Request.Context()
	email := meeting.NormalizeEmail(req.Email)

	if !h.EmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not appear to be valid.")
		return
	}

	existing, err := h.repo.FindUserByEmail(ctx, email)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if existing != nil {
		httperr.Write(c, http.StatusConflict, "email_already_registered", "Email already registered.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not register user.")
		return
	}

	user := models.User{
		ID:           h.NewID(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Timezone:     req.Timezone,
		Availability: availability.Default(),
	}

	if err := h.repo.CreateUser(ctx, &user); err != nil {
		httperr.Internal(c, "failed_to_create_user", "Could not register user.")
		return
	}

	// Invitations sent before the account existed now belong to it.
	if err := h.repo.LinkInvitations(ctx, user.ID, user.Email); err != nil {
		log := logging.For(ctx, nil, "register", "user_id", user.ID)
		log.Error("link invitations failed", logging.ErrorAttrs(err)...)
	}
	if h.refresher != nil {
		h.refresher.Refresh(ctx, user.ID)
	}

	token, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not issue token.")
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{User: &user, Token: token})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	user, err := h.repo.FindUserByEmail(c.Request.Context(), meeting.NormalizeEmail(req.Email))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	if user == nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password.")
		return
	}

	token, err := h.generateToken(user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not issue token.")
		return
	}

	c.JSON(http.StatusOK, AuthResponse{User: user, Token: token})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	now := h.clock.Now()
	ttl := h.config.JWTTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"exp":   now.Add(ttl).Unix(),
		"iat":   now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
