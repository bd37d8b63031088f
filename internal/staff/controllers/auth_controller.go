package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/c14220110/poliklinik-admin/internal/staff/models"
	"github.com/c14220110/poliklinik-admin/internal/staff/services"
	"github.com/c14220110/poliklinik-admin/pkg/utils"
)

// Credentials adalah akun admin tunggal yang dikonfigurasi lewat .env.
type Credentials struct {
	Username     string
	PasswordHash string
	Secret       []byte
	TTL          time.Duration
}

type AuthController struct {
	Credentials Credentials
	Profile     *services.ProfileService
	now         func() time.Time
}

func NewAuthController(creds Credentials, profile *services.ProfileService) *AuthController {
	return &AuthController{Credentials: creds, Profile: profile, now: time.Now}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (ac *AuthController) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, "Invalid request payload", nil, nil)
	}
	if req.Username == "" || req.Password == "" {
		return respond(c, http.StatusBadRequest, "Username and Password are required", nil, nil)
	}

	if req.Username != ac.Credentials.Username ||
		bcrypt.CompareHashAndPassword([]byte(ac.Credentials.PasswordHash), []byte(req.Password)) != nil {
		return respond(c, http.StatusUnauthorized, "Invalid username or password", nil, nil)
	}

	profile := ac.Profile.Get()
	exp := ac.now().Add(ac.Credentials.TTL)
	token, err := utils.GenerateJWTToken(ac.Credentials.Secret, profile.Username, profile.Fullname, profile.Role, exp)
	if err != nil {
		return respond(c, http.StatusInternalServerError, "Failed to generate token: "+err.Error(), nil, nil)
	}

	return respond(c, http.StatusOK, "Login successful", LoginResponse{
		Token:     token,
		ExpiresAt: exp,
		Profile:   profile,
	}, nil)
}

type LoginResponse struct {
	Token     string              `json:"token"`
	ExpiresAt time.Time           `json:"expires_at"`
	Profile   models.AdminProfile `json:"profile"`
}
