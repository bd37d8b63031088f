package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/poliklinik-admin/internal/staff/models"
	"github.com/c14220110/poliklinik-admin/internal/staff/services"
	"github.com/c14220110/poliklinik-admin/pkg/storage/mariadb"
)

type AccountController struct {
	Registration *services.RegistrationService
	Profile      *services.ProfileService
}

func NewAccountController(reg *services.RegistrationService, profile *services.ProfileService) *AccountController {
	return &AccountController{Registration: reg, Profile: profile}
}

// Register mendaftarkan dokter atau perawat baru.
func (ac *AccountController) Register(c echo.Context) error {
	var form models.Registration
	if err := c.Bind(&form); err != nil {
		return respond(c, http.StatusBadRequest, "Invalid request payload", nil, nil)
	}

	collector := requestScope(c)
	if err := ac.Registration.Register(c.Request().Context(), form); err != nil {
		return failure(c, err, nil, collector)
	}
	return respond(c, http.StatusCreated, lastText(collector, "Registration successful"), map[string]string{
		"fullname": form.Fullname,
		"role":     form.Role,
	}, collector)
}

func (ac *AccountController) GetProfile(c echo.Context) error {
	return respond(c, http.StatusOK, "OK", ac.Profile.Get(), nil)
}

type ProfileRequest struct {
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
}

func (ac *AccountController) UpdateProfile(c echo.Context) error {
	var req ProfileRequest
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, "Invalid request payload", nil, nil)
	}

	collector := requestScope(c)
	profile, err := ac.Profile.Update(c.Request().Context(), req.Fullname, req.Email)
	if err != nil {
		return failure(c, err, profile, collector)
	}
	return respond(c, http.StatusOK, lastText(collector, "Profile updated"), profile, collector)
}

// ActivityLister diimplementasikan oleh mariadb.ActivityStore.
type ActivityLister interface {
	Recent(ctx context.Context, entity string, limit int) ([]mariadb.Activity, error)
}

type ActivityController struct {
	Store ActivityLister
}

func NewActivityController(store ActivityLister) *ActivityController {
	return &ActivityController{Store: store}
}

// List mengembalikan log aktivitas terbaru, ?entity= dan ?limit= opsional.
func (ac *ActivityController) List(c echo.Context) error {
	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return respond(c, http.StatusBadRequest, "Invalid limit", nil, nil)
		}
		limit = n
	}

	activities, err := ac.Store.Recent(c.Request().Context(), c.QueryParam("entity"), limit)
	if err != nil {
		return respond(c, http.StatusInternalServerError, "Unable to load activity log", nil, nil)
	}
	return respond(c, http.StatusOK, "OK", activities, nil)
}
