package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/c14220110/poliklinik-admin/internal/staff/controllers"
)

// EntityHandlers adalah handler yang disediakan controllers.EntityController
// untuk satu jenis entity.
type EntityHandlers interface {
	Page(c echo.Context) error
	Refresh(c echo.Context) error
	BeginEdit(c echo.Context) error
	UpdateDraft(c echo.Context) error
	CommitEdit(c echo.Context) error
	CancelEdit(c echo.Context) error
	Delete(c echo.Context) error
}

// RegisterEntityRoutes mengaitkan halaman daftar ke grup, misalnya
// /api/admin/doctors.
func RegisterEntityRoutes(g *echo.Group, h EntityHandlers) {
	g.GET("", h.Page)
	g.POST("/refresh", h.Refresh)
	g.POST("/:id/edit", h.BeginEdit)
	g.PATCH("/:id/draft", h.UpdateDraft)
	g.POST("/:id/draft/commit", h.CommitEdit)
	g.DELETE("/:id/draft", h.CancelEdit)
	g.DELETE("/:id", h.Delete)
}

func RegisterAccountRoutes(g *echo.Group, ac *controllers.AccountController) {
	g.POST("/register", ac.Register)
	g.GET("/profile", ac.GetProfile)
	g.PUT("/profile", ac.UpdateProfile)
}
