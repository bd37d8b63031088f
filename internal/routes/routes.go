package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/c14220110/poliklinik-admin/internal/common/middlewares"
	"github.com/c14220110/poliklinik-admin/internal/staff/controllers"
	"github.com/c14220110/poliklinik-admin/internal/staff/models"
	"github.com/c14220110/poliklinik-admin/internal/staff/services"
	staffRoutes "github.com/c14220110/poliklinik-admin/internal/staff/routes"
	"github.com/c14220110/poliklinik-admin/ws"
)

// Deps adalah semua yang dibutuhkan untuk memasang routes console.
type Deps struct {
	Secret   []byte
	Catalog  *services.Catalog
	Auth     *controllers.AuthController
	Account  *controllers.AccountController
	Activity *controllers.ActivityController // nil jika DB_HOST kosong
	Hub      *ws.Hub
}

// Init menginisialisasi semua routes menggunakan Echo framework
func Init(e *echo.Echo, d Deps) {
	doctorController := controllers.NewEntityController(d.Catalog.Doctors, func(counts map[string]int) []models.StatCard {
		return services.StatsCards(counts, services.CountDoctors)
	})
	nurseController := controllers.NewEntityController(d.Catalog.Nurses, func(counts map[string]int) []models.StatCard {
		return services.StatsCards(counts, services.CountNurses)
	})
	patientController := controllers.NewEntityController(d.Catalog.Patients, func(counts map[string]int) []models.StatCard {
		return services.StatsCards(counts, services.CountPatients)
	})
	dashboardController := controllers.NewEntityController(d.Catalog.Patients, services.DashboardCards)
	reportController := controllers.NewEntityController(d.Catalog.Reports, func(counts map[string]int) []models.StatCard {
		return services.StatsCards(counts, services.CountReports)
	})

	api := e.Group("/api")

	// **Grup Admin**
	admin := api.Group("/admin")
	admin.POST("/login", d.Auth.Login) // Tidak pakai JWT

	secured := admin.Group("", middlewares.JWTMiddleware(d.Secret), middlewares.RequireRole("admin"))
	secured.GET("/dashboard", dashboardController.Page)
	staffRoutes.RegisterEntityRoutes(secured.Group("/"+services.EntityDoctors), doctorController)
	staffRoutes.RegisterEntityRoutes(secured.Group("/"+services.EntityNurses), nurseController)
	staffRoutes.RegisterEntityRoutes(secured.Group("/"+services.EntityPatients), patientController)
	staffRoutes.RegisterEntityRoutes(secured.Group("/"+services.EntityReports), reportController)
	staffRoutes.RegisterAccountRoutes(secured, d.Account)
	if d.Activity != nil {
		secured.GET("/activity", d.Activity.List)
	}

	// Notifikasi realtime, token lewat ?token=
	if d.Hub != nil {
		e.GET("/ws", ws.ServeWS(d.Hub), middlewares.QueryToken(), middlewares.JWTMiddleware(d.Secret), middlewares.RequireRole("admin"))
	}
}
