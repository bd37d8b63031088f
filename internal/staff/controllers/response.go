package controllers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/poliklinik-admin/internal/notify"
	"github.com/c14220110/poliklinik-admin/internal/staff/models"
	"github.com/c14220110/poliklinik-admin/pkg/apiclient"
	"github.com/c14220110/poliklinik-admin/pkg/listctl"
)

// Response adalah envelope standar semua endpoint console.
type Response struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    interface{}     `json:"data"`
	Notices []notify.Notice `json:"notices,omitempty"`
}

func respond(c echo.Context, status int, message string, data interface{}, collector *notify.Collector) error {
	resp := Response{Status: status, Message: message, Data: data}
	if collector != nil {
		resp.Notices = collector.Notices()
	}
	return c.JSON(status, resp)
}

// requestScope menyiapkan collector notifikasi untuk satu request.
// Konfirmasi hapus diambil dari query ?confirm=true karena dialog sudah
// ditampilkan di browser.
func requestScope(c echo.Context) *notify.Collector {
	collector := notify.NewCollector(c.QueryParam("confirm") == "true")
	req := c.Request()
	c.SetRequest(req.WithContext(notify.WithNotifier(req.Context(), collector)))
	return collector
}

// statusFor memetakan error operasi ke status HTTP.
func statusFor(err error) int {
	var verr *listctl.ValidationError
	var apiErr *apiclient.APIError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, listctl.ErrNotEditing),
		errors.Is(err, listctl.ErrDraftMismatch),
		errors.Is(err, listctl.ErrBusy),
		errors.Is(err, listctl.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, listctl.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, listctl.ErrReadOnly):
		return http.StatusMethodNotAllowed
	case errors.Is(err, models.ErrUnknownField),
		errors.Is(err, models.ErrInvalidDepartmentID):
		return http.StatusBadRequest
	case errors.As(err, &apiErr), errors.Is(err, apiclient.ErrTransport):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// failure menjawab dengan teks notifikasi terakhir jika ada, supaya pesan
// yang dilihat admin sama dengan yang dikembalikan API.
func failure(c echo.Context, err error, data interface{}, collector *notify.Collector) error {
	message := err.Error()
	if collector != nil {
		if notices := collector.Notices(); len(notices) > 0 {
			message = notices[len(notices)-1].Text
		}
	}
	return respond(c, statusFor(err), message, data, collector)
}
