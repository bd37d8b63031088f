package controllers

import (
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/poliklinik-admin/internal/notify"
	"github.com/c14220110/poliklinik-admin/internal/staff/models"
	"github.com/c14220110/poliklinik-admin/internal/staff/services"
	"github.com/c14220110/poliklinik-admin/pkg/listctl"
)

// Page adalah data yang dirender oleh satu halaman daftar.
type Page[T any] struct {
	listctl.Snapshot[T]
	Cards []models.StatCard `json:"cards"`
}

// DraftPatch mengubah satu field (Field/Value) atau beberapa sekaligus
// (Fields).
type DraftPatch struct {
	Field  string            `json:"field"`
	Value  string            `json:"value"`
	Fields map[string]string `json:"fields"`
}

// EntityController menerjemahkan operasi listctl.Controller ke endpoint
// Echo untuk satu jenis entity.
type EntityController[T any] struct {
	List  *listctl.Controller[T]
	Cards func(counts map[string]int) []models.StatCard
}

func NewEntityController[T any](list *listctl.Controller[T], cards func(map[string]int) []models.StatCard) *EntityController[T] {
	return &EntityController[T]{List: list, Cards: cards}
}

func (ec *EntityController[T]) page(search string) Page[T] {
	snap := ec.List.Snapshot(search)
	p := Page[T]{Snapshot: snap, Cards: []models.StatCard{}}
	if ec.Cards != nil {
		p.Cards = ec.Cards(snap.Counts)
	}
	return p
}

// Page memuat koleksi saat pertama kali dibuka lalu mengembalikan hasil
// pencarian ?search=.
func (ec *EntityController[T]) Page(c echo.Context) error {
	collector := requestScope(c)
	err := ec.List.Mount(c.Request().Context())
	page := ec.page(c.QueryParam("search"))
	if err != nil {
		return failure(c, err, page, collector)
	}
	return respond(c, http.StatusOK, "OK", page, collector)
}

func (ec *EntityController[T]) Refresh(c echo.Context) error {
	collector := requestScope(c)
	err := ec.List.Refresh(c.Request().Context())
	page := ec.page(c.QueryParam("search"))
	if err != nil {
		return failure(c, err, page, collector)
	}
	return respond(c, http.StatusOK, "Data refreshed", page, collector)
}

func (ec *EntityController[T]) BeginEdit(c echo.Context) error {
	id, err := services.ParseID(c.Param("id"))
	if err != nil {
		return respond(c, http.StatusBadRequest, err.Error(), nil, nil)
	}
	if err := ec.List.BeginEditByID(id); err != nil {
		return failure(c, err, nil, nil)
	}
	draft, _ := ec.List.Draft()
	return respond(c, http.StatusOK, "Editing", draft, nil)
}

// draftFor mengembalikan draft hanya jika draft itu milik entity id.
func (ec *EntityController[T]) draftFor(id int64) interface{} {
	if open, ok := ec.List.DraftID(); !ok || open != id {
		return nil
	}
	draft, _ := ec.List.Draft()
	return draft
}

// UpdateDraft menerapkan perubahan field sesuai urutan nama field dan
// berhenti pada error pertama. Draft yang terbuka harus milik :id.
func (ec *EntityController[T]) UpdateDraft(c echo.Context) error {
	id, err := services.ParseID(c.Param("id"))
	if err != nil {
		return respond(c, http.StatusBadRequest, err.Error(), nil, nil)
	}
	var req DraftPatch
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, "Invalid request payload", nil, nil)
	}
	fields := make(map[string]string, len(req.Fields)+1)
	for k, v := range req.Fields {
		fields[k] = v
	}
	if req.Field != "" {
		fields[req.Field] = req.Value
	}
	if len(fields) == 0 {
		return respond(c, http.StatusBadRequest, "No fields to update", nil, nil)
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if err := ec.List.UpdateDraftFieldByID(id, name, fields[name]); err != nil {
			return failure(c, err, ec.draftFor(id), nil)
		}
	}

	return respond(c, http.StatusOK, "Draft updated", ec.draftFor(id), nil)
}

func (ec *EntityController[T]) CommitEdit(c echo.Context) error {
	id, err := services.ParseID(c.Param("id"))
	if err != nil {
		return respond(c, http.StatusBadRequest, err.Error(), nil, nil)
	}
	collector := requestScope(c)
	if err := ec.List.CommitEditByID(c.Request().Context(), id); err != nil {
		return failure(c, err, ec.draftFor(id), collector)
	}
	return respond(c, http.StatusOK, lastText(collector, "Changes saved"), ec.page(""), collector)
}

func (ec *EntityController[T]) CancelEdit(c echo.Context) error {
	id, err := services.ParseID(c.Param("id"))
	if err != nil {
		return respond(c, http.StatusBadRequest, err.Error(), nil, nil)
	}
	if err := ec.List.CancelEditByID(id); err != nil {
		return failure(c, err, nil, nil)
	}
	return respond(c, http.StatusOK, "Edit cancelled", nil, nil)
}

// Delete menghapus entity jika ?confirm=true. Tanpa konfirmasi tidak ada
// request ke server dan data tidak berubah.
func (ec *EntityController[T]) Delete(c echo.Context) error {
	id, err := services.ParseID(c.Param("id"))
	if err != nil {
		return respond(c, http.StatusBadRequest, err.Error(), nil, nil)
	}

	collector := requestScope(c)
	deleted, err := ec.List.DeleteEntity(c.Request().Context(), id)
	if err != nil {
		return failure(c, err, nil, collector)
	}
	if !deleted {
		return respond(c, http.StatusOK, "Deletion cancelled", map[string]interface{}{"deleted": false}, collector)
	}
	return respond(c, http.StatusOK, lastText(collector, "Deleted"), map[string]interface{}{
		"deleted": true,
		"counts":  ec.List.Counts(),
	}, collector)
}

func lastText(collector *notify.Collector, fallback string) string {
	notices := collector.Notices()
	if len(notices) == 0 {
		return fallback
	}
	return notices[len(notices)-1].Text
}
