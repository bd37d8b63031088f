package services

import (
	"context"
	"strings"
	"sync"

	"github.com/c14220110/poliklinik-admin/internal/staff/models"
	"github.com/c14220110/poliklinik-admin/pkg/listctl"
	"github.com/c14220110/poliklinik-admin/pkg/utils"
)

const EntityProfile = "profile"

// ProfileService menyimpan profil admin di memori. Nilai awal berasal dari
// konfigurasi.
type ProfileService struct {
	mu       sync.RWMutex
	profile  models.AdminProfile
	notifier listctl.Notifier
}

func NewProfileService(initial models.AdminProfile, notifier listctl.Notifier) *ProfileService {
	if initial.Role == "" {
		initial.Role = "admin"
	}
	return &ProfileService{profile: initial, notifier: notifier}
}

func (s *ProfileService) Get() models.AdminProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// Update mengganti nama dan email. Username dan role tidak bisa diubah.
func (s *ProfileService) Update(ctx context.Context, fullname, email string) (models.AdminProfile, error) {
	ctx = listctl.WithEntity(ctx, EntityProfile)
	fullname = strings.TrimSpace(fullname)
	email = strings.TrimSpace(email)

	if err := utils.ValidateProfile(fullname, email); err != nil {
		msg := utils.MessageOf(err)
		s.notifier.Notify(ctx, listctl.KindError, "Error", msg)
		return s.Get(), &listctl.ValidationError{Message: msg, Err: err}
	}

	s.mu.Lock()
	s.profile.Fullname = fullname
	s.profile.Email = email
	updated := s.profile
	s.mu.Unlock()

	s.notifier.Notify(ctx, listctl.KindSuccess, "Success", "Profile updated")
	return updated, nil
}
