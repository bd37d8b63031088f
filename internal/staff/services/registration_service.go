package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/c14220110/poliklinik-admin/internal/staff/models"
	"github.com/c14220110/poliklinik-admin/pkg/listctl"
	"github.com/c14220110/poliklinik-admin/pkg/utils"
)

const EntityRegistrations = "registrations"

var ErrInvalidRole = &utils.InputError{Reason: "invalid role", Message: "Invalid role, choose doctor or nurse"}

// Registrar diimplementasikan oleh apiclient.Client.
type Registrar interface {
	Register(ctx context.Context, form any) error
}

type RegistrationService struct {
	api      Registrar
	notifier listctl.Notifier
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewRegistrationService(api Registrar, notifier listctl.Notifier, logger zerolog.Logger) *RegistrationService {
	return &RegistrationService{
		api:      api,
		notifier: notifier,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// Register memvalidasi form lalu mengirimkannya ke POST /register. Form yang
// tidak lengkap tidak pernah dikirim ke server.
func (s *RegistrationService) Register(ctx context.Context, form models.Registration) error {
	ctx = listctl.WithEntity(ctx, EntityRegistrations)

	form.Fullname = strings.TrimSpace(form.Fullname)
	form.Email = strings.TrimSpace(form.Email)
	form.Role = strings.TrimSpace(form.Role)
	form.Department = strings.TrimSpace(form.Department)

	if err := s.check(form); err != nil {
		verr := &listctl.ValidationError{Message: utils.MessageOf(err), Err: err}
		s.notifier.Notify(ctx, listctl.KindError, "Error", verr.Message)
		return verr
	}

	if err := s.api.Register(ctx, form); err != nil {
		s.logger.Warn().Err(err).Str("role", form.Role).Msg("registration rejected")
		msg := "Registration failed"
		var um interface{ UserMessage() string }
		if errors.As(err, &um) && um.UserMessage() != "" {
			msg = um.UserMessage()
		}
		s.notifier.Notify(ctx, listctl.KindError, "Error", msg)
		return fmt.Errorf("register %s: %w", form.Role, err)
	}

	s.logger.Info().Str("role", form.Role).Str("email", form.Email).Msg("staff registered")
	s.notifier.Notify(ctx, listctl.KindSuccess, "Registration successful", fmt.Sprintf("%s has been registered as a %s", form.Fullname, form.Role))
	return nil
}

// check hanya mengembalikan pelanggaran pertama: field kosong dulu, baru role.
func (s *RegistrationService) check(form models.Registration) error {
	err := s.validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return utils.ErrIncomplete
		}
	}
	return ErrInvalidRole
}
