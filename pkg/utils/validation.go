package utils

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// emailPattern hanya mengecek bentuk minimal, bukan RFC 5322, dan
	// sengaja tidak di-anchor.
	emailPattern = regexp.MustCompile(`[^@]+@[^@]+\.[^@]+`)
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

// InputError adalah kegagalan validasi form. Error() untuk log dan wrapping,
// UserMessage() untuk teks yang ditampilkan ke admin.
type InputError struct {
	Reason  string
	Message string
}

func (e *InputError) Error() string       { return e.Reason }
func (e *InputError) UserMessage() string { return e.Message }

var (
	ErrIncomplete   = &InputError{Reason: "incomplete fields", Message: "Please fill in every field"}
	ErrInvalidEmail = &InputError{Reason: "invalid email format", Message: "Invalid email format"}
	ErrInvalidPhone = &InputError{Reason: "contact number is not 10 digits", Message: "Contact number must be exactly 10 digits"}
)

// MessageOf mengembalikan teks untuk admin: pesan InputError jika err
// membungkusnya, selain itu err.Error().
func MessageOf(err error) string {
	var ie *InputError
	if errors.As(err, &ie) {
		return ie.Message
	}
	return err.Error()
}

// ContactFields adalah field staf yang divalidasi saat edit.
type ContactFields struct {
	Name          string
	Email         string
	ContactNumber string
	Department    string
}

// ValidateContact mengecek dengan urutan tetap: kelengkapan, lalu email,
// lalu nomor telepon. Hanya pelanggaran pertama yang dikembalikan.
func ValidateContact(f ContactFields) error {
	name := strings.TrimSpace(f.Name)
	email := strings.TrimSpace(f.Email)
	phone := strings.TrimSpace(f.ContactNumber)
	department := strings.TrimSpace(f.Department)

	if name == "" || email == "" || phone == "" || department == "" {
		return ErrIncomplete
	}
	if !IsValidEmail(email) {
		return ErrInvalidEmail
	}
	if !IsValidPhone(phone) {
		return ErrInvalidPhone
	}
	return nil
}

// ValidateProfile mengecek form profil admin: nama dan email wajib diisi
// dan email harus berbentuk valid.
func ValidateProfile(name, email string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" {
		return ErrIncomplete
	}
	if !IsValidEmail(strings.TrimSpace(email)) {
		return ErrInvalidEmail
	}
	return nil
}

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}
