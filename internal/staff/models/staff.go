package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/c14220110/poliklinik-admin/pkg/utils"
)

// Field yang boleh diubah dari halaman edit dokter/perawat.
const (
	FieldFullname      = "fullname"
	FieldEmail         = "email"
	FieldContactNumber = "contact_number"
	FieldDepartment    = "department"
	FieldDepartmentID  = "department_id"
)

var (
	ErrUnknownField        = errors.New("unknown field")
	ErrInvalidDepartmentID = errors.New("invalid department_id")
)

// StaffProfile berisi kolom yang sama untuk dokter dan perawat.
type StaffProfile struct {
	UserID        *int64 `json:"user_id"`
	DepartmentID  *int64 `json:"department_id"`
	Fullname      string `json:"fullname"`
	Gender        string `json:"gender"`
	Birthdate     string `json:"birthdate"`
	ContactNumber string `json:"contact_number"`
	Email         string `json:"email"`
	Department    string `json:"department"`
	Role          string `json:"role"`
}

// StaffUpdate adalah body PUT /doctors/:id dan /nurses/:id.
type StaffUpdate struct {
	Fullname      string `json:"fullname"`
	Email         string `json:"email"`
	ContactNumber string `json:"contact_number"`
	Department    string `json:"department"`
	DepartmentID  *int64 `json:"department_id"`
}

// SetField mengubah satu field pada draft. Nilai belum divalidasi di sini,
// kecuali department_id yang harus berupa angka atau kosong.
func (p *StaffProfile) SetField(field, value string) error {
	switch field {
	case FieldFullname:
		p.Fullname = value
	case FieldEmail:
		p.Email = value
	case FieldContactNumber:
		p.ContactNumber = value
	case FieldDepartment:
		p.Department = value
	case FieldDepartmentID:
		value = strings.TrimSpace(value)
		if value == "" {
			p.DepartmentID = nil
			return nil
		}
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidDepartmentID, value)
		}
		p.DepartmentID = &id
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

func (p StaffProfile) Validate() error {
	return utils.ValidateContact(utils.ContactFields{
		Name:          p.Fullname,
		Email:         p.Email,
		ContactNumber: p.ContactNumber,
		Department:    p.Department,
	})
}

// UpdatePayload membangun body PUT dengan string yang sudah di-trim.
func (p StaffProfile) UpdatePayload() StaffUpdate {
	return StaffUpdate{
		Fullname:      strings.TrimSpace(p.Fullname),
		Email:         strings.TrimSpace(p.Email),
		ContactNumber: strings.TrimSpace(p.ContactNumber),
		Department:    strings.TrimSpace(p.Department),
		DepartmentID:  p.DepartmentID,
	}
}

// Doctor adalah satu baris dari GET /doctors.
type Doctor struct {
	DoctorID int64 `json:"doctor_id"`
	StaffProfile
}

// Nurse adalah satu baris dari GET /nurses.
type Nurse struct {
	NurseID int64 `json:"nurses_id"`
	StaffProfile
}
