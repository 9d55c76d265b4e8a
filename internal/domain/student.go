package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrStudentNotFound = errors.New("student not found")

// Student represents one roster entry. ID and the timestamps are owned by
// the record store. The validate tags mirror the roster form's rules and are
// enforced by the student service before any write.
type Student struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name" validate:"required"`
	Class         string    `json:"class" validate:"required"`
	Section       string    `json:"section" validate:"required"`
	RollNumber    string    `json:"roll_number" validate:"required"`
	AvatarURL     string    `json:"avatar_url" validate:"omitempty,uri"`
	DateOfBirth   string    `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender        string    `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	GuardianName  string    `json:"guardian_name"`
	ContactNumber string    `json:"contact_number" validate:"omitempty,e164|numeric"`
	Email         string    `json:"email" validate:"omitempty,email"`
	Address       string    `json:"address"`
	BloodGroup    string    `json:"blood_group" validate:"omitempty,oneof=A+ A- B+ B- O+ O- AB+ AB-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// StudentFields carries the caller-editable profile fields of a student.
type StudentFields struct {
	Name          string
	Class         string
	Section       string
	RollNumber    string
	AvatarURL     string
	DateOfBirth   string
	Gender        string
	GuardianName  string
	ContactNumber string
	Email         string
	Address       string
	BloodGroup    string
}
