package repository

import (
	"context"
	"fmt"
	"time"

	"stockroom/internal/domain"
	"stockroom/internal/storage"

	"github.com/google/uuid"
)

// StudentRepository is the record store for the student roster.
type StudentRepository interface {
	List(ctx context.Context) ([]domain.Student, error)
	Create(ctx context.Context, fields domain.StudentFields) (*domain.Student, error)
	Replace(ctx context.Context, student domain.Student) (*domain.Student, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

type studentRepository struct {
	medium   storage.Medium[domain.Student]
	students []domain.Student
	loaded   bool
}

// NewStudentRepository creates a student record store over the given durable
// medium.
func NewStudentRepository(medium storage.Medium[domain.Student]) StudentRepository {
	return &studentRepository{medium: medium}
}

func (r *studentRepository) ensureLoaded(ctx context.Context) error {
	if r.loaded {
		return nil
	}
	students, err := r.medium.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load students: %w", err)
	}
	r.students = students
	r.loaded = true
	return nil
}

// List returns all roster entries.
func (r *studentRepository) List(ctx context.Context) ([]domain.Student, error) {
	if err := r.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	out := make([]domain.Student, len(r.students))
	copy(out, r.students)
	return out, nil
}

// Create allocates a fresh id, stamps the timestamps, persists, and returns
// the full record.
func (r *studentRepository) Create(ctx context.Context, fields domain.StudentFields) (*domain.Student, error) {
	if err := r.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	student := domain.Student{
		ID:            uuid.New(),
		Name:          fields.Name,
		Class:         fields.Class,
		Section:       fields.Section,
		RollNumber:    fields.RollNumber,
		AvatarURL:     fields.AvatarURL,
		DateOfBirth:   fields.DateOfBirth,
		Gender:        fields.Gender,
		GuardianName:  fields.GuardianName,
		ContactNumber: fields.ContactNumber,
		Email:         fields.Email,
		Address:       fields.Address,
		BloodGroup:    fields.BloodGroup,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	next := append(append([]domain.Student{}, r.students...), student)
	if err := r.medium.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to persist created student: %w", err)
	}
	r.students = next

	return &student, nil
}

// Replace overwrites the profile fields of the record with the given id,
// keeps CreatedAt, and stamps UpdatedAt.
func (r *studentRepository) Replace(ctx context.Context, student domain.Student) (*domain.Student, error) {
	if err := r.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	idx := r.indexOf(student.ID)
	if idx < 0 {
		return nil, domain.ErrStudentNotFound
	}

	student.CreatedAt = r.students[idx].CreatedAt
	now := time.Now().UTC()
	if prev := r.students[idx].UpdatedAt; !now.After(prev) {
		now = prev.Add(time.Nanosecond)
	}
	student.UpdatedAt = now

	next := make([]domain.Student, len(r.students))
	copy(next, r.students)
	next[idx] = student

	if err := r.medium.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to persist replaced student: %w", err)
	}
	r.students = next

	return &student, nil
}

// Remove deletes the roster entry permanently.
func (r *studentRepository) Remove(ctx context.Context, id uuid.UUID) error {
	if err := r.ensureLoaded(ctx); err != nil {
		return err
	}

	idx := r.indexOf(id)
	if idx < 0 {
		return domain.ErrStudentNotFound
	}

	next := make([]domain.Student, 0, len(r.students)-1)
	next = append(next, r.students[:idx]...)
	next = append(next, r.students[idx+1:]...)

	if err := r.medium.Save(ctx, next); err != nil {
		return fmt.Errorf("failed to persist removal: %w", err)
	}
	r.students = next

	return nil
}

func (r *studentRepository) indexOf(id uuid.UUID) int {
	for i, s := range r.students {
		if s.ID == id {
			return i
		}
	}
	return -1
}
