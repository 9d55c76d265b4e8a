package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"stockroom/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type mockStudentRepository struct {
	students []domain.Student
}

func (m *mockStudentRepository) List(ctx context.Context) ([]domain.Student, error) {
	out := make([]domain.Student, len(m.students))
	copy(out, m.students)
	return out, nil
}

func (m *mockStudentRepository) Create(ctx context.Context, fields domain.StudentFields) (*domain.Student, error) {
	student := domain.Student{
		ID:         uuid.New(),
		Name:       fields.Name,
		Class:      fields.Class,
		Section:    fields.Section,
		RollNumber: fields.RollNumber,
		Email:      fields.Email,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	m.students = append(m.students, student)
	return &student, nil
}

func (m *mockStudentRepository) Replace(ctx context.Context, student domain.Student) (*domain.Student, error) {
	for i := range m.students {
		if m.students[i].ID == student.ID {
			m.students[i] = student
			return &student, nil
		}
	}
	return nil, domain.ErrStudentNotFound
}

func (m *mockStudentRepository) Remove(ctx context.Context, id uuid.UUID) error {
	for i := range m.students {
		if m.students[i].ID == id {
			m.students = append(m.students[:i], m.students[i+1:]...)
			return nil
		}
	}
	return domain.ErrStudentNotFound
}

func validFields() domain.StudentFields {
	return domain.StudentFields{
		Name:       "Asha Rao",
		Class:      "7",
		Section:    "B",
		RollNumber: "23",
		Email:      "asha@example.com",
	}
}

func TestAddStudentValidEntry(t *testing.T) {
	repo := &mockStudentRepository{}
	svc := NewStudentService(repo, zap.NewNop())

	student, err := svc.AddStudent(context.Background(), validFields())
	if err != nil {
		t.Fatalf("AddStudent failed: %v", err)
	}
	if student.Name != "Asha Rao" || len(repo.students) != 1 {
		t.Fatalf("student = %+v, stored %d", student, len(repo.students))
	}
}

func TestAddStudentRejectsInvalidFields(t *testing.T) {
	repo := &mockStudentRepository{}
	svc := NewStudentService(repo, zap.NewNop())
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*domain.StudentFields)
	}{
		{"missing name", func(f *domain.StudentFields) { f.Name = "" }},
		{"missing class", func(f *domain.StudentFields) { f.Class = "" }},
		{"missing roll number", func(f *domain.StudentFields) { f.RollNumber = "" }},
		{"bad email", func(f *domain.StudentFields) { f.Email = "not-an-email" }},
		{"bad gender", func(f *domain.StudentFields) { f.Gender = "Unknown" }},
		{"bad blood group", func(f *domain.StudentFields) { f.BloodGroup = "C+" }},
		{"bad date of birth", func(f *domain.StudentFields) { f.DateOfBirth = "31-02-2015" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fields := validFields()
			tc.mutate(&fields)
			if _, err := svc.AddStudent(ctx, fields); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
	if len(repo.students) != 0 {
		t.Errorf("rejected entries must not reach the store, got %d", len(repo.students))
	}
}

func TestEditStudentPropagatesNotFound(t *testing.T) {
	svc := NewStudentService(&mockStudentRepository{}, zap.NewNop())

	fields := validFields()
	_, err := svc.EditStudent(context.Background(), domain.Student{
		ID:         uuid.New(),
		Name:       fields.Name,
		Class:      fields.Class,
		Section:    fields.Section,
		RollNumber: fields.RollNumber,
	})
	if !errors.Is(err, domain.ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}
}

func TestRemoveStudent(t *testing.T) {
	repo := &mockStudentRepository{}
	svc := NewStudentService(repo, zap.NewNop())
	ctx := context.Background()

	student, err := svc.AddStudent(ctx, validFields())
	if err != nil {
		t.Fatalf("AddStudent failed: %v", err)
	}
	if err := svc.RemoveStudent(ctx, student.ID); err != nil {
		t.Fatalf("RemoveStudent failed: %v", err)
	}
	if err := svc.RemoveStudent(ctx, student.ID); !errors.Is(err, domain.ErrStudentNotFound) {
		t.Fatalf("second remove: expected ErrStudentNotFound, got %v", err)
	}
}
