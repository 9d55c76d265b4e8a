package service

import (
	"context"
	"fmt"

	"stockroom/internal/domain"
	"stockroom/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StudentService coordinates roster edits. Unlike the inventory core, the
// roster form's field rules are enforced here, before any write reaches the
// record store.
type StudentService interface {
	Students(ctx context.Context) ([]domain.Student, error)
	AddStudent(ctx context.Context, fields domain.StudentFields) (*domain.Student, error)
	EditStudent(ctx context.Context, student domain.Student) (*domain.Student, error)
	RemoveStudent(ctx context.Context, id uuid.UUID) error
}

type studentService struct {
	repo     repository.StudentRepository
	validate *validator.Validate
	logger   *zap.Logger
}

// NewStudentService creates a new instance of StudentService.
func NewStudentService(repo repository.StudentRepository, logger *zap.Logger) StudentService {
	return &studentService{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// Students returns all roster entries.
func (s *studentService) Students(ctx context.Context) ([]domain.Student, error) {
	return s.repo.List(ctx)
}

// AddStudent validates the profile fields and creates the roster entry.
func (s *studentService) AddStudent(ctx context.Context, fields domain.StudentFields) (*domain.Student, error) {
	if err := s.checkFields(fields); err != nil {
		return nil, err
	}

	student, err := s.repo.Create(ctx, fields)
	if err != nil {
		return nil, err
	}

	s.logger.Info("student added",
		zap.String("id", student.ID.String()),
		zap.String("name", student.Name),
	)
	return student, nil
}

// EditStudent validates and replaces the roster entry with the matching id.
func (s *studentService) EditStudent(ctx context.Context, student domain.Student) (*domain.Student, error) {
	if err := s.checkFields(domain.StudentFields{
		Name:          student.Name,
		Class:         student.Class,
		Section:       student.Section,
		RollNumber:    student.RollNumber,
		AvatarURL:     student.AvatarURL,
		DateOfBirth:   student.DateOfBirth,
		Gender:        student.Gender,
		GuardianName:  student.GuardianName,
		ContactNumber: student.ContactNumber,
		Email:         student.Email,
		Address:       student.Address,
		BloodGroup:    student.BloodGroup,
	}); err != nil {
		return nil, err
	}

	updated, err := s.repo.Replace(ctx, student)
	if err != nil {
		return nil, err
	}

	s.logger.Info("student updated", zap.String("id", updated.ID.String()))
	return updated, nil
}

// RemoveStudent deletes the roster entry.
func (s *studentService) RemoveStudent(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Remove(ctx, id); err != nil {
		return err
	}
	s.logger.Info("student removed", zap.String("id", id.String()))
	return nil
}

// checkFields runs the struct validation tags over a candidate record.
func (s *studentService) checkFields(fields domain.StudentFields) error {
	candidate := domain.Student{
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
	}
	if err := s.validate.Struct(candidate); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}
