package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"studypulse/internal/model"
	"studypulse/internal/repository"
)

var ErrStudentNotFound = errors.New("student not found")

// StudentService handles student registration and profile reads.
// Join doubles as sign-in: an existing email gets a fresh token for
// the same profile instead of a duplicate.
type StudentService struct {
	studentRepo repository.StudentRepo
	auth        *AuthService
}

// NewStudentService creates a new student service
func NewStudentService(studentRepo repository.StudentRepo, auth *AuthService) *StudentService {
	return &StudentService{studentRepo: studentRepo, auth: auth}
}

// Join registers a student (or signs an existing one back in) and
// returns a student token.
func (s *StudentService) Join(ctx context.Context, name, email string, subjects []string) (*model.StudentJoinResponse, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return nil, fmt.Errorf("name and email are required: %w", ErrBadRequest)
	}

	student, err := s.studentRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up student: %w", err)
	}
	if student == nil {
		student = &model.Student{
			Name:     name,
			Email:    email,
			Subjects: subjects,
		}
		id, err := s.studentRepo.Create(ctx, student)
		if err != nil {
			return nil, fmt.Errorf("failed to create student: %w", err)
		}
		student.ID = id
	}

	token, err := s.auth.GenerateStudentToken(student.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &model.StudentJoinResponse{
		StudentID: student.ID,
		Token:     token,
		Student:   student,
	}, nil
}

// Get returns a student profile by id
func (s *StudentService) Get(ctx context.Context, id string) (*model.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load student: %w", err)
	}
	if student == nil {
		return nil, ErrStudentNotFound
	}
	return student, nil
}
