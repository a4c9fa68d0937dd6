package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"studypulse/internal/config"
	"studypulse/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AuthService handles tutor and student authentication
type AuthService struct {
	tutorUsername string
	tutorPassword string
	jwtSecret     []byte
}

// NewAuthService creates a new auth service
func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{
		tutorUsername: cfg.TutorUsername,
		tutorPassword: cfg.TutorPassword,
		jwtSecret:     []byte(cfg.JWTSecret),
	}
}

// Login validates tutor credentials and returns a token
func (s *AuthService) Login(username, password string) (*model.LoginResponse, error) {
	if username != s.tutorUsername || password != s.tutorPassword {
		return nil, ErrInvalidCredentials
	}

	tutorID := "t_" + uuid.New().String()[:8]

	claims := &model.TutorClaims{
		TutorID: tutorID,
		Role:    "tutor",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(7 * 24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token:   tokenString,
		TutorID: tutorID,
	}, nil
}

// ValidateTutorToken validates a tutor JWT and returns claims
func (s *AuthService) ValidateTutorToken(tokenString string) (*model.TutorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.TutorClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.TutorClaims)
	if !ok || !token.Valid || claims.Role != "tutor" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// GenerateStudentToken creates a token for a student
func (s *AuthService) GenerateStudentToken(studentID string) (string, error) {
	claims := &model.StudentClaims{
		StudentID: studentID,
		Role:      "student",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(30 * 24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateStudentToken validates a student JWT and returns claims
func (s *AuthService) ValidateStudentToken(tokenString string) (*model.StudentClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.StudentClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.StudentClaims)
	if !ok || !token.Valid || claims.Role != "student" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
