package model

import "github.com/golang-jwt/jwt/v5"

// TutorClaims are JWT claims for tutor authentication
type TutorClaims struct {
	TutorID string `json:"tutorId"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// StudentClaims are JWT claims for student tokens
type StudentClaims struct {
	StudentID string `json:"studentId"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for tutor login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful tutor login
type LoginResponse struct {
	Token   string `json:"token"`
	TutorID string `json:"tutorId"`
}
