package service

import (
	"time"

	"contacts_api/internal/models"
)

// RegisterInput is the payload of a registration.
type RegisterInput struct {
	Username string `validate:"required"`
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// LoginInput is the payload of a login.
type LoginInput struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	models.PublicUser
	Message string `json:"message"`
	Token   string `json:"token"`
}

// ContactInput is the payload of a contact creation.
type ContactInput struct {
	Name  string `validate:"required"`
	Email string `validate:"required"`
	Phone string `validate:"required"`
}

// LogFilter supports audit history filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "REGISTER", "LOGIN", "LOGIN_FAILED", "CONTACT_CREATE", ...
}
