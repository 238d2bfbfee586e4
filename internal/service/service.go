package service

import (
	"context"
	"time"

	"contacts_api/internal/logger"
	"contacts_api/internal/models"
	"contacts_api/internal/repository"
)

// Authorization registers and authenticates users and resolves identities.
type Authorization interface {
	Register(ctx context.Context, in RegisterInput) (models.PublicUser, error)
	Login(ctx context.Context, in LoginInput) (LoginResult, error)
	CurrentUser(identity models.PublicUser) models.PublicUser
	ParseToken(accessToken string) (models.PublicUser, error)
}

// Contacts exposes CRUD over contact records.
type Contacts interface {
	List(ctx context.Context) ([]models.Contact, error)
	Create(ctx context.Context, in ContactInput) (models.Contact, error)
	Get(ctx context.Context, id string) (models.Contact, error)
	Update(ctx context.Context, id string, patch models.ContactPatch) (models.Contact, error)
	Delete(ctx context.Context, id string) (models.Contact, error)
}

// AuditLog exposes the append-only audit history with filtering access.
type AuditLog interface {
	List(ctx context.Context, f LogFilter) ([]models.AuditEvent, error)
}

// Options carries the settings the services need from configuration.
type Options struct {
	SigningKey string
	TokenTTL   time.Duration
}

// Service aggregates all sub-services.
type Service struct {
	Authorization Authorization
	Contacts      Contacts
	AuditLog      AuditLog
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, opts Options, log *logger.Logger) *Service {
	audit := NewAuditService(repos.Audit, log)
	return &Service{
		Authorization: NewAuthService(repos.Users, audit, opts.SigningKey, opts.TokenTTL),
		Contacts:      NewContactService(repos.Contacts, audit),
		AuditLog:      audit,
	}
}
