package service

import (
	"context"
	"strings"
	"time"

	"contacts_api/internal/apperr"
	"contacts_api/internal/logger"
	"contacts_api/internal/models"
	"contacts_api/internal/repository"
)

// Recorder appends audit events. Recording never fails the calling operation.
type Recorder interface {
	Record(ctx context.Context, typ, description string, meta any)
}

// record is a nil-safe Record.
func record(ctx context.Context, r Recorder, typ, description string, meta any) {
	if r != nil {
		r.Record(ctx, typ, description, meta)
	}
}

type AuditService struct {
	auditRepo repository.AuditRepo
	log       *logger.Logger
}

func NewAuditService(auditRepo repository.AuditRepo, log *logger.Logger) *AuditService {
	return &AuditService{auditRepo: auditRepo, log: log}
}

const errInvalidTimeRange = "invalid time range: from must be <= to"

// Record appends an event; store failures are logged, not returned.
func (s *AuditService) Record(ctx context.Context, typ, description string, meta any) {
	err := s.auditRepo.Append(ctx, models.AuditEvent{
		OccurredAt:  time.Now().UTC(),
		Type:        typ,
		Description: description,
		Metadata:    meta,
	})
	if err != nil && s.log != nil {
		s.log.Warnw("audit_append_failed", "type", typ, "err", err)
	}
}

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeEventType trims spaces and uppercases the event type filter.
func normalizeEventType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f LogFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", apperr.Validation(errInvalidTimeRange)
	}

	eventType := normalizeEventType(f.Type)
	return from, to, eventType, nil
}

// List returns audit events matching f.
func (s *AuditService) List(ctx context.Context, f LogFilter) ([]models.AuditEvent, error) {
	from, to, typ, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	events, err := s.auditRepo.List(ctx, from, to, typ)
	if err != nil {
		return nil, apperr.Server("failed to load logs", err)
	}
	return events, nil
}
