package service

import (
	"context"
	"errors"

	"contacts_api/internal/apperr"
	"contacts_api/internal/models"
	"contacts_api/internal/repository"
)

const (
	msgContactNotFound   = "Contact not found"
	msgContactFieldEmpty = "Contact name, email and phone cannot be empty"
)

// ContactService implements CRUD over the contact book.
type ContactService struct {
	contacts repository.Contacts
	audit    Recorder
}

func NewContactService(contacts repository.Contacts, audit Recorder) *ContactService {
	return &ContactService{contacts: contacts, audit: audit}
}

// List returns every contact in store order.
func (s *ContactService) List(ctx context.Context) ([]models.Contact, error) {
	out, err := s.contacts.List(ctx)
	if err != nil {
		return nil, apperr.Server("failed to load contacts", err)
	}
	return out, nil
}

// Create validates and stores a new contact.
func (s *ContactService) Create(ctx context.Context, in ContactInput) (models.Contact, error) {
	in = ContactInput{Name: trim(in.Name), Email: trim(in.Email), Phone: trim(in.Phone)}
	if err := requireFields(in, msgFillAllFields); err != nil {
		return models.Contact{}, err
	}

	c := models.Contact{Name: in.Name, Email: in.Email, Phone: in.Phone}
	if err := s.contacts.Create(ctx, &c); err != nil {
		return models.Contact{}, apperr.Server("failed to create contact", err)
	}
	record(ctx, s.audit, models.EventContactCreate, "contact created", map[string]any{"id": c.ID})
	return c, nil
}

// Get returns one contact or NotFound.
func (s *ContactService) Get(ctx context.Context, id string) (models.Contact, error) {
	c, err := s.find(ctx, id)
	if err != nil {
		return models.Contact{}, err
	}
	return *c, nil
}

// Update merges the supplied fields into an existing contact.
func (s *ContactService) Update(ctx context.Context, id string, patch models.ContactPatch) (models.Contact, error) {
	c, err := s.find(ctx, id)
	if err != nil {
		return models.Contact{}, err
	}
	if patch.Empty() {
		return *c, nil
	}

	patch = trimPatch(patch)
	for _, f := range []*string{patch.Name, patch.Email, patch.Phone} {
		if f != nil && *f == "" {
			return models.Contact{}, apperr.Validation(msgContactFieldEmpty)
		}
	}

	patch.Apply(c)
	if err := s.contacts.Update(ctx, c); err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return models.Contact{}, apperr.NotFound(msgContactNotFound)
		}
		return models.Contact{}, apperr.Server("failed to update contact", err)
	}
	record(ctx, s.audit, models.EventContactUpdate, "contact updated", map[string]any{"id": c.ID})
	return *c, nil
}

// Delete removes a contact and returns it as it was before removal.
func (s *ContactService) Delete(ctx context.Context, id string) (models.Contact, error) {
	c, err := s.find(ctx, id)
	if err != nil {
		return models.Contact{}, err
	}
	if err := s.contacts.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return models.Contact{}, apperr.NotFound(msgContactNotFound)
		}
		return models.Contact{}, apperr.Server("failed to delete contact", err)
	}
	record(ctx, s.audit, models.EventContactDelete, "contact deleted", map[string]any{"id": c.ID})
	return *c, nil
}

func (s *ContactService) find(ctx context.Context, id string) (*models.Contact, error) {
	id = trim(id)
	if id == "" {
		return nil, apperr.NotFound(msgContactNotFound)
	}
	c, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Server("failed to load contact", err)
	}
	if c == nil {
		return nil, apperr.NotFound(msgContactNotFound)
	}
	return c, nil
}

func trimPatch(p models.ContactPatch) models.ContactPatch {
	trimPtr := func(s *string) *string {
		if s == nil {
			return nil
		}
		v := trim(*s)
		return &v
	}
	return models.ContactPatch{Name: trimPtr(p.Name), Email: trimPtr(p.Email), Phone: trimPtr(p.Phone)}
}
