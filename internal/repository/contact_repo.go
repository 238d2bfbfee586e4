package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"contacts_api/internal/models"
	"contacts_api/internal/repository/db"
)

// ErrContactNotFound is returned by Update and Delete when no row matches.
var ErrContactNotFound = errors.New("contact not found")

type ContactRepository struct {
	db      *sql.DB
	dialect db.Dialect
}

func NewContactRepository(conn *sql.DB, dialect db.Dialect) *ContactRepository {
	return &ContactRepository{db: conn, dialect: dialect}
}

var _ Contacts = (*ContactRepository)(nil)

const (
	selectContactsSQL    = `SELECT id, name, email, phone, created_at, updated_at FROM contacts ORDER BY created_at ASC`
	selectContactByIDSQL = `SELECT id, name, email, phone, created_at, updated_at FROM contacts WHERE id = ?`
	insertContactSQL     = `INSERT INTO contacts (id, name, email, phone, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`
	updateContactSQL     = `UPDATE contacts SET name = ?, email = ?, phone = ?, updated_at = ? WHERE id = ?`
	deleteContactSQL     = `DELETE FROM contacts WHERE id = ?`
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(s rowScanner) (models.Contact, error) {
	var c models.Contact
	if err := s.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return models.Contact{}, err
	}
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return c, nil
}

// List returns every contact in insertion order.
func (r *ContactRepository) List(ctx context.Context) ([]models.Contact, error) {
	rows, err := r.db.QueryContext(ctx, selectContactsSQL)
	if err != nil {
		return nil, fmt.Errorf("select contacts: %w", err)
	}
	defer rows.Close()

	out := make([]models.Contact, 0, 16)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contacts: %w", err)
	}
	return out, nil
}

// Create inserts c, filling its ID and timestamps.
func (r *ContactRepository) Create(ctx context.Context, c *models.Contact) error {
	id := uuid.NewString()
	ts := now()
	if _, err := r.db.ExecContext(ctx, rebind(r.dialect, insertContactSQL),
		id, c.Name, c.Email, c.Phone, ts, ts); err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	c.ID = id
	c.CreatedAt = ts
	c.UpdatedAt = ts
	return nil
}

// GetByID fetches a contact. Returns (nil, nil) if not found.
func (r *ContactRepository) GetByID(ctx context.Context, id string) (*models.Contact, error) {
	c, err := scanContact(r.db.QueryRowContext(ctx, rebind(r.dialect, selectContactByIDSQL), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select contact %q: %w", id, err)
	}
	return &c, nil
}

// Update writes every mutable field of c and bumps UpdatedAt.
func (r *ContactRepository) Update(ctx context.Context, c *models.Contact) error {
	ts := now()
	res, err := r.db.ExecContext(ctx, rebind(r.dialect, updateContactSQL),
		c.Name, c.Email, c.Phone, ts, c.ID)
	if err != nil {
		return fmt.Errorf("update contact %q: %w", c.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for contact %q: %w", c.ID, err)
	}
	if n == 0 {
		return ErrContactNotFound
	}
	c.UpdatedAt = ts
	return nil
}

// Delete removes the contact with the given id.
func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, rebind(r.dialect, deleteContactSQL), id)
	if err != nil {
		return fmt.Errorf("delete contact %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for contact %q: %w", id, err)
	}
	if n == 0 {
		return ErrContactNotFound
	}
	return nil
}
