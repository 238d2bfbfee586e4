package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"contacts_api/internal/models"
	"contacts_api/internal/repository/db"
)

// ErrDuplicateEmail is returned when the unique index on users.email rejects an insert.
var ErrDuplicateEmail = errors.New("email already exists")

// Users is the credential store.
type Users interface {
	Create(ctx context.Context, u *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// Contacts is the resource store.
type Contacts interface {
	List(ctx context.Context) ([]models.Contact, error)
	Create(ctx context.Context, c *models.Contact) error
	GetByID(ctx context.Context, id string) (*models.Contact, error)
	Update(ctx context.Context, c *models.Contact) error
	Delete(ctx context.Context, id string) error
}

// AuditRepo is the append-only audit log.
type AuditRepo interface {
	Append(ctx context.Context, e models.AuditEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.AuditEvent, error)
}

type Repository struct {
	Users    Users
	Contacts Contacts
	Audit    AuditRepo
}

func NewRepository(conn *sql.DB, dialect db.Dialect) *Repository {
	return &Repository{
		Users:    NewUserRepository(conn, dialect),
		Contacts: NewContactRepository(conn, dialect),
		Audit:    NewAuditRepository(conn, dialect),
	}
}

// rebind rewrites ? placeholders into $N for Postgres.
func rebind(d db.Dialect, q string) string {
	if d != db.DialectPostgres {
		return q
	}
	var b strings.Builder
	b.Grow(len(q) + 8)
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// now is the store clock, truncated to microseconds so values round-trip
// through Postgres unchanged.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
