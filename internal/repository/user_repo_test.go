package repository

import (
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"contacts_api/internal/models"
	"contacts_api/internal/repository/db"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func newMockUserRepo(t *testing.T, dialect db.Dialect) (*UserRepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewUserRepository(conn, dialect)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = conn.Close()
	}
	return repo, mock, cleanup
}

func TestUserRepository_Create(t *testing.T) {
	tests := []struct {
		name           string
		dialect        db.Dialect
		query          string
		user           models.User
		mockErr        error
		wantErr        error
		errContainsStr string
	}{
		{
			name:    "success",
			dialect: db.DialectSQLite,
			query:   insertUserSQL,
			user:    models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "h123"},
		},
		{
			name:    "success on postgres",
			dialect: db.DialectPostgres,
			query:   `INSERT INTO users (id, username, email, password_hash, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`,
			user:    models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "h123"},
		},
		{
			name:           "exec error",
			dialect:        db.DialectSQLite,
			query:          insertUserSQL,
			user:           models.User{Username: "bob", Email: "bob@example.com", PasswordHash: "h456"},
			mockErr:        errors.New("db exec failed"),
			errContainsStr: "insert user",
		},
		{
			name:    "postgres unique violation",
			dialect: db.DialectPostgres,
			query:   `INSERT INTO users`,
			user:    models.User{Username: "carol", Email: "carol@example.com", PasswordHash: "h789"},
			mockErr: &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"},
			wantErr: ErrDuplicateEmail,
		},
	}

	for _, tt := range tests {
		tt := tt // capture
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockUserRepo(t, tt.dialect)
			defer cleanup()

			exp := mock.ExpectExec(regexp.QuoteMeta(tt.query)).
				WithArgs(sqlmock.AnyArg(), tt.user.Username, tt.user.Email, tt.user.PasswordHash, sqlmock.AnyArg(), sqlmock.AnyArg())
			if tt.mockErr != nil {
				exp.WillReturnError(tt.mockErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(1, 1))
			}

			u := tt.user
			err := repo.Create(testCtx(t), &u)

			if tt.mockErr != nil {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if tt.errContainsStr != "" && !strings.Contains(err.Error(), tt.errContainsStr) {
					t.Fatalf("expected error to contain %q, got %q", tt.errContainsStr, err.Error())
				}
				if u.ID != "" {
					t.Fatalf("expected empty id on error, got %q", u.ID)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if u.ID == "" || u.CreatedAt.IsZero() || !u.CreatedAt.Equal(u.UpdatedAt) {
				t.Fatalf("expected id and timestamps to be set, got %+v", u)
			}
		})
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		email          string
		mockExpect     func(sqlmock.Sqlmock)
		wantUser       *models.User
		wantErr        bool
		errContainsStr string
	}{
		{
			name:  "found",
			email: "alice@example.com",
			mockExpect: func(m sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at", "updated_at"}).
					AddRow("u-7", "alice", "alice@example.com", "h123", created, created)
				m.ExpectQuery(regexp.QuoteMeta(selectUserByEmailSQL)).
					WithArgs("alice@example.com").
					WillReturnRows(rows)
			},
			wantUser: &models.User{
				ID:           "u-7",
				Username:     "alice",
				Email:        "alice@example.com",
				PasswordHash: "h123",
			},
		},
		{
			name:  "not found (ErrNoRows)",
			email: "missing@example.com",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectUserByEmailSQL)).
					WithArgs("missing@example.com").
					WillReturnError(sql.ErrNoRows)
			},
			wantUser: nil,
		},
		{
			name:  "query error",
			email: "bob@example.com",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectUserByEmailSQL)).
					WithArgs("bob@example.com").
					WillReturnError(errors.New("db query failed"))
			},
			wantErr:        true,
			errContainsStr: "select user",
		},
	}

	for _, tt := range tests {
		tt := tt // capture
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockUserRepo(t, db.DialectSQLite)
			defer cleanup()

			tt.mockExpect(mock)

			u, err := repo.GetByEmail(testCtx(t), tt.email)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errContainsStr) {
					t.Fatalf("expected error to contain %q, got %q", tt.errContainsStr, err.Error())
				}
				if u != nil {
					t.Fatalf("expected user=nil on error, got %+v", u)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantUser == nil {
				if u != nil {
					t.Fatalf("expected nil user, got %+v", u)
				}
				return
			}
			if u == nil {
				t.Fatalf("expected user, got nil")
			}
			if u.ID != tt.wantUser.ID || u.Username != tt.wantUser.Username ||
				u.Email != tt.wantUser.Email || u.PasswordHash != tt.wantUser.PasswordHash {
				t.Fatalf("unexpected user: want %+v, got %+v", tt.wantUser, u)
			}
			if !u.CreatedAt.Equal(created) {
				t.Fatalf("unexpected created_at: %v", u.CreatedAt)
			}
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if !isUniqueViolation(&pgconn.PgError{Code: "23505"}) {
		t.Fatal("23505 must be a unique violation")
	}
	if isUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatal("23503 is a foreign key violation")
	}
	if isUniqueViolation(errors.New("UNIQUE constraint failed")) {
		t.Fatal("plain errors are not classified")
	}
}
