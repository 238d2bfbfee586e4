package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"contacts_api/internal/models"
	"contacts_api/internal/service"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerUser models.PublicUser
	registerErr  error
	loginRes     service.LoginResult
	loginErr     error
	parseID      models.PublicUser
	parseErr     error

	lastRegister   service.RegisterInput
	lastLogin      service.LoginInput
	lastParseToken string
}

func (m *mockAuth) Register(_ context.Context, in service.RegisterInput) (models.PublicUser, error) {
	m.lastRegister = in
	return m.registerUser, m.registerErr
}

func (m *mockAuth) Login(_ context.Context, in service.LoginInput) (service.LoginResult, error) {
	m.lastLogin = in
	return m.loginRes, m.loginErr
}

func (m *mockAuth) CurrentUser(identity models.PublicUser) models.PublicUser {
	return identity
}

func (m *mockAuth) ParseToken(token string) (models.PublicUser, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockContacts struct {
	list    []models.Contact
	listErr error
	contact models.Contact
	err     error
	panicOn string

	lastCreate service.ContactInput
	lastID     string
	lastPatch  models.ContactPatch
}

func (m *mockContacts) List(context.Context) ([]models.Contact, error) {
	if m.panicOn == "list" {
		panic("boom")
	}
	return m.list, m.listErr
}

func (m *mockContacts) Create(_ context.Context, in service.ContactInput) (models.Contact, error) {
	m.lastCreate = in
	return m.contact, m.err
}

func (m *mockContacts) Get(_ context.Context, id string) (models.Contact, error) {
	m.lastID = id
	return m.contact, m.err
}

func (m *mockContacts) Update(_ context.Context, id string, patch models.ContactPatch) (models.Contact, error) {
	m.lastID = id
	m.lastPatch = patch
	return m.contact, m.err
}

func (m *mockContacts) Delete(_ context.Context, id string) (models.Contact, error) {
	m.lastID = id
	return m.contact, m.err
}

type mockAuditLog struct {
	resp     []models.AuditEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockAuditLog) List(_ context.Context, f service.LogFilter) ([]models.AuditEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	return newTestRouterWith(s, Options{})
}

func newTestRouterWith(s *service.Service, opts Options) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, opts)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
