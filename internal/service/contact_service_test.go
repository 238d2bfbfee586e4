package service

import (
	"context"
	"errors"
	"testing"

	"contacts_api/internal/apperr"
	"contacts_api/internal/models"
)

func strPtr(s string) *string { return &s }

func newTestContacts() (*ContactService, *memContacts, *spyRecorder) {
	repo := &memContacts{}
	spy := &spyRecorder{}
	return NewContactService(repo, spy), repo, spy
}

func TestContactService_Create_Success(t *testing.T) {
	svc, repo, spy := newTestContacts()

	c, err := svc.Create(context.Background(), ContactInput{Name: " Ann ", Email: "ann@x.io", Phone: "123"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if c.ID == "" || c.Name != "Ann" || c.Email != "ann@x.io" || c.Phone != "123" {
		t.Fatalf("unexpected contact: %+v", c)
	}
	if len(repo.items) != 1 {
		t.Fatalf("expected 1 stored contact, got %d", len(repo.items))
	}
	if got := spy.recorded(); len(got) != 1 || got[0] != models.EventContactCreate {
		t.Fatalf("expected CONTACT_CREATE, got %v", got)
	}
}

func TestContactService_Create_MissingField(t *testing.T) {
	cases := []ContactInput{
		{Email: "a@x.io", Phone: "1"},
		{Name: "a", Phone: "1"},
		{Name: "a", Email: "a@x.io"},
		{Name: "a", Email: "a@x.io", Phone: "   "},
	}
	for _, in := range cases {
		svc, repo, _ := newTestContacts()
		_, err := svc.Create(context.Background(), in)
		wantKind(t, err, apperr.KindValidation, msgFillAllFields)
		if len(repo.items) != 0 {
			t.Fatalf("nothing should be stored for %+v", in)
		}
	}
}

func TestContactService_List_PreservesOrder(t *testing.T) {
	svc, _, _ := newTestContacts()
	ctx := context.Background()

	for _, n := range []string{"a", "b", "c"} {
		if _, err := svc.Create(ctx, ContactInput{Name: n, Email: n + "@x.io", Phone: "1"}); err != nil {
			t.Fatalf("Create %s: %v", n, err)
		}
	}

	out, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(out) != 3 || out[0].Name != "a" || out[1].Name != "b" || out[2].Name != "c" {
		t.Fatalf("unexpected order: %+v", out)
	}
}

func TestContactService_List_RepoError(t *testing.T) {
	svc, repo, _ := newTestContacts()
	repo.err = errDBDown

	_, err := svc.List(context.Background())
	wantKind(t, err, apperr.KindServer, "")
	if !errors.Is(err, errDBDown) {
		t.Fatalf("expected cause to be preserved, got %v", err)
	}
}

func TestContactService_Get(t *testing.T) {
	svc, _, _ := newTestContacts()
	ctx := context.Background()

	created, err := svc.Create(ctx, ContactInput{Name: "a", Email: "a@x.io", Phone: "1"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got != created {
		t.Fatalf("Get = %+v; want %+v", got, created)
	}

	for _, id := range []string{"missing", "", "  "} {
		_, err := svc.Get(ctx, id)
		wantKind(t, err, apperr.KindNotFound, msgContactNotFound)
	}
}

func TestContactService_Update_MergesSuppliedFields(t *testing.T) {
	svc, _, spy := newTestContacts()
	ctx := context.Background()

	created, err := svc.Create(ctx, ContactInput{Name: "a", Email: "a@x.io", Phone: "1"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(ctx, created.ID, models.ContactPatch{Phone: strPtr("999")})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Name != "a" || updated.Email != "a@x.io" || updated.Phone != "999" {
		t.Fatalf("unexpected merge result: %+v", updated)
	}

	got, _ := svc.Get(ctx, created.ID)
	if got.Phone != "999" {
		t.Fatalf("update not persisted: %+v", got)
	}
	if rec := spy.recorded(); rec[len(rec)-1] != models.EventContactUpdate {
		t.Fatalf("expected CONTACT_UPDATE, got %v", rec)
	}
}

func TestContactService_Update_EmptyPatchReturnsRecord(t *testing.T) {
	svc, repo, _ := newTestContacts()
	ctx := context.Background()

	created, _ := svc.Create(ctx, ContactInput{Name: "a", Email: "a@x.io", Phone: "1"})
	got, err := svc.Update(ctx, created.ID, models.ContactPatch{})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if got != created {
		t.Fatalf("expected unchanged record, got %+v", got)
	}
	if repo.updateCalls != 0 {
		t.Fatalf("store should not be written, got %d updates", repo.updateCalls)
	}
}

func TestContactService_Update_EmptySuppliedField(t *testing.T) {
	svc, repo, _ := newTestContacts()
	ctx := context.Background()

	created, _ := svc.Create(ctx, ContactInput{Name: "a", Email: "a@x.io", Phone: "1"})
	_, err := svc.Update(ctx, created.ID, models.ContactPatch{Name: strPtr("  ")})
	wantKind(t, err, apperr.KindValidation, msgContactFieldEmpty)

	got, _ := svc.Get(ctx, created.ID)
	if got.Name != "a" {
		t.Fatalf("stored record changed: %+v", got)
	}
	if repo.updateCalls != 0 {
		t.Fatalf("store should not be written, got %d updates", repo.updateCalls)
	}
}

func TestContactService_Update_NotFound(t *testing.T) {
	svc, _, _ := newTestContacts()
	_, err := svc.Update(context.Background(), "missing", models.ContactPatch{Name: strPtr("x")})
	wantKind(t, err, apperr.KindNotFound, msgContactNotFound)
}

func TestContactService_Delete_ReturnsPriorRecord(t *testing.T) {
	svc, repo, spy := newTestContacts()
	ctx := context.Background()

	created, _ := svc.Create(ctx, ContactInput{Name: "a", Email: "a@x.io", Phone: "1"})
	deleted, err := svc.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if deleted != created {
		t.Fatalf("Delete = %+v; want %+v", deleted, created)
	}
	if len(repo.items) != 0 {
		t.Fatalf("expected empty store, got %d", len(repo.items))
	}

	_, err = svc.Get(ctx, created.ID)
	wantKind(t, err, apperr.KindNotFound, msgContactNotFound)

	_, err = svc.Delete(ctx, created.ID)
	wantKind(t, err, apperr.KindNotFound, msgContactNotFound)

	if rec := spy.recorded(); len(rec) != 2 || rec[1] != models.EventContactDelete {
		t.Fatalf("expected CONTACT_DELETE, got %v", rec)
	}
}

func TestContactService_NilRecorder(t *testing.T) {
	svc := NewContactService(&memContacts{}, nil)
	if _, err := svc.Create(context.Background(), ContactInput{Name: "a", Email: "a@x.io", Phone: "1"}); err != nil {
		t.Fatalf("Create with nil recorder: %v", err)
	}
}
