package rdb

import (
	"context"
	"testing"
	"time"

	"github.com/wiji1/overleaf/domain/model"
)

func openTestDB(t *testing.T) *AuditRepository {
	t.Helper()
	db, err := OpenFromURL("sqlite::memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewAuditRepository(db)
}

func TestAuditAppendAndList(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()

	entries := []*model.AuditEntry{
		{Operation: model.AuditOpCreate, Email: "a@example.com", Success: true, Time: time.Now().Add(-2 * time.Hour)},
		{Operation: model.AuditOpSetAdmin, Email: "a@example.com", Success: true, Time: time.Now().Add(-1 * time.Hour)},
		{Operation: model.AuditOpDelete, Email: "b@example.com", Success: false, Detail: "remote command failed", Time: time.Now()},
	}
	for _, e := range entries {
		if err := repo.Append(ctx, e); err != nil {
			t.Fatalf("Append: %v", err)
		}
		if e.ID == "" {
			t.Error("Append did not assign an ID")
		}
	}

	got, err := repo.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	// Newest first.
	if got[0].Operation != model.AuditOpDelete {
		t.Errorf("first entry = %s, want %s", got[0].Operation, model.AuditOpDelete)
	}
	if got[0].Success {
		t.Error("failed delete recorded as success")
	}

	limited, err := repo.List(ctx, 2)
	if err != nil {
		t.Fatalf("List limited: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limited len = %d, want 2", len(limited))
	}
}

func TestAuditAppendFillsTime(t *testing.T) {
	repo := openTestDB(t)
	e := &model.AuditEntry{Operation: model.AuditOpVerifyEmail, Email: "c@example.com", Success: true}
	if err := repo.Append(context.Background(), e); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if e.Time.IsZero() {
		t.Error("Append did not stamp time")
	}
}

func TestOpenFromURLBadScheme(t *testing.T) {
	if _, err := OpenFromURL("postgres://nope"); err == nil {
		t.Fatal("expected error for unsupported scheme")
	}
}
