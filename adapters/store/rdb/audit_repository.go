package rdb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wiji1/overleaf/domain/model"
)

// AuditRecord is the RDB persistence model for domain AuditEntry.
// Table name: audit_entries
type AuditRecord struct {
	ID        string    `gorm:"primaryKey;type:text;not null"`
	Time      time.Time `gorm:"not null;index"`
	Operation string    `gorm:"type:text;not null"`
	Email     string    `gorm:"type:text;not null"`
	Success   bool      `gorm:"not null"`
	Detail    string    `gorm:"type:text"`
}

func (AuditRecord) TableName() string { return "audit_entries" }

type AuditRepository struct{ db *gorm.DB }

func NewAuditRepository(db *gorm.DB) *AuditRepository { return &AuditRepository{db: db} }

func auditToRecord(e *model.AuditEntry) *AuditRecord {
	return &AuditRecord{ID: e.ID, Time: e.Time, Operation: e.Operation, Email: e.Email, Success: e.Success, Detail: e.Detail}
}

func auditToModel(r *AuditRecord) *model.AuditEntry {
	return &model.AuditEntry{ID: r.ID, Time: r.Time, Operation: r.Operation, Email: r.Email, Success: r.Success, Detail: r.Detail}
}

// Append stores one entry, filling ID and Time when unset.
func (r *AuditRepository) Append(ctx context.Context, e *model.AuditEntry) error {
	rec := auditToRecord(e)
	if rec.ID == "" {
		rec.ID = "audit-" + uuid.NewString()
		e.ID = rec.ID
	}
	if rec.Time.IsZero() {
		rec.Time = time.Now()
		e.Time = rec.Time
	}
	return r.db.WithContext(ctx).Create(rec).Error
}

// List returns the most recent entries, newest first. limit <= 0 means
// no limit.
func (r *AuditRepository) List(ctx context.Context, limit int) ([]*model.AuditEntry, error) {
	q := r.db.WithContext(ctx).Order("time DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var recs []AuditRecord
	if err := q.Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*model.AuditEntry, 0, len(recs))
	for i := range recs {
		out = append(out, auditToModel(&recs[i]))
	}
	return out, nil
}
