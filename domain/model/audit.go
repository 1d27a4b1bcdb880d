package model

import "time"

// Audit operation kinds.
const (
	AuditOpCreate      = "create"
	AuditOpDelete      = "delete"
	AuditOpSetAdmin    = "set-admin"
	AuditOpClearAdmin  = "clear-admin"
	AuditOpVerifyEmail = "verify-email"
)

// AuditEntry records one mutating operation performed by this tool.
// Entries are operation history only; they never mirror remote user state.
type AuditEntry struct {
	ID        string
	Time      time.Time
	Operation string
	Email     string
	Success   bool
	Detail    string
}
