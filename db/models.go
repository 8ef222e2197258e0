package db

import (
	"time"
)

// AuditEvent records one terminal decision of the request pipeline: an
// access denial, an authentication failure, a successful send or an
// upstream error. Secrets are never stored.
type AuditEvent struct {
	ID        string
	ClientID  string
	IP        string
	Action    string
	Outcome   string
	Detail    string
	CreatedAt time.Time
}

// Audit outcomes.
const (
	OutcomeAllowed = "allowed"
	OutcomeDenied  = "denied"
	OutcomeSent    = "sent"
	OutcomeError   = "error"
)

type SchemaMigration struct {
	Version   int
	AppliedAt time.Time
}
