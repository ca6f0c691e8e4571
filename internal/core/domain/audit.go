package domain

import "time"

// AuditAction identifies the credential-lifecycle event being recorded.
type AuditAction string

const (
	AuditLoginSuccess AuditAction = "login_success"
	AuditLoginDenied  AuditAction = "login_denied"
	AuditRefresh      AuditAction = "token_refresh"
	AuditLogout       AuditAction = "logout"
)

// AuditEvent is an append-only record of an authentication event.
// Events are sharded by username in the dispatcher so that each
// account's trail stays ordered.
type AuditEvent struct {
	Username  string      `json:"username" bson:"username"`
	Action    AuditAction `json:"action" bson:"action"`
	RemoteIP  string      `json:"remote_ip" bson:"remote_ip"`
	Timestamp time.Time   `json:"timestamp" bson:"timestamp"`
}
