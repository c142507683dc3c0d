package domain

import (
	"strconv"
	"time"
)

// Audit actions.
const (
	AuditLogin         = "auth.login"
	AuditLoginFailed   = "auth.login_failed"
	AuditRegister      = "auth.register"
	AuditUpload        = "upload.stored"
	AuditAccountStatus = "admin.account_status"
	AuditTicketBought  = "ticket.purchased"
	AuditTicketVoided  = "ticket.cancelled"
)

// AuditEntry records a security-relevant action.
type AuditEntry struct {
	Action    string            `json:"action"`
	ActorRole Role              `json:"actor_role,omitempty"`
	ActorID   int64             `json:"actor_id,omitempty"`
	Subject   string            `json:"subject,omitempty"`
	Detail    map[string]string `json:"detail,omitempty"`
	At        time.Time         `json:"at"`
}

// ShardKey groups entries so that one actor's trail stays ordered.
func (e AuditEntry) ShardKey() string {
	if e.ActorID == 0 {
		return string(e.ActorRole) + ":" + e.Subject
	}
	return string(e.ActorRole) + ":" + strconv.FormatInt(e.ActorID, 10)
}
