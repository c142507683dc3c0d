package domain

import "time"

// ComplaintStatus tracks how far a complaint has been handled.
type ComplaintStatus string

const (
	ComplaintOpen       ComplaintStatus = "open"
	ComplaintInProgress ComplaintStatus = "in_progress"
	ComplaintResolved   ComplaintStatus = "resolved"
)

// Complaint is feedback a user files with the club.
type Complaint struct {
	ID        int64           `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    int64           `json:"user_id" gorm:"column:user_id"`
	Subject   string          `json:"subject"`
	Message   string          `json:"message"`
	Status    ComplaintStatus `json:"status"`
	Response  string          `json:"response,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (Complaint) TableName() string { return "complaints" }
