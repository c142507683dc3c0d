package domain

import "time"

// TicketStatus is the state of a purchased ticket.
type TicketStatus string

const (
	TicketActive    TicketStatus = "active"
	TicketCancelled TicketStatus = "cancelled"
)

// Ticket grants a user entry to one match.
type Ticket struct {
	ID          int64        `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID      int64        `json:"user_id" gorm:"column:user_id"`
	MatchID     int64        `json:"match_id" gorm:"column:match_id"`
	SeatSection string       `json:"seat_section" gorm:"column:seat_section"`
	Price       int64        `json:"price"`
	Code        string       `json:"code"`
	Status      TicketStatus `json:"status"`
	PurchasedAt time.Time    `json:"purchased_at" gorm:"column:purchased_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (Ticket) TableName() string { return "tickets" }
