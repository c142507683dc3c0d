package domain

import "time"

// MatchStatus represents where a fixture is in its lifecycle.
type MatchStatus string

const (
	MatchScheduled MatchStatus = "scheduled"
	MatchLive      MatchStatus = "live"
	MatchFinished  MatchStatus = "finished"
	MatchPostponed MatchStatus = "postponed"
)

// Match is a fixture the club plays and sells tickets for.
type Match struct {
	ID             int64       `json:"id" gorm:"primaryKey;autoIncrement"`
	HomeTeam       string      `json:"home_team" gorm:"column:home_team"`
	AwayTeam       string      `json:"away_team" gorm:"column:away_team"`
	Competition    string      `json:"competition"`
	Venue          string      `json:"venue"`
	KickoffAt      time.Time   `json:"kickoff_at" gorm:"column:kickoff_at"`
	Status         MatchStatus `json:"status"`
	HomeScore      int         `json:"home_score"`
	AwayScore      int         `json:"away_score"`
	TicketPrice    int64       `json:"ticket_price" gorm:"column:ticket_price"`
	SeatsAvailable int         `json:"seats_available" gorm:"column:seats_available"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

func (Match) TableName() string { return "matches" }

// OnSale reports whether tickets can currently be bought for the match.
func (m *Match) OnSale() bool {
	return m.Status == MatchScheduled
}
