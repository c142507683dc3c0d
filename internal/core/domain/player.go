package domain

import "time"

// Player is a member of the first-team roster.
type Player struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name"`
	Number      int       `json:"number"`
	Position    string    `json:"position"`
	Nationality string    `json:"nationality"`
	Photo       string    `json:"photo,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Player) TableName() string { return "players" }
