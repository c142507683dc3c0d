package handler

import (
	"time"

	"github.com/matchday/club-api/internal/api/response"
	"github.com/matchday/club-api/internal/core/domain"
)

// --- Accounts ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone"    validate:"omitempty,max=30"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type adminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type profileRequest struct {
	Name  string `json:"name"  validate:"omitempty,max=100"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"omitempty,max=30"`
}

type userStatusRequest struct {
	Active *bool `json:"active" validate:"required"`
}

type sessionResponse struct {
	Success bool              `json:"success" example:"true"`
	Token   string            `json:"token"`
	User    *domain.Principal `json:"user"`
}

type principalResponse struct {
	Success bool              `json:"success" example:"true"`
	User    *domain.Principal `json:"user"`
}

type userListResponse struct {
	Success    bool                `json:"success" example:"true"`
	Users      []*domain.User      `json:"users"`
	Pagination response.Pagination `json:"pagination"`
}

type auditListResponse struct {
	Success bool                `json:"success" example:"true"`
	Entries []domain.AuditEntry `json:"entries"`
}

// --- Club content ---

type matchRequest struct {
	HomeTeam       string             `json:"home_team"       validate:"required,max=100"`
	AwayTeam       string             `json:"away_team"       validate:"required,max=100"`
	Competition    string             `json:"competition"     validate:"max=100"`
	Venue          string             `json:"venue"           validate:"max=150"`
	KickoffAt      time.Time          `json:"kickoff_at"      validate:"required"`
	Status         domain.MatchStatus `json:"status"          validate:"omitempty,oneof=scheduled live finished postponed"`
	HomeScore      int                `json:"home_score"      validate:"gte=0"`
	AwayScore      int                `json:"away_score"      validate:"gte=0"`
	TicketPrice    int64              `json:"ticket_price"    validate:"gte=0"`
	SeatsAvailable int                `json:"seats_available" validate:"gte=0"`
}

func (r matchRequest) toDomain() *domain.Match {
	return &domain.Match{
		HomeTeam:       r.HomeTeam,
		AwayTeam:       r.AwayTeam,
		Competition:    r.Competition,
		Venue:          r.Venue,
		KickoffAt:      r.KickoffAt.UTC(),
		Status:         r.Status,
		HomeScore:      r.HomeScore,
		AwayScore:      r.AwayScore,
		TicketPrice:    r.TicketPrice,
		SeatsAvailable: r.SeatsAvailable,
	}
}

type playerRequest struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Number      int    `json:"number"      validate:"gte=0"`
	Position    string `json:"position"    validate:"required,max=50"`
	Nationality string `json:"nationality" validate:"max=60"`
	Photo       string `json:"photo"`
	Bio         string `json:"bio"`
}

func (r playerRequest) toDomain() *domain.Player {
	return &domain.Player{
		Name:        r.Name,
		Number:      r.Number,
		Position:    r.Position,
		Nationality: r.Nationality,
		Photo:       r.Photo,
		Bio:         r.Bio,
	}
}

type productRequest struct {
	Name        string `json:"name"        validate:"required,max=150"`
	Description string `json:"description"`
	Category    string `json:"category"    validate:"required,max=50"`
	Price       int64  `json:"price"       validate:"gte=0"`
	Stock       int    `json:"stock"       validate:"gte=0"`
	Image       string `json:"image"`
}

func (r productRequest) toDomain() *domain.Product {
	return &domain.Product{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Price:       r.Price,
		Stock:       r.Stock,
		Image:       r.Image,
	}
}

type newsRequest struct {
	Title     string `json:"title"   validate:"required,max=200"`
	Summary   string `json:"summary" validate:"max=500"`
	Body      string `json:"body"    validate:"required"`
	Image     string `json:"image"`
	Published bool   `json:"published"`
}

func (r newsRequest) toDomain() *domain.NewsArticle {
	return &domain.NewsArticle{
		Title:     r.Title,
		Summary:   r.Summary,
		Body:      r.Body,
		Image:     r.Image,
		Published: r.Published,
	}
}

// --- Tickets and complaints ---

type purchaseRequest struct {
	MatchID     int64  `json:"match_id"     validate:"required,gt=0"`
	SeatSection string `json:"seat_section" validate:"required,max=50"`
}

type ticketResponse struct {
	Success bool           `json:"success" example:"true"`
	Ticket  *domain.Ticket `json:"ticket"`
}

type complaintRequest struct {
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

type complaintResponseRequest struct {
	Status   domain.ComplaintStatus `json:"status"   validate:"omitempty,oneof=open in_progress resolved"`
	Response string                 `json:"response" validate:"max=5000"`
}

// --- Uploads ---

type uploadResponse struct {
	Success bool                `json:"success" example:"true"`
	Files   []domain.StoredFile `json:"files"`
}
