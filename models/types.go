package models

import "time"

// MaxWishes is how many wishes a participant may list.
const MaxWishes = 3

// Setting names
const (
	SettingWishesLocked = "wishes_locked"
)

// Request types

type WishInput struct {
	Description string `json:"description"`
	Link        string `json:"link"`
}

type RegisterRequest struct {
	CharacterName string      `json:"character_name"`
	FirstName     string      `json:"first_name"`
	LastName      string      `json:"last_name"`
	Email         string      `json:"email"`
	Wishes        []WishInput `json:"wishes"`
	Comments      string      `json:"comments"`
}

type UpdateWishesRequest struct {
	Wishes   []WishInput `json:"wishes"`
	Comments string      `json:"comments"`
}

// Response types

type RegisterResponse struct {
	ParticipantID    string `json:"participant_id"`
	ParticipantToken string `json:"participant_token"`
}

type SecretFriendResponse struct {
	CharacterName string `json:"character_name"`
	Wishes        []Wish `json:"wishes"`
	Comments      string `json:"comments"`
}

type DrawResponse struct {
	Performed        bool       `json:"performed"`
	DrawID           string     `json:"draw_id,omitempty"`
	ParticipantCount int        `json:"participant_count"`
	Attempts         int        `json:"attempts,omitempty"`
	DrawnAt          *time.Time `json:"drawn_at,omitempty"`
	Message          string     `json:"message"`
}

type WishesLockResponse struct {
	WishesLocked bool `json:"wishes_locked"`
}

type NotifyResponse struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// Domain types

type Wish struct {
	Slot        int    `json:"slot"`
	Description string `json:"description"`
	Link        string `json:"link,omitempty"`
}

type Participant struct {
	ID            string    `json:"id"`
	CharacterName string    `json:"character_name"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	Token         string    `json:"-"` // Never expose in JSON
	Comments      string    `json:"comments"`
	Wishes        []Wish    `json:"wishes"`
	CreatedAt     time.Time `json:"created_at"`
}

// Draw records one successful assignment run.
type Draw struct {
	ID               string    `json:"id"`
	ParticipantCount int       `json:"participant_count"`
	Attempts         int       `json:"attempts"`
	DrawnAt          time.Time `json:"drawn_at"`
}

type Stats struct {
	TotalParticipants int    `json:"total_participants"`
	TotalAssignments  int    `json:"total_assignments"`
	WishesLocked      bool   `json:"wishes_locked"`
	LastDraw          *Draw  `json:"last_draw,omitempty"`
	Topic             string `json:"topic,omitempty"`
	Year              int    `json:"year,omitempty"`
}

// Letter is what a giver receives about their recipient.
type Letter struct {
	GiverID            string
	GiverFirstName     string
	GiverEmail         string
	RecipientCharacter string
	RecipientComments  string
	Wishes             []Wish
}

// AssignmentRow is one line of the assignment CSV export.
type AssignmentRow struct {
	GiverCharacter     string `csv:"giver"`
	GiverEmail         string `csv:"giver_email"`
	RecipientCharacter string `csv:"recipient"`
	DrawID             string `csv:"draw_id"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
