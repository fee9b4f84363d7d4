// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Auth

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"required,min=1,max=255"`
	Password string `json:"password" validate:"required,min=8"`
}

// TokenRequest is the password grant. Username carries the email.
type TokenRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Groups

type CreateGroupRequest struct {
	Name              string  `json:"name" validate:"required,min=1,max=255"`
	Description       *string `json:"description"`
	Icon              *string `json:"icon" validate:"omitempty,max=255"`
	CoverPhoto        *string `json:"cover_photo" validate:"omitempty,max=255"`
	Type              string  `json:"type" validate:"required,oneof=public private secret"`
	AllowMemberPosts  *bool   `json:"allow_member_posts"`
	AllowMemberEvents *bool   `json:"allow_member_events"`
}

type AddMemberRequest struct {
	UserID          int64 `json:"user_id" validate:"required,gt=0"`
	IsAdmin         bool  `json:"is_admin"`
	CanCreateEvents bool  `json:"can_create_events"`
}

// Nil fields are left unchanged
type UpdateMemberRequest struct {
	IsAdmin         *bool `json:"is_admin"`
	CanCreateEvents *bool `json:"can_create_events"`
}

// Events

type CreateEventRequest struct {
	Name                string    `json:"name" validate:"required,min=1,max=255"`
	Description         *string   `json:"description"`
	StartDate           time.Time `json:"start_date" validate:"required"`
	EndDate             time.Time `json:"end_date" validate:"required"`
	Location            string    `json:"location" validate:"required,min=1,max=255"`
	CoverPhoto          *string   `json:"cover_photo" validate:"omitempty,max=255"`
	IsPrivate           bool      `json:"is_private"`
	GroupID             *int64    `json:"group_id" validate:"omitempty,gt=0"`
	CarpoolEnabled      bool      `json:"carpool_enabled"`
	ShoppingListEnabled bool      `json:"shopping_list_enabled"`
	TicketingEnabled    bool      `json:"ticketing_enabled"`
	PollsEnabled        *bool     `json:"polls_enabled"`
	OrganizerIDs        []int64   `json:"organizer_ids" validate:"dive,gt=0"`
}

type UserRefRequest struct {
	UserID int64 `json:"user_id" validate:"required,gt=0"`
}

// Discussions

type CreateThreadRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=255"`
	Context string `json:"context" validate:"required,oneof=group event"`
	GroupID *int64 `json:"group_id"`
	EventID *int64 `json:"event_id"`
}

type CreateMessageRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=2000"`
	ParentID *int64 `json:"parent_id"`
}

// Media

type CreateAlbumRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

type CreatePhotoRequest struct {
	URL     string  `json:"url" validate:"required"`
	Caption *string `json:"caption"`
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}

// Polls

type CreatePollRequest struct {
	Title     string               `json:"title" validate:"required,min=1,max=255"`
	Questions []PollQuestionCreate `json:"questions" validate:"dive"`
}

type PollQuestionCreate struct {
	Question string             `json:"question" validate:"required,min=1,max=500"`
	Options  []PollOptionCreate `json:"options" validate:"dive"`
}

type PollOptionCreate struct {
	Label string `json:"label" validate:"required,min=1,max=255"`
}

// VoteItem is one (question, option) choice; a vote submission is a JSON array of these
type VoteItem struct {
	QuestionID int64 `json:"question_id" validate:"required,gt=0"`
	OptionID   int64 `json:"option_id" validate:"required,gt=0"`
}

// Ticketing

type CreateTicketTypeRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=255"`
	Price    float64 `json:"price" validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"gte=0"`
}

type PurchaseTicketRequest struct {
	PurchaserFirstName string  `json:"purchaser_first_name" validate:"required,max=255"`
	PurchaserLastName  string  `json:"purchaser_last_name" validate:"required,max=255"`
	PurchaserEmail     string  `json:"purchaser_email" validate:"required,email"`
	PurchaserAddress   *string `json:"purchaser_address"`
}

// Add-ons

type CreateShoppingItemRequest struct {
	Name        string    `json:"name" validate:"required,min=1,max=255"`
	Quantity    int       `json:"quantity" validate:"gte=1"`
	ArrivalTime time.Time `json:"arrival_time" validate:"required"`
}

type CreateCarpoolRequest struct {
	DepartureLocation string    `json:"departure_location" validate:"required,min=1,max=255"`
	DepartureTime     time.Time `json:"departure_time" validate:"required"`
	Price             float64   `json:"price" validate:"gte=0"`
	AvailableSeats    int       `json:"available_seats" validate:"gte=1"`
	MaxDetourMinutes  int       `json:"max_detour_minutes" validate:"gte=0"`
}
