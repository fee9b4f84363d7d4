// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Group type constants
const (
	GroupPublic  = "public"
	GroupPrivate = "private"
	GroupSecret  = "secret"
)

// Thread context constants
const (
	ContextGroup = "group"
	ContextEvent = "event"
)

// Users

type User struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	HashedPassword string    `json:"-"` // Never expose in JSON
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

// Groups

type Group struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Description       *string   `json:"description"`
	Icon              *string   `json:"icon"`
	CoverPhoto        *string   `json:"cover_photo"`
	Type              string    `json:"type"`
	AllowMemberPosts  bool      `json:"allow_member_posts"`
	AllowMemberEvents bool      `json:"allow_member_events"`
	CreatedByID       int64     `json:"created_by_id"`
	CreatedAt         time.Time `json:"created_at"`
}

type GroupMembership struct {
	GroupID         int64     `json:"group_id"`
	UserID          int64     `json:"user_id"`
	IsAdmin         bool      `json:"is_admin"`
	CanCreateEvents bool      `json:"can_create_events"`
	CreatedAt       time.Time `json:"created_at"`
}

type GroupDetail struct {
	Group
	Members []GroupMembership `json:"members"`
}

// Events

type Event struct {
	ID                  int64     `json:"id"`
	Name                string    `json:"name"`
	Description         *string   `json:"description"`
	StartDate           time.Time `json:"start_date"`
	EndDate             time.Time `json:"end_date"`
	Location            string    `json:"location"`
	CoverPhoto          *string   `json:"cover_photo"`
	IsPrivate           bool      `json:"is_private"`
	GroupID             *int64    `json:"group_id"`
	CarpoolEnabled      bool      `json:"carpool_enabled"`
	ShoppingListEnabled bool      `json:"shopping_list_enabled"`
	TicketingEnabled    bool      `json:"ticketing_enabled"`
	PollsEnabled        bool      `json:"polls_enabled"`
	CreatedByID         int64     `json:"created_by_id"`
	CreatedAt           time.Time `json:"created_at"`
}

type EventOrganizer struct {
	EventID   int64     `json:"event_id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type EventParticipant struct {
	EventID  int64     `json:"event_id"`
	UserID   int64     `json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
}

type EventDetail struct {
	Event
	Organizers   []EventOrganizer   `json:"organizers"`
	Participants []EventParticipant `json:"participants"`
}

// Discussions

type DiscussionThread struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Context     string    `json:"context"`
	GroupID     *int64    `json:"group_id"`
	EventID     *int64    `json:"event_id"`
	CreatedByID int64     `json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type Message struct {
	ID        int64     `json:"id"`
	ThreadID  int64     `json:"thread_id"`
	Content   string    `json:"content"`
	ParentID  *int64    `json:"parent_id"`
	AuthorID  int64     `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

type ThreadDetail struct {
	DiscussionThread
	Messages []Message `json:"messages"`
}

// Media

type PhotoAlbum struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	EventID     int64     `json:"event_id"`
	CreatedByID int64     `json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type Photo struct {
	ID           int64     `json:"id"`
	AlbumID      int64     `json:"album_id"`
	UploadedByID int64     `json:"uploaded_by_id"`
	URL          string    `json:"url"`
	Caption      *string   `json:"caption"`
	CreatedAt    time.Time `json:"created_at"`
}

type PhotoComment struct {
	ID        int64     `json:"id"`
	PhotoID   int64     `json:"photo_id"`
	AuthorID  int64     `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Polls

type Poll struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	EventID     int64     `json:"event_id"`
	CreatedByID int64     `json:"created_by_id"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// Votes is a live count, never stored
type PollOption struct {
	ID         int64  `json:"id"`
	QuestionID int64  `json:"question_id"`
	Label      string `json:"label"`
	Votes      int    `json:"votes"`
}

type PollQuestion struct {
	ID       int64        `json:"id"`
	PollID   int64        `json:"poll_id"`
	Question string       `json:"question"`
	Options  []PollOption `json:"options"`
}

type PollDetail struct {
	Poll
	Questions []PollQuestion `json:"questions"`
}

type PollVote struct {
	QuestionID int64 `json:"question_id"`
	OptionID   int64 `json:"option_id"`
	VoterID    int64 `json:"voter_id"`
}

// Ticketing

type TicketType struct {
	ID        int64     `json:"id"`
	EventID   int64     `json:"event_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// TicketTypeStock adds sales figures computed on read
type TicketTypeStock struct {
	TicketType
	Sold      int `json:"sold"`
	Remaining int `json:"remaining"`
}

type Ticket struct {
	ID                 int64     `json:"id"`
	TicketTypeID       int64     `json:"ticket_type_id"`
	PurchaserFirstName string    `json:"purchaser_first_name"`
	PurchaserLastName  string    `json:"purchaser_last_name"`
	PurchaserEmail     string    `json:"purchaser_email"`
	PurchaserAddress   *string   `json:"purchaser_address"`
	PurchasedAt        time.Time `json:"purchased_at"`
}

// Add-ons

type ShoppingItem struct {
	ID          int64     `json:"id"`
	EventID     int64     `json:"event_id"`
	Name        string    `json:"name"`
	Quantity    int       `json:"quantity"`
	ArrivalTime time.Time `json:"arrival_time"`
	OwnerID     int64     `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type CarpoolOffer struct {
	ID                int64     `json:"id"`
	EventID           int64     `json:"event_id"`
	DriverID          int64     `json:"driver_id"`
	DepartureLocation string    `json:"departure_location"`
	DepartureTime     time.Time `json:"departure_time"`
	Price             float64   `json:"price"`
	AvailableSeats    int       `json:"available_seats"`
	MaxDetourMinutes  int       `json:"max_detour_minutes"`
	CreatedAt         time.Time `json:"created_at"`
}

// Error response

type ErrorResponse struct {
	Detail string `json:"detail"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
