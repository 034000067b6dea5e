package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfileStatus defines the verification review states of an agent profile.
type ProfileStatus string

const (
	StatusPending  ProfileStatus = "pending"
	StatusApproved ProfileStatus = "approved"
	StatusRejected ProfileStatus = "rejected"
)

// ReferredUser is one tracked referral and its reward.
type ReferredUser struct {
	UserID string    `bson:"user_id" json:"userId"`
	Reward float64   `bson:"reward" json:"reward"`
	Date   time.Time `bson:"date" json:"date"`
}

// Referral is the referral sub-record of an agent profile.
type Referral struct {
	Code          string         `bson:"code,omitempty" json:"code,omitempty"`
	TotalEarnings float64        `bson:"total_earnings" json:"totalEarnings"`
	ReferredUsers []ReferredUser `bson:"referred_users" json:"referredUsers"`
}

// RecentSale records a single sale/rental attributed to an agent.
type RecentSale struct {
	PropertyID primitive.ObjectID `bson:"property_id,omitempty" json:"propertyId,omitempty"`
	Amount     float64            `bson:"amount" json:"amount"`
	Date       time.Time          `bson:"date" json:"date"`
}

// RecentBooking records a single booking attributed to an agent.
type RecentBooking struct {
	PropertyID primitive.ObjectID `bson:"property_id,omitempty" json:"propertyId,omitempty"`
	ClientID   string             `bson:"client_id,omitempty" json:"clientId,omitempty"`
	Date       time.Time          `bson:"date" json:"date"`
}

// SalesStats tracks a running total plus a bounded recent-activity list.
type SalesStats struct {
	Total  int          `bson:"total" json:"total"`
	Recent []RecentSale `bson:"recent" json:"recent"`
}

// BookingStats tracks booking totals plus a bounded recent-activity list.
type BookingStats struct {
	Total  int             `bson:"total" json:"total"`
	Recent []RecentBooking `bson:"recent" json:"recent"`
}

// NotificationState holds per-agent notification bookkeeping.
type NotificationState struct {
	Enabled     bool      `bson:"enabled" json:"enabled"`
	UnreadCount int       `bson:"unread_count" json:"unreadCount"`
	LastChecked time.Time `bson:"last_checked" json:"lastChecked"`
}

// AgentProfile is the locally-stored profile of a real-estate agent.
// Identity is owned by the external Auth service; UserID is the link.
// At most one profile exists per external user id (unique index).
type AgentProfile struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID string             `bson:"user_id" json:"userId"`

	AgencyName  string   `bson:"agency_name,omitempty" json:"agencyName,omitempty"`
	AgencyEmail string   `bson:"agency_email,omitempty" json:"agencyEmail,omitempty"`
	AgencyPhone string   `bson:"agency_phone,omitempty" json:"agencyPhone,omitempty"`
	Phone       string   `bson:"phone,omitempty" json:"phone,omitempty"`
	State       string   `bson:"state,omitempty" json:"state,omitempty"`
	Languages   []string `bson:"languages,omitempty" json:"languages,omitempty"`
	About       string   `bson:"about,omitempty" json:"about,omitempty"`
	OtherInfo   string   `bson:"other_info,omitempty" json:"otherInfo,omitempty"`

	ProfileImage string `bson:"profile_image,omitempty" json:"profileImage,omitempty"`
	CoverImage   string `bson:"cover_image,omitempty" json:"coverImage,omitempty"`
	AgencyLogo   string `bson:"agency_logo,omitempty" json:"agencyLogo,omitempty"`
	NationalID   string `bson:"national_id,omitempty" json:"nationalId,omitempty"`

	Status        ProfileStatus `bson:"status" json:"status"`
	ReviewMessage string        `bson:"review_message,omitempty" json:"reviewMessage,omitempty"`
	SubmittedAt   time.Time     `bson:"submitted_at" json:"submittedAt"`
	ReviewedAt    *time.Time    `bson:"reviewed_at,omitempty" json:"reviewedAt,omitempty"`

	// Relationship lists hold external ids only, no ownership.
	Clients      []string `bson:"clients,omitempty" json:"clients,omitempty"`
	Handymen     []string `bson:"handymen,omitempty" json:"handymen,omitempty"`
	FellowAgents []string `bson:"fellow_agents,omitempty" json:"fellowAgents,omitempty"`

	Sales  SalesStats   `bson:"sales" json:"sales"`
	Rented SalesStats   `bson:"rented" json:"rented"`
	Booked BookingStats `bson:"booked" json:"booked"`

	Referral      Referral          `bson:"referral" json:"referral"`
	Notifications NotificationState `bson:"notifications" json:"notifications"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// EnrichedProfile is a profile merged with its remote identity record.
// User is nil when the Auth service could not be reached.
type EnrichedProfile struct {
	AgentProfile `bson:",inline"`
	User         *RemoteUser `json:"user"`
}
