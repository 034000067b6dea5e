package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Property is a listing owned (by reference) by an agent.
// Invariant: Bedrooms and Toilets are zero iff Type is "land".
type Property struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Agent           string             `bson:"agent" json:"agent"` // external user id of the owning agent
	Title           string             `bson:"title" json:"title"`
	Location        string             `bson:"location" json:"location"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	Price           float64            `bson:"price" json:"price"`
	TransactionType string             `bson:"transaction_type,omitempty" json:"transactionType,omitempty"` // Buy / Rent / Book / Service
	Type            string             `bson:"type,omitempty" json:"type,omitempty"`
	Duration        string             `bson:"duration,omitempty" json:"duration,omitempty"`
	Bedrooms        int                `bson:"bedrooms" json:"bedrooms"`
	Toilets         int                `bson:"toilets" json:"toilets"`
	Area            string             `bson:"area,omitempty" json:"area,omitempty"`
	Features        []string           `bson:"features" json:"features"`
	Images          []string           `bson:"images" json:"images"`
	Videos          []string           `bson:"videos" json:"videos"`
	YoutubeVideos   []string           `bson:"youtube_videos" json:"youtubeVideos"`
	FileHashes      []string           `bson:"file_hashes,omitempty" json:"fileHashes,omitempty"` // content hashes, append-if-absent
	Views           int64              `bson:"views" json:"views"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updatedAt"`
}

// EnrichedAgent is the remote identity record of an agent merged with
// the local profile, attached to property responses.
type EnrichedAgent struct {
	User    *RemoteUser   `json:"user"`
	Profile *AgentProfile `json:"profile"`
}

// EnrichedProperty is a property with its owning agent attached.
type EnrichedProperty struct {
	Property `bson:",inline"`
	Agent    EnrichedAgent `json:"agent"`
}
