package models

// RemoteUser is an identity record fetched from the external Auth
// service. It is never persisted locally and never authoritative for
// anything beyond response enrichment.
type RemoteUser struct {
	ID     string `json:"_id"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Role   string `json:"role,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}
