package domain

import "time"

type VerificationStatus string

const (
	PublisherUnverified VerificationStatus = "unverified"
	PublisherPending    VerificationStatus = "pending"
	PublisherVerified   VerificationStatus = "verified"
)

type Publisher struct {
	ID                 int                `json:"id"`
	Name               string             `json:"name"`
	Description        string             `json:"description,omitempty"`
	VerificationStatus VerificationStatus `json:"verification_status"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

type PublisherDTO struct {
	Name               string `json:"name" binding:"required"`
	Description        string `json:"description"`
	VerificationStatus string `json:"verification_status"`
}
