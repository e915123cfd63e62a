package destination

import (
	"strings"
	"time"
)

type Destination struct {
	ID              string    `firestore:"id" json:"id"`
	City            string    `firestore:"city" json:"city"`
	DestinationDate time.Time `firestore:"destinationDate" json:"destinationDate"`
	Duration        string    `firestore:"duration" json:"duration"`
	Agenda          string    `firestore:"agenda" json:"agenda"`
	Images          []string  `firestore:"destinationImage" json:"destinationImage"`
	CreatedAt       time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `firestore:"updatedAt" json:"updatedAt"`
}

type CreateInput struct {
	City            string    `json:"city"`
	DestinationDate time.Time `json:"destinationDate"`
	Duration        string    `json:"duration"`
	Agenda          string    `json:"agenda"`
	Images          []string  `json:"destinationImage"`
}

func (in *CreateInput) Trim() {
	in.City = strings.TrimSpace(in.City)
	in.Duration = strings.TrimSpace(in.Duration)
	in.Agenda = strings.TrimSpace(in.Agenda)
}

// UpdateInput carries optional destination fields; nil leaves a field as is.
type UpdateInput struct {
	City            *string    `json:"city,omitempty"`
	DestinationDate *time.Time `json:"destinationDate,omitempty"`
	Duration        *string    `json:"duration,omitempty"`
	Agenda          *string    `json:"agenda,omitempty"`
	Images          []string   `json:"destinationImage,omitempty"`
}
