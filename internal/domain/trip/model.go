package trip

import (
	"strings"
	"time"
)

// Enumerated values accepted by trip create/update and list filters.
var (
	Durations  = []string{"One week", "Two weeks", "Month", "More than a month"}
	GroupTypes = []string{"Male", "Female", "Families"}
	TripTypes  = []string{"Adventure", "Hunt", "Historical", "Nature"}
)

type Trip struct {
	ID             string    `firestore:"id" json:"id"`
	TripName       string    `firestore:"tripName" json:"tripName"`
	Country        string    `firestore:"country" json:"country"`
	TripDate       time.Time `firestore:"tripDate" json:"tripDate"`
	TripDuration   string    `firestore:"tripDuration" json:"tripDuration"`
	TripIncludes   []string  `firestore:"tripIncludes" json:"tripIncludes"`
	MainTripImage  string    `firestore:"mainTripImage" json:"mainTripImage"`
	TripPrice      float64   `firestore:"tripPrice" json:"tripPrice"`
	GroupType      string    `firestore:"groupType" json:"groupType"`
	TripType       string    `firestore:"tripType" json:"tripType"`
	ContactName    string    `firestore:"contactName" json:"contactName"`
	ContactPhone   string    `firestore:"contactPhone" json:"contactPhone"`
	ContactEmail   string    `firestore:"contactEmail" json:"contactEmail"`
	DestinationIDs []string  `firestore:"destination" json:"destination"`
	DocumentID     string    `firestore:"document" json:"document"`
	UserID         string    `firestore:"user" json:"user"`
	CreatedAt      time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `firestore:"updatedAt" json:"updatedAt"`
}

type CreateInput struct {
	TripName       string   `json:"tripName"`
	Country        string   `json:"country"`
	TripDate       string   `json:"tripDate"`
	TripDuration   string   `json:"tripDuration"`
	TripIncludes   []string `json:"tripIncludes"`
	MainTripImage  string   `json:"mainTripImage"`
	TripPrice      float64  `json:"tripPrice"`
	GroupType      string   `json:"groupType"`
	TripType       string   `json:"tripType"`
	ContactName    string   `json:"contactName"`
	ContactPhone   string   `json:"contactPhone"`
	ContactEmail   string   `json:"contactEmail"`
	DestinationIDs []string `json:"destination"`
	DocumentID     string   `json:"document"`
}

func (in *CreateInput) Trim() {
	in.TripName = strings.TrimSpace(in.TripName)
	in.Country = strings.TrimSpace(in.Country)
	in.TripDate = strings.TrimSpace(in.TripDate)
	in.TripDuration = strings.TrimSpace(in.TripDuration)
	in.MainTripImage = strings.TrimSpace(in.MainTripImage)
	in.GroupType = strings.TrimSpace(in.GroupType)
	in.TripType = strings.TrimSpace(in.TripType)
	in.ContactName = strings.TrimSpace(in.ContactName)
	in.ContactPhone = strings.TrimSpace(in.ContactPhone)
	in.ContactEmail = strings.TrimSpace(in.ContactEmail)
	in.DocumentID = strings.TrimSpace(in.DocumentID)
	for i := range in.TripIncludes {
		in.TripIncludes[i] = strings.TrimSpace(in.TripIncludes[i])
	}
	for i := range in.DestinationIDs {
		in.DestinationIDs[i] = strings.TrimSpace(in.DestinationIDs[i])
	}
}

type UpdateInput struct {
	TripName       *string   `json:"tripName,omitempty"`
	Country        *string   `json:"country,omitempty"`
	TripDate       *string   `json:"tripDate,omitempty"`
	TripDuration   *string   `json:"tripDuration,omitempty"`
	TripIncludes   *[]string `json:"tripIncludes,omitempty"`
	MainTripImage  *string   `json:"mainTripImage,omitempty"`
	TripPrice      *float64  `json:"tripPrice,omitempty"`
	GroupType      *string   `json:"groupType,omitempty"`
	TripType       *string   `json:"tripType,omitempty"`
	ContactName    *string   `json:"contactName,omitempty"`
	ContactPhone   *string   `json:"contactPhone,omitempty"`
	ContactEmail   *string   `json:"contactEmail,omitempty"`
	DestinationIDs *[]string `json:"destination,omitempty"`
	DocumentID     *string   `json:"document,omitempty"`
}

func validEnum(allowed []string, v string) bool {
	for _, a := range allowed {
		if a == v {
			return true
		}
	}
	return false
}
