// Package tripview composes trip read models: it joins trips with their
// organizer, destinations, document template and joining requests, applies
// list filters, and paginates the result. Each join is an explicit named step
// over the domain repos; misses never drop the parent row.
package tripview

import (
	"github.com/rajputgovind/Trip--Project-Apis/internal/domain/destination"
	"github.com/rajputgovind/Trip--Project-Apis/internal/domain/document"
	"github.com/rajputgovind/Trip--Project-Apis/internal/domain/joining"
	"github.com/rajputgovind/Trip--Project-Apis/internal/domain/trip"
	"github.com/rajputgovind/Trip--Project-Apis/internal/domain/user"
)

// TripView is a trip with its related records attached. Organizer and
// Document stay nil when the referenced record is missing.
type TripView struct {
	trip.Trip
	Organizer       *user.User                `json:"userDetails,omitempty"`
	Destinations    []destination.Destination `json:"destinationDetails"`
	Document        *document.Document        `json:"documentDetails,omitempty"`
	JoiningRequests []joining.RequestView     `json:"joiningRequests,omitempty"`
}
