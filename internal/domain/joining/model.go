package joining

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Request is a user's application to join a trip. At most one request exists
// per (user, trip) pair; the repo derives the doc id from that pair.
type Request struct {
	ID         string    `firestore:"id" json:"id"`
	UserID     string    `firestore:"user" json:"user"`
	TripID     string    `firestore:"trip" json:"trip"`
	Status     string    `firestore:"status" json:"status"`
	UploadFile string    `firestore:"uploadFile" json:"uploadFile,omitempty"`
	CreatedAt  time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// Metadata is one intake-form field captured alongside a Request. Rows are
// written once at creation and never updated.
type Metadata struct {
	ID        string    `firestore:"id" json:"id"`
	JoiningID string    `firestore:"joining" json:"joining"`
	Key       string    `firestore:"key" json:"key"`
	Value     string    `firestore:"value" json:"value"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}
