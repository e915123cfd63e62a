package role

import "time"

const (
	Admin     = "Admin"
	Organizer = "Organizer"
	User      = "User"
)

type Role struct {
	ID        string    `firestore:"id" json:"id"`
	RoleName  string    `firestore:"roleName" json:"roleName"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}
