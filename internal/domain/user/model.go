package user

import (
	"strings"
	"time"
)

type User struct {
	ID           string    `firestore:"id" json:"id"`
	Name         string    `firestore:"name" json:"name"`
	Email        string    `firestore:"email" json:"email"`
	Phone        string    `firestore:"phone" json:"phone"`
	BirthDate    string    `firestore:"birthDate" json:"birthDate"`
	Password     string    `firestore:"password" json:"-"`
	RoleID       string    `firestore:"role" json:"role"`
	IsOrganizer  bool      `firestore:"isOrganizer" json:"isOrganizer"`
	IsDeleted    bool      `firestore:"isDeleted" json:"isDeleted"`
	ProfileImage string    `firestore:"profileImage,omitempty" json:"profileImage,omitempty"`
	OTP          *OTP      `firestore:"otp,omitempty" json:"-"`
	CreatedAt    time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// OTP is a one-time password issued for a password reset.
type OTP struct {
	Value  string    `firestore:"value" json:"value"`
	Expire time.Time `firestore:"expire" json:"expire"`
}

func (o *OTP) Expired(now time.Time) bool {
	return o == nil || now.After(o.Expire)
}

type RegisterInput struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	BirthDate string `json:"birthDate"`
	Password  string `json:"password"`
	RoleID    string `json:"role"`
}

func (in *RegisterInput) Trim() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.BirthDate = strings.TrimSpace(in.BirthDate)
	in.RoleID = strings.TrimSpace(in.RoleID)
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileInput carries the profile fields a user may change. Nil
// pointers leave the stored value untouched.
type UpdateProfileInput struct {
	Name         *string `json:"name,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	BirthDate    *string `json:"birthDate,omitempty"`
	Password     *string `json:"password,omitempty"`
	ProfileImage *string `json:"profileImage,omitempty"`
}
