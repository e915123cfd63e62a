package user

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/rajputgovind/Trip--Project-Apis/internal/domain/role"
	"github.com/rajputgovind/Trip--Project-Apis/internal/pagination"
	"github.com/rajputgovind/Trip--Project-Apis/internal/utils"
)

const otpTTL = 5 * time.Minute

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^[0-9]{10}$`)
)

type Store interface {
	Create(ctx context.Context, u User) (*User, error)
	Get(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u *User) error
	ListByRole(ctx context.Context, roleID string) ([]User, error)
	CountByRole(ctx context.Context, roleID string) (int, error)
}

type RoleDirectory interface {
	Get(ctx context.Context, id string) (*role.Role, error)
	GetByName(ctx context.Context, roleName string) (*role.Role, error)
}

type TripCounter interface {
	Count(ctx context.Context) (int, error)
}

// Notifier receives account events that result in an email. Implementations
// must not block; delivery failures stay on their side of the seam.
type Notifier interface {
	OrganizerRegistered(name, email, roleName string)
	OrganizerDecision(name, email string, approved bool)
	PasswordResetOTP(email, otp string)
}

// TokenSigner mints the bearer token returned at login.
type TokenSigner func(userID, email, roleName string, isOrganizer bool) (string, error)

type Service struct {
	store  Store
	roles  RoleDirectory
	trips  TripCounter
	notify Notifier
	sign   TokenSigner
}

func NewService(store Store, roles RoleDirectory, trips TripCounter, notify Notifier, sign TokenSigner) *Service {
	return &Service{store: store, roles: roles, trips: trips, notify: notify, sign: sign}
}

// WithRole is a user with its role record joined in place of the role id.
type WithRole struct {
	User
	Role *role.Role `json:"role"`
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	in.Trim()
	if err := validateRegister(in); err != nil {
		return nil, err
	}

	rl, err := s.roles.Get(ctx, in.RoleID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid role", ErrBadRequest)
	}

	existing, err := s.store.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: the email already exists", ErrDuplicate)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	u := User{
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		BirthDate: in.BirthDate,
		Password:  string(hash),
		RoleID:    in.RoleID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	out, err := s.store.Create(ctx, u)
	if err != nil {
		return nil, err
	}

	// Organizer sign-ups need an admin decision before they can log in.
	if rl.RoleName == role.Organizer {
		s.notify.OrganizerRegistered(out.Name, out.Email, rl.RoleName)
	}
	return out, nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (*WithRole, string, error) {
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" || in.Password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", ErrBadRequest)
	}

	u, err := s.store.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, "", err
	}
	if u == nil {
		return nil, "", fmt.Errorf("%w: the user does not exist", ErrNotFound)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(in.Password)) != nil {
		return nil, "", fmt.Errorf("%w: invalid login credentials", ErrUnauthorized)
	}

	rl, err := s.roles.Get(ctx, u.RoleID)
	if err != nil {
		return nil, "", err
	}

	if u.IsDeleted {
		return nil, "", fmt.Errorf("%w: this account has been deleted by the admin", ErrUnauthorized)
	}
	if rl.RoleName == role.Organizer && !u.IsOrganizer {
		return nil, "", fmt.Errorf("%w: the admin has not approved you as an organizer", ErrUnauthorized)
	}

	token, err := s.sign(u.ID, u.Email, rl.RoleName, u.IsOrganizer)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}
	return &WithRole{User: *u, Role: rl}, token, nil
}

func (s *Service) Get(ctx context.Context, id string) (*WithRole, error) {
	u, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	rl, err := s.roles.Get(ctx, u.RoleID)
	if err != nil {
		rl = nil // broken role link keeps the user visible
	}
	return &WithRole{User: *u, Role: rl}, nil
}

// GetOrganizer resolves a single user and reports not-found unless its role
// is Organizer.
func (s *Service) GetOrganizer(ctx context.Context, id string) (*WithRole, error) {
	out, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if out.Role == nil || out.Role.RoleName != role.Organizer {
		return nil, fmt.Errorf("%w: organizer %s", ErrNotFound, id)
	}
	return out, nil
}

// ListByRoleName returns non-deleted users of the named role, filtered by a
// case-insensitive name/email search and paginated.
func (s *Service) ListByRoleName(ctx context.Context, roleName, search string, page, limit int) (*pagination.Page[WithRole], error) {
	rl, err := s.roles.GetByName(ctx, roleName)
	if err != nil {
		return nil, err
	}
	if rl == nil {
		return nil, fmt.Errorf("%w: role %s", ErrNotFound, roleName)
	}

	users, err := s.store.ListByRole(ctx, rl.ID)
	if err != nil {
		return nil, err
	}

	needle := utils.NormalizeNameLower(search)
	out := make([]WithRole, 0, len(users))
	for _, u := range users {
		if needle != "" &&
			!strings.Contains(utils.NormalizeNameLower(u.Name), needle) &&
			!strings.Contains(strings.ToLower(u.Email), needle) {
			continue
		}
		uu := u
		out = append(out, WithRole{User: uu, Role: rl})
	}

	return pagination.Paginate(out, page, limit), nil
}

func (s *Service) UpdateProfile(ctx context.Context, id string, in UpdateProfileInput) (*User, error) {
	u, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if len(name) < 3 {
			return nil, fmt.Errorf("%w: name must contain at least 3 characters", ErrBadRequest)
		}
		u.Name = name
	}
	if in.Phone != nil {
		if !phoneRe.MatchString(*in.Phone) {
			return nil, fmt.Errorf("%w: phone number must be 10 digits", ErrBadRequest)
		}
		u.Phone = *in.Phone
	}
	if in.BirthDate != nil {
		if err := validateBirthDate(*in.BirthDate); err != nil {
			return nil, err
		}
		u.BirthDate = *in.BirthDate
	}
	if in.Password != nil {
		if len(*in.Password) < 6 {
			return nil, fmt.Errorf("%w: password must contain at least 6 characters", ErrBadRequest)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		u.Password = string(hash)
	}
	if in.ProfileImage != nil {
		u.ProfileImage = *in.ProfileImage
	}

	u.UpdatedAt = time.Now().UTC()
	if err := s.store.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// SoftDelete flags the account as deleted; the record is retained.
func (s *Service) SoftDelete(ctx context.Context, id string) (*User, error) {
	u, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	u.IsDeleted = true
	u.UpdatedAt = time.Now().UTC()
	if err := s.store.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ApproveOrganizer records the admin decision on an organizer account and
// notifies the applicant.
func (s *Service) ApproveOrganizer(ctx context.Context, id string, approved bool) (*User, error) {
	u, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	rl, err := s.roles.Get(ctx, u.RoleID)
	if err != nil {
		return nil, err
	}
	if rl.RoleName != role.Organizer {
		return nil, fmt.Errorf("%w: user is not an organizer", ErrBadRequest)
	}

	u.IsOrganizer = approved
	u.UpdatedAt = time.Now().UTC()
	if err := s.store.Update(ctx, u); err != nil {
		return nil, err
	}

	s.notify.OrganizerDecision(u.Name, u.Email, approved)
	return u, nil
}

func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.store.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return err
	}
	if u == nil {
		return fmt.Errorf("%w: user does not exist", ErrNotFound)
	}

	otp, err := generateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate otp: %w", err)
	}

	u.OTP = &OTP{Value: otp, Expire: time.Now().UTC().Add(otpTTL)}
	u.UpdatedAt = time.Now().UTC()
	if err := s.store.Update(ctx, u); err != nil {
		return err
	}

	s.notify.PasswordResetOTP(u.Email, otp)
	return nil
}

func (s *Service) ResetPassword(ctx context.Context, email, otp, password string) error {
	u, err := s.store.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return err
	}
	if u == nil {
		return fmt.Errorf("%w: user does not exist", ErrNotFound)
	}

	if u.OTP == nil || u.OTP.Value != otp {
		return fmt.Errorf("%w: incorrect OTP", ErrBadRequest)
	}
	if u.OTP.Expired(time.Now().UTC()) {
		u.OTP = nil
		_ = s.store.Update(ctx, u)
		return fmt.Errorf("%w: OTP expired", ErrBadRequest)
	}
	if len(password) < 6 {
		return fmt.Errorf("%w: password must contain at least 6 characters", ErrBadRequest)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil {
		return fmt.Errorf("%w: current password and new password cannot be the same", ErrBadRequest)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	u.Password = string(hash)
	u.OTP = nil
	u.UpdatedAt = time.Now().UTC()
	return s.store.Update(ctx, u)
}

// Counts reports the admin dashboard totals.
type Counts struct {
	Users      int `json:"users"`
	Organizers int `json:"organizers"`
	Trips      int `json:"trips"`
}

func (s *Service) CountAll(ctx context.Context) (*Counts, error) {
	userRole, err := s.roles.GetByName(ctx, role.User)
	if err != nil {
		return nil, err
	}
	organizerRole, err := s.roles.GetByName(ctx, role.Organizer)
	if err != nil {
		return nil, err
	}

	var c Counts
	if userRole != nil {
		if c.Users, err = s.store.CountByRole(ctx, userRole.ID); err != nil {
			return nil, err
		}
	}
	if organizerRole != nil {
		if c.Organizers, err = s.store.CountByRole(ctx, organizerRole.ID); err != nil {
			return nil, err
		}
	}
	if c.Trips, err = s.trips.Count(ctx); err != nil {
		return nil, err
	}
	return &c, nil
}

func validateRegister(in RegisterInput) error {
	if len(in.Name) < 3 {
		return fmt.Errorf("%w: name must contain at least 3 characters", ErrBadRequest)
	}
	if !emailRe.MatchString(in.Email) {
		return fmt.Errorf("%w: please enter a valid email", ErrBadRequest)
	}
	if !phoneRe.MatchString(in.Phone) {
		return fmt.Errorf("%w: phone number must be 10 digits", ErrBadRequest)
	}
	if err := validateBirthDate(in.BirthDate); err != nil {
		return err
	}
	if len(in.Password) < 6 {
		return fmt.Errorf("%w: password must contain at least 6 characters", ErrBadRequest)
	}
	if in.RoleID == "" {
		return fmt.Errorf("%w: role is required", ErrBadRequest)
	}
	return nil
}

func validateBirthDate(s string) error {
	dob, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("%w: invalid birth date format, want YYYY-MM-DD", ErrBadRequest)
	}
	if !dob.Before(time.Now()) {
		return fmt.Errorf("%w: date of birth must be in the past", ErrBadRequest)
	}
	return nil
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
