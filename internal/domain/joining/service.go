package joining

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/rajputgovind/Trip--Project-Apis/internal/domain/document"
	"github.com/rajputgovind/Trip--Project-Apis/internal/domain/trip"
	"github.com/rajputgovind/Trip--Project-Apis/internal/domain/user"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Store interface {
	Create(ctx context.Context, req *Request) error
	Get(ctx context.Context, id string) (*Request, error)
	FindByUserAndTrip(ctx context.Context, userID, tripID string) (*Request, error)
	ListByUser(ctx context.Context, userID string) ([]Request, error)
	Update(ctx context.Context, req *Request) error
	Delete(ctx context.Context, id string) error
	CreateMetadata(ctx context.Context, rows []Metadata) ([]Metadata, error)
	MetadataByRequestIDs(ctx context.Context, requestIDs []string) ([]Metadata, error)
}

type TripSource interface {
	Get(ctx context.Context, id string) (*trip.Trip, error)
}

type DocumentSource interface {
	Get(ctx context.Context, id string) (*document.Document, error)
}

type UserSource interface {
	Get(ctx context.Context, id string) (*user.User, error)
}

// DecisionNotice carries everything the decision mail needs.
type DecisionNotice struct {
	To            string
	UserName      string
	OrganizerName string
	Status        string
	TripName      string
	TripDate      time.Time
	TripDuration  string
}

type Notifier interface {
	JoiningDecision(ctx context.Context, n DecisionNotice) error
}

// RequestView is a Request with its requester and intake metadata attached.
type RequestView struct {
	Request
	Requester *user.User `json:"userDetails,omitempty"`
	Metadata  []Metadata `json:"metadata"`
}

type Service struct {
	store    Store
	trips    TripSource
	docs     DocumentSource
	users    UserSource
	notifier Notifier
	log      zerolog.Logger
}

func NewService(store Store, trips TripSource, docs DocumentSource, users UserSource, notifier Notifier, log zerolog.Logger) *Service {
	return &Service{store: store, trips: trips, docs: docs, users: users, notifier: notifier, log: log}
}

// Create validates the submitted form against the trip's document template,
// then persists the request followed by one metadata row per field. Any
// validation failure aborts before the first write.
func (s *Service) Create(ctx context.Context, userID, tripID string, fields map[string]string) ([]Metadata, error) {
	t, err := s.trips.Get(ctx, tripID)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.FindByUserAndTrip(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: user %s trip %s", ErrDuplicate, userID, tripID)
	}

	if err := s.validateFields(ctx, t, fields); err != nil {
		return nil, err
	}

	req := &Request{UserID: userID, TripID: tripID, Status: StatusPending}
	if err := s.store.Create(ctx, req); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]Metadata, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, Metadata{JoiningID: req.ID, Key: k, Value: fields[k]})
	}
	return s.store.CreateMetadata(ctx, rows)
}

func (s *Service) validateFields(ctx context.Context, t *trip.Trip, fields map[string]string) error {
	var declared []string
	if t.DocumentID != "" {
		tmpl, err := s.docs.Get(ctx, t.DocumentID)
		if err != nil {
			return err
		}
		declared = tmpl.DeclaredFields()
	}
	for _, key := range declared {
		if fields[key] == "" {
			return fmt.Errorf("%w: %s is required", ErrValidation, key)
		}
	}
	if v, ok := fields["email"]; ok && !emailRe.MatchString(v) {
		return fmt.Errorf("%w: invalid email", ErrValidation)
	}
	return nil
}

// Decide sets the request status and then notifies the requester. The status
// change is committed before the mail is attempted; a notification failure is
// logged and swallowed, but a store failure while resolving the requester is
// returned to the caller. The committed status survives either way.
func (s *Service) Decide(ctx context.Context, organizerID, requestID, decision string) (*RequestView, error) {
	if decision != StatusApproved && decision != StatusRejected {
		return nil, fmt.Errorf("%w: decision must be %q or %q", ErrBadRequest, StatusApproved, StatusRejected)
	}
	req, err := s.store.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	t, err := s.trips.Get(ctx, req.TripID)
	if err != nil {
		return nil, err
	}
	if t.UserID != organizerID {
		return nil, fmt.Errorf("%w: %s", ErrForbidden, requestID)
	}

	req.Status = decision
	if err := s.store.Update(ctx, req); err != nil {
		return nil, err
	}

	requester, err := s.users.Get(ctx, req.UserID)
	if err != nil {
		s.log.Error().Err(err).Str("request", requestID).Msg("decision committed but requester lookup failed")
		return nil, fmt.Errorf("resolve requester for %s: %w", requestID, err)
	}

	// The organizer name only decorates the mail; a miss is not worth failing
	// a committed decision over.
	organizerName := ""
	if organizer, err := s.users.Get(ctx, t.UserID); err == nil {
		organizerName = organizer.Name
	}
	notice := DecisionNotice{
		To:            requester.Email,
		UserName:      requester.Name,
		OrganizerName: organizerName,
		Status:        decision,
		TripName:      t.TripName,
		TripDate:      t.TripDate,
		TripDuration:  t.TripDuration,
	}
	if err := s.notifier.JoiningDecision(ctx, notice); err != nil {
		s.log.Warn().Err(err).Str("request", requestID).Msg("decision notice dispatch failed")
	}

	rows, err := s.store.MetadataByRequestIDs(ctx, []string{requestID})
	if err != nil {
		return nil, err
	}
	return &RequestView{Request: *req, Requester: requester, Metadata: rows}, nil
}

// AttachFile records an uploaded-file reference on the owner's request. A
// request carries at most one file; a second upload is rejected.
func (s *Service) AttachFile(ctx context.Context, userID, requestID, fileURL string) (*Request, error) {
	if fileURL == "" {
		return nil, fmt.Errorf("%w: file reference is required", ErrBadRequest)
	}
	req, err := s.store.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.UserID != userID {
		return nil, fmt.Errorf("%w: %s", ErrForbidden, requestID)
	}
	if req.UploadFile != "" {
		return nil, fmt.Errorf("%w: file already uploaded", ErrBadRequest)
	}
	req.UploadFile = fileURL
	if err := s.store.Update(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// Delete hard-deletes the owner's request along with its metadata rows.
func (s *Service) Delete(ctx context.Context, userID, requestID string) error {
	req, err := s.store.Get(ctx, requestID)
	if err != nil {
		return err
	}
	if req.UserID != userID {
		return fmt.Errorf("%w: %s", ErrForbidden, requestID)
	}
	return s.store.Delete(ctx, requestID)
}
