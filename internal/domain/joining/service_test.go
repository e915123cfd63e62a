package joining

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajputgovind/Trip--Project-Apis/internal/domain/document"
	"github.com/rajputgovind/Trip--Project-Apis/internal/domain/trip"
	"github.com/rajputgovind/Trip--Project-Apis/internal/domain/user"
)

type memStore struct {
	reqs map[string]*Request
	meta map[string]Metadata
	seq  int
}

func newMemStore() *memStore {
	return &memStore{reqs: make(map[string]*Request), meta: make(map[string]Metadata)}
}

func (s *memStore) Create(_ context.Context, req *Request) error {
	id := req.UserID + "_" + req.TripID
	if _, ok := s.reqs[id]; ok {
		return fmt.Errorf("%w: user %s trip %s", ErrDuplicate, req.UserID, req.TripID)
	}
	req.ID = id
	req.CreatedAt = time.Now().UTC()
	req.UpdatedAt = req.CreatedAt
	cp := *req
	s.reqs[id] = &cp
	return nil
}

func (s *memStore) Get(_ context.Context, id string) (*Request, error) {
	req, ok := s.reqs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	cp := *req
	return &cp, nil
}

func (s *memStore) FindByUserAndTrip(_ context.Context, userID, tripID string) (*Request, error) {
	req, ok := s.reqs[userID+"_"+tripID]
	if !ok {
		return nil, nil
	}
	cp := *req
	return &cp, nil
}

func (s *memStore) ListByUser(_ context.Context, userID string) ([]Request, error) {
	var out []Request
	for _, r := range s.reqs {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *memStore) Update(_ context.Context, req *Request) error {
	if _, ok := s.reqs[req.ID]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, req.ID)
	}
	cp := *req
	s.reqs[req.ID] = &cp
	return nil
}

func (s *memStore) Delete(_ context.Context, id string) error {
	if _, ok := s.reqs[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.reqs, id)
	for mid, m := range s.meta {
		if m.JoiningID == id {
			delete(s.meta, mid)
		}
	}
	return nil
}

func (s *memStore) CreateMetadata(_ context.Context, rows []Metadata) ([]Metadata, error) {
	for i := range rows {
		s.seq++
		rows[i].ID = fmt.Sprintf("m%d", s.seq)
		rows[i].CreatedAt = time.Now().UTC()
		s.meta[rows[i].ID] = rows[i]
	}
	return rows, nil
}

func (s *memStore) MetadataByRequestIDs(_ context.Context, requestIDs []string) ([]Metadata, error) {
	want := make(map[string]bool, len(requestIDs))
	for _, id := range requestIDs {
		want[id] = true
	}
	var out []Metadata
	for _, m := range s.meta {
		if want[m.JoiningID] {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeTrips struct {
	trips map[string]trip.Trip
}

func (f *fakeTrips) Get(_ context.Context, id string) (*trip.Trip, error) {
	t, ok := f.trips[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", trip.ErrNotFound, id)
	}
	return &t, nil
}

type fakeDocs struct {
	docs map[string]document.Document
}

func (f *fakeDocs) Get(_ context.Context, id string) (*document.Document, error) {
	d, ok := f.docs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", document.ErrNotFound, id)
	}
	return &d, nil
}

type fakeUsers struct {
	users map[string]user.User
	fail  error
}

func (f *fakeUsers) Get(_ context.Context, id string) (*user.User, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", user.ErrNotFound, id)
	}
	return &u, nil
}

type fakeNotifier struct {
	notices []DecisionNotice
	fail    bool
}

func (f *fakeNotifier) JoiningDecision(_ context.Context, n DecisionNotice) error {
	if f.fail {
		return errors.New("smtp down")
	}
	f.notices = append(f.notices, n)
	return nil
}

func serviceFixture() (*Service, *memStore, *fakeNotifier) {
	store := newMemStore()
	trips := &fakeTrips{trips: map[string]trip.Trip{
		"t1": {
			ID: "t1", TripName: "Sahara Crossing", UserID: "org1",
			DocumentID:   "doc1",
			TripDate:     time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
			TripDuration: "One week",
		},
		"t2": {ID: "t2", TripName: "Freeform Trip", UserID: "org1"},
	}}
	docs := &fakeDocs{docs: map[string]document.Document{
		"doc1": {ID: "doc1", Passport: true, Age: true},
	}}
	users := &fakeUsers{users: map[string]user.User{
		"u1":   {ID: "u1", Name: "Joiner One", Email: "one@users.example"},
		"org1": {ID: "org1", Name: "Alice Trekker", Email: "alice@trips.example"},
	}}
	notifier := &fakeNotifier{}
	svc := NewService(store, trips, docs, users, notifier, zerolog.Nop())
	return svc, store, notifier
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("persists request and metadata", func(t *testing.T) {
		svc, store, _ := serviceFixture()
		rows, err := svc.Create(ctx, "u1", "t1", map[string]string{"passport": "AB123", "age": "29"})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		// Keys come back in deterministic sorted order.
		assert.Equal(t, "age", rows[0].Key)
		assert.Equal(t, "passport", rows[1].Key)

		req, err := store.FindByUserAndTrip(ctx, "u1", "t1")
		require.NoError(t, err)
		require.NotNil(t, req)
		assert.Equal(t, StatusPending, req.Status)
	})

	t.Run("second request for same pair is a duplicate", func(t *testing.T) {
		svc, _, _ := serviceFixture()
		fields := map[string]string{"passport": "AB123", "age": "29"}
		_, err := svc.Create(ctx, "u1", "t1", fields)
		require.NoError(t, err)
		_, err = svc.Create(ctx, "u1", "t1", fields)
		assert.True(t, IsErrDuplicate(err))
	})

	t.Run("empty declared field fails citing the field", func(t *testing.T) {
		svc, store, _ := serviceFixture()
		_, err := svc.Create(ctx, "u1", "t1", map[string]string{"passport": "", "age": "29"})
		require.Error(t, err)
		assert.True(t, IsErrValidation(err))
		assert.Contains(t, err.Error(), "passport")

		// Nothing persisted on validation failure.
		req, err := store.FindByUserAndTrip(ctx, "u1", "t1")
		require.NoError(t, err)
		assert.Nil(t, req)
		assert.Empty(t, store.meta)
	})

	t.Run("malformed email field is rejected", func(t *testing.T) {
		svc, _, _ := serviceFixture()
		_, err := svc.Create(ctx, "u1", "t1", map[string]string{
			"passport": "AB123", "age": "29", "email": "not-an-email",
		})
		assert.True(t, IsErrValidation(err))
	})

	t.Run("trip without template accepts any fields", func(t *testing.T) {
		svc, _, _ := serviceFixture()
		rows, err := svc.Create(ctx, "u1", "t2", map[string]string{"note": "hi"})
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("unknown trip is not found", func(t *testing.T) {
		svc, _, _ := serviceFixture()
		_, err := svc.Create(ctx, "u1", "nope", nil)
		assert.True(t, trip.IsErrNotFound(err))
	})
}

func TestDecide(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, svc *Service) string {
		t.Helper()
		_, err := svc.Create(ctx, "u1", "t1", map[string]string{"passport": "AB123", "age": "29"})
		require.NoError(t, err)
		return "u1_t1"
	}

	t.Run("approve then overwrite with reject", func(t *testing.T) {
		svc, store, notifier := serviceFixture()
		id := seed(t, svc)

		out, err := svc.Decide(ctx, "org1", id, StatusApproved)
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, out.Status)
		require.NotNil(t, out.Requester)
		assert.Equal(t, "u1", out.Requester.ID)
		assert.Len(t, out.Metadata, 2)

		// Repeated transitions overwrite; there is no terminal-state guard.
		out, err = svc.Decide(ctx, "org1", id, StatusRejected)
		require.NoError(t, err)
		assert.Equal(t, StatusRejected, out.Status)

		stored, err := store.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, StatusRejected, stored.Status)

		require.Len(t, notifier.notices, 2)
		n := notifier.notices[0]
		assert.Equal(t, "one@users.example", n.To)
		assert.Equal(t, "Alice Trekker", n.OrganizerName)
		assert.Equal(t, "One week", n.TripDuration)
		assert.Equal(t, time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), n.TripDate)
	})

	t.Run("notification failure does not undo the status change", func(t *testing.T) {
		svc, store, notifier := serviceFixture()
		id := seed(t, svc)
		notifier.fail = true

		out, err := svc.Decide(ctx, "org1", id, StatusApproved)
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, out.Status)

		stored, err := store.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, stored.Status)
	})

	t.Run("requester lookup failure surfaces but keeps the status", func(t *testing.T) {
		store := newMemStore()
		trips := &fakeTrips{trips: map[string]trip.Trip{
			"t1": {ID: "t1", TripName: "Sahara Crossing", UserID: "org1"},
		}}
		users := &fakeUsers{fail: errors.New("store offline")}
		notifier := &fakeNotifier{}
		svc := NewService(store, trips, &fakeDocs{}, users, notifier, zerolog.Nop())

		_, err := svc.Create(ctx, "u1", "t1", map[string]string{"note": "hi"})
		require.NoError(t, err)

		_, err = svc.Decide(ctx, "org1", "u1_t1", StatusApproved)
		require.Error(t, err)

		stored, err := store.Get(ctx, "u1_t1")
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, stored.Status)
		assert.Empty(t, notifier.notices)
	})

	t.Run("only the trip organizer may decide", func(t *testing.T) {
		svc, _, _ := serviceFixture()
		id := seed(t, svc)
		_, err := svc.Decide(ctx, "someone-else", id, StatusApproved)
		assert.True(t, IsErrForbidden(err))
	})

	t.Run("decision value is validated", func(t *testing.T) {
		svc, _, _ := serviceFixture()
		id := seed(t, svc)
		_, err := svc.Decide(ctx, "org1", id, "maybe")
		assert.True(t, IsErrBadRequest(err))
	})

	t.Run("unknown request is not found", func(t *testing.T) {
		svc, _, _ := serviceFixture()
		_, err := svc.Decide(ctx, "org1", "nope", StatusApproved)
		assert.True(t, IsErrNotFound(err))
	})
}

func TestAttachFile(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := serviceFixture()
	_, err := svc.Create(ctx, "u1", "t1", map[string]string{"passport": "AB123", "age": "29"})
	require.NoError(t, err)

	out, err := svc.AttachFile(ctx, "u1", "u1_t1", "joiningFiles/abc.pdf")
	require.NoError(t, err)
	assert.Equal(t, "joiningFiles/abc.pdf", out.UploadFile)

	// A request carries at most one file.
	_, err = svc.AttachFile(ctx, "u1", "u1_t1", "joiningFiles/other.pdf")
	assert.True(t, IsErrBadRequest(err))

	_, err = svc.AttachFile(ctx, "u2", "u1_t1", "joiningFiles/abc.pdf")
	assert.True(t, IsErrForbidden(err))
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := serviceFixture()
	_, err := svc.Create(ctx, "u1", "t1", map[string]string{"passport": "AB123", "age": "29"})
	require.NoError(t, err)

	err = svc.Delete(ctx, "u2", "u1_t1")
	assert.True(t, IsErrForbidden(err))

	require.NoError(t, svc.Delete(ctx, "u1", "u1_t1"))
	assert.Empty(t, store.reqs)
	// Metadata rows go with their parent.
	assert.Empty(t, store.meta)
}
