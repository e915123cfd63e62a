package trip

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const collection = "trips"

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) Create(ctx context.Context, t *Trip) error {
	ref := r.fs.Collection(collection).NewDoc()
	t.ID = ref.ID
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	if _, err := ref.Set(ctx, t); err != nil {
		return fmt.Errorf("create trip: %w", err)
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, id string) (*Trip, error) {
	snap, err := r.fs.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("get trip %s: %w", id, err)
	}
	var t Trip
	if err := snap.DataTo(&t); err != nil {
		return nil, fmt.Errorf("decode trip %s: %w", id, err)
	}
	t.ID = snap.Ref.ID
	return &t, nil
}

// List returns every trip ordered by creation time, newest first.
// Filtering happens in the view layer, not here.
func (r *Repo) List(ctx context.Context) ([]Trip, error) {
	it := r.fs.Collection(collection).OrderBy("createdAt", firestore.Desc).Documents(ctx)
	defer it.Stop()

	var trips []Trip
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list trips: %w", err)
		}
		var t Trip
		if err := snap.DataTo(&t); err != nil {
			return nil, fmt.Errorf("decode trip %s: %w", snap.Ref.ID, err)
		}
		t.ID = snap.Ref.ID
		trips = append(trips, t)
	}
	return trips, nil
}

func (r *Repo) ListByOwner(ctx context.Context, userID string) ([]Trip, error) {
	it := r.fs.Collection(collection).
		Where("user", "==", userID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer it.Stop()

	var trips []Trip
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list trips for user %s: %w", userID, err)
		}
		var t Trip
		if err := snap.DataTo(&t); err != nil {
			return nil, fmt.Errorf("decode trip %s: %w", snap.Ref.ID, err)
		}
		t.ID = snap.Ref.ID
		trips = append(trips, t)
	}
	return trips, nil
}

func (r *Repo) Update(ctx context.Context, t *Trip) error {
	t.UpdatedAt = time.Now().UTC()
	if _, err := r.fs.Collection(collection).Doc(t.ID).Set(ctx, t); err != nil {
		return fmt.Errorf("update trip %s: %w", t.ID, err)
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}
	if _, err := r.fs.Collection(collection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("delete trip %s: %w", id, err)
	}
	return nil
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	docs, err := r.fs.Collection(collection).Select().Documents(ctx).GetAll()
	if err != nil {
		return 0, fmt.Errorf("count trips: %w", err)
	}
	return len(docs), nil
}
