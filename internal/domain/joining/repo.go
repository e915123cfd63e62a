package joining

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	collection         = "joiningRequests"
	metadataCollection = "joiningRequestMetadata"

	// Firestore caps `in` queries at 30 values per clause.
	inChunkSize = 30
)

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

// pairKey derives the request doc id from its (user, trip) pair so the
// uniqueness invariant holds even under concurrent creation: the second
// create-only write fails with AlreadyExists instead of racing past a
// pre-check.
func pairKey(userID, tripID string) string {
	return userID + "_" + tripID
}

func (r *Repo) Create(ctx context.Context, req *Request) error {
	ref := r.fs.Collection(collection).Doc(pairKey(req.UserID, req.TripID))
	req.ID = ref.ID
	now := time.Now().UTC()
	req.CreatedAt = now
	req.UpdatedAt = now
	if _, err := ref.Create(ctx, req); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("%w: user %s trip %s", ErrDuplicate, req.UserID, req.TripID)
		}
		return fmt.Errorf("create joining request: %w", err)
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, id string) (*Request, error) {
	snap, err := r.fs.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("get joining request %s: %w", id, err)
	}
	var req Request
	if err := snap.DataTo(&req); err != nil {
		return nil, fmt.Errorf("decode joining request %s: %w", id, err)
	}
	req.ID = snap.Ref.ID
	return &req, nil
}

// FindByUserAndTrip returns nil without error when no request exists.
func (r *Repo) FindByUserAndTrip(ctx context.Context, userID, tripID string) (*Request, error) {
	req, err := r.Get(ctx, pairKey(userID, tripID))
	if err != nil {
		if IsErrNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return req, nil
}

func (r *Repo) ListByTrip(ctx context.Context, tripID string) ([]Request, error) {
	it := r.fs.Collection(collection).
		Where("trip", "==", tripID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	return collectRequests(it, "trip "+tripID)
}

func (r *Repo) ListByUser(ctx context.Context, userID string) ([]Request, error) {
	it := r.fs.Collection(collection).
		Where("user", "==", userID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	return collectRequests(it, "user "+userID)
}

func collectRequests(it *firestore.DocumentIterator, scope string) ([]Request, error) {
	defer it.Stop()
	var reqs []Request
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list joining requests for %s: %w", scope, err)
		}
		var req Request
		if err := snap.DataTo(&req); err != nil {
			return nil, fmt.Errorf("decode joining request %s: %w", snap.Ref.ID, err)
		}
		req.ID = snap.Ref.ID
		reqs = append(reqs, req)
	}
	return reqs, nil
}

func (r *Repo) Update(ctx context.Context, req *Request) error {
	req.UpdatedAt = time.Now().UTC()
	if _, err := r.fs.Collection(collection).Doc(req.ID).Set(ctx, req); err != nil {
		return fmt.Errorf("update joining request %s: %w", req.ID, err)
	}
	return nil
}

// Delete removes the request and all of its metadata rows.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}
	rows, err := r.MetadataByRequestIDs(ctx, []string{id})
	if err != nil {
		return err
	}
	bw := r.fs.BulkWriter(ctx)
	for _, m := range rows {
		if _, err := bw.Delete(r.fs.Collection(metadataCollection).Doc(m.ID)); err != nil {
			return fmt.Errorf("delete metadata %s: %w", m.ID, err)
		}
	}
	if _, err := bw.Delete(r.fs.Collection(collection).Doc(id)); err != nil {
		return fmt.Errorf("delete joining request %s: %w", id, err)
	}
	bw.End()
	return nil
}

func (r *Repo) CreateMetadata(ctx context.Context, rows []Metadata) ([]Metadata, error) {
	now := time.Now().UTC()
	bw := r.fs.BulkWriter(ctx)
	for i := range rows {
		ref := r.fs.Collection(metadataCollection).NewDoc()
		rows[i].ID = ref.ID
		rows[i].CreatedAt = now
		if _, err := bw.Create(ref, rows[i]); err != nil {
			return nil, fmt.Errorf("create metadata row %s: %w", rows[i].Key, err)
		}
	}
	bw.End()
	return rows, nil
}

// MetadataByRequestIDs batch-pulls metadata for many requests at once,
// chunking the `in` clause to Firestore's limit.
func (r *Repo) MetadataByRequestIDs(ctx context.Context, requestIDs []string) ([]Metadata, error) {
	var rows []Metadata
	for start := 0; start < len(requestIDs); start += inChunkSize {
		end := start + inChunkSize
		if end > len(requestIDs) {
			end = len(requestIDs)
		}
		it := r.fs.Collection(metadataCollection).
			Where("joining", "in", requestIDs[start:end]).
			Documents(ctx)
		chunk, err := collectMetadata(it)
		if err != nil {
			return nil, err
		}
		rows = append(rows, chunk...)
	}
	return rows, nil
}

func collectMetadata(it *firestore.DocumentIterator) ([]Metadata, error) {
	defer it.Stop()
	var rows []Metadata
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list joining request metadata: %w", err)
		}
		var m Metadata
		if err := snap.DataTo(&m); err != nil {
			return nil, fmt.Errorf("decode metadata %s: %w", snap.Ref.ID, err)
		}
		m.ID = snap.Ref.ID
		rows = append(rows, m)
	}
	return rows, nil
}
