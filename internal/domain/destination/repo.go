package destination

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) col() *firestore.CollectionRef {
	return r.fs.Collection("destinations")
}

func (r *Repo) Create(ctx context.Context, d Destination) (*Destination, error) {
	ref := r.col().NewDoc()
	d.ID = ref.ID
	if _, err := ref.Set(ctx, d); err != nil {
		return nil, fmt.Errorf("failed to create destination: %w", err)
	}
	return &d, nil
}

func (r *Repo) Get(ctx context.Context, id string) (*Destination, error) {
	doc, err := r.col().Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, fmt.Errorf("%w: destination %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get destination: %w", err)
	}
	var d Destination
	if err := doc.DataTo(&d); err != nil {
		return nil, fmt.Errorf("failed to decode destination: %w", err)
	}
	d.ID = doc.Ref.ID
	return &d, nil
}

// GetMany batch-loads destinations by id; unresolvable references are
// silently absent from the result.
func (r *Repo) GetMany(ctx context.Context, ids []string) (map[string]Destination, error) {
	out := make(map[string]Destination, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	refs := make([]*firestore.DocumentRef, 0, len(ids))
	seen := map[string]bool{}
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		refs = append(refs, r.col().Doc(id))
	}

	docs, err := r.fs.GetAll(ctx, refs)
	if err != nil {
		return nil, fmt.Errorf("failed to batch-get destinations: %w", err)
	}
	for _, doc := range docs {
		if !doc.Exists() {
			continue
		}
		var d Destination
		if err := doc.DataTo(&d); err != nil {
			continue
		}
		d.ID = doc.Ref.ID
		out[d.ID] = d
	}
	return out, nil
}

func (r *Repo) Update(ctx context.Context, d *Destination) error {
	if _, err := r.col().Doc(d.ID).Set(ctx, *d); err != nil {
		return fmt.Errorf("failed to update destination: %w", err)
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	// Existence is checked first so a missing id surfaces as not-found
	// instead of a silent no-op delete.
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}
	if _, err := r.col().Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete destination: %w", err)
	}
	return nil
}
