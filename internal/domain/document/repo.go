package document

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const collection = "documents"

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) Create(ctx context.Context, d *Document) error {
	ref := r.fs.Collection(collection).NewDoc()
	d.ID = ref.ID
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now
	if _, err := ref.Set(ctx, d); err != nil {
		return fmt.Errorf("create document template: %w", err)
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, id string) (*Document, error) {
	snap, err := r.fs.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("get document template %s: %w", id, err)
	}
	var d Document
	if err := snap.DataTo(&d); err != nil {
		return nil, fmt.Errorf("decode document template %s: %w", id, err)
	}
	d.ID = snap.Ref.ID
	return &d, nil
}

func (r *Repo) Update(ctx context.Context, d *Document) error {
	d.UpdatedAt = time.Now().UTC()
	if _, err := r.fs.Collection(collection).Doc(d.ID).Set(ctx, d); err != nil {
		return fmt.Errorf("update document template %s: %w", d.ID, err)
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}
	if _, err := r.fs.Collection(collection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("delete document template %s: %w", id, err)
	}
	return nil
}
