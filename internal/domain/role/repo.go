package role

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) col() *firestore.CollectionRef {
	return r.fs.Collection("roles")
}

func (r *Repo) Create(ctx context.Context, roleName string) (*Role, error) {
	ref := r.col().NewDoc()
	rl := Role{
		ID:        ref.ID,
		RoleName:  roleName,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := ref.Set(ctx, rl); err != nil {
		return nil, fmt.Errorf("failed to create role: %w", err)
	}
	return &rl, nil
}

func (r *Repo) Get(ctx context.Context, id string) (*Role, error) {
	doc, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	var rl Role
	if err := doc.DataTo(&rl); err != nil {
		return nil, fmt.Errorf("failed to decode role: %w", err)
	}
	rl.ID = doc.Ref.ID
	return &rl, nil
}

// GetByName returns the role with the given name, or nil when absent.
func (r *Repo) GetByName(ctx context.Context, roleName string) (*Role, error) {
	iter := r.col().Where("roleName", "==", roleName).Limit(1).Documents(ctx)
	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find role: %w", err)
	}
	var rl Role
	if err := doc.DataTo(&rl); err != nil {
		return nil, fmt.Errorf("failed to decode role: %w", err)
	}
	rl.ID = doc.Ref.ID
	return &rl, nil
}

func (r *Repo) List(ctx context.Context) ([]Role, error) {
	iter := r.col().Documents(ctx)
	var roles []Role
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list roles: %w", err)
		}
		var rl Role
		if err := doc.DataTo(&rl); err != nil {
			continue
		}
		rl.ID = doc.Ref.ID
		roles = append(roles, rl)
	}
	return roles, nil
}
