package user

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
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
	return r.fs.Collection("users")
}

func (r *Repo) Create(ctx context.Context, u User) (*User, error) {
	ref := r.col().NewDoc()
	u.ID = ref.ID
	if _, err := ref.Set(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &u, nil
}

func (r *Repo) Get(ctx context.Context, id string) (*User, error) {
	doc, err := r.col().Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	var u User
	if err := doc.DataTo(&u); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	u.ID = doc.Ref.ID
	return &u, nil
}

// GetByEmail returns the user with the given email, or nil when absent.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*User, error) {
	iter := r.col().Where("email", "==", email).Limit(1).Documents(ctx)
	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	var u User
	if err := doc.DataTo(&u); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	u.ID = doc.Ref.ID
	return &u, nil
}

func (r *Repo) Update(ctx context.Context, u *User) error {
	if _, err := r.col().Doc(u.ID).Set(ctx, *u); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// GetMany batch-loads users by id. Missing ids are simply absent from the
// returned map; a broken link never fails the whole load.
func (r *Repo) GetMany(ctx context.Context, ids []string) (map[string]User, error) {
	out := make(map[string]User, len(ids))
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
		return nil, fmt.Errorf("failed to batch-get users: %w", err)
	}
	for _, doc := range docs {
		if !doc.Exists() {
			continue
		}
		var u User
		if err := doc.DataTo(&u); err != nil {
			continue
		}
		u.ID = doc.Ref.ID
		out[u.ID] = u
	}
	return out, nil
}

// ListByRole returns all non-deleted users holding the given role.
func (r *Repo) ListByRole(ctx context.Context, roleID string) ([]User, error) {
	iter := r.col().
		Where("role", "==", roleID).
		Where("isDeleted", "==", false).
		Documents(ctx)

	var users []User
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list users: %w", err)
		}
		var u User
		if err := doc.DataTo(&u); err != nil {
			continue
		}
		u.ID = doc.Ref.ID
		users = append(users, u)
	}
	return users, nil
}

// CountByRole counts non-deleted users holding the given role.
func (r *Repo) CountByRole(ctx context.Context, roleID string) (int, error) {
	users, err := r.ListByRole(ctx, roleID)
	if err != nil {
		return 0, err
	}
	return len(users), nil
}
