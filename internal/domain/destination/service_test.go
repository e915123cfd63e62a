package destination

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	dests map[string]*Destination
	seq   int
}

func newMemStore() *memStore {
	return &memStore{dests: make(map[string]*Destination)}
}

func (s *memStore) Create(_ context.Context, d Destination) (*Destination, error) {
	s.seq++
	d.ID = fmt.Sprintf("d%d", s.seq)
	cp := d
	s.dests[d.ID] = &cp
	return &d, nil
}

func (s *memStore) Get(_ context.Context, id string) (*Destination, error) {
	d, ok := s.dests[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	cp := *d
	return &cp, nil
}

func (s *memStore) Update(_ context.Context, d *Destination) error {
	if _, ok := s.dests[d.ID]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, d.ID)
	}
	cp := *d
	s.dests[d.ID] = &cp
	return nil
}

func (s *memStore) Delete(_ context.Context, id string) error {
	if _, ok := s.dests[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.dests, id)
	return nil
}

func validCreate() CreateInput {
	return CreateInput{
		City:            "Marrakesh",
		DestinationDate: time.Now().AddDate(0, 1, 0),
		Duration:        "3 days",
		Agenda:          "Souks and the Atlas foothills",
		Images:          []string{"destinationImages/marrakesh.jpg"},
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid input", func(t *testing.T) {
		svc := NewService(newMemStore())
		out, err := svc.Create(ctx, validCreate())
		require.NoError(t, err)
		assert.NotEmpty(t, out.ID)
		assert.Equal(t, "Marrakesh", out.City)
	})

	t.Run("validation", func(t *testing.T) {
		svc := NewService(newMemStore())
		tests := []struct {
			name   string
			mutate func(*CreateInput)
		}{
			{"short city", func(in *CreateInput) { in.City = "ab" }},
			{"past date", func(in *CreateInput) { in.DestinationDate = time.Now().AddDate(0, 0, -1) }},
			{"missing duration", func(in *CreateInput) { in.Duration = "" }},
			{"missing agenda", func(in *CreateInput) { in.Agenda = "" }},
			{"no images", func(in *CreateInput) { in.Images = nil }},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				in := validCreate()
				tt.mutate(&in)
				_, err := svc.Create(ctx, in)
				assert.True(t, IsErrBadRequest(err))
			})
		}
	})
}

func TestUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemStore())
	out, err := svc.Create(ctx, validCreate())
	require.NoError(t, err)

	city := "Fes"
	updated, err := svc.Update(ctx, out.ID, UpdateInput{City: &city})
	require.NoError(t, err)
	assert.Equal(t, "Fes", updated.City)

	require.NoError(t, svc.Delete(ctx, out.ID))
	err = svc.Delete(ctx, out.ID)
	assert.True(t, IsErrNotFound(err))
}
