package destination

import (
	"context"
	"fmt"
	"time"
)

type Store interface {
	Create(ctx context.Context, d Destination) (*Destination, error)
	Get(ctx context.Context, id string) (*Destination, error)
	Update(ctx context.Context, d *Destination) error
	Delete(ctx context.Context, id string) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*Destination, error) {
	in.Trim()
	if len(in.City) < 3 {
		return nil, fmt.Errorf("%w: city must contain at least 3 characters", ErrBadRequest)
	}
	if !in.DestinationDate.After(time.Now()) {
		return nil, fmt.Errorf("%w: destination date must be in the future", ErrBadRequest)
	}
	if in.Duration == "" {
		return nil, fmt.Errorf("%w: duration is required", ErrBadRequest)
	}
	if in.Agenda == "" {
		return nil, fmt.Errorf("%w: agenda is required", ErrBadRequest)
	}
	if len(in.Images) == 0 {
		return nil, fmt.Errorf("%w: please choose a destination image", ErrBadRequest)
	}

	now := time.Now().UTC()
	d := Destination{
		City:            in.City,
		DestinationDate: in.DestinationDate,
		Duration:        in.Duration,
		Agenda:          in.Agenda,
		Images:          in.Images,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	return s.store.Create(ctx, d)
}

func (s *Service) Get(ctx context.Context, id string) (*Destination, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*Destination, error) {
	d, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.City != nil {
		if len(*in.City) < 3 {
			return nil, fmt.Errorf("%w: city must contain at least 3 characters", ErrBadRequest)
		}
		d.City = *in.City
	}
	if in.DestinationDate != nil {
		if !in.DestinationDate.After(time.Now()) {
			return nil, fmt.Errorf("%w: destination date must be in the future", ErrBadRequest)
		}
		d.DestinationDate = *in.DestinationDate
	}
	if in.Duration != nil {
		d.Duration = *in.Duration
	}
	if in.Agenda != nil {
		d.Agenda = *in.Agenda
	}
	if in.Images != nil {
		d.Images = in.Images
	}

	d.UpdatedAt = time.Now().UTC()
	if err := s.store.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
