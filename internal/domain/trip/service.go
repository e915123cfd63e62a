package trip

import (
	"context"
	"fmt"
	"regexp"
	"time"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Store interface {
	Create(ctx context.Context, t *Trip) error
	Get(ctx context.Context, id string) (*Trip, error)
	List(ctx context.Context) ([]Trip, error)
	ListByOwner(ctx context.Context, userID string) ([]Trip, error)
	Update(ctx context.Context, t *Trip) error
	Delete(ctx context.Context, id string) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (*Trip, error) {
	in.Trim()
	t := &Trip{
		TripName:       in.TripName,
		Country:        in.Country,
		TripDuration:   in.TripDuration,
		TripIncludes:   in.TripIncludes,
		MainTripImage:  in.MainTripImage,
		TripPrice:      in.TripPrice,
		GroupType:      in.GroupType,
		TripType:       in.TripType,
		ContactName:    in.ContactName,
		ContactPhone:   in.ContactPhone,
		ContactEmail:   in.ContactEmail,
		DestinationIDs: in.DestinationIDs,
		DocumentID:     in.DocumentID,
		UserID:         userID,
	}
	date, err := validateCreate(in)
	if err != nil {
		return nil, err
	}
	t.TripDate = date
	if err := s.store.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func validateCreate(in CreateInput) (time.Time, error) {
	switch {
	case len(in.TripName) < 3:
		return time.Time{}, fmt.Errorf("%w: trip name must be at least 3 characters", ErrBadRequest)
	case in.Country == "":
		return time.Time{}, fmt.Errorf("%w: country is required", ErrBadRequest)
	case !validEnum(Durations, in.TripDuration):
		return time.Time{}, fmt.Errorf("%w: invalid trip duration %q", ErrBadRequest, in.TripDuration)
	case !validEnum(GroupTypes, in.GroupType):
		return time.Time{}, fmt.Errorf("%w: invalid group type %q", ErrBadRequest, in.GroupType)
	case !validEnum(TripTypes, in.TripType):
		return time.Time{}, fmt.Errorf("%w: invalid trip type %q", ErrBadRequest, in.TripType)
	case in.TripPrice < 0:
		return time.Time{}, fmt.Errorf("%w: trip price must not be negative", ErrBadRequest)
	case in.ContactEmail != "" && !emailRe.MatchString(in.ContactEmail):
		return time.Time{}, fmt.Errorf("%w: invalid contact email", ErrBadRequest)
	}
	date, err := time.Parse("2006-01-02", in.TripDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: trip date must be YYYY-MM-DD", ErrBadRequest)
	}
	if !date.After(time.Now()) {
		return time.Time{}, fmt.Errorf("%w: trip date must be in the future", ErrBadRequest)
	}
	return date, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Trip, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, userID, id string, in UpdateInput) (*Trip, error) {
	t, err := s.ownedTrip(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.TripName != nil {
		if len(*in.TripName) < 3 {
			return nil, fmt.Errorf("%w: trip name must be at least 3 characters", ErrBadRequest)
		}
		t.TripName = *in.TripName
	}
	if in.Country != nil {
		t.Country = *in.Country
	}
	if in.TripDate != nil {
		date, err := time.Parse("2006-01-02", *in.TripDate)
		if err != nil {
			return nil, fmt.Errorf("%w: trip date must be YYYY-MM-DD", ErrBadRequest)
		}
		t.TripDate = date
	}
	if in.TripDuration != nil {
		if !validEnum(Durations, *in.TripDuration) {
			return nil, fmt.Errorf("%w: invalid trip duration %q", ErrBadRequest, *in.TripDuration)
		}
		t.TripDuration = *in.TripDuration
	}
	if in.TripIncludes != nil {
		t.TripIncludes = *in.TripIncludes
	}
	if in.MainTripImage != nil {
		t.MainTripImage = *in.MainTripImage
	}
	if in.TripPrice != nil {
		if *in.TripPrice < 0 {
			return nil, fmt.Errorf("%w: trip price must not be negative", ErrBadRequest)
		}
		t.TripPrice = *in.TripPrice
	}
	if in.GroupType != nil {
		if !validEnum(GroupTypes, *in.GroupType) {
			return nil, fmt.Errorf("%w: invalid group type %q", ErrBadRequest, *in.GroupType)
		}
		t.GroupType = *in.GroupType
	}
	if in.TripType != nil {
		if !validEnum(TripTypes, *in.TripType) {
			return nil, fmt.Errorf("%w: invalid trip type %q", ErrBadRequest, *in.TripType)
		}
		t.TripType = *in.TripType
	}
	if in.ContactName != nil {
		t.ContactName = *in.ContactName
	}
	if in.ContactPhone != nil {
		t.ContactPhone = *in.ContactPhone
	}
	if in.ContactEmail != nil {
		if *in.ContactEmail != "" && !emailRe.MatchString(*in.ContactEmail) {
			return nil, fmt.Errorf("%w: invalid contact email", ErrBadRequest)
		}
		t.ContactEmail = *in.ContactEmail
	}
	if in.DestinationIDs != nil {
		t.DestinationIDs = *in.DestinationIDs
	}
	if in.DocumentID != nil {
		t.DocumentID = *in.DocumentID
	}
	if err := s.store.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.ownedTrip(ctx, userID, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}

func (s *Service) ownedTrip(ctx context.Context, userID, id string) (*Trip, error) {
	t, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.UserID != userID {
		return nil, fmt.Errorf("%w: %s", ErrForbidden, id)
	}
	return t, nil
}
