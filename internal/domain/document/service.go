package document

import "context"

type Store interface {
	Create(ctx context.Context, d *Document) error
	Get(ctx context.Context, id string) (*Document, error)
	Update(ctx context.Context, d *Document) error
	Delete(ctx context.Context, id string) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, in Input) (*Document, error) {
	d := &Document{}
	applyInput(d, in)
	if err := s.store.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Document, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id string, in Input) (*Document, error) {
	d, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	applyInput(d, in)
	if err := s.store.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

func applyInput(d *Document, in Input) {
	if in.FirstName != nil {
		d.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		d.LastName = *in.LastName
	}
	if in.Passport != nil {
		d.Passport = *in.Passport
	}
	if in.Age != nil {
		d.Age = *in.Age
	}
	if in.Gender != nil {
		d.Gender = *in.Gender
	}
	if in.BirthDate != nil {
		d.BirthDate = *in.BirthDate
	}
	if in.Identifier != nil {
		d.Identifier = *in.Identifier
	}
	if in.HealthIssues != nil {
		d.HealthIssues = *in.HealthIssues
	}
}
