package tripview

import (
	"context"
	"sort"

	"github.com/rajputgovind/Trip--Project-Apis/internal/domain/destination"
	"github.com/rajputgovind/Trip--Project-Apis/internal/domain/document"
	"github.com/rajputgovind/Trip--Project-Apis/internal/domain/joining"
	"github.com/rajputgovind/Trip--Project-Apis/internal/domain/trip"
	"github.com/rajputgovind/Trip--Project-Apis/internal/domain/user"
	"github.com/rajputgovind/Trip--Project-Apis/internal/pagination"
)

type TripSource interface {
	Get(ctx context.Context, id string) (*trip.Trip, error)
	List(ctx context.Context) ([]trip.Trip, error)
	ListByOwner(ctx context.Context, userID string) ([]trip.Trip, error)
}

type UserSource interface {
	GetMany(ctx context.Context, ids []string) (map[string]user.User, error)
}

type DestinationSource interface {
	GetMany(ctx context.Context, ids []string) (map[string]destination.Destination, error)
}

type DocumentSource interface {
	Get(ctx context.Context, id string) (*document.Document, error)
}

type JoiningSource interface {
	ListByTrip(ctx context.Context, tripID string) ([]joining.Request, error)
	ListByUser(ctx context.Context, userID string) ([]joining.Request, error)
	MetadataByRequestIDs(ctx context.Context, requestIDs []string) ([]joining.Metadata, error)
}

// Composer runs the join steps that turn raw trips into TripViews. Steps run
// in a fixed order because later ones read fields populated by earlier ones:
// organizer first (the search filter needs it), then filters, then the
// remaining joins, then pagination over the filtered set.
type Composer struct {
	trips        TripSource
	users        UserSource
	destinations DestinationSource
	documents    DocumentSource
	joinings     JoiningSource
}

func NewComposer(trips TripSource, users UserSource, destinations DestinationSource, documents DocumentSource, joinings JoiningSource) *Composer {
	return &Composer{
		trips:        trips,
		users:        users,
		destinations: destinations,
		documents:    documents,
		joinings:     joinings,
	}
}

// List returns the filtered, joined, paginated trip list. Totals are
// computed after filtering so they always agree with the delivered items.
func (c *Composer) List(ctx context.Context, f Filter, page, limit int) (*pagination.Page[TripView], error) {
	trips, err := c.trips.List(ctx)
	if err != nil {
		return nil, err
	}
	views := wrap(trips)
	if err := c.joinOrganizer(ctx, views); err != nil {
		return nil, err
	}
	views = applyFilter(f, views)
	if err := c.joinDestinations(ctx, views); err != nil {
		return nil, err
	}
	if err := c.joinDocuments(ctx, views); err != nil {
		return nil, err
	}
	return pagination.Paginate(views, page, limit), nil
}

// Detail returns one fully joined trip, including its joining requests with
// requester and metadata attached, newest request first.
func (c *Composer) Detail(ctx context.Context, tripID string) (*TripView, error) {
	t, err := c.trips.Get(ctx, tripID)
	if err != nil {
		return nil, err
	}
	views := []TripView{{Trip: *t}}
	if err := c.joinOrganizer(ctx, views); err != nil {
		return nil, err
	}
	if err := c.joinDestinations(ctx, views); err != nil {
		return nil, err
	}
	if err := c.joinDocuments(ctx, views); err != nil {
		return nil, err
	}
	if err := c.joinJoiningRequests(ctx, &views[0]); err != nil {
		return nil, err
	}
	return &views[0], nil
}

// ListForUser returns the trips the user has asked to join, each carrying
// only that user's own request.
func (c *Composer) ListForUser(ctx context.Context, userID string, page, limit int) (*pagination.Page[TripView], error) {
	reqs, err := c.joinings.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	var views []TripView
	for _, req := range reqs {
		t, err := c.trips.Get(ctx, req.TripID)
		if err != nil {
			if trip.IsErrNotFound(err) {
				continue
			}
			return nil, err
		}
		v := TripView{Trip: *t}
		rv, err := c.requestViews(ctx, []joining.Request{req})
		if err != nil {
			return nil, err
		}
		v.JoiningRequests = rv
		views = append(views, v)
	}
	if err := c.joinOrganizer(ctx, views); err != nil {
		return nil, err
	}
	if err := c.joinDestinations(ctx, views); err != nil {
		return nil, err
	}
	if err := c.joinDocuments(ctx, views); err != nil {
		return nil, err
	}
	return pagination.Paginate(views, page, limit), nil
}

// ListByOrganizer returns the organizer's own trips with their joining
// requests attached, so the organizer sees pending applications inline.
func (c *Composer) ListByOrganizer(ctx context.Context, organizerID string, page, limit int) (*pagination.Page[TripView], error) {
	trips, err := c.trips.ListByOwner(ctx, organizerID)
	if err != nil {
		return nil, err
	}
	views := wrap(trips)
	if err := c.joinOrganizer(ctx, views); err != nil {
		return nil, err
	}
	if err := c.joinDestinations(ctx, views); err != nil {
		return nil, err
	}
	if err := c.joinDocuments(ctx, views); err != nil {
		return nil, err
	}
	for i := range views {
		if err := c.joinJoiningRequests(ctx, &views[i]); err != nil {
			return nil, err
		}
	}
	return pagination.Paginate(views, page, limit), nil
}

func wrap(trips []trip.Trip) []TripView {
	views := make([]TripView, len(trips))
	for i, t := range trips {
		views[i] = TripView{Trip: t}
	}
	return views
}

func applyFilter(f Filter, views []TripView) []TripView {
	out := views[:0]
	for i := range views {
		if f.match(&views[i]) {
			out = append(out, views[i])
		}
	}
	return out
}

// joinOrganizer attaches each trip's owning user. A missing user leaves the
// trip in place with a nil organizer.
func (c *Composer) joinOrganizer(ctx context.Context, views []TripView) error {
	ids := make([]string, 0, len(views))
	for i := range views {
		if views[i].UserID != "" {
			ids = append(ids, views[i].UserID)
		}
	}
	usersByID, err := c.users.GetMany(ctx, ids)
	if err != nil {
		return err
	}
	for i := range views {
		if u, ok := usersByID[views[i].UserID]; ok {
			organizer := u
			views[i].Organizer = &organizer
		}
	}
	return nil
}

// joinDestinations resolves each trip's destination references. Dangling
// references are skipped, never fatal.
func (c *Composer) joinDestinations(ctx context.Context, views []TripView) error {
	var ids []string
	for i := range views {
		ids = append(ids, views[i].DestinationIDs...)
	}
	destsByID, err := c.destinations.GetMany(ctx, ids)
	if err != nil {
		return err
	}
	for i := range views {
		dests := make([]destination.Destination, 0, len(views[i].DestinationIDs))
		for _, id := range views[i].DestinationIDs {
			if d, ok := destsByID[id]; ok {
				dests = append(dests, d)
			}
		}
		views[i].Destinations = dests
	}
	return nil
}

// joinDocuments attaches the document template, caching lookups since many
// trips share one template.
func (c *Composer) joinDocuments(ctx context.Context, views []TripView) error {
	cache := make(map[string]*document.Document)
	for i := range views {
		id := views[i].DocumentID
		if id == "" {
			continue
		}
		if d, ok := cache[id]; ok {
			views[i].Document = d
			continue
		}
		d, err := c.documents.Get(ctx, id)
		if err != nil {
			if document.IsErrNotFound(err) {
				cache[id] = nil
				continue
			}
			return err
		}
		cache[id] = d
		views[i].Document = d
	}
	return nil
}

// joinJoiningRequests pulls the trip's requests newest-first, attaches each
// requester, then correlation-merges the batched metadata pull back onto the
// owning request by exact id equality.
func (c *Composer) joinJoiningRequests(ctx context.Context, v *TripView) error {
	reqs, err := c.joinings.ListByTrip(ctx, v.Trip.ID)
	if err != nil {
		return err
	}
	rv, err := c.requestViews(ctx, reqs)
	if err != nil {
		return err
	}
	v.JoiningRequests = rv
	return nil
}

func (c *Composer) requestViews(ctx context.Context, reqs []joining.Request) ([]joining.RequestView, error) {
	if len(reqs) == 0 {
		return []joining.RequestView{}, nil
	}
	sort.SliceStable(reqs, func(i, j int) bool {
		return reqs[i].CreatedAt.After(reqs[j].CreatedAt)
	})

	ids := make([]string, len(reqs))
	for i, r := range reqs {
		ids[i] = r.ID
	}

	userIDs := make([]string, 0, len(reqs))
	for _, r := range reqs {
		userIDs = append(userIDs, r.UserID)
	}
	requesters, err := c.users.GetMany(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	rows, err := c.joinings.MetadataByRequestIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byRequest := make(map[string][]joining.Metadata, len(reqs))
	for _, m := range rows {
		byRequest[m.JoiningID] = append(byRequest[m.JoiningID], m)
	}

	views := make([]joining.RequestView, len(reqs))
	for i, r := range reqs {
		views[i] = joining.RequestView{Request: r, Metadata: byRequest[r.ID]}
		if views[i].Metadata == nil {
			views[i].Metadata = []joining.Metadata{}
		}
		if u, ok := requesters[r.UserID]; ok {
			requester := u
			views[i].Requester = &requester
		}
	}
	return views, nil
}
