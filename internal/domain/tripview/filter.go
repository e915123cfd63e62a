package tripview

import (
	"strings"

	"github.com/rajputgovind/Trip--Project-Apis/internal/utils"
)

// Filter holds the optional list filters. Nil/empty fields do not constrain;
// set fields combine with logical AND. Price bounds apply independently of
// each other.
type Filter struct {
	MinPrice  *float64
	MaxPrice  *float64
	Duration  string
	GroupType string
	TripType  string
	// Search is a free-text match against the organizer's name or email.
	Search string
}

// predicate is one optional filter fragment over a joined view.
type predicate func(v *TripView) bool

// predicates expands the filter into its active fragments.
func (f Filter) predicates() []predicate {
	var preds []predicate
	if f.MinPrice != nil {
		min := *f.MinPrice
		preds = append(preds, func(v *TripView) bool { return v.TripPrice >= min })
	}
	if f.MaxPrice != nil {
		max := *f.MaxPrice
		preds = append(preds, func(v *TripView) bool { return v.TripPrice <= max })
	}
	if f.Duration != "" {
		preds = append(preds, func(v *TripView) bool { return v.TripDuration == f.Duration })
	}
	if f.GroupType != "" {
		preds = append(preds, func(v *TripView) bool { return v.GroupType == f.GroupType })
	}
	if f.TripType != "" {
		preds = append(preds, func(v *TripView) bool { return v.TripType == f.TripType })
	}
	if f.Search != "" {
		needle := utils.NormalizeNameLower(f.Search)
		preds = append(preds, func(v *TripView) bool {
			if v.Organizer == nil {
				return false
			}
			return strings.Contains(utils.NormalizeNameLower(v.Organizer.Name), needle) ||
				strings.Contains(strings.ToLower(v.Organizer.Email), needle)
		})
	}
	return preds
}

// match reports whether every active fragment accepts the view.
func (f Filter) match(v *TripView) bool {
	for _, p := range f.predicates() {
		if !p(v) {
			return false
		}
	}
	return true
}
