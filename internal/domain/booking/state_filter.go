package booking

import (
	"strings"

	"renthub/internal/pkg/domain"
)

// StateFilter scopes a booking list query. Temporal filters (CURRENT, PAST,
// FUTURE) are resolved against an explicit evaluation instant; status filters
// match the booking status directly.
type StateFilter string

const (
	FilterAll      StateFilter = "ALL"
	FilterCurrent  StateFilter = "CURRENT"
	FilterPast     StateFilter = "PAST"
	FilterFuture   StateFilter = "FUTURE"
	FilterWaiting  StateFilter = "WAITING"
	FilterApproved StateFilter = "APPROVED"
	FilterRejected StateFilter = "REJECTED"
)

var stateFilters = map[StateFilter]struct{}{
	FilterAll:      {},
	FilterCurrent:  {},
	FilterPast:     {},
	FilterFuture:   {},
	FilterWaiting:  {},
	FilterApproved: {},
	FilterRejected: {},
}

// IsValid returns true if the filter is a recognized value.
func (f StateFilter) IsValid() bool {
	_, exists := stateFilters[f]
	return exists
}

// String returns the string representation of the filter.
func (f StateFilter) String() string {
	return string(f)
}

// ParseStateFilter converts a string (case-insensitive) to a StateFilter.
// An empty string defaults to ALL.
func ParseStateFilter(s string) (StateFilter, error) {
	if s == "" {
		return FilterAll, nil
	}
	filter := StateFilter(strings.ToUpper(s))
	if !filter.IsValid() {
		return "", domain.NewUnsupportedError("state filter: " + s)
	}
	return filter, nil
}
