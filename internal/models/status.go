package models

// BookingStatus is the closed set of states a booking moves through.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusAssigned  BookingStatus = "assigned"
	StatusInTransit BookingStatus = "in-transit"
	StatusDelivered BookingStatus = "delivered"
	StatusCancelled BookingStatus = "cancelled"
)

// allowedNext is the transition table. pending->assigned is reachable only
// through the assignment operation; pending->cancelled only through the
// consumer cancel operation. The plain status-update operation may walk
// assigned->in-transit->delivered and nothing else.
var allowedNext = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusAssigned, StatusCancelled},
	StatusAssigned:  {StatusInTransit, StatusCancelled},
	StatusInTransit: {StatusDelivered},
	StatusDelivered: {},
	StatusCancelled: {},
}

// AllowedNext returns the set of states reachable from s.
func AllowedNext(s BookingStatus) []BookingStatus {
	return allowedNext[s]
}

// CanTransitionTo reports whether moving from s to next is legal.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, n := range allowedNext[s] {
		if n == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s BookingStatus) IsTerminal() bool {
	return len(allowedNext[s]) == 0
}

// IsActive reports whether the booking is being fulfilled right now.
// "Active" is always derived from the status field, never stored.
func (s BookingStatus) IsActive() bool {
	return s == StatusAssigned || s == StatusInTransit
}

// Valid reports whether s is a member of the closed status set.
func (s BookingStatus) Valid() bool {
	_, ok := allowedNext[s]
	return ok
}
