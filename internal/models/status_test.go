package models

import "testing"

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to BookingStatus
		want     bool
	}{
		{StatusPending, StatusAssigned, true},
		{StatusPending, StatusCancelled, true},
		{StatusAssigned, StatusInTransit, true},
		{StatusAssigned, StatusCancelled, true},
		{StatusInTransit, StatusDelivered, true},

		// out-of-order jumps
		{StatusPending, StatusInTransit, false},
		{StatusPending, StatusDelivered, false},
		{StatusAssigned, StatusDelivered, false},
		{StatusInTransit, StatusCancelled, false},

		// terminal states go nowhere
		{StatusDelivered, StatusPending, false},
		{StatusDelivered, StatusInTransit, false},
		{StatusCancelled, StatusAssigned, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("CanTransitionTo(%s -> %s) = %v; want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	for _, s := range []BookingStatus{StatusDelivered, StatusCancelled} {
		if !s.IsTerminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []BookingStatus{StatusPending, StatusAssigned, StatusInTransit} {
		if s.IsTerminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestStatusDerivedGroupings(t *testing.T) {
	// "active" is assigned or in-transit, nothing else
	active := map[BookingStatus]bool{
		StatusPending:   false,
		StatusAssigned:  true,
		StatusInTransit: true,
		StatusDelivered: false,
		StatusCancelled: false,
	}
	for s, want := range active {
		if got := s.IsActive(); got != want {
			t.Errorf("IsActive(%s) = %v; want %v", s, got, want)
		}
	}
}

func TestStatusValid(t *testing.T) {
	if BookingStatus("shipped").Valid() {
		t.Error("unknown status should not be valid")
	}
	if !StatusInTransit.Valid() {
		t.Error("in-transit should be valid")
	}
}
