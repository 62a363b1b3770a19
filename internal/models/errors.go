package models

import "errors"

var ErrNotFound = errors.New("requested resource not found")
var ErrForbidden = errors.New("user does not have permission to access this resource")
var ErrConflict = errors.New("resource conflict, item already exists")
var ErrInvalidToken = errors.New("token not found or expired")
var ErrInvalidCredentials = errors.New("invalid credentials") // email or password provided does not match stored record

// ErrInvalidTransition indicates that the requested booking status change
// is not permitted from the booking's current status.
var ErrInvalidTransition = errors.New("booking status transition not allowed")

// ErrResourceUnavailable indicates that the truck or driver selected for an
// assignment is unknown or already in use.
var ErrResourceUnavailable = errors.New("truck or driver is not available")

// ErrBookingNotCancellable indicates the booking has progressed past the
// point where the consumer may cancel it.
var ErrBookingNotCancellable = errors.New("booking can no longer be cancelled")

// ErrUnknownTruckType indicates a price quote was requested for a truck type
// that is not in the catalog.
var ErrUnknownTruckType = errors.New("unknown truck type")

// ErrorResponse is the JSON body returned for any failed request.
type ErrorResponse struct {
	Message string `json:"message"`
}
