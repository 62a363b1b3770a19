package models

import "time"

// Booking represents a single shipment request and its fulfillment record.
type Booking struct {
	ID              string        `json:"id"`
	ConsumerID      string        `json:"consumer_id"`
	ConsumerName    string        `json:"consumer_name"`
	PickupAddress   Address       `json:"pickup_address"`
	DeliveryAddress Address       `json:"delivery_address"`
	TruckType       string        `json:"truck_type"`
	Goods           GoodsDetails  `json:"goods_details"`
	PickupDate      string        `json:"pickup_date"`
	PickupTime      string        `json:"pickup_time"`
	PriceEstimate   float64       `json:"price_estimate"`
	Status          BookingStatus `json:"status"`
	TruckID         *string       `json:"truck_id,omitempty"`
	DriverID        *string       `json:"driver_id,omitempty"`
	// Version increments on every mutation so that future multi-client
	// callers can detect lost updates.
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Address is a pickup or delivery location.
type Address struct {
	Street string  `json:"street" validate:"required"`
	City   string  `json:"city" validate:"required"`
	State  string  `json:"state" validate:"required"`
	Zip    string  `json:"zip" validate:"required"`
	Lat    float64 `json:"lat" validate:"latitude"`
	Lng    float64 `json:"lng" validate:"longitude"`
}

// GoodsDetails describes the cargo for a booking.
type GoodsDetails struct {
	WeightKg    float64 `json:"weight" validate:"required,gt=0"`
	Quantity    int     `json:"quantity" validate:"required,gt=0"`
	Fragile     bool    `json:"fragile"`
	Description string  `json:"description,omitempty"`
}

// CreateBookingRequest is the consumer-facing creation payload. Consumer
// identity is taken from the session token, never from the body.
type CreateBookingRequest struct {
	PickupAddress   Address      `json:"pickup_address" validate:"required"`
	DeliveryAddress Address      `json:"delivery_address" validate:"required"`
	TruckType       string       `json:"truck_type" validate:"required"`
	Goods           GoodsDetails `json:"goods_details" validate:"required"`
	PickupDate      string       `json:"pickup_date" validate:"required"`
	PickupTime      string       `json:"pickup_time" validate:"required"`
	PriceEstimate   float64      `json:"price_estimate" validate:"required,gt=0"`
}

// UpdateStatusRequest targets a new status for a booking.
type UpdateStatusRequest struct {
	Status BookingStatus `json:"status" validate:"required,oneof=assigned in-transit delivered cancelled"`
}

// AssignmentRequest binds a truck and a driver to a pending booking.
type AssignmentRequest struct {
	TruckID  string `json:"truck_id" validate:"required"`
	DriverID string `json:"driver_id" validate:"required"`
}

// QuoteRequest asks for a price estimate before creating a booking.
type QuoteRequest struct {
	TruckType string  `json:"truck_type" validate:"required"`
	WeightKg  float64 `json:"weight" validate:"required,gt=0"`
}

// Quote is a non-binding price estimate.
type Quote struct {
	TruckType     string  `json:"truck_type"`
	WeightKg      float64 `json:"weight"`
	PriceEstimate float64 `json:"price_estimate"`
}

// TrackingSnapshot is the latest known location for a booking, latest-wins.
// It is ephemeral and not part of the booking record itself.
type TrackingSnapshot struct {
	BookingID string    `json:"booking_id"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Timestamp time.Time `json:"timestamp"`
}

// TrackingUpdateRequest reports a new location for a booking.
type TrackingUpdateRequest struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lng float64 `json:"lng" validate:"longitude"`
}

// BookingStats are the dashboard counters. Active and Completed are derived
// from the canonical status field at read time.
type BookingStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

// EarningsReport sums delivered bookings for the agent's earnings view.
type EarningsReport struct {
	TotalEarnings   float64 `json:"total_earnings"`
	Deliveries      int     `json:"deliveries"`
	AveragePerTrip  float64 `json:"average_per_trip"`
	PendingEstimate float64 `json:"pending_estimate"` // price of bookings still in flight
}
