package models

import "time"

// Truck is a fleet resource registered by an agent.
type Truck struct {
	ID           string    `json:"id"`
	Number       string    `json:"number"`
	Type         string    `json:"type"`
	CapacityKg   int       `json:"capacity"`
	LicensePlate string    `json:"license_plate"`
	Available    bool      `json:"available"`
	CreatedAt    time.Time `json:"created_at"`
}

// Driver is a roster resource.
type Driver struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Rating    float64   `json:"rating"`
	Trips     int       `json:"trips"`
	Available bool      `json:"available"`
	CreatedAt time.Time `json:"created_at"`
}

// AddTruckRequest registers a truck. Available defaults to true unless the
// caller supplies it explicitly.
type AddTruckRequest struct {
	Number       string `json:"number" validate:"required"`
	Type         string `json:"type" validate:"required"`
	CapacityKg   int    `json:"capacity" validate:"required,gt=0"`
	LicensePlate string `json:"license_plate" validate:"required"`
	Available    *bool  `json:"available,omitempty"`
}

// AddDriverRequest registers a driver.
type AddDriverRequest struct {
	Name      string  `json:"name" validate:"required"`
	Phone     string  `json:"phone" validate:"required"`
	Rating    float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Available *bool   `json:"available,omitempty"`
}

// TruckType is a catalog entry used for price quoting.
type TruckType struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	CapacityKg int     `json:"capacity"`
	BasePrice  float64 `json:"base_price"`
}
