// internal/models/coordinate.go
package models

import "fmt"

// Coordinate is a (latitude, longitude) pair in floating point degrees. Raw
// precision is preserved for outbound provider queries; cache keys use the
// quantized form only.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// QuantizedKey renders the coordinate rounded to 4 decimal places (~11 m),
// the fragment shared by all coordinate-derived cache keys.
func (c Coordinate) QuantizedKey() string {
	return fmt.Sprintf("%.4f_%.4f", c.Latitude, c.Longitude)
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%f,%f", c.Latitude, c.Longitude)
}
