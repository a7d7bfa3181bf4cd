package model

import "time"

// Product is catalog data consumed by the checkout pipeline. Prices are
// integer minor units; Stock is the authoritative on-hand count.
type Product struct {
	ID        int64
	Name      string
	Price     int64
	Stock     int
	Active    bool
	CreatedAt time.Time
}
