package model

import "time"

// CartOwner identifies the owner of a cart: either an authenticated customer
// or an anonymous browser session, never both.
type CartOwner struct {
	CustomerID int64
	SessionID  string
}

// CustomerOwner builds an owner key for an authenticated customer.
func CustomerOwner(customerID int64) CartOwner {
	return CartOwner{CustomerID: customerID}
}

// SessionOwner builds an owner key for an anonymous session.
func SessionOwner(sessionID string) CartOwner {
	return CartOwner{SessionID: sessionID}
}

// Anonymous reports whether the cart belongs to an unauthenticated session.
func (o CartOwner) Anonymous() bool {
	return o.CustomerID == 0
}

// CartItem is a cart line. LineTotal caches quantity times the product price
// as of the last mutation; it is display data, not the order snapshot.
type CartItem struct {
	ProductID int64
	Quantity  int
	LineTotal int64
}

// Cart is the mutable per-owner item collection.
type Cart struct {
	ID         int64
	CustomerID *int64
	SessionID  *string
	Items      []CartItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Total sums the cached line totals.
func (c *Cart) Total() int64 {
	var total int64
	for _, it := range c.Items {
		total += it.LineTotal
	}
	return total
}

// Item returns the line for a product, if present.
func (c *Cart) Item(productID int64) (CartItem, bool) {
	for _, it := range c.Items {
		if it.ProductID == productID {
			return it, true
		}
	}
	return CartItem{}, false
}
