package order

import "context"

// Lookup returns a human readable status for an order id. It never
// fails; unknown ids yield NotFound.
type Lookup interface {
	Status(ctx context.Context, orderID string) string
}
