package order

import (
	"context"
	"maps"
	"regexp"
	"strings"
)

var orderIDPattern = regexp.MustCompile(`ORD\d+`)

// ExtractID returns the first order id in text, if any. Matching is
// case sensitive.
func ExtractID(text string) (string, bool) {
	id := orderIDPattern.FindString(text)
	return id, id != ""
}

// Catalog is a fixed in-memory Lookup.
type Catalog struct {
	statuses map[string]string
}

var _ Lookup = (*Catalog)(nil)

// NewCatalog copies statuses, keyed by order id.
func NewCatalog(statuses map[string]string) *Catalog {
	c := &Catalog{statuses: make(map[string]string, len(statuses))}
	for id, status := range statuses {
		c.statuses[strings.ToUpper(strings.TrimSpace(id))] = status
	}
	return c
}

func (c *Catalog) Status(ctx context.Context, orderID string) string {
	if status, ok := c.statuses[strings.ToUpper(orderID)]; ok {
		return status
	}
	return NotFound
}

// All returns a copy of the catalog.
func (c *Catalog) All() map[string]string {
	return maps.Clone(c.statuses)
}
