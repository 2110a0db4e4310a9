package store

import (
	"sync"

	"github.com/proteuswear/storefront-api/models"
)

type lineKey struct {
	productID int
	size      string
}

// cart is the ordered list of lines for one session. Order is first-add
// order, which is what the cart page renders.
type cart struct {
	lines []models.CartLine
}

func (c *cart) find(key lineKey) int {
	for i, l := range c.lines {
		if l.ProductID == key.productID && l.Size == key.size {
			return i
		}
	}
	return -1
}

// CartStore holds the cart of every active session. It is the single
// authoritative record of what a shopper intends to purchase; handlers
// receive it by injection rather than through a package global.
type CartStore struct {
	mu    sync.Mutex
	carts map[string]*cart
}

func NewCartStore() *CartStore {
	return &CartStore{carts: make(map[string]*cart)}
}

func (s *CartStore) cartFor(sessionID string) *cart {
	c, ok := s.carts[sessionID]
	if !ok {
		c = &cart{}
		s.carts[sessionID] = c
	}
	return c
}

// Add puts one unit of the given line into the session's cart. The Quantity
// field on the input is ignored; the contract is always "one unit added".
// A line with the same (ProductID, Size) has its quantity incremented and
// keeps the price, name and image recorded on the first add.
func (s *CartStore) Add(sessionID string, line models.CartLine) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartFor(sessionID)
	if i := c.find(lineKey{line.ProductID, line.Size}); i >= 0 {
		c.lines[i].Quantity++
		return
	}
	line.Quantity = 1
	c.lines = append(c.lines, line)
}

// UpdateQuantity sets the line's quantity directly. Values below 1 are
// ignored; removal is an explicit operation the caller routes to Remove.
// Returns false when no line matches.
func (s *CartStore) UpdateQuantity(sessionID string, productID int, size string, quantity int) bool {
	if quantity < 1 {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartFor(sessionID)
	i := c.find(lineKey{productID, size})
	if i < 0 {
		return false
	}
	c.lines[i].Quantity = quantity
	return true
}

// Remove deletes the matching line. Removing an absent line is a no-op,
// not an error.
func (s *CartStore) Remove(sessionID string, productID int, size string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartFor(sessionID)
	if i := c.find(lineKey{productID, size}); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

// Clear empties the session's cart unconditionally.
func (s *CartStore) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

// Lines returns a copy of the session's cart lines in first-add order.
func (s *CartStore) Lines(sessionID string) []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[sessionID]
	if !ok {
		return []models.CartLine{}
	}
	out := make([]models.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// ItemCount is the sum of quantities across all lines. It is computed from
// the live lines on every call, so it can never go stale; it is what the
// header badge shows.
func (s *CartStore) ItemCount(sessionID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[sessionID]
	if !ok {
		return 0
	}
	total := 0
	for _, l := range c.lines {
		total += l.Quantity
	}
	return total
}
