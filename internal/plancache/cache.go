package plancache

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ironsheep/floorplan-mcp/internal/floorplan"
)

// DefaultCapacity is used when New is given a non-positive capacity.
const DefaultCapacity = 32

// ErrNotFound is returned by Get for an unknown or evicted plan ID.
var ErrNotFound = errors.New("plan not found")

// Cache stores floor plans keyed by a generated UUID.
//
// Stored plans are shared with callers of Get. Treat them as read-only.
type Cache struct {
	mu       sync.RWMutex
	capacity int
	plans    map[string]floorplan.FloorPlan
	order    []string
}

// New creates an empty cache that holds at most capacity plans.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		plans:    make(map[string]floorplan.FloorPlan, capacity),
		order:    make([]string, 0, capacity),
	}
}

// Put stores plan and returns the ID it can be retrieved under.
func (c *Cache) Put(plan floorplan.FloorPlan) string {
	id := uuid.NewString()

	c.mu.Lock()
	defer c.mu.Unlock()

	for len(c.order) >= c.capacity {
		delete(c.plans, c.order[0])
		c.order = c.order[1:]
	}
	c.plans[id] = plan
	c.order = append(c.order, id)

	return id
}

// Get returns the plan stored under id.
func (c *Cache) Get(id string) (floorplan.FloorPlan, error) {
	if _, err := uuid.Parse(id); err != nil {
		return floorplan.FloorPlan{}, fmt.Errorf("invalid plan_id %q: %w", id, ErrNotFound)
	}

	c.mu.RLock()
	plan, ok := c.plans[id]
	c.mu.RUnlock()

	if !ok {
		return floorplan.FloorPlan{}, fmt.Errorf("plan_id %s: %w", id, ErrNotFound)
	}
	return plan, nil
}

// Evict removes a plan. Unknown IDs are ignored.
func (c *Cache) Evict(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.plans[id]; !ok {
		return
	}
	delete(c.plans, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Clear removes every plan.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.plans = make(map[string]floorplan.FloorPlan, c.capacity)
	c.order = c.order[:0]
	c.mu.Unlock()
}

// Len reports the number of stored plans.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.plans)
}
