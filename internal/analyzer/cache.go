package analyzer

import "github.com/nathanejohnson/cloudstack-php-client-sub001/internal/model"

// SchemaCache stores resolved schemas for a single generation run, keyed by class name.
// Entries are never replaced or evicted. Build a new cache for every run.
type SchemaCache struct {
	entries map[string][]model.MemberDescriptor
	order   []string
}

// NewSchemaCache creates an empty cache
func NewSchemaCache() *SchemaCache {
	return &SchemaCache{
		entries: make(map[string][]model.MemberDescriptor),
		order:   make([]string, 0),
	}
}

// Lookup returns the members stored for className
func (c *SchemaCache) Lookup(className string) ([]model.MemberDescriptor, bool) {
	members, ok := c.entries[className]
	return members, ok
}

// InsertIfAbsent stores members under className unless an entry already exists.
// It reports whether the members were stored.
func (c *SchemaCache) InsertIfAbsent(className string, members []model.MemberDescriptor) bool {
	if _, exists := c.entries[className]; exists {
		return false
	}
	stored := make([]model.MemberDescriptor, len(members))
	copy(stored, members)
	c.entries[className] = stored
	c.order = append(c.order, className)
	return true
}

// Names returns the cached class names in insertion order
func (c *SchemaCache) Names() []string {
	names := make([]string, len(c.order))
	copy(names, c.order)
	return names
}

// Len returns the number of cached schemas
func (c *SchemaCache) Len() int {
	return len(c.order)
}
