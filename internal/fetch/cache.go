// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch provides the memoized entity fetcher and the bounded
// fan-out executor used to batch-fetch from the remote API.
package fetch

import (
	"sync"

	"github.com/dfcamara/enuvex/pkg/types"
)

// Cache memoizes fetched entities for the lifetime of one pipeline run.
// Entries are never evicted and only fully-derived values are stored, so a
// hit never observes a partial entry. Construct one per run with NewCache;
// there is no package-level instance.
type Cache struct {
	mu     sync.RWMutex
	people map[types.PersonID]types.Person
	groups map[int]types.GroupMembership
}

// NewCache returns an empty run cache.
func NewCache() *Cache {
	return &Cache{
		people: make(map[types.PersonID]types.Person),
		groups: make(map[int]types.GroupMembership),
	}
}

// Person returns the cached person for id, if present.
func (c *Cache) Person(id types.PersonID) (types.Person, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.people[id]
	return p, ok
}

// PutPerson stores a fully-derived person. Concurrent misses on the same id
// race harmlessly into the same final value.
func (c *Cache) PutPerson(p types.Person) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.people[p.ID] = p
}

// Membership returns the cached membership for a group id, if present.
func (c *Cache) Membership(groupID int) (types.GroupMembership, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.groups[groupID]
	return m, ok
}

// PutMembership stores a group membership list.
func (c *Cache) PutMembership(m types.GroupMembership) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.groups[m.Group.ID] = m
}

// People returns the number of cached person entries.
func (c *Cache) People() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.people)
}
