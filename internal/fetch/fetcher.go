// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"

	"github.com/dfcamara/enuvex/internal/person"
	"github.com/dfcamara/enuvex/pkg/types"
)

// API is the slice of the remote client the fetcher needs. Satisfied by
// *enuvens.Client.
type API interface {
	GroupMembership(ctx context.Context, group types.GroupRef) (types.GroupMembership, error)
	Person(ctx context.Context, id types.PersonID) (types.RawPerson, error)
}

// Fetcher fetches entities by id, consulting and populating the run cache
// so a given id hits the network at most once per run. Failures leave the
// cache untouched so a later call can retry.
type Fetcher struct {
	api   API
	cache *Cache
}

// NewFetcher builds a Fetcher over the given API and cache.
func NewFetcher(api API, cache *Cache) *Fetcher {
	return &Fetcher{api: api, cache: cache}
}

// Cache exposes the run cache for summary reporting.
func (f *Fetcher) Cache() *Cache {
	return f.cache
}

// Person returns the canonical person for id. A cache hit is side-effect
// free; a miss fetches, normalizes, stores, and returns the derived record.
func (f *Fetcher) Person(ctx context.Context, id types.PersonID) (types.Person, error) {
	if p, ok := f.cache.Person(id); ok {
		return p, nil
	}

	raw, err := f.api.Person(ctx, id)
	if err != nil {
		return types.Person{}, err
	}

	p, err := person.Normalize(raw)
	if err != nil {
		return types.Person{}, err
	}
	// Normalized ids can disagree with the requested id when the API
	// omits the field; key the cache by the id we asked for.
	if p.ID == 0 {
		p.ID = id
	}

	f.cache.PutPerson(p)
	return p, nil
}

// Membership returns the member id list for a group, memoized by group id.
func (f *Fetcher) Membership(ctx context.Context, group types.GroupRef) (types.GroupMembership, error) {
	if m, ok := f.cache.Membership(group.ID); ok {
		return m, nil
	}

	m, err := f.api.GroupMembership(ctx, group)
	if err != nil {
		return types.GroupMembership{}, err
	}

	f.cache.PutMembership(m)
	return m, nil
}
