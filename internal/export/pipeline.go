// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/dfcamara/enuvex/internal/fetch"
	"github.com/dfcamara/enuvex/pkg/types"
)

// API is the remote surface the pipeline needs: group listing plus the
// fetcher's entity calls. Satisfied by *enuvens.Client.
type API interface {
	fetch.API
	ListGroups(ctx context.Context) ([]types.GroupRef, error)
}

// Sink consumes the ordered row sequence. Writing is the pipeline's only
// side effect.
type Sink interface {
	WriteHeader(columns []string, widths []float64) error
	WriteGroupHeader(name string) error
	WriteRow(row []string) error
	Close() error
}

// Summary holds the end-of-run totals. Degraded failures are counted here
// rather than raised individually.
type Summary struct {
	Groups         int       `json:"groups" yaml:"groups"`
	GroupFailures  int       `json:"group_failures" yaml:"group_failures"`
	People         int       `json:"people" yaml:"people"`
	PersonFailures int       `json:"person_failures" yaml:"person_failures"`
	Rows           int       `json:"rows" yaml:"rows"`
	Started        time.Time `json:"started" yaml:"started"`
	Finished       time.Time `json:"finished" yaml:"finished"`
}

// HasFailures reports whether any group or person fetch failed.
func (s Summary) HasFailures() bool {
	return s.GroupFailures > 0 || s.PersonFailures > 0
}

// Pipeline drives one export run. Construct with NewPipeline; the cache
// inside the fetcher is owned by the run and discarded with it.
type Pipeline struct {
	api      API
	fetcher  *fetch.Fetcher
	fetchCfg types.FetchConfig
	cfg      types.ExportConfig
	w        io.Writer
}

// NewPipeline builds a pipeline over the given API with a fresh run cache.
func NewPipeline(api API, fetchCfg types.FetchConfig, cfg types.ExportConfig, w io.Writer) *Pipeline {
	return &Pipeline{
		api:      api,
		fetcher:  fetch.NewFetcher(api, fetch.NewCache()),
		fetchCfg: fetchCfg,
		cfg:      cfg,
		w:        w,
	}
}

// Run executes the pipeline: list groups, resolve memberships, fetch every
// member, and emit name-sorted rows per group into sink. Only the groups
// listing is fatal; per-group and per-person failures degrade the output
// and are reported in the summary.
func (p *Pipeline) Run(ctx context.Context, sink Sink) (Summary, error) {
	summary := Summary{Started: time.Now()}

	groups, err := p.api.ListGroups(ctx)
	if err != nil {
		return summary, err
	}

	if p.cfg.GroupID != 0 {
		groups = filterGroup(groups, p.cfg.GroupID)
		if len(groups) == 0 {
			return summary, fmt.Errorf("group %d not found in listing", p.cfg.GroupID)
		}
	}
	summary.Groups = len(groups)
	fmt.Fprintf(p.w, "%d groups found\n", len(groups))

	concurrency := p.fetchCfg.Concurrency
	if concurrency <= 0 {
		concurrency = 50
	}

	// Resolve memberships with the same bounded fan-out discipline as
	// person fetches. A failed group contributes zero members.
	memberships := fetch.FanOut(ctx, groups, concurrency, p.fetchCfg.PacingDelay,
		func(ctx context.Context, g types.GroupRef) (types.GroupMembership, error) {
			return p.fetcher.Membership(ctx, g)
		})

	perGroup := make([][]types.PersonID, len(groups))
	var ids []types.PersonID
	assigned := make(map[types.PersonID]bool)

	for i, r := range memberships {
		if r.Err != nil {
			fmt.Fprintf(p.w, "warning: group %q membership failed: %v\n", r.Key.Name, r.Err)
			summary.GroupFailures++
			continue
		}
		for _, id := range r.Value.MemberIDs {
			if !assigned[id] {
				assigned[id] = true
				ids = append(ids, id)
			} else if p.cfg.Dedupe {
				// Already attributed to an earlier group.
				continue
			}
			perGroup[i] = append(perGroup[i], id)
		}
	}
	summary.People = len(ids)
	fmt.Fprintf(p.w, "%d unique people to fetch\n", len(ids))

	results := fetch.FanOut(ctx, ids, concurrency, p.fetchCfg.PacingDelay,
		func(ctx context.Context, id types.PersonID) (types.Person, error) {
			return p.fetcher.Person(ctx, id)
		})

	people := make(map[types.PersonID]types.Person, len(results))
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(p.w, "warning: person %d fetch failed: %v\n", r.Key, r.Err)
			summary.PersonFailures++
			continue
		}
		people[r.Key] = r.Value
	}

	if err := sink.WriteHeader(Columns, ColumnWidths); err != nil {
		return summary, fmt.Errorf("writing header: %w", err)
	}

	// Emit groups in listing order, rows sorted by lowercased full name.
	for i, group := range groups {
		rows := projectGroup(perGroup[i], people, group.Name)
		if len(rows) == 0 {
			continue
		}
		if err := sink.WriteGroupHeader(strings.ToUpper(group.Name)); err != nil {
			return summary, fmt.Errorf("writing group header: %w", err)
		}
		for _, row := range rows {
			if err := sink.WriteRow(row); err != nil {
				return summary, fmt.Errorf("writing row: %w", err)
			}
			summary.Rows++
		}
	}

	if err := sink.Close(); err != nil {
		return summary, fmt.Errorf("closing sink: %w", err)
	}

	summary.Finished = time.Now()
	fmt.Fprintf(p.w, "\nRun summary: %d groups (%d failed), %d people fetched, %d failed, %d rows\n",
		summary.Groups, summary.GroupFailures,
		summary.People-summary.PersonFailures, summary.PersonFailures, summary.Rows)
	return summary, nil
}

// projectGroup builds the name-sorted rows of one group from the fetched
// person map. Missing people (failed fetches) are skipped.
func projectGroup(ids []types.PersonID, people map[types.PersonID]types.Person, groupName string) [][]string {
	members := make([]types.Person, 0, len(ids))
	for _, id := range ids {
		if p, ok := people[id]; ok {
			members = append(members, p)
		}
	}

	sort.SliceStable(members, func(i, j int) bool {
		return strings.ToLower(members[i].FullName) < strings.ToLower(members[j].FullName)
	})

	rows := make([][]string, 0, len(members))
	for _, m := range members {
		rows = append(rows, ProjectRow(m, groupName))
	}
	return rows
}

func filterGroup(groups []types.GroupRef, id int) []types.GroupRef {
	for _, g := range groups {
		if g.ID == id {
			return []types.GroupRef{g}
		}
	}
	return nil
}
