// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ProjectManagement Contributors

package team_test

import (
	"context"
	"errors"
	"maps"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/amosmoyo/ProjectManagement/internal/team"
)

type pair struct{ pm, dev ulid.ULID }

// memStore is an in-memory profile and assignment store. InTransaction
// restores the assignment rows when fn fails.
type memStore struct {
	mu   sync.Mutex
	devs map[ulid.ULID]bool
	pms  map[ulid.ULID]bool
	rows map[pair]team.Assignment

	// raceOnInsert makes the next Insert lose to a concurrent writer that
	// committed an active row.
	raceOnInsert bool
	failSet      error
	failExists   error
	commits      int
	rollbacks    int

	devByPrincipal map[ulid.ULID]ulid.ULID
	pmByPrincipal  map[ulid.ULID]ulid.ULID
}

func newMemStore() *memStore {
	return &memStore{
		devs:           map[ulid.ULID]bool{},
		pms:            map[ulid.ULID]bool{},
		rows:           map[pair]team.Assignment{},
		devByPrincipal: map[ulid.ULID]ulid.ULID{},
		pmByPrincipal:  map[ulid.ULID]ulid.ULID{},
	}
}

func (m *memStore) addDeveloper() ulid.ULID {
	id := ulid.Make()
	m.devs[id] = true
	return id
}

func (m *memStore) addProjectManager() ulid.ULID {
	id := ulid.Make()
	m.pms[id] = true
	return id
}

func (m *memStore) row(pm, dev ulid.ULID) (team.Assignment, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.rows[pair{pm, dev}]
	return a, ok
}

func (m *memStore) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	snapshot := maps.Clone(m.rows)
	m.mu.Unlock()

	if err := fn(ctx); err != nil {
		m.mu.Lock()
		m.rows = snapshot
		m.rollbacks++
		m.mu.Unlock()
		return err
	}
	m.mu.Lock()
	m.commits++
	m.mu.Unlock()
	return nil
}

func (m *memStore) CreateDeveloper(_ context.Context, p *team.DeveloperProfile) error {
	m.devs[p.ID] = true
	m.devByPrincipal[p.PrincipalID] = p.ID
	return nil
}

func (m *memStore) CreateProjectManager(_ context.Context, p *team.ProjectManagerProfile) error {
	m.pms[p.ID] = true
	m.pmByPrincipal[p.PrincipalID] = p.ID
	return nil
}

func (m *memStore) DeveloperExists(_ context.Context, id ulid.ULID) (bool, error) {
	return m.devs[id], m.failExists
}

func (m *memStore) ProjectManagerExists(_ context.Context, id ulid.ULID) (bool, error) {
	return m.pms[id], m.failExists
}

func (m *memStore) DeveloperIDForPrincipal(_ context.Context, principalID ulid.ULID) (ulid.ULID, error) {
	if id, ok := m.devByPrincipal[principalID]; ok {
		return id, nil
	}
	return ulid.ULID{}, team.ErrNotFound
}

func (m *memStore) ProjectManagerIDForPrincipal(_ context.Context, principalID ulid.ULID) (ulid.ULID, error) {
	if id, ok := m.pmByPrincipal[principalID]; ok {
		return id, nil
	}
	return ulid.ULID{}, team.ErrNotFound
}

func (m *memStore) GetForUpdate(_ context.Context, pm, dev ulid.ULID) (*team.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.rows[pair{pm, dev}]
	if !ok {
		return nil, team.ErrNotFound
	}
	return &a, nil
}

func (m *memStore) Insert(_ context.Context, a *team.Assignment) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := pair{a.ProjectManagerID, a.DeveloperID}
	if m.raceOnInsert {
		m.raceOnInsert = false
		m.rows[key] = team.Assignment{
			ProjectManagerID: a.ProjectManagerID,
			DeveloperID:      a.DeveloperID,
			Active:           true,
			CreatedAt:        a.CreatedAt,
			UpdatedAt:        a.UpdatedAt,
		}
		return false, nil
	}
	if _, ok := m.rows[key]; ok {
		return false, nil
	}
	m.rows[key] = *a
	return true, nil
}

func (m *memStore) SetActive(_ context.Context, pm, dev ulid.ULID, active bool, at time.Time) error {
	if m.failSet != nil {
		return m.failSet
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := pair{pm, dev}
	a, ok := m.rows[key]
	if !ok {
		return errors.New("no row")
	}
	a.Active = active
	a.UpdatedAt = at
	m.rows[key] = a
	return nil
}

// frozenClock returns the same instant until advanced.
type frozenClock struct{ t time.Time }

func (c *frozenClock) Now() time.Time          { return c.t }
func (c *frozenClock) Advance(d time.Duration) { c.t = c.t.Add(d) }
