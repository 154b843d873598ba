package training

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// TestStore is an in-memory Store. InTx runs against the live data and
// restores a snapshot when fn fails, so a failed unit leaves no trace.
// Order index uniqueness is checked when a unit commits, like the
// deferred constraint in postgres.
type TestStore struct {
	mu   sync.Mutex
	data *testData

	// BeforeWrite, when set, runs ahead of every write; an error aborts it.
	BeforeWrite func(op string) error
	// Locks records every lock taken, e.g. "mesocycle:1".
	Locks []string
	// Now stamps created rows.
	Now func() time.Time
}

type testData struct {
	mesocycles map[int]*Mesocycle
	sessions   map[int]*Session
	entries    map[int]*SessionExercise
	recovery   map[recoveryKey]float64
	nextID     int
}

type recoveryKey struct {
	userID        int
	muscleGroupID string
}

var _ Store = (*TestStore)(nil)

func NewTestStore() *TestStore {
	return &TestStore{
		data: &testData{
			mesocycles: map[int]*Mesocycle{},
			sessions:   map[int]*Session{},
			entries:    map[int]*SessionExercise{},
			recovery:   map[recoveryKey]float64{},
		},
		Now: time.Now,
	}
}

func (d *testData) clone() *testData {
	c := &testData{
		mesocycles: make(map[int]*Mesocycle, len(d.mesocycles)),
		sessions:   make(map[int]*Session, len(d.sessions)),
		entries:    make(map[int]*SessionExercise, len(d.entries)),
		recovery:   make(map[recoveryKey]float64, len(d.recovery)),
		nextID:     d.nextID,
	}
	for k, level := range d.recovery {
		c.recovery[k] = level
	}
	for id, m := range d.mesocycles {
		mc := *m
		c.mesocycles[id] = &mc
	}
	for id, s := range d.sessions {
		sc := *s
		c.sessions[id] = &sc
	}
	for id, e := range d.entries {
		c.entries[id] = copyEntry(e)
	}
	return c
}

func copyEntry(e *SessionExercise) *SessionExercise {
	c := *e
	return &c
}

func copySession(s *Session) *Session {
	c := *s
	c.Exercises = nil
	if s.MesocycleID != nil {
		id := *s.MesocycleID
		c.MesocycleID = &id
	}
	return &c
}

func (s *TestStore) InTx(_ context.Context, fn func(q Queries) error) error {
	return s.run(func(tx *testTx) error {
		return fn(tx)
	})
}

func (s *TestStore) run(fn func(tx *testTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	tx := &testTx{store: s, data: s.data}
	err := fn(tx)
	if err == nil {
		err = s.data.checkOrderIndexes()
	}
	if err != nil {
		s.data = snapshot
	}
	return err
}

func (d *testData) checkOrderIndexes() error {
	seen := map[[2]int]bool{}
	for _, e := range d.entries {
		key := [2]int{e.SessionID, e.OrderIndex}
		if seen[key] {
			return fmt.Errorf("duplicate order index %d in session %d", e.OrderIndex, e.SessionID)
		}
		seen[key] = true
	}
	return nil
}

// Sessions returns every stored session, exercises attached, ordered by date.
func (s *TestStore) Sessions() []*Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := make([]*Session, 0, len(s.data.sessions))
	for _, session := range s.data.sessions {
		c := copySession(session)
		c.Exercises = s.data.sessionEntries(session.ID)
		sessions = append(sessions, c)
	}
	sort.Slice(sessions, func(i, j int) bool {
		if !sessions[i].Date.Equal(sessions[j].Date) {
			return sessions[i].Date.Before(sessions[j].Date)
		}
		return sessions[i].ID < sessions[j].ID
	})
	return sessions
}

// RecoveryLevels returns the recovery levels written for the user, keyed by
// muscle group.
func (s *TestStore) RecoveryLevels(userID int) map[string]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	levels := map[string]float64{}
	for k, level := range s.data.recovery {
		if k.userID == userID {
			levels[k.muscleGroupID] = level
		}
	}
	return levels
}

func (d *testData) sessionEntries(sessionID int) []*SessionExercise {
	entries := make([]*SessionExercise, 0)
	for _, e := range d.entries {
		if e.SessionID == sessionID {
			entries = append(entries, copyEntry(e))
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].OrderIndex != entries[j].OrderIndex {
			return entries[i].OrderIndex < entries[j].OrderIndex
		}
		return entries[i].ID < entries[j].ID
	})
	return entries
}

func (s *TestStore) GetMesocycle(ctx context.Context, id int) (m *Mesocycle, err error) {
	err = s.run(func(tx *testTx) error {
		m, err = tx.GetMesocycle(ctx, id)
		return err
	})
	return m, err
}

func (s *TestStore) GetActiveMesocycle(ctx context.Context, userID int) (m *Mesocycle, err error) {
	err = s.run(func(tx *testTx) error {
		m, err = tx.GetActiveMesocycle(ctx, userID)
		return err
	})
	return m, err
}

func (s *TestStore) ListMesocycles(ctx context.Context, userID int) (ms []*Mesocycle, err error) {
	err = s.run(func(tx *testTx) error {
		ms, err = tx.ListMesocycles(ctx, userID)
		return err
	})
	return ms, err
}

func (s *TestStore) AddMesocycle(ctx context.Context, m Mesocycle) (added *Mesocycle, err error) {
	err = s.run(func(tx *testTx) error {
		added, err = tx.AddMesocycle(ctx, m)
		return err
	})
	return added, err
}

func (s *TestStore) UpdateMesocycle(ctx context.Context, m *Mesocycle) error {
	return s.run(func(tx *testTx) error {
		return tx.UpdateMesocycle(ctx, m)
	})
}

func (s *TestStore) DeactivateMesocycles(ctx context.Context, userID int) (n int, err error) {
	err = s.run(func(tx *testTx) error {
		n, err = tx.DeactivateMesocycles(ctx, userID)
		return err
	})
	return n, err
}

func (s *TestStore) LockMesocycle(context.Context, int) error {
	return InvalidStatef("advisory lock requested outside of a transaction")
}

func (s *TestStore) LockSession(context.Context, int) error {
	return InvalidStatef("advisory lock requested outside of a transaction")
}

func (s *TestStore) GetSession(ctx context.Context, id int) (session *Session, err error) {
	err = s.run(func(tx *testTx) error {
		session, err = tx.GetSession(ctx, id)
		return err
	})
	return session, err
}

func (s *TestStore) AddSession(ctx context.Context, session Session) (added *Session, err error) {
	err = s.run(func(tx *testTx) error {
		added, err = tx.AddSession(ctx, session)
		return err
	})
	return added, err
}

func (s *TestStore) UpdateSession(ctx context.Context, session *Session) error {
	return s.run(func(tx *testTx) error {
		return tx.UpdateSession(ctx, session)
	})
}

func (s *TestStore) ListSessions(ctx context.Context, params ListSessionsParams) (sessions []*Session, err error) {
	err = s.run(func(tx *testTx) error {
		sessions, err = tx.ListSessions(ctx, params)
		return err
	})
	return sessions, err
}

func (s *TestStore) GetSessionExercise(ctx context.Context, id int) (e *SessionExercise, err error) {
	err = s.run(func(tx *testTx) error {
		e, err = tx.GetSessionExercise(ctx, id)
		return err
	})
	return e, err
}

func (s *TestStore) ListSessionExercises(ctx context.Context, sessionID int) (entries []*SessionExercise, err error) {
	err = s.run(func(tx *testTx) error {
		entries, err = tx.ListSessionExercises(ctx, sessionID)
		return err
	})
	return entries, err
}

func (s *TestStore) AddSessionExercise(ctx context.Context, e SessionExercise) (added *SessionExercise, err error) {
	err = s.run(func(tx *testTx) error {
		added, err = tx.AddSessionExercise(ctx, e)
		return err
	})
	return added, err
}

func (s *TestStore) UpdateSessionExercise(ctx context.Context, e *SessionExercise) error {
	return s.run(func(tx *testTx) error {
		return tx.UpdateSessionExercise(ctx, e)
	})
}

func (s *TestStore) DeleteSessionExercise(ctx context.Context, id int) error {
	return s.run(func(tx *testTx) error {
		return tx.DeleteSessionExercise(ctx, id)
	})
}

func (s *TestStore) ShiftOrderIndexes(ctx context.Context, sessionID, from, delta int) error {
	return s.run(func(tx *testTx) error {
		return tx.ShiftOrderIndexes(ctx, sessionID, from, delta)
	})
}

func (s *TestStore) SetRecoveryLevel(ctx context.Context, userID int, muscleGroupID string, level float64) error {
	return s.run(func(tx *testTx) error {
		return tx.SetRecoveryLevel(ctx, userID, muscleGroupID, level)
	})
}

// testTx is the Queries view handed to InTx callbacks. The caller holds
// the store mutex.
type testTx struct {
	store *TestStore
	data  *testData
}

func (tx *testTx) write(op string) error {
	if tx.store.BeforeWrite != nil {
		return tx.store.BeforeWrite(op)
	}
	return nil
}

func (tx *testTx) nextID() int {
	tx.data.nextID++
	return tx.data.nextID
}

func (tx *testTx) GetMesocycle(_ context.Context, id int) (*Mesocycle, error) {
	m, ok := tx.data.mesocycles[id]
	if !ok {
		return nil, NotFoundf("mesocycle %d", id)
	}
	c := *m
	return &c, nil
}

func (tx *testTx) GetActiveMesocycle(_ context.Context, userID int) (*Mesocycle, error) {
	var active *Mesocycle
	for _, m := range tx.data.mesocycles {
		if m.UserID != userID || !m.IsActive {
			continue
		}
		if active == nil || m.ID > active.ID {
			active = m
		}
	}
	if active == nil {
		return nil, NotFoundf("active mesocycle for user %d", userID)
	}
	c := *active
	return &c, nil
}

func (tx *testTx) ListMesocycles(_ context.Context, userID int) ([]*Mesocycle, error) {
	mesocycles := make([]*Mesocycle, 0)
	for _, m := range tx.data.mesocycles {
		if m.UserID == userID {
			c := *m
			mesocycles = append(mesocycles, &c)
		}
	}
	sort.Slice(mesocycles, func(i, j int) bool {
		if !mesocycles[i].StartDate.Equal(mesocycles[j].StartDate) {
			return mesocycles[i].StartDate.After(mesocycles[j].StartDate)
		}
		return mesocycles[i].ID > mesocycles[j].ID
	})
	return mesocycles, nil
}

func (tx *testTx) AddMesocycle(_ context.Context, m Mesocycle) (*Mesocycle, error) {
	if err := tx.write("AddMesocycle"); err != nil {
		return nil, err
	}
	m.ID = tx.nextID()
	m.StartDate = Day(m.StartDate)
	m.CreatedAt = tx.store.Now()
	m.PhaseChangedAt = m.CreatedAt
	if m.Phase == "" {
		m.Phase = PhaseAccumulation
	}
	stored := m
	tx.data.mesocycles[m.ID] = &stored
	return &m, nil
}

func (tx *testTx) UpdateMesocycle(_ context.Context, m *Mesocycle) error {
	if err := tx.write("UpdateMesocycle"); err != nil {
		return err
	}
	existing, ok := tx.data.mesocycles[m.ID]
	if !ok {
		return NotFoundf("mesocycle %d", m.ID)
	}
	existing.Name = m.Name
	existing.CurrentWeek = m.CurrentWeek
	existing.Phase = m.Phase
	existing.IsActive = m.IsActive
	existing.PhaseChangedAt = m.PhaseChangedAt
	existing.LastReviewedWeek = m.LastReviewedWeek
	return nil
}

func (tx *testTx) DeactivateMesocycles(_ context.Context, userID int) (int, error) {
	if err := tx.write("DeactivateMesocycles"); err != nil {
		return 0, err
	}
	n := 0
	for _, m := range tx.data.mesocycles {
		if m.UserID == userID && m.IsActive {
			m.IsActive = false
			n++
		}
	}
	return n, nil
}

func (tx *testTx) LockMesocycle(_ context.Context, id int) error {
	tx.store.Locks = append(tx.store.Locks, fmt.Sprintf("mesocycle:%d", id))
	return nil
}

func (tx *testTx) LockSession(_ context.Context, id int) error {
	tx.store.Locks = append(tx.store.Locks, fmt.Sprintf("session:%d", id))
	return nil
}

func (tx *testTx) GetSession(_ context.Context, id int) (*Session, error) {
	s, ok := tx.data.sessions[id]
	if !ok {
		return nil, NotFoundf("session %d", id)
	}
	return copySession(s), nil
}

func (tx *testTx) AddSession(_ context.Context, s Session) (*Session, error) {
	if err := tx.write("AddSession"); err != nil {
		return nil, err
	}
	if s.MesocycleID != nil {
		if _, ok := tx.data.mesocycles[*s.MesocycleID]; !ok {
			return nil, fmt.Errorf("insert session: unknown mesocycle %d", *s.MesocycleID)
		}
	}
	s.ID = tx.nextID()
	s.Date = Day(s.Date)
	stored := copySession(&s)
	tx.data.sessions[s.ID] = stored
	return copySession(stored), nil
}

func (tx *testTx) UpdateSession(_ context.Context, s *Session) error {
	if err := tx.write("UpdateSession"); err != nil {
		return err
	}
	if _, ok := tx.data.sessions[s.ID]; !ok {
		return NotFoundf("session %d", s.ID)
	}
	stored := copySession(s)
	stored.Date = Day(stored.Date)
	tx.data.sessions[s.ID] = stored
	return nil
}

func (tx *testTx) ListSessions(_ context.Context, params ListSessionsParams) ([]*Session, error) {
	sessions := make([]*Session, 0)
	for _, s := range tx.data.sessions {
		if params.UserID != nil && s.UserID != *params.UserID {
			continue
		}
		if params.MesocycleID != nil && (s.MesocycleID == nil || *s.MesocycleID != *params.MesocycleID) {
			continue
		}
		day := Day(s.Date)
		if params.After != nil && !day.After(Day(*params.After)) {
			continue
		}
		if params.From != nil && day.Before(Day(*params.From)) {
			continue
		}
		if params.To != nil && day.After(Day(*params.To)) {
			continue
		}
		sessions = append(sessions, copySession(s))
	}
	sort.Slice(sessions, func(i, j int) bool {
		if !sessions[i].Date.Equal(sessions[j].Date) {
			return sessions[i].Date.Before(sessions[j].Date)
		}
		return sessions[i].ID < sessions[j].ID
	})
	return sessions, nil
}

func (tx *testTx) GetSessionExercise(_ context.Context, id int) (*SessionExercise, error) {
	e, ok := tx.data.entries[id]
	if !ok {
		return nil, NotFoundf("session exercise %d", id)
	}
	return copyEntry(e), nil
}

func (tx *testTx) ListSessionExercises(_ context.Context, sessionID int) ([]*SessionExercise, error) {
	return tx.data.sessionEntries(sessionID), nil
}

func (tx *testTx) AddSessionExercise(_ context.Context, e SessionExercise) (*SessionExercise, error) {
	if err := tx.write("AddSessionExercise"); err != nil {
		return nil, err
	}
	if _, ok := tx.data.sessions[e.SessionID]; !ok {
		return nil, fmt.Errorf("insert session exercise: unknown session %d", e.SessionID)
	}
	if e.OrderIndex < 1 || e.Sets < 1 {
		return nil, fmt.Errorf("insert session exercise: check constraint violated")
	}
	e.ID = tx.nextID()
	tx.data.entries[e.ID] = copyEntry(&e)
	return &e, nil
}

func (tx *testTx) UpdateSessionExercise(_ context.Context, e *SessionExercise) error {
	if err := tx.write("UpdateSessionExercise"); err != nil {
		return err
	}
	existing, ok := tx.data.entries[e.ID]
	if !ok {
		return NotFoundf("session exercise %d", e.ID)
	}
	updated := copyEntry(e)
	updated.SessionID = existing.SessionID
	tx.data.entries[e.ID] = updated
	return nil
}

func (tx *testTx) DeleteSessionExercise(_ context.Context, id int) error {
	if err := tx.write("DeleteSessionExercise"); err != nil {
		return err
	}
	if _, ok := tx.data.entries[id]; !ok {
		return NotFoundf("session exercise %d", id)
	}
	delete(tx.data.entries, id)
	return nil
}

func (tx *testTx) ShiftOrderIndexes(_ context.Context, sessionID, from, delta int) error {
	if err := tx.write("ShiftOrderIndexes"); err != nil {
		return err
	}
	for _, e := range tx.data.entries {
		if e.SessionID == sessionID && e.OrderIndex >= from {
			e.OrderIndex += delta
		}
	}
	return nil
}

func (tx *testTx) SetRecoveryLevel(_ context.Context, userID int, muscleGroupID string, level float64) error {
	if err := tx.write("SetRecoveryLevel"); err != nil {
		return err
	}
	tx.data.recovery[recoveryKey{userID, muscleGroupID}] = level
	return nil
}
