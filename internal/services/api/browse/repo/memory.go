package repo

import (
	"context"
	"maps"
	"slices"
	"sync"

	"marketbrowse/internal/modkit/repokit"
	perr "marketbrowse/internal/platform/errors"
	"marketbrowse/internal/services/api/browse/domain"
)

// Memory keeps sessions in process, used when Postgres is disabled and in tests
// it is both the TxRunner and the Binder, Tx serializes writers and commits only on success
type Memory struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
}

// NewMemory returns an empty in process store
func NewMemory() *Memory {
	return &Memory{sessions: map[string]domain.Session{}}
}

var (
	_ repokit.TxRunner     = (*Memory)(nil)
	_ repokit.Binder[Repo] = (*Memory)(nil)
)

// Bind returns a repo over the committed state, or over the staged state inside Tx
func (m *Memory) Bind(q repokit.Queryer) Repo {
	if tx, ok := q.(*memTx); ok {
		return txRepo{tx: tx}
	}
	return lockedRepo{m: m}
}

// Tx runs fn against a staged copy and commits it when fn returns nil
func (m *Memory) Tx(ctx context.Context, fn func(q repokit.Queryer) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &memTx{staged: maps.Clone(m.sessions)}
	if tx.staged == nil {
		tx.staged = map[string]domain.Session{}
	}
	if err := fn(tx); err != nil {
		return err
	}
	m.sessions = tx.staged
	return nil
}

// Len returns the number of stored sessions
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Exec is unsupported, the memory store speaks no SQL
func (m *Memory) Exec(context.Context, string, ...any) (repokit.CommandTag, error) {
	return nil, errNoSQL
}

// Query is unsupported
func (m *Memory) Query(context.Context, string, ...any) (repokit.Rows, error) {
	return nil, errNoSQL
}

// QueryRow is unsupported
func (m *Memory) QueryRow(context.Context, string, ...any) repokit.Row { return errRow{} }

var errNoSQL = perr.New(perr.ErrorCodeUnavailable, "memory store has no sql")

type errRow struct{}

func (errRow) Scan(...any) error { return errNoSQL }

// memTx is the staged state of one Tx
type memTx struct {
	staged map[string]domain.Session
}

func (*memTx) Exec(context.Context, string, ...any) (repokit.CommandTag, error) {
	return nil, errNoSQL
}

func (*memTx) Query(context.Context, string, ...any) (repokit.Rows, error) { return nil, errNoSQL }

func (*memTx) QueryRow(context.Context, string, ...any) repokit.Row { return errRow{} }

type txRepo struct{ tx *memTx }

func (r txRepo) Get(_ context.Context, id string) (domain.Session, error) {
	s, ok := r.tx.staged[id]
	if !ok {
		return domain.Session{}, perr.NotFoundf("browse session %s", id)
	}
	return clone(s), nil
}

func (r txRepo) Lock(_ context.Context, id string) (domain.Session, error) {
	s, ok := r.tx.staged[id]
	if !ok {
		return domain.Session{ID: id}, nil
	}
	return clone(s), nil
}

func (r txRepo) Put(_ context.Context, s domain.Session) error {
	r.tx.staged[s.ID] = clone(s)
	return nil
}

type lockedRepo struct{ m *Memory }

func (r lockedRepo) Get(ctx context.Context, id string) (domain.Session, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return txRepo{tx: &memTx{staged: r.m.sessions}}.Get(ctx, id)
}

func (r lockedRepo) Lock(ctx context.Context, id string) (domain.Session, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return txRepo{tx: &memTx{staged: r.m.sessions}}.Lock(ctx, id)
}

func (r lockedRepo) Put(ctx context.Context, s domain.Session) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.sessions == nil {
		r.m.sessions = map[string]domain.Session{}
	}
	return txRepo{tx: &memTx{staged: r.m.sessions}}.Put(ctx, s)
}

// clone detaches slices and pointers so callers never share state with the store
func clone(s domain.Session) domain.Session {
	s.Options = s.Options.Clone()
	s.Results.IDs = slices.Clone(s.Results.IDs)
	if s.Results.Count != nil {
		n := *s.Results.Count
		s.Results.Count = &n
	}
	return s
}
