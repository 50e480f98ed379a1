// Package repo provides browse session persistence and the browse event log
package repo

import (
	"context"
	_ "embed"
	"encoding/json"
	"time"

	"marketbrowse/internal/modkit/repokit"
	perr "marketbrowse/internal/platform/errors"
	"marketbrowse/internal/platform/store"
	"marketbrowse/internal/services/api/browse/domain"
)

//go:embed schema.sql
var schemaSQL string

// Repo is the session persistence surface used by the service layer
type Repo interface {
	// Get returns a stored session or a not found error
	Get(ctx context.Context, id string) (domain.Session, error)

	// Lock returns the session for update, a missing session comes back empty with its id set
	Lock(ctx context.Context, id string) (domain.Session, error)

	// Put upserts the session
	Put(ctx context.Context, s domain.Session) error
}

type (
	// PG is a Postgres implementation of the browse repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// Migrate creates the session table when missing
func Migrate(ctx context.Context, q repokit.Queryer) error {
	if _, err := q.Exec(ctx, schemaSQL); err != nil {
		return perr.FromPostgres(err, "browse schema")
	}
	return nil
}

const selectSession = `
	SELECT id::text, options, results, seq, updated_at
	  FROM browse_sessions
	 WHERE id = $1::uuid`

// Get reads a session without locking
func (r *queries) Get(ctx context.Context, id string) (domain.Session, error) {
	s, err := store.One(ctx, r.q, scanSession, selectSession, id)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return domain.Session{}, perr.NotFoundf("browse session %s", id)
		}
		return domain.Session{}, perr.FromPostgresf(err, "browse session %s", id)
	}
	return s, nil
}

// Lock reads a session FOR UPDATE inside the caller's transaction
func (r *queries) Lock(ctx context.Context, id string) (domain.Session, error) {
	s, err := store.One(ctx, r.q, scanSession, selectSession+" FOR UPDATE", id)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return domain.Session{ID: id}, nil
		}
		return domain.Session{}, perr.FromPostgresf(err, "lock browse session %s", id)
	}
	return s, nil
}

// Put upserts the snapshot, results and sequence of a session
func (r *queries) Put(ctx context.Context, s domain.Session) error {
	opts, err := json.Marshal(s.Options)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "encode browse options")
	}
	res, err := json.Marshal(s.Results)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "encode browse results")
	}
	updated := s.UpdatedAt
	if updated.IsZero() {
		updated = time.Now().UTC()
	}

	const sql = `
		INSERT INTO browse_sessions (id, options, results, seq, updated_at)
		VALUES ($1::uuid, $2::jsonb, $3::jsonb, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET options    = EXCLUDED.options,
		    results    = EXCLUDED.results,
		    seq        = EXCLUDED.seq,
		    updated_at = EXCLUDED.updated_at
	`
	if _, err := r.q.Exec(ctx, sql, s.ID, opts, res, s.Seq, updated); err != nil {
		return perr.FromPostgresf(err, "put browse session %s", s.ID)
	}
	return nil
}

func scanSession(row store.Row) (domain.Session, error) {
	var (
		s         domain.Session
		opts, res []byte
	)
	if err := row.Scan(&s.ID, &opts, &res, &s.Seq, &s.UpdatedAt); err != nil {
		return domain.Session{}, err
	}
	if err := decodeJSONB(opts, &s.Options); err != nil {
		return domain.Session{}, err
	}
	if err := decodeJSONB(res, &s.Results); err != nil {
		return domain.Session{}, err
	}
	return s, nil
}

func decodeJSONB(raw []byte, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "decode browse session")
	}
	return nil
}
