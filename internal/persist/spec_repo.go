package persist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/promptplay/gamecore/internal/gamespec"
)

var (
	ErrNotFound  = errors.New("game spec not found")
	ErrBadRating = errors.New("rating must be between 1 and 5")
)

// SpecRow is one stored GameSpec with its listing metadata.
type SpecRow struct {
	ID          uuid.UUID
	Title       string
	Author      string
	Rating      float64 // mean of all votes, 0 when unrated
	Votes       int32
	Spec        []byte // compact GameSpec JSON
	Fingerprint uint64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Revision is a previous body of a stored spec.
type Revision struct {
	Revision    int32
	Fingerprint uint64
	Spec        []byte
	SavedAt     time.Time
}

// SpecRepo stores GameSpec documents in game_specs. Every write that changes
// the document also appends a row to game_spec_revisions in the same
// transaction.
type SpecRepo struct {
	db *DB
}

func NewSpecRepo(db *DB) *SpecRepo {
	return &SpecRepo{db: db}
}

const specColumns = `id, title, author, rating_total, rating_votes, spec, fingerprint, created_at, updated_at`

func scanSpec(row pgx.Row) (*SpecRow, error) {
	var (
		s     SpecRow
		total int32
		fp    int64
		spec  string
	)
	if err := row.Scan(&s.ID, &s.Title, &s.Author, &total, &s.Votes, &spec, &fp, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if s.Votes > 0 {
		s.Rating = float64(total) / float64(s.Votes)
	}
	s.Spec = []byte(spec)
	s.Fingerprint = uint64(fp)
	return &s, nil
}

// Save stores doc under id, creating the row when id is new. A zero id
// allocates a fresh one. When the stored fingerprint already equals doc's,
// no revision is recorded and saved is false; a changed author is still
// updated.
func (r *SpecRepo) Save(ctx context.Context, id uuid.UUID, author string, doc *gamespec.Document) (row *SpecRow, saved bool, err error) {
	if id == uuid.Nil {
		id = uuid.New()
	}
	body, err := gamespec.MarshalJSON(doc, false)
	if err != nil {
		return nil, false, fmt.Errorf("encode spec: %w", err)
	}
	fp, err := gamespec.Fingerprint(doc)
	if err != nil {
		return nil, false, fmt.Errorf("fingerprint spec: %w", err)
	}
	title := ""
	if doc.Metadata != nil {
		if v, ok := doc.Metadata.Get("title"); ok {
			title, _ = v.(string)
		}
	}

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("save begin: %w", err)
	}
	defer tx.Rollback(ctx)

	row, err = scanSpec(tx.QueryRow(ctx,
		`INSERT INTO game_specs (id, title, author, spec, fingerprint)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE
		    SET title = EXCLUDED.title, author = EXCLUDED.author,
		        spec = EXCLUDED.spec, fingerprint = EXCLUDED.fingerprint, updated_at = NOW()
		  WHERE game_specs.fingerprint <> EXCLUDED.fingerprint
		 RETURNING `+specColumns,
		id, title, author, string(body), int64(fp),
	))
	if errors.Is(err, pgx.ErrNoRows) {
		// Conflict with an identical body: the update was filtered out. The
		// title lives in the body, so only the author can still differ.
		if _, err := tx.Exec(ctx,
			`UPDATE game_specs SET author = $2, updated_at = NOW()
			  WHERE id = $1 AND author <> $2`,
			id, author,
		); err != nil {
			return nil, false, fmt.Errorf("save author: %w", err)
		}
		if err := tx.Commit(ctx); err != nil {
			return nil, false, fmt.Errorf("save commit: %w", err)
		}
		row, err = r.Load(ctx, id)
		if err != nil {
			return nil, false, err
		}
		r.db.log.Debug("spec unchanged", zap.Stringer("id", id))
		return row, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("save spec: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO game_spec_revisions (spec_id, revision, fingerprint, spec)
		 SELECT $1::uuid, COALESCE(MAX(revision), 0) + 1, $2::bigint, $3::text
		   FROM game_spec_revisions WHERE spec_id = $1::uuid`,
		id, int64(fp), string(body),
	); err != nil {
		return nil, false, fmt.Errorf("save revision: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, false, fmt.Errorf("save commit: %w", err)
	}
	r.db.log.Info("spec saved",
		zap.Stringer("id", id),
		zap.String("title", title),
		zap.String("fingerprint", fmt.Sprintf("%016x", fp)))
	return row, true, nil
}

func (r *SpecRepo) Load(ctx context.Context, id uuid.UUID) (*SpecRow, error) {
	row, err := scanSpec(r.db.Pool.QueryRow(ctx,
		`SELECT `+specColumns+` FROM game_specs WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// ListFilter narrows List. Zero values mean no restriction.
type ListFilter struct {
	Author string
	Limit  int
}

// List returns stored specs, most recently updated first. Spec bodies are
// left empty.
func (r *SpecRepo) List(ctx context.Context, f ListFilter) ([]SpecRow, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, title, author, rating_total, rating_votes, '', fingerprint, created_at, updated_at
		 FROM game_specs
		 WHERE $1::text = '' OR author = $1::text
		 ORDER BY updated_at DESC, id
		 LIMIT $2`,
		f.Author, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SpecRow
	for rows.Next() {
		s, err := scanSpec(rows)
		if err != nil {
			return nil, err
		}
		s.Spec = nil
		out = append(out, *s)
	}
	return out, rows.Err()
}

// Rate records one vote of 1..5 stars and returns the new mean.
func (r *SpecRepo) Rate(ctx context.Context, id uuid.UUID, stars int) (float64, error) {
	if stars < 1 || stars > 5 {
		return 0, ErrBadRating
	}
	var total, votes int32
	err := r.db.Pool.QueryRow(ctx,
		`UPDATE game_specs SET rating_total = rating_total + $2, rating_votes = rating_votes + 1
		 WHERE id = $1
		 RETURNING rating_total, rating_votes`,
		id, stars,
	).Scan(&total, &votes)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return 0, err
	}
	return float64(total) / float64(votes), nil
}

// Delete removes a spec and its revisions.
func (r *SpecRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM game_specs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// History returns every saved body of a spec, oldest first.
func (r *SpecRepo) History(ctx context.Context, id uuid.UUID) ([]Revision, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT revision, fingerprint, spec, saved_at
		 FROM game_spec_revisions WHERE spec_id = $1 ORDER BY revision`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Revision
	for rows.Next() {
		var (
			rev  Revision
			fp   int64
			spec string
		)
		if err := rows.Scan(&rev.Revision, &fp, &spec, &rev.SavedAt); err != nil {
			return nil, err
		}
		rev.Fingerprint = uint64(fp)
		rev.Spec = []byte(spec)
		out = append(out, rev)
	}
	return out, rows.Err()
}
