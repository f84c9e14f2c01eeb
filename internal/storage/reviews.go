// Package storage implements the Postgres-backed review store.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sevigo/code-sage/internal/core"
)

// Store defines the interface for all database operations on reviews.
// Records are immutable once inserted; there is no update path.
type Store interface {
	// Insert persists a new review. Lines of code are counted from the raw
	// code text and scores are clamped to [0,10] on the way in. Returns the
	// store-assigned id.
	Insert(ctx context.Context, rec *core.Review, code string) (int64, error)
	GetByID(ctx context.Context, id int64) (*core.Review, error)
	// GetLatestByHash returns the most recent review with the given content
	// fingerprint, for the optional content-addressed cache.
	GetLatestByHash(ctx context.Context, hash string) (*core.Review, error)
	List(ctx context.Context, limit, offset int) ([]*core.Review, error)
	Delete(ctx context.Context, id int64) error
	Aggregate(ctx context.Context) (*core.Stats, error)
}

type postgresStore struct {
	db *sqlx.DB
}

// NewStore creates a new Store
func NewStore(db *sqlx.DB) Store {
	return &postgresStore{db: db}
}

// reviewRow mirrors the reviews table; suggestions and issues live in JSON
// text columns.
type reviewRow struct {
	ID               int64     `db:"id"`
	Filename         string    `db:"filename"`
	FileHash         string    `db:"file_hash"`
	Language         string    `db:"language"`
	LinesOfCode      int       `db:"lines_of_code"`
	ReviewSummary    string    `db:"review_summary"`
	ReadabilityScore int       `db:"readability_score"`
	ModularityScore  int       `db:"modularity_score"`
	BugRiskScore     int       `db:"bug_risk_score"`
	Suggestions      string    `db:"suggestions"`
	Issues           string    `db:"issues"`
	CreatedAt        time.Time `db:"created_at"`
}

const selectColumns = `id, filename, file_hash, language, lines_of_code, review_summary,
	readability_score, modularity_score, bug_risk_score, suggestions, issues, created_at`

func (s *postgresStore) Insert(ctx context.Context, rec *core.Review, code string) (int64, error) {
	suggestions, err := encodeSuggestions(rec.Suggestions)
	if err != nil {
		return 0, fmt.Errorf("failed to encode suggestions: %w", err)
	}
	issues, err := encodeIssues(rec.Issues)
	if err != nil {
		return 0, fmt.Errorf("failed to encode issues: %w", err)
	}

	query := `
		INSERT INTO reviews (
			filename, file_hash, language, lines_of_code, review_summary,
			readability_score, modularity_score, bug_risk_score, suggestions, issues, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	var id int64
	err = s.db.QueryRowContext(ctx, query,
		rec.Filename,
		rec.FileHash,
		rec.Language,
		core.CountNonBlankLines(code),
		rec.ReviewSummary,
		clampScore(rec.ReadabilityScore),
		clampScore(rec.ModularityScore),
		clampScore(rec.BugRiskScore),
		suggestions,
		issues,
		time.Now(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert review: %w", err)
	}
	return id, nil
}

func (s *postgresStore) GetByID(ctx context.Context, id int64) (*core.Review, error) {
	var row reviewRow
	query := `SELECT ` + selectColumns + ` FROM reviews WHERE id = $1`
	if err := s.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review %d: %w", id, err)
	}
	return row.toReview(), nil
}

func (s *postgresStore) GetLatestByHash(ctx context.Context, hash string) (*core.Review, error) {
	var row reviewRow
	query := `SELECT ` + selectColumns + ` FROM reviews WHERE file_hash = $1 ORDER BY created_at DESC, id DESC LIMIT 1`
	if err := s.db.GetContext(ctx, &row, query, hash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to look up review by hash: %w", err)
	}
	return row.toReview(), nil
}

func (s *postgresStore) List(ctx context.Context, limit, offset int) ([]*core.Review, error) {
	var rows []reviewRow
	query := `SELECT ` + selectColumns + ` FROM reviews ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`
	if err := s.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	reviews := make([]*core.Review, 0, len(rows))
	for i := range rows {
		reviews = append(reviews, rows[i].toReview())
	}
	return reviews, nil
}

func (s *postgresStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete review %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return core.ErrReviewNotFound
	}
	return nil
}

func (s *postgresStore) Aggregate(ctx context.Context) (*core.Stats, error) {
	var agg struct {
		Total       int64   `db:"total"`
		Readability float64 `db:"readability"`
		Modularity  float64 `db:"modularity"`
		BugRisk     float64 `db:"bug_risk"`
	}
	query := `
		SELECT
			COUNT(*) AS total,
			COALESCE(ROUND(AVG(readability_score)::numeric, 1), 0) AS readability,
			COALESCE(ROUND(AVG(modularity_score)::numeric, 1), 0) AS modularity,
			COALESCE(ROUND(AVG(bug_risk_score)::numeric, 1), 0) AS bug_risk
		FROM reviews`
	if err := s.db.GetContext(ctx, &agg, query); err != nil {
		return nil, fmt.Errorf("failed to aggregate reviews: %w", err)
	}

	type langCount struct {
		Language string `db:"language"`
		Count    int64  `db:"count"`
	}
	var langs []langCount
	langQuery := `
		SELECT COALESCE(NULLIF(language, ''), 'Unknown') AS language, COUNT(*) AS count
		FROM reviews
		GROUP BY 1`
	if err := s.db.SelectContext(ctx, &langs, langQuery); err != nil {
		return nil, fmt.Errorf("failed to aggregate languages: %w", err)
	}

	stats := &core.Stats{
		TotalReviews: agg.Total,
		AverageScores: core.AverageScores{
			Readability: agg.Readability,
			Modularity:  agg.Modularity,
			BugRisk:     agg.BugRisk,
		},
		Languages: make(map[string]int64, len(langs)),
	}
	for _, lc := range langs {
		stats.Languages[lc.Language] = lc.Count
	}
	return stats, nil
}

// clampScore forces a score into the canonical [0,10] range at the
// persistence boundary.
func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 10 {
		return 10
	}
	return n
}
