package catalog

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // postgres driver

	"dayzero/internal/recommend/models"
)

// PostgresStore reads popularity statistics from PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed catalog store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// LookupPopularity returns all popularity records for a country/program
// pair, most popular first, then by ascending priority score.
func (s *PostgresStore) LookupPopularity(ctx context.Context, countryCode string, programTypeID int) ([]models.PopularityRecord, error) {
	query := `
		SELECT item_title, item_description, item_tag, popularity_rate,
		       avg_offset_days, priority_score
		FROM item_popularity_stats
		WHERE country_code = $1 AND program_type_id = $2
		ORDER BY popularity_rate DESC, priority_score ASC
	`
	rows, err := s.db.QueryContext(ctx, query, countryCode, programTypeID)
	if err != nil {
		return nil, fmt.Errorf("lookup popularity stats: %w", err)
	}
	defer rows.Close()

	var records []models.PopularityRecord
	for rows.Next() {
		var rec models.PopularityRecord
		var description sql.NullString
		if err := rows.Scan(
			&rec.ItemTitle,
			&description,
			&rec.ItemTag,
			&rec.PopularityRate,
			&rec.AvgOffsetDays,
			&rec.PriorityScore,
		); err != nil {
			return nil, fmt.Errorf("scan popularity record: %w", err)
		}
		rec.ItemDescription = description.String
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate popularity records: %w", err)
	}
	return records, nil
}

// Health verifies the database connection.
func (s *PostgresStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
