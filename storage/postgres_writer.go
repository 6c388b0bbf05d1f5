package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"hospital-scraper/models"
)

// PostgresWriter persists hospital listings and validated reviews to
// PostgreSQL. Optional backend, enabled via SAVE_TO_DB.
type PostgresWriter struct {
	db       *sql.DB
	location string
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema
// migrations, and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn, location string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db, location: location}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS hospitals (
			id         SERIAL PRIMARY KEY,
			location   TEXT        NOT NULL,
			name       TEXT        NOT NULL,
			address    TEXT        NOT NULL DEFAULT '',
			maps_url   TEXT        UNIQUE NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS reviews (
			id         SERIAL PRIMARY KEY,
			hospital   TEXT        NOT NULL,
			reviewer   TEXT        NOT NULL,
			rating     TEXT        NOT NULL,
			review     TEXT        NOT NULL,
			posted     TEXT        NOT NULL DEFAULT '',
			scraped_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (hospital, reviewer, review)
		);

		CREATE INDEX IF NOT EXISTS idx_hospitals_location ON hospitals(location);
		CREATE INDEX IF NOT EXISTS idx_reviews_hospital   ON reviews(hospital);
	`)
	return err
}

// WriteListings inserts the hospital list, skipping entries whose maps URL
// is already stored.
func (pw *PostgresWriter) WriteListings(hospitals []*models.HospitalListing) error {
	if len(hospitals) == 0 {
		return nil
	}

	valueStrings := make([]string, 0, len(hospitals))
	valueArgs := make([]interface{}, 0, len(hospitals)*4)

	for idx, h := range hospitals {
		base := idx * 4
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d)", base+1, base+2, base+3, base+4))
		valueArgs = append(valueArgs, pw.location, h.Name, h.Address, h.Link)
	}

	query := fmt.Sprintf(`
		INSERT INTO hospitals (location, name, address, maps_url)
		VALUES %s
		ON CONFLICT (maps_url) DO NOTHING
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	if err != nil {
		return fmt.Errorf("postgres: insert hospitals: %w", err)
	}
	return nil
}

// WriteReviews batch-inserts one hospital's validated reviews. The unique
// constraint on (hospital, reviewer, review) keeps reruns idempotent.
func (pw *PostgresWriter) WriteReviews(hospital string, reviews []*models.Review) error {
	if len(reviews) == 0 {
		return nil
	}

	const batchSize = 50
	for i := 0; i < len(reviews); i += batchSize {
		end := i + batchSize
		if end > len(reviews) {
			end = len(reviews)
		}
		if err := pw.insertBatch(reviews[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(batch []*models.Review) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*6)

	for idx, r := range batch {
		base := idx * 6
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6))
		valueArgs = append(valueArgs,
			r.Hospital, r.Reviewer, r.Rating, r.Text, r.Posted, r.ScrapedAt)
	}

	query := fmt.Sprintf(`
		INSERT INTO reviews (hospital, reviewer, rating, review, posted, scraped_at)
		VALUES %s
		ON CONFLICT (hospital, reviewer, review) DO NOTHING
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	if err != nil {
		return fmt.Errorf("postgres: insert reviews: %w", err)
	}
	return nil
}

// Close releases the database connection.
func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
