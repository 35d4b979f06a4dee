package catalog

import (
	"context"
	"fmt"
	"time"

	"core/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// PostgresSource loads the property catalog from a Postgres table at
// startup. The table is read once; the connection is closed afterwards.
type PostgresSource struct {
	db *sqlx.DB
}

// NewPostgresSource connects to Postgres and verifies the connection
func NewPostgresSource(dsn string, maxConn, maxIdleConn int) (*PostgresSource, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresSource{db: db}, nil
}

// Name identifies the source in load results and logs
func (s *PostgresSource) Name() string {
	return "postgres"
}

// Load selects all listings from the properties table
func (s *PostgresSource) Load(ctx context.Context) ([]model.PropertyRecord, error) {
	query := `
		SELECT unique_id, address, floor, suite, size_sqft, rent_per_sqft_year,
		       monthly_rent, annual_rent, gci_on_3_years, contact_name, contact_email
		FROM properties
		ORDER BY unique_id`

	var records []model.PropertyRecord
	if err := s.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("failed to load properties: %w", err)
	}

	return records, nil
}

// Close closes the database connection
func (s *PostgresSource) Close() error {
	return s.db.Close()
}
