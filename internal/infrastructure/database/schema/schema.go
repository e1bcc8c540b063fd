package schema

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// primaryKey returns the auto-increment id column for the connected driver.
func primaryKey(driverName string) string {
	if driverName == "postgres" {
		return "id BIGSERIAL PRIMARY KEY"
	}
	return "id INTEGER PRIMARY KEY AUTOINCREMENT"
}

var tables = []string{
	`CREATE TABLE IF NOT EXISTS members (
		%s,
		principal VARCHAR(255) NOT NULL UNIQUE,
		external_id VARCHAR(26) NOT NULL,
		nickname VARCHAR(50) NOT NULL,
		address VARCHAR(255) NOT NULL,
		profile_image TEXT,
		hashed_password VARCHAR(255),
		apple_level INTEGER NOT NULL DEFAULT 1,
		provider VARCHAR(20),
		provider_id VARCHAR(255),
		created_at BIGINT NOT NULL,
		updated_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS articles (
		%s,
		writer_id BIGINT NOT NULL REFERENCES members(id),
		title VARCHAR(100) NOT NULL,
		content TEXT NOT NULL,
		category_code INTEGER NOT NULL,
		trade_area VARCHAR(255) NOT NULL,
		quantity INTEGER NOT NULL,
		price BIGINT NOT NULL,
		trade_status_code INTEGER NOT NULL,
		main_image_url TEXT,
		view_count BIGINT NOT NULL DEFAULT 0,
		created_at BIGINT NOT NULL,
		updated_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS product_images (
		%s,
		article_id BIGINT REFERENCES articles(id),
		image_url TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS offers (
		%s,
		article_id BIGINT REFERENCES articles(id),
		offerer_id BIGINT NOT NULL REFERENCES members(id),
		price BIGINT NOT NULL,
		is_selected BOOLEAN NOT NULL DEFAULT FALSE,
		created_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS like_articles (
		%s,
		member_id BIGINT NOT NULL REFERENCES members(id),
		article_id BIGINT REFERENCES articles(id),
		created_at BIGINT NOT NULL,
		UNIQUE (member_id, article_id)
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		%s,
		article_id BIGINT REFERENCES articles(id),
		reviewer_id BIGINT NOT NULL REFERENCES members(id),
		reviewee_id BIGINT NOT NULL REFERENCES members(id),
		score INTEGER NOT NULL,
		content TEXT NOT NULL,
		created_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS message_rooms (
		%s,
		article_id BIGINT REFERENCES articles(id),
		member_id BIGINT NOT NULL REFERENCES members(id),
		partner_id BIGINT NOT NULL REFERENCES members(id),
		created_at BIGINT NOT NULL
	)`,
}

var indexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_articles_writer ON articles(writer_id)",
	"CREATE INDEX IF NOT EXISTS idx_articles_category ON articles(category_code)",
	"CREATE INDEX IF NOT EXISTS idx_articles_trade_status ON articles(trade_status_code)",
	"CREATE INDEX IF NOT EXISTS idx_product_images_article ON product_images(article_id)",
	"CREATE INDEX IF NOT EXISTS idx_offers_article ON offers(article_id)",
	"CREATE INDEX IF NOT EXISTS idx_offers_offerer ON offers(offerer_id)",
}

// Migrate creates every table and index that does not exist yet.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	pk := primaryKey(db.DriverName())

	for _, table := range tables {
		if _, err := db.ExecContext(ctx, fmt.Sprintf(table, pk)); err != nil {
			log.Error().Err(err).Str("component", "Migrate").Msg("")
			return fmt.Errorf("creating table: %w", err)
		}
	}

	for _, index := range indexes {
		if _, err := db.ExecContext(ctx, index); err != nil {
			log.Error().Err(err).Str("component", "Migrate").Msg("")
			return fmt.Errorf("creating index: %w", err)
		}
	}

	return nil
}
