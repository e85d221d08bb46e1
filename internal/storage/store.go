// Partsreco - Related-Products Recommendations for Auto-Parts Storefronts
// Copyright 2026 Autosalon
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/autosalon/partsreco

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	// SQLite driver registration.
	_ "github.com/mattn/go-sqlite3"

	"github.com/autosalon/partsreco/internal/recommend"
)

const queryTimeout = 30 * time.Second

// Store reads the storefront catalog and order history from SQLite.
// It implements recommend.DataProvider.
type Store struct {
	db *sql.DB
}

var _ recommend.DataProvider = (*Store)(nil)

// Open opens the SQLite database at path and verifies the connection.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// NewStore wraps an existing database handle. The caller retains
// ownership of the handle unless Close is called.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// GetProducts returns the full product catalog.
func (s *Store) GetProducts(ctx context.Context) ([]recommend.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id,
		       COALESCE(name, ''),
		       COALESCE(description, ''),
		       COALESCE(category, ''),
		       COALESCE(compatibility, ''),
		       COALESCE(manufacturer, ''),
		       COALESCE(price, ''),
		       COALESCE(image, '')
		FROM goods
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query goods: %w", err)
	}
	defer rows.Close()

	var products []recommend.Product
	for rows.Next() {
		var p recommend.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Category,
			&p.Compatibility, &p.Manufacturer, &p.Price, &p.Image,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goods: %w", err)
	}
	return products, nil
}

// GetOrderCounts returns the number of orders per product id.
func (s *Store) GetOrderCounts(ctx context.Context) (map[int]int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT product_id, COUNT(*)
		FROM orders
		GROUP BY product_id`)
	if err != nil {
		return nil, fmt.Errorf("query order counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var id, n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scan order count: %w", err)
		}
		counts[id] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order counts: %w", err)
	}
	return counts, nil
}

// GetProductSignals returns the distinct purchaser logins and order
// statuses recorded for a product. Deduplication happens client-side: the
// distinct sets are collected row by row and space-joined in first-seen
// order.
func (s *Store) GetProductSignals(ctx context.Context, productID int) (recommend.ProductSignals, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT COALESCE(user_login, ''), COALESCE(order_status, '')
		FROM denormalized_data
		WHERE product_id = ?
		ORDER BY id`, productID)
	if err != nil {
		return recommend.ProductSignals{}, fmt.Errorf("query signals for product %d: %w", productID, err)
	}
	defer rows.Close()

	var users, statuses []string
	seenUser := make(map[string]bool)
	seenStatus := make(map[string]bool)
	for rows.Next() {
		var user, status string
		if err := rows.Scan(&user, &status); err != nil {
			return recommend.ProductSignals{}, fmt.Errorf("scan signals: %w", err)
		}
		if user != "" && !seenUser[user] {
			seenUser[user] = true
			users = append(users, user)
		}
		if status != "" && !seenStatus[status] {
			seenStatus[status] = true
			statuses = append(statuses, status)
		}
	}
	if err := rows.Err(); err != nil {
		return recommend.ProductSignals{}, fmt.Errorf("iterate signals: %w", err)
	}

	return recommend.ProductSignals{
		Users:    strings.Join(users, " "),
		Statuses: strings.Join(statuses, " "),
	}, nil
}
