package db

import (
	"context"
	"fmt"

	"saynope/internal/catalog"
)

// LoadCatalog reads categories and their reasons in position order and
// returns them as a catalog document.
func (d *DB) LoadCatalog(ctx context.Context) (*catalog.Document, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT c.name, r.text
		FROM categories c
		LEFT JOIN reasons r ON r.category_id = c.id
		ORDER BY c.position, r.position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	doc := &catalog.Document{}
	for rows.Next() {
		var name string
		var text *string
		if err := rows.Scan(&name, &text); err != nil {
			return nil, err
		}

		n := len(doc.Categories)
		if n == 0 || doc.Categories[n-1].Name != name {
			doc.Categories = append(doc.Categories, catalog.CategoryDocument{Name: name})
			n++
		}
		if text != nil {
			entry := &doc.Categories[n-1]
			entry.Reasons = append(entry.Reasons, *text)
			entry.Count++
			doc.TotalReasons++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(doc.Categories) == 0 {
		return nil, ErrCatalogEmpty
	}
	return doc, nil
}

// SeedCatalog replaces the stored catalog with doc in a single transaction.
func (d *DB) SeedCatalog(ctx context.Context, doc *catalog.Document) error {
	if err := catalog.Validate(doc); err != nil {
		return err
	}

	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM categories`); err != nil {
		return fmt.Errorf("failed to clear catalog: %w", err)
	}

	for i, cat := range doc.Categories {
		var categoryID int
		err := tx.QueryRow(ctx, `
			INSERT INTO categories (name, position)
			VALUES ($1, $2)
			RETURNING id
		`, cat.Name, i).Scan(&categoryID)
		if err != nil {
			return fmt.Errorf("failed to seed category %s: %w", cat.Name, err)
		}

		for j, reason := range cat.Reasons {
			if _, err := tx.Exec(ctx, `
				INSERT INTO reasons (category_id, text, position)
				VALUES ($1, $2, $3)
			`, categoryID, reason, j); err != nil {
				return fmt.Errorf("failed to seed reason in %s: %w", cat.Name, err)
			}
		}
	}

	return tx.Commit(ctx)
}
