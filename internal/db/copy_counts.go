package db

import (
	"context"

	"saynope/internal/models"
)

// IncrementCopyCount upserts the copy count for a reason.
func (d *DB) IncrementCopyCount(ctx context.Context, category, reason string) error {
	_, err := d.Pool.Exec(ctx, `
		INSERT INTO copy_counts (category, reason, count, last_copied_at)
		VALUES ($1, $2, 1, NOW())
		ON CONFLICT (category, reason) DO UPDATE
		SET count = copy_counts.count + 1, last_copied_at = NOW()
	`, category, reason)
	return err
}

// GetCopyCountsByCategory sums copy counts per category for metrics export.
func (d *DB) GetCopyCountsByCategory(ctx context.Context) (map[string]int64, error) {
	rows, err := d.Pool.Query(ctx, `SELECT category, SUM(count)::BIGINT FROM copy_counts GROUP BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var category string
		var count int64
		if err := rows.Scan(&category, &count); err != nil {
			return nil, err
		}
		counts[category] = count
	}
	return counts, rows.Err()
}

// GetTopCopied returns the most copied reasons, most copied first.
func (d *DB) GetTopCopied(ctx context.Context, limit int) ([]models.CopyCount, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT category, reason, count, last_copied_at
		FROM copy_counts
		ORDER BY count DESC, last_copied_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []models.CopyCount
	for rows.Next() {
		var c models.CopyCount
		if err := rows.Scan(&c.Category, &c.Reason, &c.Count, &c.LastCopiedAt); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
