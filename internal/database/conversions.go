// conversions.go stores the conversion history. Rows describe a request's
// outcome; résumé text and generated documents are never stored.
package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/Shimizu-Technology/cv-formatter-api/internal/models"
)

// CreateConversion inserts a history row and fills in its ID and timestamp.
func (db *DB) CreateConversion(ctx context.Context, c *models.Conversion) error {
	query := `
		INSERT INTO conversions (source, format, original_name, stored_name, output_name, status,
			failed_stage, error_message, word_count, project_count, output_bytes, duration_ms,
			api_key_id, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at`

	err := db.QueryRowContext(ctx, query,
		c.Source, c.Format, c.OriginalName, c.StoredName, c.OutputName, c.Status,
		c.FailedStage, c.ErrorMessage, c.WordCount, c.ProjectCount, c.OutputBytes, c.DurationMS,
		c.APIKeyID, c.UserID,
	).Scan(&c.ID, &c.CreatedAt)
	return errors.Wrap(err, "failed to record conversion")
}

// GetConversion retrieves a single conversion by ID.
func (db *DB) GetConversion(ctx context.Context, id string) (*models.Conversion, error) {
	var c models.Conversion
	if err := db.GetContext(ctx, &c, `SELECT * FROM conversions WHERE id = $1`, id); err != nil {
		return nil, notFound(err, "conversion")
	}
	return &c, nil
}

// ListConversions returns a page of conversions, newest first, with
// optional filters. It also returns the total number of matching rows.
func (db *DB) ListConversions(ctx context.Context, params models.ConversionListParams) ([]models.Conversion, int, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PerPage < 1 || params.PerPage > 100 {
		params.PerPage = 20
	}

	// Build WHERE clause dynamically
	var conditions []string
	var args []interface{}
	argNum := 1

	add := func(clause string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(clause, argNum))
		args = append(args, value)
		argNum++
	}
	if params.Status != "" {
		add("status = $%d", params.Status)
	}
	if params.Format != "" {
		add("format = $%d", params.Format)
	}
	if params.APIKeyID != nil {
		add("api_key_id = $%d", *params.APIKeyID)
	}
	if params.UserID != nil {
		add("user_id = $%d", *params.UserID)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM conversions %s", whereClause)
	if err := db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, errors.Wrap(err, "count query failed")
	}

	offset := (params.Page - 1) * params.PerPage
	selectQuery := fmt.Sprintf(
		"SELECT * FROM conversions %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		whereClause, argNum, argNum+1,
	)
	args = append(args, params.PerPage, offset)

	var conversions []models.Conversion
	if err := db.SelectContext(ctx, &conversions, selectQuery, args...); err != nil {
		return nil, 0, errors.Wrap(err, "list query failed")
	}
	return conversions, total, nil
}
