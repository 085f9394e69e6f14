package repository

import (
	"context"
	"fmt"

	"github.com/linkvigia/linkvigia/internal/model"
)

// ListBacklinksByProject retrieves the backlinks discovered for a
// project, most recently seen first. Rows are written by the external
// discovery pipeline; this service only reads them.
func (r *Repository) ListBacklinksByProject(ctx context.Context, projectID string) ([]*model.Backlink, error) {
	query := `
		SELECT id, project_id, source_url, target_url, anchor_text,
			domain_authority, page_authority, status, first_seen, last_seen
		FROM backlinks
		WHERE project_id = $1
		ORDER BY last_seen DESC
	`

	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list backlinks: %w", err)
	}
	defer rows.Close()

	var backlinks []*model.Backlink
	for rows.Next() {
		var b model.Backlink
		err := rows.Scan(
			&b.ID,
			&b.ProjectID,
			&b.SourceURL,
			&b.TargetURL,
			&b.AnchorText,
			&b.DomainAuthority,
			&b.PageAuthority,
			&b.Status,
			&b.FirstSeen,
			&b.LastSeen,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan backlink: %w", err)
		}
		backlinks = append(backlinks, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating backlinks: %w", err)
	}

	return backlinks, nil
}
