// backend/database/competitor_store.go
package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/adtrack/backend/models"
)

// AddCompetitor registers a competitor by page name. Registration is
// idempotent: if the name already exists the stored record is returned
// unchanged and created is false. Records are never mutated afterwards.
func AddCompetitor(pageName string, pageID *string) (*models.Competitor, bool, error) {
	if DB == nil {
		return nil, false, fmt.Errorf("database connection is not initialized")
	}

	existing, err := GetCompetitorByName(pageName)
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up competitor %q: %w", pageName, err)
	}
	if existing != nil {
		return existing, false, nil
	}

	var sqlPageID sql.NullString
	if pageID != nil {
		sqlPageID = sql.NullString{String: *pageID, Valid: true}
	}

	now := time.Now().UTC()
	res, err := DB.Exec(`
		INSERT INTO competitors (page_name, page_id, added_at)
		VALUES (?, ?, ?)
	`, pageName, sqlPageID, now)
	if err != nil {
		return nil, false, fmt.Errorf("failed to insert competitor %q: %w", pageName, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, false, fmt.Errorf("failed to read new competitor id for %q: %w", pageName, err)
	}

	log.Printf("Database: Registered competitor %q (id %d).\n", pageName, id)
	return &models.Competitor{ID: id, PageName: pageName, PageID: pageID, AddedAt: now}, true, nil
}

// GetCompetitorByName returns the competitor with the given page name,
// or nil when none exists. Absence is not an error.
func GetCompetitorByName(pageName string) (*models.Competitor, error) {
	if DB == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}

	var c models.Competitor
	var pageID sql.NullString
	row := DB.QueryRow(`
		SELECT id, page_name, page_id, added_at
		FROM competitors
		WHERE page_name = ?
	`, pageName)

	err := row.Scan(&c.ID, &c.PageName, &pageID, &c.AddedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query competitor %q: %w", pageName, err)
	}
	if pageID.Valid {
		c.PageID = &pageID.String
	}
	return &c, nil
}

// GetCompetitors returns the full registry ordered by id.
func GetCompetitors() ([]models.Competitor, error) {
	if DB == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}

	rows, err := DB.Query(`
		SELECT id, page_name, page_id, added_at
		FROM competitors
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query competitors: %w", err)
	}
	defer rows.Close()

	var competitors []models.Competitor
	for rows.Next() {
		var c models.Competitor
		var pageID sql.NullString
		if err := rows.Scan(&c.ID, &c.PageName, &pageID, &c.AddedAt); err != nil {
			log.Printf("ERROR Database: Failed to scan competitor row: %v", err)
			continue
		}
		if pageID.Valid {
			c.PageID = &pageID.String
		}
		competitors = append(competitors, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating competitor rows: %w", err)
	}
	return competitors, nil
}
