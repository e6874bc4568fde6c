package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ruthina1/Dev-Genie/internal/errors"
)

// Generation is one recorded scaffold run. Archive bytes are never stored.
type Generation struct {
	ID           string `json:"id"`
	ProjectName  string `json:"project_name"`
	Slug         string `json:"slug"`
	Mode         string `json:"mode"`
	Architecture string `json:"architecture,omitempty"`
	TemplateID   string `json:"template_id,omitempty"`
	Source       string `json:"source"`
	Fallback     bool   `json:"fallback"`
	FileCount    int    `json:"file_count"`
	ArchiveBytes int64  `json:"archive_bytes"`
	ConfigJSON   string `json:"config_json,omitempty"`
	CreatedAt    int64  `json:"created_at"`
}

// ListFilter narrows List results. Empty fields match everything.
type ListFilter struct {
	Mode       string
	TemplateID string
}

const generationColumns = `id, project_name, slug, mode, architecture, template_id,
	source, fallback, file_count, archive_bytes, config_json, created_at`

// Insert stores a new generation record.
func Insert(db *sql.DB, g *Generation) error {
	query := `INSERT INTO generations (` + generationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := db.Exec(query,
		g.ID, g.ProjectName, g.Slug, g.Mode,
		toNullString(g.Architecture), toNullString(g.TemplateID),
		g.Source, boolToInt(g.Fallback), g.FileCount, g.ArchiveBytes,
		g.ConfigJSON, g.CreatedAt,
	)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// GetByID retrieves a generation by its ULID.
func GetByID(db *sql.DB, id string) (*Generation, error) {
	row := db.QueryRow(`SELECT `+generationColumns+` FROM generations WHERE id = ?`, id)
	g, err := scanGeneration(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound("generation", id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return g, nil
}

// List returns generations newest first along with the unpaginated total.
func List(db *sql.DB, filter ListFilter, limit, offset int) ([]Generation, int, error) {
	where := "WHERE 1=1"
	var args []any
	if filter.Mode != "" {
		where += " AND mode = ?"
		args = append(args, filter.Mode)
	}
	if filter.TemplateID != "" {
		where += " AND template_id = ?"
		args = append(args, filter.TemplateID)
	}

	var total int
	if err := db.QueryRow("SELECT COUNT(*) FROM generations "+where, args...).Scan(&total); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	query := `SELECT ` + generationColumns + ` FROM generations ` + where +
		` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	rows, err := db.Query(query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	defer rows.Close()

	var out []Generation
	for rows.Next() {
		g, err := scanGeneration(rows)
		if err != nil {
			return nil, 0, errors.NewInternal(err)
		}
		out = append(out, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	return out, total, nil
}

// TemplateCounts returns how many generations started from each template.
func TemplateCounts(db *sql.DB) (map[string]int, error) {
	rows, err := db.Query(`
		SELECT template_id, COUNT(*) FROM generations
		WHERE template_id IS NOT NULL
		GROUP BY template_id
	`)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, errors.NewInternal(err)
		}
		counts[id] = n
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return counts, nil
}

// PurgeOlderThan deletes generations created before now minus olderThanDays.
// A nil olderThanDays deletes every record.
func PurgeOlderThan(db *sql.DB, olderThanDays *int, now time.Time) (int, error) {
	query := "DELETE FROM generations"
	var args []any
	if olderThanDays != nil {
		if *olderThanDays < 0 {
			return 0, errors.NewInvalidRequest(fmt.Sprintf("older_than_days must be >= 0, got %d", *olderThanDays))
		}
		cutoff := now.Add(-time.Duration(*olderThanDays) * 24 * time.Hour).Unix()
		query += " WHERE created_at < ?"
		args = append(args, cutoff)
	}

	result, err := db.Exec(query, args...)
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	return int(n), nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGeneration(row scanner) (*Generation, error) {
	var g Generation
	var architecture, templateID sql.NullString
	var fallback int
	err := row.Scan(
		&g.ID, &g.ProjectName, &g.Slug, &g.Mode, &architecture, &templateID,
		&g.Source, &fallback, &g.FileCount, &g.ArchiveBytes, &g.ConfigJSON, &g.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	g.Architecture = architecture.String
	g.TemplateID = templateID.String
	g.Fallback = fallback != 0
	return &g, nil
}

func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
