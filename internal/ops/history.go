package ops

import (
	"strings"

	"github.com/ruthina1/Dev-Genie/internal/db"
	"github.com/ruthina1/Dev-Genie/internal/errors"
)

// HistoryInput contains parameters for the History operation.
type HistoryInput struct {
	Mode       string // optional filter
	TemplateID string // optional filter
	Limit      int    // default: 20, max: 100
	Offset     int    // default: 0
}

// HistoryOutput contains the result of the History operation.
type HistoryOutput struct {
	Items      []db.Generation `json:"items"`
	Pagination Pagination      `json:"pagination"`
	Sort       string          `json:"sort"`
}

// History lists recorded generations, newest first.
func History(env Env, input HistoryInput) (*HistoryOutput, error) {
	if env.DB == nil {
		return nil, errors.NewInvalidRequest("history is not available without a database")
	}
	limit, offset := clampPage(input.Limit, input.Offset)

	filter := db.ListFilter{
		Mode:       strings.ToLower(strings.TrimSpace(input.Mode)),
		TemplateID: strings.TrimSpace(input.TemplateID),
	}
	items, total, err := db.List(env.DB, filter, limit, offset)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []db.Generation{}
	}

	return &HistoryOutput{
		Items: items,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(items) < total,
			Total:   total,
		},
		Sort: "created_at_desc",
	}, nil
}

// GetGeneration returns one recorded generation.
func GetGeneration(env Env, id string) (*db.Generation, error) {
	if env.DB == nil {
		return nil, errors.NewInvalidRequest("history is not available without a database")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}
	return db.GetByID(env.DB, id)
}
