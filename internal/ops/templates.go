package ops

import (
	"github.com/ruthina1/Dev-Genie/internal/catalog"
	"github.com/ruthina1/Dev-Genie/internal/db"
	"github.com/ruthina1/Dev-Genie/internal/errors"
)

// TemplatesInput contains parameters for the Templates operation.
type TemplatesInput struct {
	Query  string // substring of name or description
	Filter string // "all", a language, "fullstack" or "api"
}

// TemplatesOutput contains the matching gallery entries.
type TemplatesOutput struct {
	Items []catalog.Template `json:"items"`
	Total int                `json:"total"`
}

// Templates searches the gallery. Download counts include local history
// when a database is configured.
func Templates(env Env, input TemplatesInput) (*TemplatesOutput, error) {
	all, err := catalog.Templates()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	if env.DB != nil {
		counts, err := db.TemplateCounts(env.DB)
		if err != nil {
			return nil, err
		}
		for i := range all {
			all[i].Downloads += counts[all[i].ID]
		}
	}

	items := catalog.FilterTemplates(all, input.Query, input.Filter)
	if items == nil {
		items = []catalog.Template{}
	}
	return &TemplatesOutput{Items: items, Total: len(items)}, nil
}
