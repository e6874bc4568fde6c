package ops

import (
	"github.com/ruthina1/Dev-Genie/internal/catalog"
)

// CatalogInput contains parameters for the Catalog operation.
type CatalogInput struct {
	Language string // optional framework filter
}

// CatalogOutput lists every selectable id with its display metadata.
type CatalogOutput struct {
	Architectures []catalog.Descriptor `json:"architectures"`
	Methodologies []catalog.Descriptor `json:"methodologies"`
	BestPractices []catalog.Descriptor `json:"best_practices"`
	Languages     []string             `json:"languages"`
	Frameworks    []string             `json:"frameworks"`
}

// Catalog returns the static catalogs.
func Catalog(input CatalogInput) *CatalogOutput {
	return &CatalogOutput{
		Architectures: catalog.Architectures(),
		Methodologies: catalog.Methodologies(),
		BestPractices: catalog.BestPractices(),
		Languages:     catalog.Languages(),
		Frameworks:    catalog.Frameworks(input.Language),
	}
}
