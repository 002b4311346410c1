// Package canonical defines the normalized JSON representation of a
// product's disclosure structure: product -> documents -> sections -> tables.
package canonical

import (
	"github.com/prodkb/prodkb/internal/tables"
	"github.com/prodkb/prodkb/internal/taxonomy"
)

// Section status values.
const (
	StatusPresent = "present"
	StatusMissing = "missing"
)

// Product is the root of one canonical JSON file.
type Product struct {
	ProductID   string     `json:"product_id"`
	ProductName string     `json:"product_name"`
	ProductLine string     `json:"product_line"`
	Documents   []Document `json:"documents"`
}

// Document is one parsed source file owned by a product.
type Document struct {
	FileName   string    `json:"file_name"`
	SourceType string    `json:"source_type"`
	ParsedAt   string    `json:"parsed_at"`
	Pages      int       `json:"pages,omitempty"`
	Sections   []Section `json:"sections"`
}

// Section is one disclosure section: a detected heading with its accumulated
// body text and attached tables, or a backfilled placeholder for a canonical
// topic absent from the source (status "missing").
type Section struct {
	SectionID string  `json:"section_id"`
	Title     string  `json:"title"`
	Type      string  `json:"type"`
	Text      string  `json:"text"`
	Status    string  `json:"status"`
	Tables    []Table `json:"tables"`
}

// Table is an extracted table owned by a section.
type Table struct {
	TableID string       `json:"table_id"`
	Rows    []tables.Row `json:"rows"`
}

// BuildProduct assembles the product-level canonical document. Pure data
// transformation: documents keep their input order, sections keep structurer
// output order.
func BuildProduct(productID, productName string, line taxonomy.ProductLine, docs []Document) Product {
	return Product{
		ProductID:   productID,
		ProductName: productName,
		ProductLine: string(line),
		Documents:   docs,
	}
}
