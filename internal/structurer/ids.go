package structurer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Namespace for name-based section/table UUIDs. Fixed so that re-parsing the
// same file derives the same identifiers and re-ingestion converges under
// the graph's unique-id upserts.
var idNamespace = uuid.MustParse("3f1f4bd2-8c3e-4a75-9c1b-6de1a2b0c9e4")

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// ProductID derives a stable product identifier from the product name:
// lower-cased, non-alphanumeric runs collapsed to a single underscore.
// The same name always yields the same id.
func ProductID(productName string) string {
	id := nonAlnum.ReplaceAllString(strings.ToLower(productName), "_")
	return strings.Trim(id, "_")
}

// DocumentID composes a document identifier unique per product and file.
func DocumentID(productID, fileName string) string {
	return productID + "_" + fileName
}

// SectionID derives a section identifier from the owning document and the
// section's index in structuring order.
func SectionID(documentID string, index int) string {
	return uuid.NewSHA1(idNamespace, fmt.Appendf(nil, "section:%s:%d", documentID, index)).String()
}

// TableID derives a table identifier from the owning section and the table's
// attachment index within it.
func TableID(sectionID string, index int) string {
	return uuid.NewSHA1(idNamespace, fmt.Appendf(nil, "table:%s:%d", sectionID, index)).String()
}
