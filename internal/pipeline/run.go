package pipeline

import (
	"bytes"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/prodkb/prodkb/internal/canonical"
	"github.com/prodkb/prodkb/internal/source"
	"github.com/prodkb/prodkb/internal/structurer"
	"github.com/prodkb/prodkb/internal/taxonomy"
)

// Structure runs the structuring pipeline for one document held in memory:
// source parsing, section detection, table attachment, backfill and
// product-level assembly. The product name defaults to the file name stem.
func Structure(data []byte, filename, productName string, line taxonomy.ProductLine, log *slog.Logger) (*canonical.Product, error) {
	src, err := source.ForFile(filename)
	if err != nil {
		return nil, err
	}
	doc, err := src.Parse(bytes.NewReader(data), filename)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	cfg, err := taxonomy.ForLine(line)
	if err != nil {
		return nil, err
	}

	if productName == "" {
		productName = stem(filename)
	}
	productID := structurer.ProductID(productName)

	structured := structurer.New(cfg, log).Structure(doc, productID, filename)
	product := canonical.BuildProduct(productID, productName, line, []canonical.Document{structured})
	return &product, nil
}

// LineForFile picks the product line for a source file: an explicit value
// wins, otherwise PDFs default to credit cards and everything else to the
// configured default.
func LineForFile(filename, explicit, fallback string) (taxonomy.ProductLine, error) {
	if explicit != "" {
		return taxonomy.ParseLine(explicit)
	}
	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return taxonomy.LineCreditCard, nil
	}
	return taxonomy.ParseLine(fallback)
}

func stem(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
