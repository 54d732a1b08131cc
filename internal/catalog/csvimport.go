package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/tiffanyadora/storefront/internal/domain"
)

// Expected CSV headers for catalog imports.
var (
	productHeader = []string{"ID", "Name", "Description", "Feature", "Average Rating", "Price", "Category", "Pokemon", "Location"}
	visualHeader  = []string{"ID", "Product ID", "Name", "Description", "Short Name", "File Type", "CSS Class"}
)

// RowError records a single rejected CSV row. Bad rows never abort an
// import; they are collected and reported.
type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ImportReport summarizes an import run.
type ImportReport struct {
	Imported int        `json:"imported"`
	Skipped  int        `json:"skipped"`
	Errors   []RowError `json:"errors,omitempty"`
}

// Importer loads catalog CSV exports and pushes the products into the store
// through the admin API.
type Importer struct {
	service *Service
	logger  *slog.Logger
}

// NewImporter creates a CSV importer backed by the catalog service.
func NewImporter(service *Service, logger *slog.Logger) *Importer {
	return &Importer{service: service, logger: logger}
}

func checkHeader(got, want []string) error {
	if len(got) != len(want) {
		return fmt.Errorf("expected %d columns, got %d", len(want), len(got))
	}
	for i := range want {
		if !strings.EqualFold(strings.TrimSpace(got[i]), want[i]) {
			return fmt.Errorf("column %d: expected %q, got %q", i+1, want[i], got[i])
		}
	}
	return nil
}

// ImportProducts reads a product CSV and creates each valid row upstream.
// Invalid rows are reported in the result; only a broken header or an
// unreadable stream fails the whole import.
func (im *Importer) ImportProducts(ctx context.Context, r io.Reader) (ImportReport, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(productHeader)

	header, err := reader.Read()
	if err != nil {
		return ImportReport{}, fmt.Errorf("read product csv header: %w", err)
	}
	if err := checkHeader(header, productHeader); err != nil {
		return ImportReport{}, fmt.Errorf("product csv header: %w", err)
	}

	report := ImportReport{}
	line := 1
	for {
		line++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			report.Skipped++
			report.Errors = append(report.Errors, RowError{Line: line, Reason: err.Error()})
			continue
		}

		form, err := productFormFromRecord(record)
		if err != nil {
			report.Skipped++
			report.Errors = append(report.Errors, RowError{Line: line, Reason: err.Error()})
			continue
		}

		if _, err := im.service.CreateProduct(ctx, form); err != nil {
			report.Skipped++
			report.Errors = append(report.Errors, RowError{Line: line, Reason: err.Error()})
			continue
		}
		report.Imported++
	}

	im.logger.InfoContext(ctx, "product import finished",
		slog.Int("imported", report.Imported),
		slog.Int("skipped", report.Skipped),
	)
	return report, nil
}

func productFormFromRecord(record []string) (ProductForm, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(record[5]), 64)
	if err != nil {
		return ProductForm{}, fmt.Errorf("invalid price %q", record[5])
	}

	return ProductForm{
		Name:        strings.TrimSpace(record[1]),
		Description: strings.TrimSpace(record[2]),
		Feature:     strings.TrimSpace(record[3]),
		Price:       price,
		Category:    strings.TrimSpace(record[6]),
		Pokemon:     strings.TrimSpace(record[7]),
		Location:    strings.TrimSpace(record[8]),
	}, nil
}

// ParseVisuals reads a visuals CSV into domain objects. Visuals have no
// upstream endpoint; they are kept locally to enrich product rendering.
// Bad rows are reported alongside the parsed visuals.
func (im *Importer) ParseVisuals(r io.Reader) ([]domain.Visual, []RowError, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(visualHeader)

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read visual csv header: %w", err)
	}
	if err := checkHeader(header, visualHeader); err != nil {
		return nil, nil, fmt.Errorf("visual csv header: %w", err)
	}

	var visuals []domain.Visual
	var rowErrs []RowError
	line := 1
	for {
		line++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Reason: err.Error()})
			continue
		}

		id := strings.TrimSpace(record[0])
		productID := strings.TrimSpace(record[1])
		name := strings.TrimSpace(record[2])
		if id == "" || productID == "" || name == "" {
			rowErrs = append(rowErrs, RowError{Line: line, Reason: "id, product id, and name are required"})
			continue
		}

		visuals = append(visuals, domain.Visual{
			ID:          id,
			ProductID:   productID,
			Name:        name,
			Description: strings.TrimSpace(record[3]),
			ShortName:   strings.TrimSpace(record[4]),
			FileType:    strings.TrimSpace(record[5]),
			CSSClass:    strings.TrimSpace(record[6]),
		})
	}

	return visuals, rowErrs, nil
}
