package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/invoice-tracker/internal/entity"
	"github.com/joseph-ayodele/invoice-tracker/internal/repository"
)

const (
	InvoiceSheet = "Invoices"
	ItemSheet    = "Items"
)

// Service is a tiny façade over the invoice repository that produces XLSX bytes for exports.
type Service struct {
	invoices repository.InvoiceRepository
	logger   *slog.Logger
}

func NewService(invoices repository.InvoiceRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{invoices: invoices, logger: logger}
}

// ExportInvoicesXLSX returns a workbook (as bytes) with one row per stored
// invoice on the Invoices sheet and one row per line item on the Items sheet.
func (s *Service) ExportInvoicesXLSX(ctx context.Context) ([]byte, error) {
	start := time.Now()

	invs, err := s.invoices.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("xlsx close failed", "error", err)
		}
	}()

	// NewFile starts with Sheet1; rename it rather than leave it empty.
	if err := f.SetSheetName(f.GetSheetName(0), InvoiceSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(ItemSheet); err != nil {
		return nil, err
	}
	f.SetActiveSheet(0)

	if err := writeRow(f, InvoiceSheet, 1, headerRow("inv_id", entity.HeaderColumns)); err != nil {
		return nil, err
	}
	if err := writeRow(f, ItemSheet, 1, headerRow("invoice_id", append([]string{"line"}, entity.ItemColumns...))); err != nil {
		return nil, err
	}

	itemRow := 2
	for i, inv := range invs {
		row := []any{inv.ID}
		for _, v := range inv.Header.Values() {
			row = append(row, v)
		}
		if err := writeRow(f, InvoiceSheet, i+2, row); err != nil {
			return nil, err
		}

		for n, it := range inv.Items {
			row := []any{inv.ID, n + 1}
			for _, v := range it.Values() {
				row = append(row, v)
			}
			if err := writeRow(f, ItemSheet, itemRow, row); err != nil {
				return nil, err
			}
			itemRow++
		}
	}

	// Widen a few columns
	_ = f.SetColWidth(InvoiceSheet, "B", "M", 18)
	_ = f.SetColWidth(InvoiceSheet, "I", "I", 40) // supplier address
	_ = f.SetColWidth(InvoiceSheet, "M", "M", 40) // remit to address
	_ = f.SetColWidth(ItemSheet, "C", "C", 48)    // description

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"invoices", len(invs),
		"items", itemRow-2,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func headerRow(first string, cols []string) []any {
	row := []any{first}
	for _, c := range cols {
		row = append(row, c)
	}
	return row
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
