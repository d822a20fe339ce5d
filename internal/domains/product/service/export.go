package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"inventory-backend/internal/domains/product"
	"inventory-backend/internal/shared/apperr"
	"inventory-backend/internal/shared/pagination"
	"inventory-backend/pkg/logger"
)

const exportSheet = "Products"

var exportHeader = []interface{}{"ID", "Name", "Description", "Quantity", "Categories", "Created At", "Updated At"}

// Export walks every product matching q in id order (the page and limit
// of q are ignored) and writes one row per product.
func (s *productService) Export(ctx context.Context, q product.ListQuery, w io.Writer) error {
	q.Page, q.Limit = 0, 0
	if err := q.Validate(); err != nil {
		return apperr.Validation("Invalid query parameters", err)
	}
	filter := q.ToFilter()
	filter.Limit = pagination.MaxLimit

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.Error("Export: failed to close workbook", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := writeHeader(f); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	row := 2
	for {
		res, err := s.repo.List(ctx, filter)
		if err != nil {
			return err
		}

		for _, p := range res.Products {
			cell, _ := excelize.CoordinatesToCellName(1, row)
			values := []interface{}{
				p.ID,
				p.Name,
				p.Description,
				p.Quantity,
				strings.Join(p.Categories, ", "),
				p.CreatedAt.UTC().Format(time.RFC3339),
				p.UpdatedAt.UTC().Format(time.RFC3339),
			}
			if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
				return fmt.Errorf("export: write row %d: %w", row, err)
			}
			row++
		}

		if len(res.Products) < filter.Limit {
			break
		}
		filter.AfterID = res.Products[len(res.Products)-1].ID
	}

	logger.Info("Products exported", map[string]interface{}{
		"rows": row - 2,
	})

	return f.Write(w)
}

func writeHeader(f *excelize.File) error {
	header := exportHeader
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(exportHeader), 1)
	if err := f.SetCellStyle(exportSheet, "A1", last, bold); err != nil {
		return err
	}

	return f.SetColWidth(exportSheet, "B", "C", 30)
}
