package backoffice

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/horndawg/launchpad/internal/catalog"
	"github.com/horndawg/launchpad/internal/reservation"
)

type ImportResult struct {
	Imported int
	Skipped  int
	Failed   int
}

// BulkImport creates one order per row that has a name, email and zipcode.
// Product and quantity are drawn uniformly at random from the catalog; the
// uploaded row carries neither.
func (s *Service) BulkImport(ctx context.Context, filename string, r io.Reader) (*ImportResult, error) {
	rows, err := readSheet(filename, r)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for _, row := range rows {
		if row.Name == "" || row.Email == "" || row.Zipcode == "" {
			slog.DebugContext(ctx, "skipping import row with missing data", "row", row.Line)
			result.Skipped++
			continue
		}

		in := reservation.ReservationInput{
			Name:     row.Name,
			Email:    row.Email,
			Zipcode:  row.Zipcode,
			Product:  catalog.Products[s.pick(len(catalog.Products))],
			Quantity: catalog.Quantities[s.pick(len(catalog.Quantities))],
		}
		if _, err := s.placer.PlaceOrder(ctx, in, reservation.SourceImport); err != nil {
			if errors.Is(err, reservation.ErrValidation) {
				slog.DebugContext(ctx, "skipping invalid import row", "row", row.Line, "error", err)
				result.Skipped++
				continue
			}
			slog.ErrorContext(ctx, "import row failed", "row", row.Line, "error", err)
			result.Failed++
			continue
		}
		result.Imported++
	}

	slog.InfoContext(ctx, "bulk import finished",
		"file", filename,
		"imported", result.Imported,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)
	return result, nil
}
