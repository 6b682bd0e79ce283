// Package report renders ingestion diagnostics and search results for the
// command-line tools.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/Jaxic/BookStoreDir-sub002/internal/ingest"
	"github.com/Jaxic/BookStoreDir-sub002/internal/models"
	"github.com/Jaxic/BookStoreDir-sub002/pkg/textutil"
)

// WriteSummary prints the parse summary followed by the per-row error
// listing. Rows with a data dump are the ones that parsed into a column
// mapping before failing schema validation.
func WriteSummary(w io.Writer, result *ingest.Result) {
	fmt.Fprintf(w, "Successfully parsed %d bookstores\n", len(result.Records))

	for _, e := range result.Errors {
		fmt.Fprintf(w, "Row %d:\n", e.Row)

		if e.Data != nil {
			writeRowData(w, e.Data)
		}

		fmt.Fprintf(w, "Error: %s\n", e.Message)
	}
}

// writeRowData dumps the raw row values in stable column order, skipping
// blanks.
func writeRowData(w io.Writer, data map[string]string) {
	columns := make([]string, 0, len(data))
	for col := range data {
		if data[col] != "" {
			columns = append(columns, col)
		}
	}

	sort.Strings(columns)

	for _, col := range columns {
		fmt.Fprintf(w, "  %s: %s\n", col, data[col])
	}
}

// WriteStoreTable renders stores as an aligned text table. Column widths are
// measured with runewidth so wide characters line up.
func WriteStoreTable(w io.Writer, stores []models.ProcessedBookstore) {
	headers := []string{"Name", "Address", "Province", "Rating", "Status"}

	rows := make([][]string, 0, len(stores)+1)
	rows = append(rows, headers)

	for _, store := range stores {
		rating := "-"
		if store.RatingInfo != nil {
			rating = fmt.Sprintf("%.1f (%d)", store.RatingInfo.Rating, store.RatingInfo.NumReviews)
		}

		rows = append(rows, []string{
			textutil.Truncate(store.Name, 40),
			textutil.Truncate(store.FormattedAddress, 50),
			store.Province,
			rating,
			string(store.Status),
		})
	}

	// Measure column widths across all rows.
	widths := make([]int, len(headers))

	for _, row := range rows {
		for i, cell := range row {
			if width := runewidth.StringWidth(cell); width > widths[i] {
				widths[i] = width
			}
		}
	}

	for rowIdx, row := range rows {
		cells := make([]string, len(row))

		for i, cell := range row {
			padding := widths[i] - runewidth.StringWidth(cell)
			cells[i] = cell + strings.Repeat(" ", padding)
		}

		fmt.Fprintf(w, "%s\n", strings.TrimRight(strings.Join(cells, "  "), " "))

		if rowIdx == 0 {
			separators := make([]string, len(widths))
			for i, width := range widths {
				separators[i] = strings.Repeat("-", width)
			}

			fmt.Fprintf(w, "%s\n", strings.Join(separators, "  "))
		}
	}

	fmt.Fprintf(w, "\n%d store(s)\n", len(stores))
}
