package summary

import (
	"encoding/csv"
	"io"

	"ms-checkin/internal/models"
)

// ExportHeader is the CSV header row, matching the ledger column order.
var ExportHeader = []string{"barcode", "arn_code", "name", "mobile", "event", "timestamp", "operator"}

// WriteCSV writes the flattened export as UTF-8 CSV, one row per
// check-in, preceded by a header row. Row order follows the input,
// which Summarize keeps deterministic.
func WriteCSV(w io.Writer, records []models.CheckinRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(ExportHeader); err != nil {
		return err
	}

	for i := range records {
		r := &records[i]
		row := []string{r.Barcode, r.ArnCode, r.Name, r.Mobile, r.Event, r.FormattedTimestamp(), r.OperatorID}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
