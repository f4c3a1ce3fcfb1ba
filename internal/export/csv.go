package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// CSVHeader is the column set for spreadsheet exports, in write order.
func CSVHeader() []string {
	return []string{
		"Timestamp", "Name", "Email", "Organization", "Segment",
		"Overall Score", "Revenue Cycle", "Patient Experience", "Competitive Position",
		"Annual Billing", "AR Days", "Cash in AR", "Total Opportunity", "Bad Debt Rate",
		"Resiliency Index", "Resiliency Level",
	}
}

// CSVRow flattens a record into the CSVHeader column order.
func CSVRow(r Record) []string {
	cat := func(i int) string {
		if i < len(r.Categories) {
			return strconv.Itoa(r.Categories[i])
		}
		return ""
	}
	return []string{
		r.Timestamp.Format(time.RFC3339),
		r.Respondent.Name,
		r.Respondent.Email,
		r.Respondent.Organization,
		r.Segment,
		strconv.Itoa(r.Overall),
		cat(0), cat(1), cat(2),
		strconv.FormatFloat(r.AnnualBilling, 'f', -1, 64),
		strconv.FormatFloat(r.ARDays, 'f', -1, 64),
		strconv.Itoa(r.CashInAR),
		strconv.Itoa(r.TotalFinancialOpportunity),
		strconv.FormatFloat(r.BadDebtRate, 'f', -1, 64),
		strconv.Itoa(r.ResiliencyIndex),
		r.ResiliencyLevel,
	}
}

// WriteCSV writes a header plus one row per record.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(CSVRow(r)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses rows produced by WriteCSV back into records. Only the
// flattened columns survive the round trip; answers and force detail do not.
func ReadCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	want := len(CSVHeader())
	var out []Record
	for i, row := range rows[1:] {
		if len(row) != want {
			return nil, fmt.Errorf("csv row %d: expected %d columns, got %d", i+2, want, len(row))
		}
		ts, err := time.Parse(time.RFC3339, row[0])
		if err != nil {
			return nil, fmt.Errorf("csv row %d: bad timestamp: %w", i+2, err)
		}
		rec := Record{
			Timestamp: ts,
			Respondent: Respondent{
				Name:         row[1],
				Email:        row[2],
				Organization: row[3],
			},
			Segment: row[4],
			Version: RecordVersion,
		}
		rec.Overall, _ = strconv.Atoi(row[5])
		for _, col := range []int{6, 7, 8} {
			if row[col] == "" {
				continue
			}
			v, _ := strconv.Atoi(row[col])
			rec.Categories = append(rec.Categories, v)
		}
		rec.AnnualBilling, _ = strconv.ParseFloat(row[9], 64)
		rec.ARDays, _ = strconv.ParseFloat(row[10], 64)
		rec.CashInAR, _ = strconv.Atoi(row[11])
		rec.TotalFinancialOpportunity, _ = strconv.Atoi(row[12])
		rec.BadDebtRate, _ = strconv.ParseFloat(row[13], 64)
		rec.ResiliencyIndex, _ = strconv.Atoi(row[14])
		rec.ResiliencyLevel = row[15]
		out = append(out, rec)
	}
	return out, nil
}
