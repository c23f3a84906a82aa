package export

import (
	"bytes"
	"encoding/csv"
)

// CSVEncoder renders rows as comma-separated values with a header line.
type CSVEncoder struct{}

func (CSVEncoder) Extension() string { return "csv" }

func (CSVEncoder) EncodeAccounts(rows []AccountRow) ([]byte, error) {
	records := [][]string{{"name", "balance"}}
	for _, r := range rows {
		records = append(records, []string{r.Name, r.Balance})
	}
	return writeCSV(records)
}

func (CSVEncoder) EncodeCategories(rows []CategoryRow) ([]byte, error) {
	records := [][]string{{"type", "name"}}
	for _, r := range rows {
		records = append(records, []string{r.Type, r.Name})
	}
	return writeCSV(records)
}

func (CSVEncoder) EncodeOperations(rows []OperationRow) ([]byte, error) {
	records := [][]string{{"type", "amount", "date", "account", "category", "description"}}
	for _, r := range rows {
		records = append(records, []string{r.Type, r.Amount, r.Date, r.Account, r.Category, r.Description})
	}
	return writeCSV(records)
}

func writeCSV(records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CSVImporter parses operation CSV files produced by CSVEncoder. Short
// records are skipped; the header line is required.
type CSVImporter struct{}

func (CSVImporter) parse(data []byte) ([]OperationRow, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) <= 1 {
		return nil, nil
	}

	out := make([]OperationRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) < 6 {
			continue
		}
		out = append(out, OperationRow{
			Type:        rec[0],
			Amount:      rec[1],
			Date:        rec[2],
			Account:     rec[3],
			Category:    rec[4],
			Description: rec[5],
		})
	}
	return out, nil
}

// ImportOperationsCSV reads a CSV operations file into neutral rows.
func ImportOperationsCSV(path string) ([]OperationRow, error) {
	return BaseImporter{parser: CSVImporter{}}.Import(path)
}
