package export

import "encoding/json"

// JSONEncoder renders rows as indented JSON arrays.
type JSONEncoder struct{}

func (JSONEncoder) Extension() string { return "json" }

func (JSONEncoder) EncodeAccounts(rows []AccountRow) ([]byte, error) {
	return json.MarshalIndent(rows, "", "  ")
}

func (JSONEncoder) EncodeCategories(rows []CategoryRow) ([]byte, error) {
	return json.MarshalIndent(rows, "", "  ")
}

func (JSONEncoder) EncodeOperations(rows []OperationRow) ([]byte, error) {
	return json.MarshalIndent(rows, "", "  ")
}

type JSONImporter struct{}

func (JSONImporter) parse(data []byte) ([]OperationRow, error) {
	var rows []OperationRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ImportOperationsJSON reads a JSON operations file into neutral rows.
func ImportOperationsJSON(path string) ([]OperationRow, error) {
	return BaseImporter{parser: JSONImporter{}}.Import(path)
}
