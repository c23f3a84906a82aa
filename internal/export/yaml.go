package export

import "gopkg.in/yaml.v3"

// YAMLEncoder renders rows as YAML sequences.
type YAMLEncoder struct{}

func (YAMLEncoder) Extension() string { return "yaml" }

func (YAMLEncoder) EncodeAccounts(rows []AccountRow) ([]byte, error) {
	return yaml.Marshal(rows)
}

func (YAMLEncoder) EncodeCategories(rows []CategoryRow) ([]byte, error) {
	return yaml.Marshal(rows)
}

func (YAMLEncoder) EncodeOperations(rows []OperationRow) ([]byte, error) {
	return yaml.Marshal(rows)
}

type YAMLImporter struct{}

func (YAMLImporter) parse(data []byte) ([]OperationRow, error) {
	var rows []OperationRow
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ImportOperationsYAML reads a YAML operations file into neutral rows.
func ImportOperationsYAML(path string) ([]OperationRow, error) {
	return BaseImporter{parser: YAMLImporter{}}.Import(path)
}
