package export

import "fmt"

// EncoderFor resolves a format name to its encoder strategy.
func EncoderFor(format string) (Encoder, error) {
	switch format {
	case "csv":
		return CSVEncoder{}, nil
	case "json":
		return JSONEncoder{}, nil
	case "yaml", "yml":
		return YAMLEncoder{}, nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

// ImportOperations reads an operations file in the given format.
func ImportOperations(path, format string) ([]OperationRow, error) {
	switch format {
	case "csv":
		return ImportOperationsCSV(path)
	case "json":
		return ImportOperationsJSON(path)
	case "yaml", "yml":
		return ImportOperationsYAML(path)
	default:
		return nil, fmt.Errorf("unsupported import format %q", format)
	}
}
