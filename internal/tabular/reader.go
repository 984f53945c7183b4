// =============================================================================
// FBA Settlement Analyzer - Tabular Reader Module
// =============================================================================
//
// This module reads the delimited report files the analyzer consumes. The
// marketplace exports arrive in several flavors:
//   - Settlement statement: tab-delimited, UTF-8
//   - Inventory archive: comma-delimited, Windows-1252 (single-byte Western)
//   - Storage / cost reports: comma-delimited, UTF-8
//
// All of them share a header-row-plus-data shape, so a single reader with
// pluggable Settings covers every CSV-like input. The advertising report is
// XLSX and handled separately (see internal/auxdata).
//
// FEATURES:
//   - Configurable delimiter and encoding
//   - Header extraction and per-row header -> value maps
//   - Required-column checks with file context for fast schema failures
//
// =============================================================================

package tabular

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// =============================================================================
// SETTINGS
// =============================================================================

// Settings controls how a delimited file is parsed.
type Settings struct {
	// Delimiter is the field separator. Accepts a literal character or the
	// aliases "tab" / "\t".
	Delimiter string

	// Encoding is the character encoding of the file.
	// Supported: "UTF-8" (default), "Windows-1252", "ISO-8859-1".
	Encoding string
}

// TabSettings returns settings for the tab-delimited settlement statement.
func TabSettings() Settings {
	return Settings{Delimiter: "tab", Encoding: "UTF-8"}
}

// CommaSettings returns settings for a plain UTF-8 CSV report.
func CommaSettings() Settings {
	return Settings{Delimiter: ",", Encoding: "UTF-8"}
}

// Windows1252Settings returns settings for the inventory archive, which the
// marketplace exports in a single-byte Western encoding.
func Windows1252Settings() Settings {
	return Settings{Delimiter: ",", Encoding: "Windows-1252"}
}

// =============================================================================
// TABLE STRUCTURE
// =============================================================================

// Table is a fully materialized delimited file.
type Table struct {
	// Headers contains the column headers in file order.
	Headers []string

	// Rows contains the data rows as maps of header -> value.
	Rows []map[string]string

	// SourceFile is the path the table was read from, kept for error context.
	SourceFile string
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// RequireColumns verifies that every named column is present.
//
// RETURNS:
//   - An error naming the source file and every missing column. A missing
//     required column is a fatal schema error: the caller is expected to
//     abort before any output is produced.
func (t *Table) RequireColumns(names ...string) error {
	var missing []string
	for _, name := range names {
		if !t.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s: missing required column(s): %s",
			t.SourceFile, strings.Join(missing, ", "))
	}
	return nil
}

// =============================================================================
// PARSER
// =============================================================================

// Read parses a delimited file into a Table.
//
// PARAMETERS:
//   - filePath: The path to the file.
//   - settings: Delimiter and encoding settings for this file type.
//
// RETURNS:
//   - A pointer to the Table.
//   - An error if the file cannot be read, decoded, or has no header row.
func Read(filePath string, settings Settings) (*Table, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader, err := decodingReader(bufio.NewReader(file), settings.Encoding)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}

	csvReader := csv.NewReader(reader)
	configureReader(csvReader, settings)

	allRows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
	}
	if len(allRows) == 0 {
		return nil, fmt.Errorf("%s: file is empty", filePath)
	}

	headers := cleanHeaders(allRows[0])

	rows := make([]map[string]string, 0, len(allRows)-1)
	for _, row := range allRows[1:] {
		if isRowEmpty(row) {
			continue
		}
		rowMap := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(row) {
				rowMap[header] = strings.TrimSpace(row[i])
			} else {
				rowMap[header] = ""
			}
		}
		rows = append(rows, rowMap)
	}

	return &Table{
		Headers:    headers,
		Rows:       rows,
		SourceFile: filePath,
	}, nil
}

// decodingReader wraps the raw reader with a charset decoder when the file is
// not UTF-8.
func decodingReader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToUpper(strings.TrimSpace(encoding)) {
	case "", "UTF-8", "UTF8":
		return r, nil
	case "WINDOWS-1252", "CP1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	case "ISO-8859-1", "LATIN-1", "LATIN1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encoding)
	}
}

// configureReader applies the delimiter and lenient parsing options.
func configureReader(reader *csv.Reader, settings Settings) {
	switch settings.Delimiter {
	case "\\t", "\t", "tab", "TAB":
		reader.Comma = '\t'
	case ";", "semicolon":
		reader.Comma = ';'
	default:
		if len(settings.Delimiter) > 0 {
			reader.Comma = rune(settings.Delimiter[0])
		} else {
			reader.Comma = ','
		}
	}

	// Marketplace exports are not strict CSV: column counts vary between
	// header revisions and quoting is inconsistent.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
}

// cleanHeaders trims whitespace and names any blank headers by position.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	for i, header := range headers {
		header = strings.TrimSpace(header)
		if header == "" {
			header = fmt.Sprintf("Column_%d", i+1)
		}
		cleaned[i] = header
	}
	return cleaned
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
