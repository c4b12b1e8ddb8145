package core

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// CsvTableReader reads a delimited text file. Encoding selects a legacy
// single-byte decoder; empty or "utf-8" reads the bytes as they are.
type CsvTableReader struct {
	Path     string
	Comma    rune
	Encoding string
}

func NewCsvTableReader(path, comma, enc string) *CsvTableReader {
	r := &CsvTableReader{Path: path, Comma: ',', Encoding: enc}
	if c, _ := utf8.DecodeRuneInString(comma); c != utf8.RuneError {
		r.Comma = c
	}
	return r
}

func csvDecoder(name string) (*encoding.Decoder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder(), nil
	case "iso-8859-1", "latin1", "latin-1":
		return charmap.ISO8859_1.NewDecoder(), nil
	default:
		return nil, fmt.Errorf("unsupported csv encoding: %s", name)
	}
}

func (r *CsvTableReader) Read(ctx context.Context) (*Table, error) {
	dec, err := csvDecoder(r.Encoding)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(r.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file %s: %w", r.Path, err)
	}
	defer file.Close()

	var src io.Reader = file
	if dec != nil {
		src = transform.NewReader(file, dec)
	}
	reader := csv.NewReader(src)
	reader.Comma = r.Comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv content: %w", err)
	}
	return tableFromGrid(records), nil
}
