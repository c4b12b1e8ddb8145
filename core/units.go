package core

import (
	"fmt"
	"strings"

	"rotagen/config"
)

// Unit is one output document: a file name and the records it holds.
type Unit struct {
	Name     string
	FileName string
	Records  []Record
}

// BuildUnits returns the all-records unit followed by one unit per carrier,
// in carrier order. File names that collide after sanitizing get a " (n)" suffix.
func BuildUnits(t *Table, cfg *config.ReportConfig) ([]Unit, error) {
	col, err := t.LocateColumn(cfg.Records.CarrierColumn)
	if err != nil {
		return nil, fmt.Errorf("carrier column: %w", err)
	}

	names := newFileNamer()
	units := []Unit{{
		Name:     cfg.Output.AllRecordsName,
		FileName: names.next(cfg.Output.AllRecordsName),
		Records:  t.Records(cfg.Records),
	}}
	for _, g := range t.GroupBy(col) {
		units = append(units, Unit{
			Name:     g.Key,
			FileName: names.next(g.Key),
			Records:  g.Table.Records(cfg.Records),
		})
	}
	return units, nil
}

// SanitizeFileName turns a group key into a document name: "/" becomes "-",
// "\" is dropped and ".xlsx" is appended.
func SanitizeFileName(key string) string {
	name := strings.ReplaceAll(key, "/", "-")
	name = strings.ReplaceAll(name, "\\", "")
	name = strings.TrimSpace(name)
	if name == "" {
		name = "_"
	}
	return name + ".xlsx"
}

// fileNamer hands out names unique up to case, so documents never overwrite
// each other on case-insensitive file systems.
type fileNamer struct {
	used map[string]bool
}

func newFileNamer() *fileNamer {
	return &fileNamer{used: make(map[string]bool)}
}

func (n *fileNamer) next(key string) string {
	base := strings.TrimSuffix(SanitizeFileName(key), ".xlsx")
	name := base + ".xlsx"
	for i := 2; n.used[strings.ToLower(name)]; i++ {
		name = fmt.Sprintf("%s (%d).xlsx", base, i)
	}
	n.used[strings.ToLower(name)] = true
	return name
}
