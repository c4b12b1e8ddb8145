package core

import (
	"regexp"
	"strings"
)

// Field is one positional value of a record. Absent fields are skipped by the
// writer and do not consume a column.
type Field struct {
	Value   string
	Present bool
}

// Record is an ordered list of at most MaxFields fields.
type Record struct {
	Fields []Field
}

// NewRecord builds a record from raw values; blank values become absent fields.
// Values past MaxFields are dropped.
func NewRecord(values ...string) Record {
	if len(values) > MaxFields {
		values = values[:MaxFields]
	}
	rec := Record{Fields: make([]Field, 0, len(values))}
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			rec.Fields = append(rec.Fields, Field{})
			continue
		}
		rec.Fields = append(rec.Fields, Field{Value: v, Present: true})
	}
	return rec
}

// Values returns the present values in order.
func (r Record) Values() []string {
	out := make([]string, 0, len(r.Fields))
	for _, f := range r.Fields {
		if f.Present {
			out = append(out, f.Value)
		}
	}
	return out
}

var cityPattern = regexp.MustCompile(`^(\d+)-(.*?)/`)

// FormatCity turns "12345-São Paulo/SP" into "São Paulo - 12345". Text that
// does not match is returned unchanged. Blank text reports false.
func FormatCity(raw string) (string, bool) {
	if strings.TrimSpace(raw) == "" {
		return "", false
	}
	if m := cityPattern.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[2]) + " - " + m[1], true
	}
	return raw, true
}
