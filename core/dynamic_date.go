package core

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

const dynamicDatePrefix = "$date:"

var dateLayouts = map[string]string{
	"month":    "2006-01",
	"year":     "2006",
	"datetime": "2006-01-02 15:04:05",
	"br":       "02-01-2006", // no slashes, usable in file names
}

var dateShifts = map[string]func(t time.Time, n int) time.Time{
	"day":   func(t time.Time, n int) time.Time { return t.AddDate(0, 0, n) },
	"week":  func(t time.Time, n int) time.Time { return t.AddDate(0, 0, 7*n) },
	"month": func(t time.Time, n int) time.Time { return t.AddDate(0, n, 0) },
	"year":  func(t time.Time, n int) time.Time { return t.AddDate(n, 0, 0) },
}

// ParseDynamicDate resolves "$date:<format>:<unit>:<offset>" against base.
// "$date:br:day:-1" is yesterday as "17-10-2026". Unknown formats fall back
// to "2006-01-02"; other strings are returned unchanged.
func ParseDynamicDate(expression string, base time.Time) (string, error) {
	if !strings.HasPrefix(expression, dynamicDatePrefix) {
		return expression, nil
	}

	parts := strings.Split(strings.TrimPrefix(expression, dynamicDatePrefix), ":")
	if len(parts) < 3 {
		return "", fmt.Errorf("invalid dynamic date %q", expression)
	}
	offset, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", fmt.Errorf("invalid offset in dynamic date %q", expression)
	}
	shift, ok := dateShifts[parts[1]]
	if !ok {
		return "", fmt.Errorf("unsupported unit %q in dynamic date %q", parts[1], expression)
	}

	layout, ok := dateLayouts[parts[0]]
	if !ok {
		layout = "2006-01-02"
	}
	return shift(base, offset).Format(layout), nil
}

// ExpandParameters resolves dynamic dates in place. Invalid expressions are
// logged and kept as written.
func ExpandParameters(params map[string]string, now time.Time) {
	for k, v := range params {
		if !strings.HasPrefix(v, dynamicDatePrefix) {
			continue
		}
		val, err := ParseDynamicDate(v, now)
		if err != nil {
			slog.Warn("Ignoring invalid dynamic date", "param", k, "value", v, "error", err)
			continue
		}
		params[k] = val
	}
}
