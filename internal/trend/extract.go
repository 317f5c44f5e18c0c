// Package trend builds numeric time series out of free-form health record data.
package trend

import (
	"encoding/json"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/dtroode/healthnest-server/internal/model"
)

// Extract returns one point per record whose data carries a numeric metric value,
// ordered by record creation time. Records without the metric, and values that do
// not read as a finite number, are skipped. Equal timestamps keep their input order.
func Extract(records []model.HealthRecord, metric string) []model.TrendPoint {
	points := make([]model.TrendPoint, 0, len(records))
	for _, r := range records {
		raw, ok := r.Data[metric]
		if !ok || raw == nil {
			continue
		}
		v, ok := Number(raw)
		if !ok {
			continue
		}
		points = append(points, model.TrendPoint{
			Date:     r.CreatedAt,
			Value:    v,
			RecordID: r.ID,
			Source:   r.Source,
		})
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points
}

// Number reads v as a finite float. Strings contribute their leading decimal
// number, so "72 bpm" reads as 72.
func Number(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, ok := leadingFloat(n)
		if !ok {
			return 0, false
		}
		f = parsed
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			f = float64(rv.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			f = float64(rv.Uint())
		case reflect.Float32, reflect.Float64:
			f = rv.Float()
		default:
			return 0, false
		}
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func leadingFloat(s string) (float64, bool) {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	end := prefixLen(s)
	if end == 0 {
		return 0, false
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// prefixLen returns the length of the longest leading decimal literal:
// an optional sign, digits with at most one point, and an optional exponent.
func prefixLen(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits+frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		exp := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			exp++
		}
		if exp > 0 {
			i = j
		}
	}
	return i
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
