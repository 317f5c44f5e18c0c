package trend

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/healthnest-server/internal/model"
)

var base = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func record(id string, at time.Duration, data map[string]any) model.HealthRecord {
	return model.HealthRecord{
		Meta:   model.Meta{ID: id, CreatedAt: base.Add(at)},
		Source: "source-" + id,
		Data:   data,
	}
}

func TestExtract_WeightScenario(t *testing.T) {
	records := []model.HealthRecord{
		record("r1", 0, map[string]any{"weight": 70}),
		record("r2", time.Hour, map[string]any{"height": 172}),
	}

	got := Extract(records, "weight")
	assert.Equal(t, []model.TrendPoint{{
		Date:     base,
		Value:    70,
		RecordID: "r1",
		Source:   "source-r1",
	}}, got)
}

func TestExtract_Values(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  float64
		ok    bool
	}{
		{name: "int", value: 72, want: 72, ok: true},
		{name: "int32 from bson", value: int32(72), want: 72, ok: true},
		{name: "int64", value: int64(-3), want: -3, ok: true},
		{name: "uint8", value: uint8(9), want: 9, ok: true},
		{name: "float", value: 36.6, want: 36.6, ok: true},
		{name: "json number", value: json.Number("98.4"), want: 98.4, ok: true},
		{name: "numeric string", value: "120", want: 120, ok: true},
		{name: "string with unit", value: "72 bpm", want: 72, ok: true},
		{name: "leading space", value: "  5.5kg", want: 5.5, ok: true},
		{name: "exponent", value: "1.5e2", want: 150, ok: true},
		{name: "dangling exponent", value: "3e", want: 3, ok: true},
		{name: "fraction only", value: ".5", want: 0.5, ok: true},
		{name: "signed", value: "-4", want: -4, ok: true},
		{name: "not a number", value: "high", ok: false},
		{name: "empty string", value: "", ok: false},
		{name: "lone dot", value: ".", ok: false},
		{name: "blood pressure keeps systolic", value: "120/80", want: 120, ok: true},
		{name: "NaN", value: math.NaN(), ok: false},
		{name: "infinity", value: math.Inf(1), ok: false},
		{name: "overflowing string", value: "1e999", ok: false},
		{name: "bool", value: true, ok: false},
		{name: "object", value: map[string]any{"value": 70}, ok: false},
		{name: "list", value: []any{70}, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract([]model.HealthRecord{record("r", 0, map[string]any{"m": tt.value})}, "m")
			if !tt.ok {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.InDelta(t, tt.want, got[0].Value, 1e-9)
		})
	}
}

func TestExtract_SkipsMissingAndNull(t *testing.T) {
	records := []model.HealthRecord{
		record("a", 0, nil),
		record("b", time.Minute, map[string]any{"weight": nil}),
		record("c", 2*time.Minute, map[string]any{"Weight": 70}),
	}
	assert.Empty(t, Extract(records, "weight"))
	assert.NotNil(t, Extract(records, "weight"))
}

func TestExtract_KeepsDuplicateDatesInInputOrder(t *testing.T) {
	records := []model.HealthRecord{
		record("first", time.Hour, map[string]any{"pulse": 70}),
		record("second", time.Hour, map[string]any{"pulse": 75}),
		record("earlier", 0, map[string]any{"pulse": 60}),
	}

	got := Extract(records, "pulse")
	require.Len(t, got, 3)
	assert.Equal(t, "earlier", got[0].RecordID)
	assert.Equal(t, "first", got[1].RecordID)
	assert.Equal(t, "second", got[2].RecordID)
}

func TestExtract_CountAndOrderIndependentOfStorageOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 50; round++ {
		n := rng.Intn(40)
		records := make([]model.HealthRecord, 0, n)
		k := 0
		for i := 0; i < n; i++ {
			data := map[string]any{"other": i}
			if rng.Intn(2) == 0 {
				data["glucose"] = rng.Float64() * 200
				k++
			}
			offset := time.Duration(rng.Intn(10)) * time.Hour
			records = append(records, record(fmt.Sprintf("r%d", i), offset, data))
		}
		rng.Shuffle(len(records), func(i, j int) { records[i], records[j] = records[j], records[i] })

		got := Extract(records, "glucose")
		require.Len(t, got, k)
		for i := 1; i < len(got); i++ {
			assert.False(t, got[i].Date.Before(got[i-1].Date))
		}
	}
}
