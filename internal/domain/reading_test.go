package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func TestParseSensorReadings(t *testing.T) {
	t.Run("well-formed records", func(t *testing.T) {
		data := []byte(`[
			{"date":"2024-06-10T08:00:00Z","soil_moisture":31.5,"temperature":27.2,"humidity":64.0,"pest_index":0.12,"location":"Khandwa"},
			{"date":"2024-06-11","temperature":29.8,"location":"Burhanpur"}
		]`)

		readings, skipped, err := ParseSensorReadings(data, testNow)
		require.NoError(t, err)
		assert.Zero(t, skipped)
		require.Len(t, readings, 2)

		first := readings[0]
		assert.Equal(t, time.Date(2024, time.June, 10, 8, 0, 0, 0, time.UTC), first.Date)
		require.NotNil(t, first.SoilMoisture)
		assert.Equal(t, 31.5, *first.SoilMoisture)
		require.NotNil(t, first.Humidity)
		assert.Equal(t, 64.0, *first.Humidity)
		assert.Equal(t, 0.12, first.PestIndex)
		assert.Equal(t, "Khandwa", first.Location)

		second := readings[1]
		assert.Equal(t, time.Date(2024, time.June, 11, 0, 0, 0, 0, time.UTC), second.Date)
		assert.Nil(t, second.SoilMoisture)
		assert.Nil(t, second.Humidity)
		assert.Equal(t, 0.0, second.PestIndex)
	})

	t.Run("unparsable date skips only that record", func(t *testing.T) {
		data := []byte(`[
			{"date":"2024-06-01","location":"a"},
			{"date":"2024-06-02","location":"b"},
			{"date":"last tuesday","location":"bad"},
			{"date":"2024-06-03","location":"c"},
			{"date":"2024-06-04","location":"d"},
			{"date":"2024-06-05","location":"e"}
		]`)

		readings, skipped, err := ParseSensorReadings(data, testNow)
		require.NoError(t, err)
		assert.Equal(t, 1, skipped)
		assert.Len(t, readings, 5)
	})

	t.Run("missing date defaults to now", func(t *testing.T) {
		data := []byte(`[{"location":"Khargone","pest_index":0.4}]`)

		readings, skipped, err := ParseSensorReadings(data, testNow)
		require.NoError(t, err)
		assert.Zero(t, skipped)
		require.Len(t, readings, 1)
		assert.Equal(t, testNow, readings[0].Date)
	})

	t.Run("timestamp field accepted as date", func(t *testing.T) {
		data := []byte(`[{"timestamp":"2024-05-20T06:30:00Z","location":"Dewas"}]`)

		readings, _, err := ParseSensorReadings(data, testNow)
		require.NoError(t, err)
		require.Len(t, readings, 1)
		assert.Equal(t, time.Date(2024, time.May, 20, 6, 30, 0, 0, time.UTC), readings[0].Date)
	})

	t.Run("non-object entry skipped", func(t *testing.T) {
		data := []byte(`[{"date":"2024-06-01"}, 42, "stray"]`)

		readings, skipped, err := ParseSensorReadings(data, testNow)
		require.NoError(t, err)
		assert.Equal(t, 2, skipped)
		assert.Len(t, readings, 1)
	})

	t.Run("non-array document fails", func(t *testing.T) {
		_, _, err := ParseSensorReadings([]byte(`{"date":"2024-06-01"}`), testNow)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse sensor dataset")
	})

	t.Run("empty array", func(t *testing.T) {
		readings, skipped, err := ParseSensorReadings([]byte(`[]`), testNow)
		require.NoError(t, err)
		assert.Zero(t, skipped)
		assert.Empty(t, readings)
	})
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
		wantErr  bool
	}{
		{"rfc3339", "2024-06-10T08:00:00Z", time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC), false},
		{"no zone", "2024-06-10T08:00:00", time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC), false},
		{"bare day", "2024-06-10", time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), false},
		{"padded", "  2024-06-10  ", time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), false},
		{"garbage", "10/06/2024", time.Time{}, true},
		{"empty", "", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.expected), "got %v, want %v", got, tt.expected)
		})
	}
}
