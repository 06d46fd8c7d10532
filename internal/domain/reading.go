package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// SensorReading is the normalized form of one field-sensor record.
// The metric pointers are nil when the sensor did not report that channel.
type SensorReading struct {
	Date         time.Time `json:"date"`
	SoilMoisture *float64  `json:"soil_moisture,omitempty"`
	Temperature  *float64  `json:"temperature,omitempty"`
	Humidity     *float64  `json:"humidity,omitempty"`
	PestIndex    float64   `json:"pest_index"`
	Location     string    `json:"location"`
}

// rawSensorRecord mirrors the loose JSON written by the field collectors.
// Older collectors use "timestamp" instead of "date".
type rawSensorRecord struct {
	Date         string   `json:"date"`
	Timestamp    string   `json:"timestamp"`
	SoilMoisture *float64 `json:"soil_moisture"`
	Temperature  *float64 `json:"temperature"`
	Humidity     *float64 `json:"humidity"`
	PestIndex    *float64 `json:"pest_index"`
	Location     string   `json:"location"`
}

// dateLayouts are the formats collectors have been observed writing,
// tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate parses a dataset date string, accepting any supported layout.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// ParseSensorReadings decodes a JSON array of sensor records, skipping
// malformed entries instead of failing the whole file. A record without a
// date field is stamped with now; a record whose date will not parse is
// dropped. Returns the readings, the number of records skipped, and an
// error only when the top-level document is not a JSON array.
func ParseSensorReadings(data []byte, now time.Time) ([]SensorReading, int, error) {
	var rawRecords []json.RawMessage
	if err := json.Unmarshal(data, &rawRecords); err != nil {
		return nil, 0, fmt.Errorf("parse sensor dataset: %w", err)
	}

	readings := make([]SensorReading, 0, len(rawRecords))
	skipped := 0
	for _, rawRec := range rawRecords {
		var rec rawSensorRecord
		if err := json.Unmarshal(rawRec, &rec); err != nil {
			skipped++
			continue
		}

		date := now
		if raw := firstNonEmpty(rec.Date, rec.Timestamp); raw != "" {
			parsed, err := ParseDate(raw)
			if err != nil {
				skipped++
				continue
			}
			date = parsed
		}

		pestIndex := 0.0
		if rec.PestIndex != nil {
			pestIndex = *rec.PestIndex
		}

		readings = append(readings, SensorReading{
			Date:         date,
			SoilMoisture: rec.SoilMoisture,
			Temperature:  rec.Temperature,
			Humidity:     rec.Humidity,
			PestIndex:    pestIndex,
			Location:     rec.Location,
		})
	}
	return readings, skipped, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
