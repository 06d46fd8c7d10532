// Package domain models the on-disk agricultural telemetry datasets and the
// normalized shapes handed to downstream consumers.
//
// # Data Sources
//
// Datasets are plain files maintained under a single dataset directory.
// Nothing in this package touches the network; a dataset either exists on
// disk in the expected format or the caller degrades to an empty result.
//
//	farm_sensor_data_tehsil_with_date.json   JSON array of field-sensor readings
//	weather_data_tehsil.csv                  CSV, one row per station-day
//	farm_resources.json                      JSON object keyed by farm id
//	market_prices.csv                        CSV, one row per commodity-day
//
// # Sensor Records
//
// Each sensor record carries an ISO-8601 date (under either "date" or
// "timestamp"), optional soil_moisture/temperature/humidity readings, a
// pest_index, and a location string. Field deployments produce messy data:
// a record missing its date gets the current instant, a record whose date
// will not parse is skipped rather than failing the whole file. The skip
// count is surfaced so operators can spot rotting datasets.
//
// # Tabular Records
//
// CSV datasets are kept schema-light: the first row is the header, a "date"
// column is required for windowing, weather additionally carries a
// "location" column, and every other column passes through untouched as
// strings. Rows with a malformed or missing date are excluded by the date
// filter rather than rejected at parse time.
//
// # Dates
//
// Dates appear as full RFC 3339 timestamps, as "2006-01-02T15:04:05", or as
// bare "2006-01-02" days, depending on which collector wrote the file. All
// three are accepted everywhere a date is parsed.
//
// # Provenance
//
// Every resolution returns a SourceInfo alongside the payload. Confidence is
// binary in practice: 0.9 when the primary dataset loaded, 0.0 when it did
// not. Callers must branch on Confidence/SourceType, never on RecordCount:
// a correctly loaded dataset whose filter matched nothing still carries 0.9.
package domain
