package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTable(t *testing.T) {
	t.Run("header and rows", func(t *testing.T) {
		csv := "date,location,rainfall_mm,temp_max\n" +
			"2024-06-10,Khandwa,12.5,34\n" +
			"2024-06-11,Burhanpur,0,36\n"

		tbl, skipped, err := ParseTable(strings.NewReader(csv))
		require.NoError(t, err)
		assert.Zero(t, skipped)
		assert.Equal(t, []string{"date", "location", "rainfall_mm", "temp_max"}, tbl.Columns)
		require.Len(t, tbl.Rows, 2)
		assert.Equal(t, "Khandwa", tbl.Rows[0]["location"])
		assert.Equal(t, "12.5", tbl.Rows[0]["rainfall_mm"])
	})

	t.Run("short row keeps present columns", func(t *testing.T) {
		csv := "date,location,rainfall_mm\n2024-06-10,Khandwa\n"

		tbl, skipped, err := ParseTable(strings.NewReader(csv))
		require.NoError(t, err)
		assert.Zero(t, skipped)
		require.Len(t, tbl.Rows, 1)
		assert.Equal(t, "Khandwa", tbl.Rows[0]["location"])
		_, has := tbl.Rows[0]["rainfall_mm"]
		assert.False(t, has)
	})

	t.Run("overlong row skipped", func(t *testing.T) {
		csv := "date,location\n2024-06-10,Khandwa,extra,fields\n2024-06-11,Burhanpur\n"

		tbl, skipped, err := ParseTable(strings.NewReader(csv))
		require.NoError(t, err)
		assert.Equal(t, 1, skipped)
		require.Len(t, tbl.Rows, 1)
		assert.Equal(t, "Burhanpur", tbl.Rows[0]["location"])
	})

	t.Run("empty input fails on header", func(t *testing.T) {
		_, _, err := ParseTable(strings.NewReader(""))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse table header")
	})

	t.Run("whitespace trimmed", func(t *testing.T) {
		csv := " date , location \n 2024-06-10 , Khandwa \n"

		tbl, _, err := ParseTable(strings.NewReader(csv))
		require.NoError(t, err)
		assert.Equal(t, []string{"date", "location"}, tbl.Columns)
		assert.Equal(t, "Khandwa", tbl.Rows[0]["location"])
	})
}

func TestRowDate(t *testing.T) {
	t.Run("parses date column", func(t *testing.T) {
		row := Row{"date": "2024-06-10"}
		d, ok := row.Date()
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), d)
	})

	t.Run("missing column", func(t *testing.T) {
		_, ok := Row{"location": "Khandwa"}.Date()
		assert.False(t, ok)
	})

	t.Run("unparsable date", func(t *testing.T) {
		_, ok := Row{"date": "soon"}.Date()
		assert.False(t, ok)
	})
}

func TestTableFilter(t *testing.T) {
	tbl := Table{
		Columns: []string{"date", "location"},
		Rows: []Row{
			{"date": "2024-06-10", "location": "Valley View"},
			{"date": "2024-06-11", "location": "Mountain"},
		},
	}

	filtered := tbl.Filter(func(r Row) bool { return MatchesLocation(r.Location(), "valley") })

	assert.Equal(t, tbl.Columns, filtered.Columns)
	require.Len(t, filtered.Rows, 1)
	assert.Equal(t, "Valley View", filtered.Rows[0]["location"])
	// Original table untouched.
	assert.Len(t, tbl.Rows, 2)
}
