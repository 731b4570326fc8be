package dataset

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikeshare/internal/storage"
	"bikeshare/internal/testutil"
)

func TestReadTable_Daily(t *testing.T) {
	table, err := ReadTable("day", Daily, strings.NewReader(testutil.DayCSV(testutil.FirstDay, testutil.FullPeriodDays)))
	require.NoError(t, err)

	assert.Equal(t, "day", table.Name())
	assert.Equal(t, Daily, table.Granularity())
	assert.Equal(t, testutil.FullPeriodDays, table.Len())
	assert.False(t, table.HasColumn(ColInstant), "instant column should be dropped")
	assert.True(t, table.HasColumn(ColDate))

	dates := table.Dates()
	require.Len(t, dates, testutil.FullPeriodDays)
	assert.Equal(t, testutil.FirstDay, dates[0])
	assert.Equal(t, time.Date(2012, time.December, 31, 0, 0, 0, 0, time.UTC), dates[len(dates)-1])

	counts, err := table.Float(ColCount)
	require.NoError(t, err)
	assert.Equal(t, float64(testutil.DayCount(0)), counts[0])
	assert.Equal(t, float64(testutil.DayCount(730)), counts[730])

	assert.Empty(t, CheckKeys(table))
}

func TestReadTable_Hourly(t *testing.T) {
	table, err := ReadTable("hour", Hourly, strings.NewReader(testutil.HourCSV(testutil.FirstDay, 3, testutil.AllHours())))
	require.NoError(t, err)

	assert.Equal(t, 72, table.Len())
	hours, err := table.Int(ColHour)
	require.NoError(t, err)
	assert.Equal(t, 0, hours[0])
	assert.Equal(t, 23, hours[23])
	assert.Empty(t, CheckKeys(table))
}

func TestReadTable_NumericColumns(t *testing.T) {
	table, err := ReadTable("day", Daily, strings.NewReader(testutil.DayCSV(testutil.FirstDay, 10)))
	require.NoError(t, err)

	numeric := table.NumericColumns()
	assert.NotContains(t, numeric, ColDate)
	assert.NotContains(t, numeric, ColInstant)
	assert.Equal(t, []string{
		ColSeason, ColYear, ColMonth, ColHoliday, ColWeekday, ColWorkingDay, ColWeather,
		ColTemp, ColATemp, ColHumidity, ColWindspeed, ColCasual, ColRegistered, ColCount,
	}, numeric)
}

func TestReadTable_WithoutInstant(t *testing.T) {
	csv := "dteday,cnt\n2011-01-01,10\n2011-01-02,12\n"
	table, err := ReadTable("day", Daily, strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, []string{ColDate, ColCount}, table.Columns())
}

func TestReadTable_DateLayouts(t *testing.T) {
	csv := "dteday,cnt\n2011/01/01,1\n2011-01-02 00:00:00,2\n2011-01-03T00:00:00Z,3\n"
	table, err := ReadTable("day", Daily, strings.NewReader(csv))
	require.NoError(t, err)

	dates := table.Dates()
	assert.Equal(t, 1, dates[0].Day())
	assert.Equal(t, 2, dates[1].Day())
	assert.Equal(t, 3, dates[2].Day())
}

func TestReadTable_Errors(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		wantErr error
	}{
		{"bad date", "dteday,cnt\n2011-01-01,1\nnot-a-date,2\n", ErrDateParse},
		{"missing cnt", "dteday,casual\n2011-01-01,1\n", ErrMissingColumn},
		{"missing dteday", "instant,cnt\n1,1\n", ErrMissingColumn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTable("day", Daily, strings.NewReader(tt.csv))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTable_MissingColumnAccess(t *testing.T) {
	table, err := ReadTable("day", Daily, strings.NewReader("dteday,cnt\n2011-01-01,1\n"))
	require.NoError(t, err)

	_, err = table.Float(ColTemp)
	assert.ErrorIs(t, err, ErrMissingColumn)
	_, err = table.Int(ColHour)
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestTable_DatesReturnsCopy(t *testing.T) {
	table, err := ReadTable("day", Daily, strings.NewReader(testutil.DayCSV(testutil.FirstDay, 2)))
	require.NoError(t, err)

	dates := table.Dates()
	dates[0] = time.Time{}
	assert.Equal(t, testutil.FirstDay, table.Dates()[0])
}

func TestCheckKeys(t *testing.T) {
	t.Run("duplicate and out of order dates", func(t *testing.T) {
		csv := "dteday,cnt\n2011-01-02,1\n2011-01-02,2\n2011-01-01,3\n"
		table, err := ReadTable("day", Daily, strings.NewReader(csv))
		require.NoError(t, err)

		violations := CheckKeys(table)
		require.Len(t, violations, 2)
		assert.Equal(t, 2, violations[0].Row)
		assert.Contains(t, violations[0].Reason, "duplicate date")
		assert.Equal(t, 3, violations[1].Row)
		assert.Equal(t, "date out of order", violations[1].Reason)
		assert.Contains(t, violations[1].String(), "2011-01-01")
	})

	t.Run("duplicate hour", func(t *testing.T) {
		csv := "dteday,hr,cnt\n2011-01-01,0,1\n2011-01-01,1,2\n2011-01-01,1,3\n2011-01-02,1,4\n"
		table, err := ReadTable("hour", Hourly, strings.NewReader(csv))
		require.NoError(t, err)

		violations := CheckKeys(table)
		require.Len(t, violations, 1)
		assert.Equal(t, 3, violations[0].Row)
		assert.Equal(t, 1, violations[0].Hour)
		assert.Contains(t, violations[0].String(), "hour 1")
	})

	t.Run("hourly without hr column", func(t *testing.T) {
		table, err := ReadTable("hour", Hourly, strings.NewReader("dteday,cnt\n2011-01-01,1\n2011-01-01,2\n"))
		require.NoError(t, err)
		assert.Empty(t, CheckKeys(table))
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "day.csv"), []byte(testutil.DayCSV(testutil.FirstDay, 90)), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hour.csv"), []byte(testutil.HourCSV(testutil.FirstDay, 90, []int{0, 8, 17})), 0644))

	src, err := storage.NewLocalSource(dir)
	require.NoError(t, err)

	data, err := Load(context.Background(), src, "day.csv", "hour.csv")
	require.NoError(t, err)
	assert.Equal(t, 90, data.Day.Len())
	assert.Equal(t, 270, data.Hour.Len())
	assert.Equal(t, Hourly, data.Hour.Granularity())

	_, err = Load(context.Background(), src, "day.csv", "missing.csv")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLoad_NamesEveryMissingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "day_2011.csv"), []byte(testutil.DayCSV(testutil.FirstDay, 5)), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	src, err := storage.NewLocalSource(dir)
	require.NoError(t, err)

	_, err = Load(context.Background(), src, "day.csv", "hour.csv")
	require.ErrorIs(t, err, storage.ErrNotFound)
	assert.Contains(t, err.Error(), "day.csv, hour.csv")
	assert.Contains(t, err.Error(), "csv files present: day_2011.csv")
	assert.NotContains(t, err.Error(), "notes.txt")
}

func TestGranularityString(t *testing.T) {
	assert.Equal(t, "daily", Daily.String())
	assert.Equal(t, "hourly", Hourly.String())
	assert.Equal(t, "unknown", Granularity(9).String())
}
