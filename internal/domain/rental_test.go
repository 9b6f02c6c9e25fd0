package domain

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestSeasonFromCode(t *testing.T) {
	tests := []struct {
		code int
		want Season
		name string
	}{
		{1, Spring, "Spring"},
		{2, Summer, "Summer"},
		{3, Fall, "Fall"},
		{4, Winter, "Winter"},
		{0, SeasonUnknown, "Unknown"},
		{5, SeasonUnknown, "Unknown"},
		{-1, SeasonUnknown, "Unknown"},
	}

	for _, tt := range tests {
		s := SeasonFromCode(tt.code)
		assert.Equal(t, tt.want, s, "code %d", tt.code)
		assert.Equal(t, tt.name, s.String(), "code %d", tt.code)
	}
}

func TestSeasonCodeRoundTrip(t *testing.T) {
	for _, s := range Seasons {
		assert.Equal(t, s, SeasonFromCode(s.Code()))

		parsed, err := ParseSeason(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
	assert.Equal(t, 0, SeasonUnknown.Code())

	_, err := ParseSeason("monsoon")
	assert.Error(t, err)
}

func TestSeasonMarshalsByName(t *testing.T) {
	b, err := json.Marshal(SeasonTotal{Season: Fall, Registered: 3})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"season":"Fall"`)
}

func TestNewDatasetSortsAndNormalizes(t *testing.T) {
	in := []DailyRentalRecord{
		{Date: date("2011-01-03").Add(13 * time.Hour), Total: 3},
		{Date: date("2011-01-01"), Total: 1},
		{Date: date("2011-01-02"), Total: 2},
	}
	ds := NewDataset(in, "test", []string{"holiday"})

	require.Equal(t, 3, ds.Len())
	for i, want := range []int{1, 2, 3} {
		assert.Equal(t, want, ds.Records[i].Total)
	}
	assert.Equal(t, date("2011-01-03"), ds.Records[2].Date)
	// the input slice is left untouched
	assert.Equal(t, 3, in[0].Total)
	assert.Equal(t, []string{"holiday"}, ds.ExtraColumns)

	bounds, ok := ds.Bounds()
	require.True(t, ok)
	assert.Equal(t, date("2011-01-01"), bounds.Start)
	assert.Equal(t, date("2011-01-03"), bounds.End)
}

func TestDatasetEmpty(t *testing.T) {
	var nilDS *Dataset
	assert.Equal(t, 0, nilDS.Len())
	assert.True(t, nilDS.Empty())

	ds := NewDataset(nil, "test", nil)
	assert.True(t, ds.Empty())
	_, ok := ds.Bounds()
	assert.False(t, ok)
	assert.Nil(t, ds.Between(DateRange{Start: date("2011-01-01"), End: date("2011-12-31")}))
}

func TestDatasetBetween(t *testing.T) {
	var records []DailyRentalRecord
	for i := 0; i < 10; i++ {
		records = append(records, DailyRentalRecord{Date: date("2011-01-01").AddDate(0, 0, i), Total: i})
	}
	ds := NewDataset(records, "test", nil)

	tests := []struct {
		name       string
		start, end string
		want       []int
	}{
		{"full range", "2011-01-01", "2011-01-10", []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}},
		{"both ends inclusive", "2011-01-03", "2011-01-05", []int{2, 3, 4}},
		{"single day", "2011-01-04", "2011-01-04", []int{3}},
		{"wider than data", "2010-01-01", "2012-01-01", []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}},
		{"before data", "2010-01-01", "2010-12-31", nil},
		{"after data", "2011-02-01", "2011-03-01", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ds.Between(DateRange{Start: date(tt.start), End: date(tt.end)})
			var totals []int
			for _, r := range got {
				totals = append(totals, r.Total)
			}
			assert.Equal(t, tt.want, totals)
		})
	}
}

func TestDatasetBetweenCannotGrowIntoDataset(t *testing.T) {
	var records []DailyRentalRecord
	for i := 0; i < 5; i++ {
		records = append(records, DailyRentalRecord{Date: date("2011-01-01").AddDate(0, 0, i), Total: i})
	}
	ds := NewDataset(records, "test", nil)

	view := ds.Between(DateRange{Start: date("2011-01-01"), End: date("2011-01-02")})
	_ = append(view, DailyRentalRecord{Total: 99})
	assert.Equal(t, 2, ds.Records[2].Total)
}

func TestRecordConsistent(t *testing.T) {
	assert.True(t, DailyRentalRecord{Registered: 10, Casual: 5, Total: 15}.Consistent())
	assert.False(t, DailyRentalRecord{Registered: 10, Casual: 5, Total: 16}.Consistent())
}

func TestVectorOrder(t *testing.T) {
	r := DailyRentalRecord{
		Weather: WeatherFactors{Temp: 0.1, FeelsLike: 0.2, Humidity: 0.3, Windspeed: 0.4},
		Total:   500,
	}
	assert.Equal(t, []float64{0.1, 0.2, 0.3, 0.4, 500}, r.Vector())
	assert.Len(t, WeatherVariables, len(r.Vector()))
}

func TestCoefficientJSON(t *testing.T) {
	m := CorrelationMatrix{
		Variables: []string{"a", "b"},
		Values: [][]Coefficient{
			{1, Coefficient(math.NaN())},
			{Coefficient(math.NaN()), Coefficient(math.Inf(1))},
		},
	}
	b, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"variables":["a","b"],"values":[[1,null],[null,null]]}`, string(b))

	assert.True(t, Coefficient(0.5).Defined())
	assert.False(t, Coefficient(math.NaN()).Defined())
}

func TestCorrelationCells(t *testing.T) {
	m := CorrelationMatrix{
		Variables: []string{"temp", "cnt"},
		Values:    [][]Coefficient{{1, 0.6}, {0.6, 1}},
	}
	cells := m.Cells()
	require.Len(t, cells, 4)
	assert.Equal(t, HeatmapCell{Row: 0, Col: 1, RowLabel: "temp", ColLabel: "cnt", Intensity: 0.6}, cells[1])
	assert.Equal(t, Coefficient(0.6), m.At(1, 0))
}
