package memory

import (
	"math"
	"math/rand"
	"time"

	"github.com/bikeshare/dashboard/internal/domain"
	"github.com/bikeshare/dashboard/pkg/utils"
)

// SampleRecords generates days of synthetic rentals starting at start.
// The same seed always yields the same records.
func SampleRecords(start time.Time, days int, seed int64) []domain.DailyRentalRecord {
	rng := rand.New(rand.NewSource(seed))
	records := make([]domain.DailyRentalRecord, 0, days)

	for i := 0; i < days; i++ {
		date := domain.Day(start).AddDate(0, 0, i)
		season := seasonOf(date)
		weather := sampleWeather(rng, season)

		registered := int(registeredDemand(date.Weekday(), weather) * (0.9 + rng.Float64()*0.2))
		casual := int(casualDemand(date.Weekday(), weather) * (0.8 + rng.Float64()*0.4))

		records = append(records, domain.DailyRentalRecord{
			Date:       date,
			Season:     season,
			Weekday:    int(date.Weekday()),
			Weather:    weather,
			Registered: registered,
			Casual:     casual,
			Total:      registered + casual,
		})
	}
	return records
}

// seasonOf follows the dataset's astronomical seasons
func seasonOf(date time.Time) domain.Season {
	md := int(date.Month())*100 + date.Day()
	switch {
	case md >= 321 && md < 621:
		return domain.Summer
	case md >= 621 && md < 923:
		return domain.Fall
	case md >= 923 && md < 1221:
		return domain.Winter
	default:
		return domain.Spring
	}
}

func sampleWeather(rng *rand.Rand, season domain.Season) domain.WeatherFactors {
	var base float64
	switch season {
	case domain.Spring:
		base = 0.30
	case domain.Summer:
		base = 0.55
	case domain.Fall:
		base = 0.70
	default:
		base = 0.45
	}

	temp := utils.Clamp(base+(rng.Float64()-0.5)*0.2, 0, 1)
	return domain.WeatherFactors{
		Temp:      utils.RoundTo(temp, 6),
		FeelsLike: utils.RoundTo(utils.Clamp(temp*0.92+rng.Float64()*0.04, 0, 1), 6),
		Humidity:  utils.RoundTo(utils.Clamp(0.45+rng.Float64()*0.4, 0, 1), 6),
		Windspeed: utils.RoundTo(0.05+rng.Float64()*0.35, 6),
	}
}

// registeredDemand peaks on working days and in mild weather
func registeredDemand(weekday time.Weekday, w domain.WeatherFactors) float64 {
	base := 3600.0
	if weekday == time.Saturday || weekday == time.Sunday {
		base = 2700
	}
	return base * comfort(w)
}

// casualDemand peaks on weekends
func casualDemand(weekday time.Weekday, w domain.WeatherFactors) float64 {
	base := 500.0
	if weekday == time.Saturday || weekday == time.Sunday {
		base = 1500
	}
	return base * comfort(w)
}

func comfort(w domain.WeatherFactors) float64 {
	// demand falls off away from a normalized temperature of 0.65
	tempFactor := 1 - math.Abs(w.Temp-0.65)
	windFactor := utils.Lerp(1, 0.6, utils.Clamp(w.Windspeed/0.5, 0, 1))
	return math.Max(0.1, tempFactor*windFactor)
}
