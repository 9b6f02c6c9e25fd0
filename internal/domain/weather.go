package domain

// WeatherFactors holds the normalized environmental covariates of a day
type WeatherFactors struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"atemp"`
	Humidity  float64 `json:"hum"`
	Windspeed float64 `json:"windspeed"`
}

// WeatherVariables lists the correlation matrix variables in display order
var WeatherVariables = []string{"temp", "atemp", "hum", "windspeed", "cnt"}

// Vector returns the correlation variables of a record in WeatherVariables order
func (r DailyRentalRecord) Vector() []float64 {
	return []float64{
		r.Weather.Temp,
		r.Weather.FeelsLike,
		r.Weather.Humidity,
		r.Weather.Windspeed,
		float64(r.Total),
	}
}
