package model

// Profile identifies a household consumption profile. The values are stable;
// they appear in dataset file names consumed by the front end.
type Profile string

const (
	ProfileBasis      Profile = "basis" // standard household, ~3.5 MWh/year
	ProfileHeatPump   Profile = "wp"    // + heat pump, ~+3 MWh/year
	ProfileEV         Profile = "ev"    // + electric vehicle, ~+3 MWh/year
	ProfileHeatPumpEV Profile = "wp_ev" // + both
)

// Profiles returns all household profiles in generation order.
func Profiles() []Profile {
	return []Profile{ProfileBasis, ProfileHeatPump, ProfileEV, ProfileHeatPumpEV}
}

// HasHeatPump reports whether the profile includes heat-pump load.
func (p Profile) HasHeatPump() bool {
	return p == ProfileHeatPump || p == ProfileHeatPumpEV
}

// HasEV reports whether the profile includes EV charging load.
func (p Profile) HasEV() bool {
	return p == ProfileEV || p == ProfileHeatPumpEV
}

// EnergyPoint is one hourly energy value in a synthetic dataset.
type EnergyPoint struct {
	Timestamp string  `json:"timestamp"` // ISO-8601 local, no zone suffix
	KWh       float64 `json:"kwh"`       // 3 decimals
}

// ConsumptionSeries is the synthetic household consumption artifact.
type ConsumptionSeries struct {
	Year        int           `json:"year"`
	Count       int           `json:"count"`
	Consumption []EnergyPoint `json:"consumption"`
}

// SolarSeries is the synthetic solar generation artifact for one system size.
type SolarSeries struct {
	Year  int           `json:"year"`
	Count int           `json:"count"`
	Solar []EnergyPoint `json:"solar"`
}
