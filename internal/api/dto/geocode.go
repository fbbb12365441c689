package dto

// GeocodeResponse is empty ({}) when nothing matched.
type GeocodeResponse struct {
	Lat *float64 `json:"lat,omitempty"`
	Lon *float64 `json:"lon,omitempty"`
}

type ReverseGeocodeResponse struct {
	Address string `json:"address"`
}
