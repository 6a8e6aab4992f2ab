package models

// City is read-only reference data loaded from the TPS API.
type City struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	PTT        int    `json:"ptt"`
	RegionCode string `json:"regionCode"`
	Citizens   int64  `json:"citizens"`
}
