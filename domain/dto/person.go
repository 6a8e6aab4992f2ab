package dto

import (
	"encoding/json"
	"strings"

	"tps-admin/domain/models"
)

// PersonResponse is a person as returned by the TPS API, cities nested.
type PersonResponse struct {
	ID          int64       `json:"id"`
	JMBG        string      `json:"jmbg"`
	Name        string      `json:"name"`
	Surname     string      `json:"surname"`
	Birthdate   string      `json:"birthdate"`
	AgeInMonths int         `json:"ageInMonths"`
	HeightInCm  int         `json:"heightInCm"`
	CityOfBirth models.City `json:"cityOfBirth"`
	Residence   models.City `json:"residence"`
}

// PersonRequest is the create/update body; cities are flat ids.
type PersonRequest struct {
	ID          *int64 `json:"id,omitempty"`
	JMBG        string `json:"jmbg"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Birthdate   string `json:"birthdate"`
	AgeInMonths int    `json:"ageInMonths"`
	HeightInCm  int    `json:"heightInCm"`
	CityOfBirth int64  `json:"cityOfBirth"`
	Residence   int64  `json:"residence"`
}

// ErrorResponse is the TPS API error body. Code is kept raw because the
// service sends either a string or a number.
type ErrorResponse struct {
	Code    json.RawMessage `json:"code"`
	Message string          `json:"message"`
}

// CodeString renders Code without JSON quoting.
func (e ErrorResponse) CodeString() string {
	raw := strings.TrimSpace(string(e.Code))
	if raw == "" || raw == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(e.Code, &s); err == nil {
		return s
	}
	return raw
}
