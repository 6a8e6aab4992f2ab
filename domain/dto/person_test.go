package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tps-admin/domain/models"
)

func TestPersonToRequestOmitsIDForNewPerson(t *testing.T) {
	person := models.Person{
		JMBG:        "1906977714551",
		Name:        "Marko",
		Surname:     "Markovic",
		Birthdate:   "1977-06-19",
		AgeInMonths: models.Some(569),
		HeightInCm:  models.Some(180),
		CityOfBirth: models.Some(int64(1)),
		Residence:   models.Some(int64(2)),
	}

	body, err := json.Marshal(PersonToRequest(person))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"jmbg": "1906977714551",
		"name": "Marko",
		"surname": "Markovic",
		"birthdate": "1977-06-19",
		"ageInMonths": 569,
		"heightInCm": 180,
		"cityOfBirth": 1,
		"residence": 2
	}`, string(body))
}

func TestPersonToRequestKeepsID(t *testing.T) {
	req := PersonToRequest(models.Person{ID: models.Some(int64(9))})
	require.NotNil(t, req.ID)
	assert.Equal(t, int64(9), *req.ID)
}

func TestErrorResponseCodeString(t *testing.T) {
	cases := map[string]string{
		`{"code":"TPS-409","message":"Duplicate"}`: "TPS-409",
		`{"code":409,"message":"Duplicate"}`:       "409",
		`{"message":"Duplicate"}`:                  "",
		`{"code":null,"message":"Duplicate"}`:      "",
	}
	for body, want := range cases {
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal([]byte(body), &resp))
		assert.Equal(t, want, resp.CodeString(), body)
		assert.Equal(t, "Duplicate", resp.Message)
	}
}

func TestPersonResponsesToRecords(t *testing.T) {
	raw := `[{"id":1,"jmbg":"1906977714551","name":"Marko","surname":"Markovic","birthdate":"1977-06-19",
		"ageInMonths":569,"heightInCm":187,
		"cityOfBirth":{"id":1,"name":"Beograd","ptt":11000,"regionCode":"71","citizens":1382000},
		"residence":{"id":2,"name":"Kragujevac","ptt":34000,"regionCode":"72","citizens":147786}}]`

	var resps []PersonResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &resps))

	records := PersonResponsesToRecords(resps)
	require.Len(t, records, 1)
	assert.Equal(t, "Beograd", records[0].CityOfBirth.Name)
	assert.Equal(t, "72", records[0].Residence.RegionCode)
	assert.Equal(t, int64(1382000), records[0].CityOfBirth.Citizens)
}
