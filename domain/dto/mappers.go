package dto

import (
	"tps-admin/domain/models"
)

func PersonResponseToRecord(resp *PersonResponse) models.PersonRecord {
	return models.PersonRecord{
		ID:          resp.ID,
		JMBG:        resp.JMBG,
		Name:        resp.Name,
		Surname:     resp.Surname,
		Birthdate:   resp.Birthdate,
		AgeInMonths: resp.AgeInMonths,
		HeightInCm:  resp.HeightInCm,
		CityOfBirth: resp.CityOfBirth,
		Residence:   resp.Residence,
	}
}

func PersonResponsesToRecords(resps []PersonResponse) []models.PersonRecord {
	records := make([]models.PersonRecord, len(resps))
	for i := range resps {
		records[i] = PersonResponseToRecord(&resps[i])
	}
	return records
}

// PersonToRequest builds the wire body. Unset numbers are sent as 0, the
// value the TPS API treats as missing; the validator keeps them from being
// submitted in practice.
func PersonToRequest(person models.Person) *PersonRequest {
	return &PersonRequest{
		ID:          person.ID.Ptr(),
		JMBG:        person.JMBG,
		Name:        person.Name,
		Surname:     person.Surname,
		Birthdate:   person.Birthdate,
		AgeInMonths: person.AgeInMonths.ValueOr(0),
		HeightInCm:  person.HeightInCm.ValueOr(0),
		CityOfBirth: person.CityOfBirth.ValueOr(0),
		Residence:   person.Residence.ValueOr(0),
	}
}

func ErrorResponseToAPIError(status int, resp *ErrorResponse) *models.APIError {
	return &models.APIError{
		Status:  status,
		Code:    resp.CodeString(),
		Message: resp.Message,
	}
}
