package services

import (
	"context"

	"tps-admin/domain/models"
)

// PersonAPI is the remote person resource.
type PersonAPI interface {
	ListPersons(ctx context.Context) ([]models.PersonRecord, error)
	GetPersonByJMBG(ctx context.Context, jmbg string) (*models.PersonRecord, error)
	CreatePerson(ctx context.Context, person models.Person) error
	// UpdatePerson updates by person.ID and fails with models.ErrMissingPersonID
	// when the id is unset.
	UpdatePerson(ctx context.Context, person models.Person) error
	DeletePerson(ctx context.Context, id int64) error
}

// CityAPI is the remote city reference resource.
type CityAPI interface {
	ListCities(ctx context.Context) ([]models.City, error)
}
