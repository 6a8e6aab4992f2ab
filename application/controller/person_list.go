package controller

import (
	"context"

	"tps-admin/domain/models"
	"tps-admin/domain/navigation"
	"tps-admin/domain/services"
	"tps-admin/pkg/i18n"
	"tps-admin/pkg/logger"
)

// PersonList shows every person and starts the add, edit and delete flows.
type PersonList struct {
	persons    services.PersonAPI
	translator *i18n.Translator
	rows       []models.PersonRecord
}

func NewPersonList(persons services.PersonAPI, translator *i18n.Translator) *PersonList {
	return &PersonList{
		persons:    persons,
		translator: translator,
	}
}

// Mount fetches the list once. A failure is logged and the list stays empty.
func (l *PersonList) Mount(ctx context.Context) {
	rows, err := l.persons.ListPersons(ctx)
	if err != nil {
		logger.Error(logger.CategoryList, "load_persons_failed", "There was an error fetching persons", err, nil)
		return
	}
	l.rows = rows
}

// Rows is the local copy of the list in server order.
func (l *PersonList) Rows() []models.PersonRecord {
	return l.rows
}

// Row finds a row by internal id.
func (l *PersonList) Row(id int64) (models.PersonRecord, bool) {
	for _, row := range l.rows {
		if row.ID == id {
			return row, true
		}
	}
	return models.PersonRecord{}, false
}

func (l *PersonList) UpdatePerson(nav navigation.Navigator, jmbg string) {
	nav.Navigate(navigation.EditPath(jmbg))
}

func (l *PersonList) AddPerson(nav navigation.Navigator) {
	nav.Navigate(navigation.AddPath)
}

// DeletePerson asks confirm first and deletes on the server only when
// confirmed. The row is dropped locally once the server accepts; a failed
// delete is logged and the row stays.
func (l *PersonList) DeletePerson(ctx context.Context, id int64, confirm navigation.Confirmer) {
	if !confirm.Confirm(ctx, l.translator.T(i18n.MsgConfirmDelete)) {
		return
	}

	if err := l.persons.DeletePerson(ctx, id); err != nil {
		logger.Error(logger.CategoryList, "delete_person_failed", "There was an error deleting the person", err, map[string]interface{}{
			"id": id,
		})
		return
	}

	kept := make([]models.PersonRecord, 0, len(l.rows))
	for _, row := range l.rows {
		if row.ID != id {
			kept = append(kept, row)
		}
	}
	l.rows = kept
}
