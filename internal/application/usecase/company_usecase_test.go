package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EzerZuniga/gestion-comercial/internal/application/apptest"
	"github.com/EzerZuniga/gestion-comercial/internal/application/usecase"
	"github.com/EzerZuniga/gestion-comercial/internal/domain"
)

func newCompanyUC(t *testing.T) (*usecase.CompanyUseCase, *apptest.Store) {
	t.Helper()
	st := apptest.NewStore()
	return usecase.NewCompanyUseCase(&apptest.CompanyRepo{St: st}), st
}

func TestCompanySave_CreaYActualiza(t *testing.T) {
	uc, st := newCompanyUC(t)
	s := adminSession(st)

	got, err := uc.Get(context.Background(), s)
	require.NoError(t, err)
	assert.Nil(t, got, "sin perfil registrado devuelve nil")

	created, err := uc.Save(context.Background(), s, usecase.CompanyInput{
		Name: "Almacén Doña Rosa", RUT: "76.123.456-0",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	updated, err := uc.Save(context.Background(), s, usecase.CompanyInput{
		Name: "Almacén Doña Rosa SpA", RUT: "76.123.456-0", Phone: "+56 9 1234 5678",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID, "sigue siendo la misma fila")
	assert.Equal(t, "Almacén Doña Rosa SpA", updated.Name)
}

func TestCompanySave_Validaciones(t *testing.T) {
	uc, st := newCompanyUC(t)
	s := adminSession(st)

	_, err := uc.Save(context.Background(), s, usecase.CompanyInput{Name: " "})
	var valErr *domain.ValidationError
	assert.ErrorAs(t, err, &valErr)

	_, err = uc.Save(context.Background(), s, usecase.CompanyInput{Name: "X", RUT: "1-2"})
	assert.ErrorAs(t, err, &valErr, "RUT con dígito verificador incorrecto")

	w := workerSession(st)
	_, err = uc.Save(context.Background(), w, usecase.CompanyInput{Name: "X"})
	var authErr *domain.AuthorizationError
	assert.ErrorAs(t, err, &authErr)
}
