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

func newSupplierUC(t *testing.T) (*usecase.SupplierUseCase, *apptest.Store) {
	t.Helper()
	st := apptest.NewStore()
	return usecase.NewSupplierUseCase(&apptest.SupplierRepo{St: st}), st
}

func validSupplierInput() usecase.CreateSupplierInput {
	return usecase.CreateSupplierInput{
		Name: "Distribuidora Central", RUT: "12.345.678-5",
		Email: "ventas@central.cl", MainProduct: "Abarrotes",
	}
}

func TestSupplierCreate_Valido(t *testing.T) {
	uc, st := newSupplierUC(t)
	s := adminSession(st)

	sup, err := uc.Create(context.Background(), s, validSupplierInput())
	require.NoError(t, err)
	assert.NotZero(t, sup.ID)
	assert.True(t, sup.Active)
}

func TestSupplierCreate_RUTInvalido(t *testing.T) {
	uc, st := newSupplierUC(t)
	s := adminSession(st)

	in := validSupplierInput()
	in.RUT = "12.345.678-9" // dígito verificador incorrecto
	_, err := uc.Create(context.Background(), s, in)
	var valErr *domain.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Empty(t, st.Suppliers)
}

// Registrar dos proveedores con el mismo RUT debe fallar en el segundo con
// un error de validación, antes de llegar al INSERT.
func TestSupplierCreate_RUTDuplicado(t *testing.T) {
	uc, st := newSupplierUC(t)
	s := adminSession(st)

	_, err := uc.Create(context.Background(), s, validSupplierInput())
	require.NoError(t, err)

	dup := validSupplierInput()
	dup.Name = "Otra Distribuidora"
	_, err = uc.Create(context.Background(), s, dup)
	var valErr *domain.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Message, "12.345.678-5")
	assert.Len(t, st.Suppliers, 1)
}

func TestSupplierCreate_EmailInvalido(t *testing.T) {
	uc, st := newSupplierUC(t)
	s := adminSession(st)

	in := validSupplierInput()
	in.Email = "no-es-email"
	_, err := uc.Create(context.Background(), s, in)
	var valErr *domain.ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestSupplierUpdate_CambioDeRUTValidado(t *testing.T) {
	uc, st := newSupplierUC(t)
	s := adminSession(st)
	created, err := uc.Create(context.Background(), s, validSupplierInput())
	require.NoError(t, err)

	bad := "11.111.111-2"
	_, err = uc.Update(context.Background(), s, created.ID, usecase.UpdateSupplierInput{RUT: &bad})
	var valErr *domain.ValidationError
	assert.ErrorAs(t, err, &valErr)

	good := "11.111.111-1"
	updated, err := uc.Update(context.Background(), s, created.ID, usecase.UpdateSupplierInput{RUT: &good})
	require.NoError(t, err)
	assert.Equal(t, good, updated.RUT)
}

func TestSupplierDeactivate_BajaLogica(t *testing.T) {
	uc, st := newSupplierUC(t)
	s := adminSession(st)
	created, err := uc.Create(context.Background(), s, validSupplierInput())
	require.NoError(t, err)

	require.NoError(t, uc.Deactivate(context.Background(), s, created.ID))
	assert.False(t, st.Suppliers[created.ID].Active, "la fila sigue existiendo, inactiva")

	list, err := uc.List(context.Background(), s, false)
	require.NoError(t, err)
	assert.Empty(t, list)
}
