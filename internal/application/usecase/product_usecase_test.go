package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EzerZuniga/gestion-comercial/internal/application/apptest"
	"github.com/EzerZuniga/gestion-comercial/internal/application/session"
	"github.com/EzerZuniga/gestion-comercial/internal/application/usecase"
	"github.com/EzerZuniga/gestion-comercial/internal/domain"
	"github.com/EzerZuniga/gestion-comercial/internal/domain/entity"
)

func newProductUC(t *testing.T) (*usecase.ProductUseCase, *apptest.Store) {
	t.Helper()
	st := apptest.NewStore()
	uc := usecase.NewProductUseCase(&apptest.ProductRepo{St: st}, &apptest.SupplierRepo{St: st})
	return uc, st
}

func adminSession(st *apptest.Store) *session.AppSession {
	u := st.AddUser(entity.User{Username: "admin", Role: entity.RoleAdmin, Active: true})
	return session.New(u)
}

func workerSession(st *apptest.Store) *session.AppSession {
	u := st.AddUser(entity.User{Username: "vendedor", Role: entity.RoleTrabajador, Active: true})
	return session.New(u)
}

func validProductInput() usecase.CreateProductInput {
	return usecase.CreateProductInput{
		Code: "P001", Name: "Arroz 1kg", Category: "Abarrotes",
		PurchasePrice: decimal.NewFromInt(900),
		SalePrice:     decimal.NewFromInt(1290),
		StockMin:      5, StockMax: 50,
	}
}

func TestProductCreate_IniciaConStockCero(t *testing.T) {
	uc, st := newProductUC(t)
	s := adminSession(st)

	p, err := uc.Create(context.Background(), s, validProductInput())
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.Equal(t, 0, p.Stock, "el stock inicial siempre es cero")
	assert.True(t, p.Active)
}

func TestProductCreate_Validaciones(t *testing.T) {
	uc, st := newProductUC(t)
	s := adminSession(st)

	mut := func(f func(*usecase.CreateProductInput)) usecase.CreateProductInput {
		in := validProductInput()
		f(&in)
		return in
	}
	cases := map[string]usecase.CreateProductInput{
		"sin código":             mut(func(in *usecase.CreateProductInput) { in.Code = "  " }),
		"sin nombre":             mut(func(in *usecase.CreateProductInput) { in.Name = "" }),
		"precio compra negativo": mut(func(in *usecase.CreateProductInput) { in.PurchasePrice = decimal.NewFromInt(-1) }),
		"venta menor que compra": mut(func(in *usecase.CreateProductInput) { in.SalePrice = decimal.NewFromInt(100) }),
		"mínimo sobre máximo":    mut(func(in *usecase.CreateProductInput) { in.StockMin = 60 }),
		"stock mínimo negativo":  mut(func(in *usecase.CreateProductInput) { in.StockMin = -1 }),
	}
	for name, in := range cases {
		_, err := uc.Create(context.Background(), s, in)
		var valErr *domain.ValidationError
		assert.ErrorAs(t, err, &valErr, "caso %q", name)
	}
	assert.Empty(t, st.Products)
}

func TestProductCreate_CodigoDuplicado(t *testing.T) {
	uc, st := newProductUC(t)
	s := adminSession(st)

	_, err := uc.Create(context.Background(), s, validProductInput())
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), s, validProductInput())
	var valErr *domain.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Message, "P001", "el error debe nombrar el código en conflicto")
	assert.Len(t, st.Products, 1)
}

func TestProductCreate_SoloAdmin(t *testing.T) {
	uc, st := newProductUC(t)
	s := workerSession(st)

	_, err := uc.Create(context.Background(), s, validProductInput())
	var authErr *domain.AuthorizationError
	assert.ErrorAs(t, err, &authErr)
}

func TestProductUpdate_Parcial(t *testing.T) {
	uc, st := newProductUC(t)
	s := adminSession(st)
	created, err := uc.Create(context.Background(), s, validProductInput())
	require.NoError(t, err)

	// Sin campos: rechazado
	_, err = uc.Update(context.Background(), s, created.ID, usecase.UpdateProductInput{})
	var valErr *domain.ValidationError
	assert.ErrorAs(t, err, &valErr)

	newName := "Arroz grado 1, 1kg"
	newSale := decimal.NewFromInt(1390)
	updated, err := uc.Update(context.Background(), s, created.ID, usecase.UpdateProductInput{
		Name: &newName, SalePrice: &newSale,
	})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)
	assert.True(t, updated.SalePrice.Equal(newSale))
	assert.Equal(t, "P001", updated.Code, "los campos no informados no cambian")

	// El invariante de precios también rige en actualizaciones parciales.
	badSale := decimal.NewFromInt(100)
	_, err = uc.Update(context.Background(), s, created.ID, usecase.UpdateProductInput{SalePrice: &badSale})
	assert.ErrorAs(t, err, &valErr)
}

func TestProductUpdate_ProveedorDebeExistirYEstarActivo(t *testing.T) {
	uc, st := newProductUC(t)
	s := adminSession(st)
	created, err := uc.Create(context.Background(), s, validProductInput())
	require.NoError(t, err)

	missing := int64(999)
	_, err = uc.Update(context.Background(), s, created.ID, usecase.UpdateProductInput{SupplierID: &missing})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	inactive := st.AddSupplier(entity.Supplier{Name: "Cerrado", RUT: "1-9", Active: false})
	_, err = uc.Update(context.Background(), s, created.ID, usecase.UpdateProductInput{SupplierID: &inactive.ID})
	var valErr *domain.ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestProductDeactivate_OcultaDeLosListados(t *testing.T) {
	uc, st := newProductUC(t)
	s := adminSession(st)
	created, err := uc.Create(context.Background(), s, validProductInput())
	require.NoError(t, err)

	require.NoError(t, uc.Deactivate(context.Background(), s, created.ID))

	list, err := uc.List(context.Background(), s, false)
	require.NoError(t, err)
	assert.Empty(t, list, "los inactivos no aparecen por defecto")

	all, err := uc.List(context.Background(), s, true)
	require.NoError(t, err)
	assert.Len(t, all, 1, "un admin puede pedir incluirlos")

	// Un trabajador no puede pedir inactivos: la opción se ignora.
	w := workerSession(st)
	listW, err := uc.List(context.Background(), w, true)
	require.NoError(t, err)
	assert.Empty(t, listW)
}

func TestProductSearch_PorCodigoNombreOCategoria(t *testing.T) {
	uc, st := newProductUC(t)
	s := adminSession(st)
	_, err := uc.Create(context.Background(), s, validProductInput())
	require.NoError(t, err)

	for _, q := range []string{"P001", "arroz", "Abarrotes"} {
		got, err := uc.Search(context.Background(), s, q)
		require.NoError(t, err)
		assert.Len(t, got, 1, "búsqueda %q", q)
	}
	got, err := uc.Search(context.Background(), s, "fideos")
	require.NoError(t, err)
	assert.Empty(t, got)
}
