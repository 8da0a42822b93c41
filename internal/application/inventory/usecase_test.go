package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EzerZuniga/gestion-comercial/internal/application/apptest"
	"github.com/EzerZuniga/gestion-comercial/internal/application/inventory"
	"github.com/EzerZuniga/gestion-comercial/internal/application/session"
	"github.com/EzerZuniga/gestion-comercial/internal/domain"
	"github.com/EzerZuniga/gestion-comercial/internal/domain/entity"
	"github.com/EzerZuniga/gestion-comercial/pkg/logger"
)

func newLedger(t *testing.T) (*inventory.LedgerUseCase, *apptest.Store) {
	t.Helper()
	st := apptest.NewStore()
	uc := inventory.NewLedgerUseCase(
		&apptest.TxRunner{St: st},
		&apptest.MovementRepo{St: st},
		logger.Nop(),
	)
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

func seedProduct(st *apptest.Store, stock int) *entity.Product {
	return st.AddProduct(entity.Product{
		Code: "P001", Name: "Arroz 1kg",
		PurchasePrice: decimal.NewFromInt(900),
		SalePrice:     decimal.NewFromInt(1290),
		Stock:         stock, StockMin: 5, StockMax: 50,
		Active: true,
	})
}

func TestApplyMovement_EntradaActualizaStock(t *testing.T) {
	uc, st := newLedger(t)
	s := adminSession(st)
	p := seedProduct(st, 10)

	mov, err := uc.ApplyMovement(context.Background(), s, inventory.MovementInput{
		ProductID: p.ID, Kind: entity.MovementIn, Quantity: 7, Reason: "reposición",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.MovementIn, mov.Kind)
	assert.Equal(t, 10, mov.StockBefore, "debe capturar el stock previo")
	assert.Equal(t, 17, mov.StockAfter, "debe capturar el stock resultante")
	assert.Equal(t, 17, st.Products[p.ID].Stock, "el producto debe quedar con el stock nuevo")
	require.Len(t, st.Movements, 1)
}

func TestApplyMovement_SalidaDescuentaStock(t *testing.T) {
	uc, st := newLedger(t)
	s := adminSession(st)
	p := seedProduct(st, 10)

	mov, err := uc.ApplyMovement(context.Background(), s, inventory.MovementInput{
		ProductID: p.ID, Kind: entity.MovementOut, Quantity: 4, Reason: "merma",
	})
	require.NoError(t, err)

	assert.Equal(t, 10, mov.StockBefore)
	assert.Equal(t, 6, mov.StockAfter)
	assert.Equal(t, 6, st.Products[p.ID].Stock)
}

// Los movimientos sucesivos deben encadenar stock anterior/nuevo sin huecos.
func TestApplyMovement_EncadenaStockAnteriorYNuevo(t *testing.T) {
	uc, st := newLedger(t)
	s := adminSession(st)
	p := seedProduct(st, 0)

	steps := []struct {
		kind string
		qty  int
	}{
		{entity.MovementIn, 20},
		{entity.MovementOut, 5},
		{entity.MovementIn, 3},
		{entity.MovementOut, 8},
	}
	for _, step := range steps {
		_, err := uc.ApplyMovement(context.Background(), s, inventory.MovementInput{
			ProductID: p.ID, Kind: step.kind, Quantity: step.qty,
		})
		require.NoError(t, err)
	}

	require.Len(t, st.Movements, len(steps))
	prev := 0
	for _, m := range st.Movements {
		assert.Equal(t, prev, m.StockBefore, "cada movimiento parte del stock que dejó el anterior")
		prev = m.StockAfter
	}
	assert.Equal(t, 10, st.Products[p.ID].Stock)
}

func TestApplyMovement_SalidaSinStockSuficiente(t *testing.T) {
	uc, st := newLedger(t)
	s := adminSession(st)
	p := seedProduct(st, 3)

	_, err := uc.ApplyMovement(context.Background(), s, inventory.MovementInput{
		ProductID: p.ID, Kind: entity.MovementOut, Quantity: 5,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Arroz 1kg", stockErr.ProductName, "el error debe nombrar el producto")
	assert.Equal(t, 3, stockErr.Available)
	assert.Equal(t, 5, stockErr.Requested)

	assert.Equal(t, 3, st.Products[p.ID].Stock, "el stock no debe cambiar")
	assert.Empty(t, st.Movements, "no debe quedar ningún movimiento")
}

func TestApplyMovement_RequiereAdmin(t *testing.T) {
	uc, st := newLedger(t)
	s := workerSession(st)
	p := seedProduct(st, 10)

	_, err := uc.ApplyMovement(context.Background(), s, inventory.MovementInput{
		ProductID: p.ID, Kind: entity.MovementIn, Quantity: 1,
	})
	var authErr *domain.AuthorizationError
	assert.ErrorAs(t, err, &authErr)
}

func TestApplyMovement_ValidaCantidadYTipo(t *testing.T) {
	uc, st := newLedger(t)
	s := adminSession(st)
	p := seedProduct(st, 10)

	cases := []inventory.MovementInput{
		{ProductID: p.ID, Kind: entity.MovementIn, Quantity: 0},
		{ProductID: p.ID, Kind: entity.MovementIn, Quantity: -2},
		{ProductID: p.ID, Kind: "traspaso", Quantity: 1},
		{ProductID: p.ID, Kind: entity.MovementAdjust, Quantity: 1}, // ajuste solo vía SetStock
	}
	for _, in := range cases {
		_, err := uc.ApplyMovement(context.Background(), s, in)
		var valErr *domain.ValidationError
		assert.ErrorAs(t, err, &valErr, "input %+v debe rechazarse", in)
	}
}

func TestApplyMovement_ProductoInexistenteOInactivo(t *testing.T) {
	uc, st := newLedger(t)
	s := adminSession(st)

	_, err := uc.ApplyMovement(context.Background(), s, inventory.MovementInput{
		ProductID: 999, Kind: entity.MovementIn, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	p := seedProduct(st, 10)
	st.Products[p.ID].Active = false
	_, err = uc.ApplyMovement(context.Background(), s, inventory.MovementInput{
		ProductID: p.ID, Kind: entity.MovementIn, Quantity: 1,
	})
	var valErr *domain.ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestSetStock_RegistraAjuste(t *testing.T) {
	uc, st := newLedger(t)
	s := adminSession(st)
	p := seedProduct(st, 12)

	mov, err := uc.SetStock(context.Background(), s, p.ID, 4, "conteo físico")
	require.NoError(t, err)
	require.NotNil(t, mov)

	assert.Equal(t, entity.MovementAdjust, mov.Kind)
	assert.Equal(t, 8, mov.Quantity, "la cantidad es la diferencia absoluta")
	assert.Equal(t, 12, mov.StockBefore)
	assert.Equal(t, 4, mov.StockAfter)
	assert.Equal(t, "conteo físico", mov.Reason)
	assert.Equal(t, 4, st.Products[p.ID].Stock)
}

func TestSetStock_SinCambioNoRegistraNada(t *testing.T) {
	uc, st := newLedger(t)
	s := adminSession(st)
	p := seedProduct(st, 12)

	mov, err := uc.SetStock(context.Background(), s, p.ID, 12, "conteo físico")
	require.NoError(t, err)
	assert.Nil(t, mov, "sin diferencia no hay movimiento")
	assert.Empty(t, st.Movements)
}

func TestSetStock_RechazaNegativo(t *testing.T) {
	uc, st := newLedger(t)
	s := adminSession(st)
	p := seedProduct(st, 12)

	_, err := uc.SetStock(context.Background(), s, p.ID, -1, "")
	var valErr *domain.ValidationError
	assert.ErrorAs(t, err, &valErr)
	assert.Equal(t, 12, st.Products[p.ID].Stock)
}

func TestHistory_DevuelveMovimientosDelProducto(t *testing.T) {
	uc, st := newLedger(t)
	s := adminSession(st)
	p := seedProduct(st, 0)
	other := st.AddProduct(entity.Product{Code: "P002", Name: "Azúcar", Active: true})

	for i := 0; i < 3; i++ {
		_, err := uc.ApplyMovement(context.Background(), s, inventory.MovementInput{
			ProductID: p.ID, Kind: entity.MovementIn, Quantity: 1,
		})
		require.NoError(t, err)
	}
	_, err := uc.ApplyMovement(context.Background(), s, inventory.MovementInput{
		ProductID: other.ID, Kind: entity.MovementIn, Quantity: 1,
	})
	require.NoError(t, err)

	movs, err := uc.History(context.Background(), s, p.ID, 10)
	require.NoError(t, err)
	require.Len(t, movs, 3)
	assert.Equal(t, 3, movs[0].StockAfter, "más reciente primero")

	// El trabajador puede consultar (permiso consulta).
	w := workerSession(st)
	_, err = uc.History(context.Background(), w, p.ID, 10)
	assert.NoError(t, err)
}
