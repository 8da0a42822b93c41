package sales_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EzerZuniga/gestion-comercial/internal/application/apptest"
	"github.com/EzerZuniga/gestion-comercial/internal/application/sales"
	"github.com/EzerZuniga/gestion-comercial/internal/application/session"
	"github.com/EzerZuniga/gestion-comercial/internal/domain"
	"github.com/EzerZuniga/gestion-comercial/internal/domain/entity"
	"github.com/EzerZuniga/gestion-comercial/pkg/logger"
)

var iva19 = decimal.RequireFromString("0.19")

func newSaleUC(t *testing.T) (*sales.CreateSaleUseCase, *apptest.Store) {
	t.Helper()
	st := apptest.NewStore()
	uc := sales.NewCreateSaleUseCase(
		&apptest.TxRunner{St: st},
		&apptest.SaleRepo{St: st},
		iva19,
		logger.Nop(),
	)
	return uc, st
}

func sellerSession(st *apptest.Store) *session.AppSession {
	u := st.AddUser(entity.User{Username: "vendedor", Role: entity.RoleTrabajador, Active: true})
	return session.New(u)
}

func seedProduct(st *apptest.Store, code string, price int64, stock int) *entity.Product {
	return st.AddProduct(entity.Product{
		Code: code, Name: "Producto " + code,
		PurchasePrice: decimal.NewFromInt(price / 2),
		SalePrice:     decimal.NewFromInt(price),
		Stock:         stock, StockMin: 1, StockMax: 100,
		Active: true,
	})
}

func TestCreate_VentaCompleta(t *testing.T) {
	uc, st := newSaleUC(t)
	s := sellerSession(st)
	p1 := seedProduct(st, "P001", 1000, 10)
	p2 := seedProduct(st, "P002", 500, 10)

	sale, err := uc.Create(context.Background(), s, sales.SaleInput{
		CustomerName: "Juan Pérez",
		Items: []sales.SaleItemInput{
			{ProductID: p1.ID, Quantity: 2},
			{ProductID: p2.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.True(t, sale.Subtotal.Equal(decimal.NewFromInt(2500)), "subtotal: %s", sale.Subtotal)
	assert.True(t, sale.IVA.Equal(decimal.NewFromInt(475)), "iva: %s", sale.IVA)
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(2975)), "total: %s", sale.Total)

	assert.Equal(t, 8, st.Products[p1.ID].Stock)
	assert.Equal(t, 9, st.Products[p2.ID].Stock)
	require.Len(t, st.Movements, 2, "una salida por línea")
	for _, m := range st.Movements {
		assert.Equal(t, entity.MovementOut, m.Kind)
		require.NotNil(t, m.RefID)
		assert.Equal(t, sale.ID, *m.RefID)
		require.NotNil(t, m.RefKind)
		assert.Equal(t, entity.RefSale, *m.RefKind)
	}
	require.Len(t, st.SaleDetails, 2)
}

// Líneas repetidas del mismo producto se consolidan sumando cantidades y
// conservando el orden de primera aparición.
func TestCreate_ConsolidaLineasRepetidas(t *testing.T) {
	uc, st := newSaleUC(t)
	s := sellerSession(st)
	p1 := seedProduct(st, "P001", 100, 50)
	p2 := seedProduct(st, "P002", 200, 50)

	sale, err := uc.Create(context.Background(), s, sales.SaleInput{
		Items: []sales.SaleItemInput{
			{ProductID: p1.ID, Quantity: 2},
			{ProductID: p2.ID, Quantity: 1},
			{ProductID: p1.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)

	require.Len(t, sale.Details, 2)
	assert.Equal(t, p1.ID, sale.Details[0].ProductID, "conserva el orden de primera aparición")
	assert.Equal(t, 5, sale.Details[0].Quantity, "2 + 3 consolidado")
	assert.Equal(t, p2.ID, sale.Details[1].ProductID)

	assert.True(t, sale.Subtotal.Equal(decimal.NewFromInt(700)))
	assert.True(t, sale.IVA.Equal(decimal.NewFromInt(133)))
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(833)))
	assert.Equal(t, 45, st.Products[p1.ID].Stock)
}

func TestCreate_NumeroDeBoletaSecuencialPorDia(t *testing.T) {
	uc, st := newSaleUC(t)
	s := sellerSession(st)
	p := seedProduct(st, "P001", 100, 50)

	today := time.Now().Format("20060102")
	for i := 1; i <= 3; i++ {
		sale, err := uc.Create(context.Background(), s, sales.SaleInput{
			Items: []sales.SaleItemInput{{ProductID: p.ID, Quantity: 1}},
		})
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("B-%s-%04d", today, i), sale.DocNumber)
	}
}

// Una venta rechazada por stock insuficiente no deja cabecera, líneas ni
// movimientos, y no descuenta stock de ninguna línea ya procesada.
func TestCreate_RechazoPorStockNoDejaRastro(t *testing.T) {
	uc, st := newSaleUC(t)
	s := sellerSession(st)
	p1 := seedProduct(st, "P001", 100, 50)
	p2 := seedProduct(st, "P002", 200, 1)

	_, err := uc.Create(context.Background(), s, sales.SaleInput{
		Items: []sales.SaleItemInput{
			{ProductID: p1.ID, Quantity: 2}, // esta línea sí tiene stock
			{ProductID: p2.ID, Quantity: 5}, // esta no
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 50, st.Products[p1.ID].Stock, "la línea válida también debe revertirse")
	assert.Equal(t, 1, st.Products[p2.ID].Stock)
	assert.Empty(t, st.Sales)
	assert.Empty(t, st.SaleDetails)
	assert.Empty(t, st.Movements)
}

func TestCreate_ValidaCarrito(t *testing.T) {
	uc, st := newSaleUC(t)
	s := sellerSession(st)
	p := seedProduct(st, "P001", 100, 50)

	cases := []sales.SaleInput{
		{},
		{Items: []sales.SaleItemInput{{ProductID: p.ID, Quantity: 0}}},
		{Items: []sales.SaleItemInput{{ProductID: p.ID, Quantity: -1}}},
		{Items: []sales.SaleItemInput{{ProductID: 0, Quantity: 1}}},
		{CustomerRUT: "12345678-0", Items: []sales.SaleItemInput{{ProductID: p.ID, Quantity: 1}}},
	}
	for _, in := range cases {
		_, err := uc.Create(context.Background(), s, in)
		var valErr *domain.ValidationError
		assert.ErrorAs(t, err, &valErr, "input %+v debe rechazarse", in)
	}
	assert.Empty(t, st.Sales)
}

func TestCreate_PrecioExplicitoReemplazaElDeCatalogo(t *testing.T) {
	uc, st := newSaleUC(t)
	s := sellerSession(st)
	p := seedProduct(st, "P001", 1000, 10)

	oferta := decimal.NewFromInt(800)
	sale, err := uc.Create(context.Background(), s, sales.SaleInput{
		Items: []sales.SaleItemInput{{ProductID: p.ID, Quantity: 1, UnitPrice: &oferta}},
	})
	require.NoError(t, err)
	assert.True(t, sale.Subtotal.Equal(oferta))
}

func TestCreate_SinPermisoDeVentas(t *testing.T) {
	uc, st := newSaleUC(t)
	p := seedProduct(st, "P001", 100, 50)

	_, err := uc.Create(context.Background(), nil, sales.SaleInput{
		Items: []sales.SaleItemInput{{ProductID: p.ID, Quantity: 1}},
	})
	var authErr *domain.AuthorizationError
	assert.ErrorAs(t, err, &authErr)
}

func TestGetByID_CargaLasLineas(t *testing.T) {
	uc, st := newSaleUC(t)
	s := sellerSession(st)
	p := seedProduct(st, "P001", 100, 50)

	created, err := uc.Create(context.Background(), s, sales.SaleInput{
		Items: []sales.SaleItemInput{{ProductID: p.ID, Quantity: 3}},
	})
	require.NoError(t, err)

	got, err := uc.GetByID(context.Background(), s, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Details, 1)
	assert.Equal(t, 3, got.Details[0].Quantity)

	_, err = uc.GetByID(context.Background(), s, 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
