package apptest

import (
	"context"

	"github.com/EzerZuniga/gestion-comercial/internal/application/inventory"
	"github.com/EzerZuniga/gestion-comercial/internal/application/purchases"
	"github.com/EzerZuniga/gestion-comercial/internal/application/sales"
	"github.com/EzerZuniga/gestion-comercial/internal/domain/repository"
)

var (
	_ inventory.TxRunner = (*TxRunner)(nil)
	_ sales.TxRunner     = (*TxRunner)(nil)
	_ purchases.TxRunner = (*TxRunner)(nil)
)

// TxRunner simula las transacciones sobre el Store: toma una instantánea,
// ejecuta fn y restaura el estado si fn devuelve error. Así los tests pueden
// verificar que un flujo rechazado no deja rastro.
type TxRunner struct {
	St *Store
}

func (r *TxRunner) run(fn func() error) error {
	snap := r.St.snapshot()
	if err := fn(); err != nil {
		r.St.restore(snap)
		return err
	}
	return nil
}

func (r *TxRunner) Run(_ context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return r.run(func() error {
		return fn(&MovementRepo{St: r.St}, &ProductRepo{St: r.St})
	})
}

func (r *TxRunner) RunSale(_ context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	return r.run(func() error {
		return fn(&MovementRepo{St: r.St}, &ProductRepo{St: r.St}, &SaleRepo{St: r.St})
	})
}

func (r *TxRunner) RunPurchase(_ context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseRepository,
) error) error {
	return r.run(func() error {
		return fn(&MovementRepo{St: r.St}, &ProductRepo{St: r.St}, &PurchaseRepo{St: r.St})
	})
}
