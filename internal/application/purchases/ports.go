package purchases

import (
	"context"

	"github.com/EzerZuniga/gestion-comercial/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios del flujo de compra atados a esa tx. La cabecera, las líneas
// y los movimientos de inventario se confirman o descartan juntos.
type TxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
	) error) error
}
