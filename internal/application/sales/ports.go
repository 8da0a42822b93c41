package sales

import (
	"context"

	"github.com/EzerZuniga/gestion-comercial/internal/domain/entity"
	"github.com/EzerZuniga/gestion-comercial/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios del flujo de venta atados a esa tx. La cabecera, las líneas
// y los movimientos de inventario se confirman o descartan juntos.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// ReceiptPDFGenerator genera el comprobante en PDF de una venta confirmada.
type ReceiptPDFGenerator interface {
	Generate(sale *entity.Sale, products map[int64]*entity.Product, company *entity.Company) ([]byte, error)
}
