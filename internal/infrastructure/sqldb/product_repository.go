package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/EzerZuniga/gestion-comercial/internal/domain"
	"github.com/EzerZuniga/gestion-comercial/internal/domain/entity"
	"github.com/EzerZuniga/gestion-comercial/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, codigo, nombre, descripcion, categoria, precio_compra,
	precio_venta, stock_actual, stock_minimo, stock_maximo, proveedor_id, activo, created_at`

// ProductRepo implementación del puerto ProductRepository. Pasar pool o tx.
type ProductRepo struct {
	q sqlx.ExtContext
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(q sqlx.ExtContext) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto y devuelve el ID asignado.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) (int64, error) {
	query := `
		INSERT INTO productos (codigo, nombre, descripcion, categoria, precio_compra,
			precio_venta, stock_actual, stock_minimo, stock_maximo, proveedor_id, activo, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.q.ExecContext(ctx, query,
		p.Code, p.Name, p.Description, p.Category, p.PurchasePrice,
		p.SalePrice, p.Stock, p.StockMin, p.StockMax, p.SupplierID, p.Active, p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.NewValidationError("ya existe un producto con código %s", p.Code)
		}
		return 0, fmt.Errorf("insert producto: %w", err)
	}
	return res.LastInsertId()
}

// GetByID obtiene un producto por ID, o (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	var p entity.Product
	err := sqlx.GetContext(ctx, r.q, &p,
		"SELECT "+productColumns+" FROM productos WHERE id = ?", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return &p, nil
}

// GetByCode obtiene un producto por código, o (nil, nil) si no existe.
func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	var p entity.Product
	err := sqlx.GetContext(ctx, r.q, &p,
		"SELECT "+productColumns+" FROM productos WHERE codigo = ?", code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto por código: %w", err)
	}
	return &p, nil
}

// List devuelve los productos ordenados por nombre. Por defecto solo activos.
func (r *ProductRepo) List(ctx context.Context, includeInactive bool) ([]*entity.Product, error) {
	query := "SELECT " + productColumns + " FROM productos"
	if !includeInactive {
		query += " WHERE activo = 1"
	}
	query += " ORDER BY nombre"
	var out []*entity.Product
	if err := sqlx.SelectContext(ctx, r.q, &out, query); err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	return out, nil
}

// Search busca productos activos por subcadena en código, nombre o categoría.
func (r *ProductRepo) Search(ctx context.Context, text string) ([]*entity.Product, error) {
	pattern := "%" + text + "%"
	query := "SELECT " + productColumns + ` FROM productos
		WHERE activo = 1 AND (codigo LIKE ? OR nombre LIKE ? OR categoria LIKE ?)
		ORDER BY nombre`
	var out []*entity.Product
	if err := sqlx.SelectContext(ctx, r.q, &out, query, pattern, pattern, pattern); err != nil {
		return nil, fmt.Errorf("search productos: %w", err)
	}
	return out, nil
}

// Update actualiza los datos de catálogo del producto. No toca stock_actual:
// el stock solo cambia a través del ledger (UpdateStock).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE productos SET codigo = ?, nombre = ?, descripcion = ?, categoria = ?,
			precio_compra = ?, precio_venta = ?, stock_minimo = ?, stock_maximo = ?,
			proveedor_id = ?, activo = ?
		WHERE id = ?`
	res, err := r.q.ExecContext(ctx, query,
		p.Code, p.Name, p.Description, p.Category,
		p.PurchasePrice, p.SalePrice, p.StockMin, p.StockMax,
		p.SupplierID, p.Active, p.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewValidationError("ya existe un producto con código %s", p.Code)
		}
		return fmt.Errorf("update producto: %w", err)
	}
	return requireRow(res, "producto", p.ID)
}

// UpdateStock fija el stock actual. De uso exclusivo del ledger de inventario.
func (r *ProductRepo) UpdateStock(ctx context.Context, id int64, newStock int) error {
	res, err := r.q.ExecContext(ctx,
		"UPDATE productos SET stock_actual = ? WHERE id = ?", newStock, id)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	return requireRow(res, "producto", id)
}

// Deactivate marca el producto como inactivo (baja lógica).
func (r *ProductRepo) Deactivate(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx,
		"UPDATE productos SET activo = 0 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deactivate producto: %w", err)
	}
	return requireRow(res, "producto", id)
}
