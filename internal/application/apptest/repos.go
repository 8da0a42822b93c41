package apptest

import (
	"context"
	"fmt"
	"time"

	"github.com/EzerZuniga/gestion-comercial/internal/domain"
	"github.com/EzerZuniga/gestion-comercial/internal/domain/entity"
	"github.com/EzerZuniga/gestion-comercial/internal/domain/repository"
)

var (
	_ repository.ProductRepository           = (*ProductRepo)(nil)
	_ repository.SupplierRepository          = (*SupplierRepo)(nil)
	_ repository.WorkerRepository            = (*WorkerRepo)(nil)
	_ repository.UserRepository              = (*UserRepo)(nil)
	_ repository.CompanyRepository           = (*CompanyRepo)(nil)
	_ repository.SaleRepository              = (*SaleRepo)(nil)
	_ repository.PurchaseRepository          = (*PurchaseRepo)(nil)
	_ repository.InventoryMovementRepository = (*MovementRepo)(nil)
)

// ProductRepo repositorio de productos en memoria.
type ProductRepo struct{ St *Store }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) (int64, error) {
	if existing, _ := r.GetByCode(context.Background(), p.Code); existing != nil {
		return 0, domain.NewValidationError("ya existe un producto con código %s", p.Code)
	}
	c := *p
	c.ID = r.St.NextID()
	r.St.Products[c.ID] = &c
	return c.ID, nil
}

func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	p, ok := r.St.Products[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *ProductRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	for _, p := range r.St.Products {
		if p.Code == code {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) List(_ context.Context, includeInactive bool) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, id := range sortedIDs(r.St.Products) {
		p := r.St.Products[id]
		if !includeInactive && !p.Active {
			continue
		}
		c := *p
		out = append(out, &c)
	}
	return out, nil
}

func (r *ProductRepo) Search(_ context.Context, text string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, id := range sortedIDs(r.St.Products) {
		p := r.St.Products[id]
		if !p.Active {
			continue
		}
		if containsFold(p.Code, text) || containsFold(p.Name, text) || containsFold(p.Category, text) {
			c := *p
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	current, ok := r.St.Products[p.ID]
	if !ok {
		return fmt.Errorf("producto %d: %w", p.ID, domain.ErrNotFound)
	}
	c := *p
	c.Stock = current.Stock // el stock solo cambia vía UpdateStock
	r.St.Products[p.ID] = &c
	return nil
}

func (r *ProductRepo) UpdateStock(_ context.Context, id int64, newStock int) error {
	p, ok := r.St.Products[id]
	if !ok {
		return fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
	}
	p.Stock = newStock
	return nil
}

func (r *ProductRepo) Deactivate(_ context.Context, id int64) error {
	p, ok := r.St.Products[id]
	if !ok {
		return fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
	}
	p.Active = false
	return nil
}

// SupplierRepo repositorio de proveedores en memoria.
type SupplierRepo struct{ St *Store }

func (r *SupplierRepo) Create(_ context.Context, s *entity.Supplier) (int64, error) {
	if existing, _ := r.GetByRUT(context.Background(), s.RUT); existing != nil {
		return 0, domain.NewValidationError("ya existe un proveedor con RUT %s", s.RUT)
	}
	c := *s
	c.ID = r.St.NextID()
	r.St.Suppliers[c.ID] = &c
	return c.ID, nil
}

func (r *SupplierRepo) GetByID(_ context.Context, id int64) (*entity.Supplier, error) {
	s, ok := r.St.Suppliers[id]
	if !ok {
		return nil, nil
	}
	c := *s
	return &c, nil
}

func (r *SupplierRepo) GetByRUT(_ context.Context, rut string) (*entity.Supplier, error) {
	for _, s := range r.St.Suppliers {
		if s.RUT == rut {
			c := *s
			return &c, nil
		}
	}
	return nil, nil
}

func (r *SupplierRepo) List(_ context.Context, includeInactive bool) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, id := range sortedIDs(r.St.Suppliers) {
		s := r.St.Suppliers[id]
		if !includeInactive && !s.Active {
			continue
		}
		c := *s
		out = append(out, &c)
	}
	return out, nil
}

func (r *SupplierRepo) Search(_ context.Context, text string) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, id := range sortedIDs(r.St.Suppliers) {
		s := r.St.Suppliers[id]
		if !s.Active {
			continue
		}
		if containsFold(s.Name, text) || containsFold(s.RUT, text) || containsFold(s.MainProduct, text) {
			c := *s
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *SupplierRepo) Update(_ context.Context, s *entity.Supplier) error {
	if _, ok := r.St.Suppliers[s.ID]; !ok {
		return fmt.Errorf("proveedor %d: %w", s.ID, domain.ErrNotFound)
	}
	c := *s
	r.St.Suppliers[s.ID] = &c
	return nil
}

func (r *SupplierRepo) Deactivate(_ context.Context, id int64) error {
	s, ok := r.St.Suppliers[id]
	if !ok {
		return fmt.Errorf("proveedor %d: %w", id, domain.ErrNotFound)
	}
	s.Active = false
	return nil
}

// WorkerRepo repositorio de trabajadores en memoria.
type WorkerRepo struct{ St *Store }

func (r *WorkerRepo) Create(_ context.Context, w *entity.Worker) (int64, error) {
	if existing, _ := r.GetByRUT(context.Background(), w.RUT); existing != nil {
		return 0, domain.NewValidationError("ya existe un trabajador con RUT %s", w.RUT)
	}
	c := *w
	c.ID = r.St.NextID()
	r.St.Workers[c.ID] = &c
	return c.ID, nil
}

func (r *WorkerRepo) GetByID(_ context.Context, id int64) (*entity.Worker, error) {
	w, ok := r.St.Workers[id]
	if !ok {
		return nil, nil
	}
	c := *w
	return &c, nil
}

func (r *WorkerRepo) GetByRUT(_ context.Context, rut string) (*entity.Worker, error) {
	for _, w := range r.St.Workers {
		if w.RUT == rut {
			c := *w
			return &c, nil
		}
	}
	return nil, nil
}

func (r *WorkerRepo) List(_ context.Context, includeInactive bool) ([]*entity.Worker, error) {
	var out []*entity.Worker
	for _, id := range sortedIDs(r.St.Workers) {
		w := r.St.Workers[id]
		if !includeInactive && !w.Active {
			continue
		}
		c := *w
		out = append(out, &c)
	}
	return out, nil
}

func (r *WorkerRepo) Search(_ context.Context, text string) ([]*entity.Worker, error) {
	var out []*entity.Worker
	for _, id := range sortedIDs(r.St.Workers) {
		w := r.St.Workers[id]
		if !w.Active {
			continue
		}
		if containsFold(w.FirstName, text) || containsFold(w.LastName, text) || containsFold(w.RUT, text) {
			c := *w
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *WorkerRepo) Update(_ context.Context, w *entity.Worker) error {
	if _, ok := r.St.Workers[w.ID]; !ok {
		return fmt.Errorf("trabajador %d: %w", w.ID, domain.ErrNotFound)
	}
	c := *w
	r.St.Workers[w.ID] = &c
	return nil
}

func (r *WorkerRepo) Deactivate(_ context.Context, id int64) error {
	w, ok := r.St.Workers[id]
	if !ok {
		return fmt.Errorf("trabajador %d: %w", id, domain.ErrNotFound)
	}
	w.Active = false
	return nil
}

// UserRepo repositorio de usuarios en memoria.
type UserRepo struct{ St *Store }

func (r *UserRepo) Create(_ context.Context, u *entity.User) (int64, error) {
	if existing, _ := r.GetByUsername(context.Background(), u.Username); existing != nil {
		return 0, domain.NewValidationError("ya existe un usuario con nombre %s", u.Username)
	}
	c := *u
	c.ID = r.St.NextID()
	r.St.Users[c.ID] = &c
	return c.ID, nil
}

func (r *UserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	u, ok := r.St.Users[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.St.Users {
		if u.Username == username {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) List(_ context.Context, includeInactive bool) ([]*entity.User, error) {
	var out []*entity.User
	for _, id := range sortedIDs(r.St.Users) {
		u := r.St.Users[id]
		if !includeInactive && !u.Active {
			continue
		}
		c := *u
		out = append(out, &c)
	}
	return out, nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	current, ok := r.St.Users[u.ID]
	if !ok {
		return fmt.Errorf("usuario %d: %w", u.ID, domain.ErrNotFound)
	}
	c := *u
	c.PasswordHash = current.PasswordHash // el hash solo cambia vía UpdatePassword
	r.St.Users[u.ID] = &c
	return nil
}

func (r *UserRepo) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	u, ok := r.St.Users[id]
	if !ok {
		return fmt.Errorf("usuario %d: %w", id, domain.ErrNotFound)
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *UserRepo) Deactivate(_ context.Context, id int64) error {
	u, ok := r.St.Users[id]
	if !ok {
		return fmt.Errorf("usuario %d: %w", id, domain.ErrNotFound)
	}
	u.Active = false
	return nil
}

// CompanyRepo repositorio del perfil de empresa en memoria.
type CompanyRepo struct{ St *Store }

func (r *CompanyRepo) Get(_ context.Context) (*entity.Company, error) {
	if r.St.Company == nil {
		return nil, nil
	}
	c := *r.St.Company
	return &c, nil
}

func (r *CompanyRepo) Create(_ context.Context, c *entity.Company) (int64, error) {
	cp := *c
	cp.ID = r.St.NextID()
	r.St.Company = &cp
	return cp.ID, nil
}

func (r *CompanyRepo) Update(_ context.Context, c *entity.Company) error {
	if r.St.Company == nil || r.St.Company.ID != c.ID {
		return fmt.Errorf("empresa %d: %w", c.ID, domain.ErrNotFound)
	}
	cp := *c
	r.St.Company = &cp
	return nil
}

// SaleRepo repositorio de ventas en memoria.
type SaleRepo struct{ St *Store }

func (r *SaleRepo) Create(_ context.Context, s *entity.Sale) (int64, error) {
	for _, existing := range r.St.Sales {
		if existing.DocNumber == s.DocNumber {
			return 0, domain.NewValidationError("ya existe una boleta con número %s", s.DocNumber)
		}
	}
	c := *s
	c.ID = r.St.NextID()
	c.Details = nil
	r.St.Sales[c.ID] = &c
	return c.ID, nil
}

func (r *SaleRepo) CreateDetail(_ context.Context, d *entity.SaleDetail) (int64, error) {
	c := *d
	c.ID = r.St.NextID()
	r.St.SaleDetails = append(r.St.SaleDetails, &c)
	return c.ID, nil
}

func (r *SaleRepo) GetByID(_ context.Context, id int64) (*entity.Sale, error) {
	s, ok := r.St.Sales[id]
	if !ok {
		return nil, nil
	}
	c := *s
	c.Details = nil
	for _, d := range r.St.SaleDetails {
		if d.SaleID == id {
			c.Details = append(c.Details, *d)
		}
	}
	return &c, nil
}

func (r *SaleRepo) ListByDate(_ context.Context, from, to time.Time) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, id := range sortedIDs(r.St.Sales) {
		s := r.St.Sales[id]
		if !s.Date.Before(from) && s.Date.Before(to) {
			c := *s
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *SaleRepo) CountByDay(_ context.Context, day time.Time) (int, error) {
	n := 0
	for _, s := range r.St.Sales {
		if sameDay(s.Date, day) {
			n++
		}
	}
	return n, nil
}

// PurchaseRepo repositorio de compras en memoria.
type PurchaseRepo struct{ St *Store }

func (r *PurchaseRepo) Create(_ context.Context, p *entity.Purchase) (int64, error) {
	for _, existing := range r.St.Purchases {
		if existing.DocNumber == p.DocNumber {
			return 0, domain.NewValidationError("ya existe una factura con número %s", p.DocNumber)
		}
	}
	c := *p
	c.ID = r.St.NextID()
	c.Details = nil
	r.St.Purchases[c.ID] = &c
	return c.ID, nil
}

func (r *PurchaseRepo) CreateDetail(_ context.Context, d *entity.PurchaseDetail) (int64, error) {
	c := *d
	c.ID = r.St.NextID()
	r.St.PurchaseDetails = append(r.St.PurchaseDetails, &c)
	return c.ID, nil
}

func (r *PurchaseRepo) GetByID(_ context.Context, id int64) (*entity.Purchase, error) {
	p, ok := r.St.Purchases[id]
	if !ok {
		return nil, nil
	}
	c := *p
	c.Details = nil
	for _, d := range r.St.PurchaseDetails {
		if d.PurchaseID == id {
			c.Details = append(c.Details, *d)
		}
	}
	return &c, nil
}

func (r *PurchaseRepo) ListByDate(_ context.Context, from, to time.Time) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	for _, id := range sortedIDs(r.St.Purchases) {
		p := r.St.Purchases[id]
		if !p.Date.Before(from) && p.Date.Before(to) {
			c := *p
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *PurchaseRepo) CountByDay(_ context.Context, day time.Time) (int, error) {
	n := 0
	for _, p := range r.St.Purchases {
		if sameDay(p.Date, day) {
			n++
		}
	}
	return n, nil
}

// MovementRepo repositorio de movimientos de inventario en memoria.
type MovementRepo struct{ St *Store }

func (r *MovementRepo) Create(_ context.Context, m *entity.InventoryMovement) (int64, error) {
	c := *m
	c.ID = r.St.NextID()
	r.St.Movements = append(r.St.Movements, &c)
	return c.ID, nil
}

func (r *MovementRepo) ListByProduct(_ context.Context, productID int64, limit int) ([]*entity.InventoryMovement, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []*entity.InventoryMovement
	for i := len(r.St.Movements) - 1; i >= 0 && len(out) < limit; i-- {
		if r.St.Movements[i].ProductID == productID {
			c := *r.St.Movements[i]
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *MovementRepo) ListByDate(_ context.Context, from, to time.Time) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range r.St.Movements {
		if !m.CreatedAt.Before(from) && m.CreatedAt.Before(to) {
			c := *m
			out = append(out, &c)
		}
	}
	return out, nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
