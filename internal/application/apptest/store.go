// Package apptest provee dobles de prueba en memoria para los casos de uso:
// repositorios falsos sobre un Store compartido y un TxRunner que simula
// Commit/Rollback con instantáneas del estado.
package apptest

import (
	"sort"
	"strings"
	"time"

	"github.com/EzerZuniga/gestion-comercial/internal/domain/entity"
)

// Store estado en memoria compartido por los repositorios falsos.
type Store struct {
	Products  map[int64]*entity.Product
	Suppliers map[int64]*entity.Supplier
	Workers   map[int64]*entity.Worker
	Users     map[int64]*entity.User
	Company   *entity.Company

	Movements       []*entity.InventoryMovement
	Sales           map[int64]*entity.Sale
	SaleDetails     []*entity.SaleDetail
	Purchases       map[int64]*entity.Purchase
	PurchaseDetails []*entity.PurchaseDetail

	lastID int64
}

// NewStore crea un estado vacío.
func NewStore() *Store {
	return &Store{
		Products:  make(map[int64]*entity.Product),
		Suppliers: make(map[int64]*entity.Supplier),
		Workers:   make(map[int64]*entity.Worker),
		Users:     make(map[int64]*entity.User),
		Sales:     make(map[int64]*entity.Sale),
		Purchases: make(map[int64]*entity.Purchase),
	}
}

// NextID entrega IDs crecientes, como el autoincremental de la BD.
func (st *Store) NextID() int64 {
	st.lastID++
	return st.lastID
}

// AddProduct registra un producto con ID asignado y lo devuelve.
func (st *Store) AddProduct(p entity.Product) *entity.Product {
	if p.ID == 0 {
		p.ID = st.NextID()
	} else if p.ID > st.lastID {
		st.lastID = p.ID
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	st.Products[p.ID] = &p
	return &p
}

// AddSupplier registra un proveedor con ID asignado y lo devuelve.
func (st *Store) AddSupplier(s entity.Supplier) *entity.Supplier {
	if s.ID == 0 {
		s.ID = st.NextID()
	} else if s.ID > st.lastID {
		st.lastID = s.ID
	}
	st.Suppliers[s.ID] = &s
	return &s
}

// AddUser registra un usuario con ID asignado y lo devuelve.
func (st *Store) AddUser(u entity.User) *entity.User {
	if u.ID == 0 {
		u.ID = st.NextID()
	} else if u.ID > st.lastID {
		st.lastID = u.ID
	}
	st.Users[u.ID] = &u
	return &u
}

// AddWorker registra un trabajador con ID asignado y lo devuelve.
func (st *Store) AddWorker(w entity.Worker) *entity.Worker {
	if w.ID == 0 {
		w.ID = st.NextID()
	} else if w.ID > st.lastID {
		st.lastID = w.ID
	}
	st.Workers[w.ID] = &w
	return &w
}

// snapshot copia el estado para poder restaurarlo en un rollback.
func (st *Store) snapshot() *Store {
	cp := &Store{
		Products:  make(map[int64]*entity.Product, len(st.Products)),
		Suppliers: make(map[int64]*entity.Supplier, len(st.Suppliers)),
		Workers:   make(map[int64]*entity.Worker, len(st.Workers)),
		Users:     make(map[int64]*entity.User, len(st.Users)),
		Sales:     make(map[int64]*entity.Sale, len(st.Sales)),
		Purchases: make(map[int64]*entity.Purchase, len(st.Purchases)),
		lastID:    st.lastID,
	}
	for id, p := range st.Products {
		c := *p
		cp.Products[id] = &c
	}
	for id, s := range st.Suppliers {
		c := *s
		cp.Suppliers[id] = &c
	}
	for id, w := range st.Workers {
		c := *w
		cp.Workers[id] = &c
	}
	for id, u := range st.Users {
		c := *u
		cp.Users[id] = &c
	}
	if st.Company != nil {
		c := *st.Company
		cp.Company = &c
	}
	for id, s := range st.Sales {
		c := *s
		c.Details = append([]entity.SaleDetail(nil), s.Details...)
		cp.Sales[id] = &c
	}
	for id, p := range st.Purchases {
		c := *p
		c.Details = append([]entity.PurchaseDetail(nil), p.Details...)
		cp.Purchases[id] = &c
	}
	for _, m := range st.Movements {
		c := *m
		cp.Movements = append(cp.Movements, &c)
	}
	for _, d := range st.SaleDetails {
		c := *d
		cp.SaleDetails = append(cp.SaleDetails, &c)
	}
	for _, d := range st.PurchaseDetails {
		c := *d
		cp.PurchaseDetails = append(cp.PurchaseDetails, &c)
	}
	return cp
}

// restore vuelve al estado de la instantánea.
func (st *Store) restore(snap *Store) {
	st.Products = snap.Products
	st.Suppliers = snap.Suppliers
	st.Workers = snap.Workers
	st.Users = snap.Users
	st.Company = snap.Company
	st.Movements = snap.Movements
	st.Sales = snap.Sales
	st.SaleDetails = snap.SaleDetails
	st.Purchases = snap.Purchases
	st.PurchaseDetails = snap.PurchaseDetails
	st.lastID = snap.lastID
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func sortedIDs[T any](m map[int64]T) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
