// Package memory implementa los repositorios sobre un almacén en memoria.
// Se usa en modo demo (sin DATABASE_URL) y como banco de pruebas de los casos de uso.
// Las transacciones copian el estado completo y lo publican solo si fn termina sin error.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockledger-api/internal/application/inventory"
	"github.com/jhoicas/stockledger-api/internal/application/sales"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

var (
	_ inventory.TxRunner = (*TxRunner)(nil)
	_ sales.TxRunner     = (*TxRunner)(nil)
)

type state struct {
	seq            int64
	categories     map[int64]entity.Category
	users          map[int64]entity.User
	products       map[int64]entity.Product
	restocks       map[int64]entity.RestockOrder
	purchaseOrders map[int64]entity.PurchaseOrder
	deliveries     map[int64]entity.Delivery
}

func newState() *state {
	return &state{
		categories:     map[int64]entity.Category{},
		users:          map[int64]entity.User{},
		products:       map[int64]entity.Product{},
		restocks:       map[int64]entity.RestockOrder{},
		purchaseOrders: map[int64]entity.PurchaseOrder{},
		deliveries:     map[int64]entity.Delivery{},
	}
}

func (st *state) nextID() int64 {
	st.seq++
	return st.seq
}

// clone copia mapas y slices anidados; las entidades son valores.
func (st *state) clone() *state {
	c := newState()
	c.seq = st.seq
	for k, v := range st.categories {
		c.categories[k] = v
	}
	for k, v := range st.users {
		c.users[k] = v
	}
	for k, v := range st.products {
		c.products[k] = v
	}
	for k, v := range st.restocks {
		c.restocks[k] = v
	}
	for k, v := range st.purchaseOrders {
		v.Details = append([]entity.ProductDetail(nil), v.Details...)
		c.purchaseOrders[k] = v
	}
	for k, v := range st.deliveries {
		v.Lines = append([]entity.DeliveryProduct(nil), v.Lines...)
		c.deliveries[k] = v
	}
	return c
}

// Store almacén en memoria seguro para uso concurrente.
type Store struct {
	mu   sync.Mutex
	data *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: newState()}
}

// handle liga un repositorio al estado publicado (con lock) o al de una transacción en curso.
type handle struct {
	s  *Store
	tx *state
}

func (h handle) with(fn func(st *state) error) error {
	if h.tx != nil {
		return fn(h.tx)
	}
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	return fn(h.s.data)
}

// Repositorios sobre el estado publicado.
func (s *Store) Products() *ProductRepo             { return &ProductRepo{handle{s: s}} }
func (s *Store) Categories() *CategoryRepo          { return &CategoryRepo{handle{s: s}} }
func (s *Store) Users() *UserRepo                   { return &UserRepo{handle{s: s}} }
func (s *Store) Restocks() *RestockOrderRepo        { return &RestockOrderRepo{handle{s: s}} }
func (s *Store) Transactions() *TransactionRepo     { return &TransactionRepo{handle{s: s}} }
func (s *Store) Reorder() *ReorderRepo              { return &ReorderRepo{handle{s: s}} }
func (s *Store) PurchaseOrders() *PurchaseOrderRepo { return &PurchaseOrderRepo{handle{s: s}} }
func (s *Store) Deliveries() *DeliveryRepo          { return &DeliveryRepo{handle{s: s}} }

// TxRunner ejecuta callbacks sobre una copia del estado y la publica al terminar sin error.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

func (r *TxRunner) run(fn func(h handle) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	work := r.s.data.clone()
	if err := fn(handle{s: r.s, tx: work}); err != nil {
		return err
	}
	r.s.data = work
	return nil
}

// Run transacción de inventario (productos + reabastecimientos).
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	restockRepo repository.RestockOrderRepository,
) error) error {
	return r.run(func(h handle) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(&ProductRepo{h}, &RestockOrderRepo{h})
	})
}

// RunSales transacción de ventas (productos + órdenes de compra + entregas).
func (r *TxRunner) RunSales(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	orderRepo repository.PurchaseOrderRepository,
	deliveryRepo repository.DeliveryRepository,
) error) error {
	return r.run(func(h handle) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(&ProductRepo{h}, &PurchaseOrderRepo{h}, &DeliveryRepo{h})
	})
}

// Funciones de carga directa (seed y pruebas). No ajustan cantidades.

// PutCategory inserta o reemplaza una categoría; asigna ID si es 0.
func (s *Store) PutCategory(c entity.Category) entity.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == 0 {
		c.ID = s.data.nextID()
	}
	s.data.categories[c.ID] = c
	return c
}

// PutUser inserta o reemplaza un usuario.
func (s *Store) PutUser(u entity.User) entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == 0 {
		u.ID = s.data.nextID()
	}
	s.data.users[u.ID] = u
	return u
}

// PutProduct inserta o reemplaza un producto.
func (s *Store) PutProduct(p entity.Product) entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.data.nextID()
	}
	s.data.products[p.ID] = p
	return p
}

// PutRestock inserta una orden histórica sin tocar products.quantity.
func (s *Store) PutRestock(o entity.RestockOrder) entity.RestockOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID == 0 {
		o.ID = s.data.nextID()
	}
	s.data.restocks[o.ID] = o
	return o
}

// PutPurchaseOrder inserta una orden de compra con sus líneas.
func (s *Store) PutPurchaseOrder(po entity.PurchaseOrder) entity.PurchaseOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	if po.ID == 0 {
		po.ID = s.data.nextID()
	}
	for i := range po.Details {
		if po.Details[i].ID == 0 {
			po.Details[i].ID = s.data.nextID()
		}
		po.Details[i].PurchaseOrderID = po.ID
	}
	s.data.purchaseOrders[po.ID] = po
	return po
}

// PutDelivery inserta una entrega con sus líneas.
func (s *Store) PutDelivery(d entity.Delivery) entity.Delivery {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.ID == 0 {
		d.ID = s.data.nextID()
	}
	for i := range d.Lines {
		if d.Lines[i].ID == 0 {
			d.Lines[i].ID = s.data.nextID()
		}
		d.Lines[i].DeliveryID = d.ID
	}
	s.data.deliveries[d.ID] = d
	return d
}

// NewSeeded crea un almacén con datos de demostración.
func NewSeeded(now time.Time) *Store {
	s := NewStore()
	safety := 40
	beverages := s.PutCategory(entity.Category{Name: "Beverages", SafetyStock: &safety, CreatedAt: now, UpdatedAt: now})
	snacks := s.PutCategory(entity.Category{Name: "Snacks", CreatedAt: now, UpdatedAt: now})
	admin := s.PutUser(entity.User{Name: "Admin", Email: "admin@example.com", CreatedAt: now, UpdatedAt: now})

	water := s.PutProduct(entity.Product{CategoryID: beverages.ID, Name: "Mineral Water 500ml", OriginalPrice: decimal.RequireFromString("12.50"), Quantity: 180, CreatedAt: now.AddDate(0, -2, 0), UpdatedAt: now})
	chips := s.PutProduct(entity.Product{CategoryID: snacks.ID, Name: "Potato Chips", OriginalPrice: decimal.RequireFromString("35.00"), Quantity: 60, CreatedAt: now.AddDate(0, -2, 0), UpdatedAt: now})

	s.PutRestock(entity.RestockOrder{ProductID: water.ID, UserID: admin.ID, Quantity: 200, CreatedAt: now.AddDate(0, 0, -20), UpdatedAt: now.AddDate(0, 0, -20)})
	s.PutRestock(entity.RestockOrder{ProductID: chips.ID, UserID: admin.ID, Quantity: 100, CreatedAt: now.AddDate(0, 0, -15), UpdatedAt: now.AddDate(0, 0, -15)})

	po := s.PutPurchaseOrder(entity.PurchaseOrder{
		SaleTypeID: entity.SaleTypeDelivery, CustomerName: "Corner Store", UserID: admin.ID,
		CreatedAt: now.AddDate(0, 0, -10), UpdatedAt: now.AddDate(0, 0, -10),
		Details: []entity.ProductDetail{
			{ProductID: chips.ID, Quantity: 40, Price: decimal.RequireFromString("33.00")},
		},
	})
	delivered := now.AddDate(0, 0, -9)
	s.PutDelivery(entity.Delivery{
		PurchaseOrderID: po.ID, Status: entity.DeliveryStatusSettled, DeliveredAt: &delivered,
		CreatedAt: now.AddDate(0, 0, -10), UpdatedAt: delivered,
		Lines: []entity.DeliveryProduct{{ProductID: chips.ID, Quantity: 40, NoOfDamages: 1}},
	})
	s.PutPurchaseOrder(entity.PurchaseOrder{
		SaleTypeID: entity.SaleTypeWalkIn, CustomerName: "Walk-in", UserID: admin.ID,
		CreatedAt: now.AddDate(0, 0, -5), UpdatedAt: now.AddDate(0, 0, -5),
		Details: []entity.ProductDetail{
			{ProductID: water.ID, Quantity: 20, Price: decimal.RequireFromString("12.50")},
		},
	})
	return s
}
