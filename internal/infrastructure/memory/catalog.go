package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.UserRepository     = (*UserRepo)(nil)
)

// ProductRepo implementación en memoria de repository.ProductRepository.
type ProductRepo struct {
	h handle
}

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	return r.h.with(func(st *state) error {
		for _, other := range st.products {
			if strings.EqualFold(other.Name, p.Name) {
				return domain.ErrDuplicate
			}
		}
		now := time.Now()
		p.ID = st.nextID()
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		p.UpdatedAt = p.CreatedAt
		st.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	var out *entity.Product
	err := r.h.with(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

// GetByIDForUpdate equivale a GetByID: el TxRunner ya serializa las transacciones.
func (r *ProductRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	var out *entity.Product
	err := r.h.with(func(st *state) error {
		for _, p := range st.products {
			if strings.EqualFold(p.Name, name) {
				p := p
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	return r.h.with(func(st *state) error {
		cur, ok := st.products[p.ID]
		if !ok {
			return domain.ErrNotFound
		}
		for id, other := range st.products {
			if id != p.ID && strings.EqualFold(other.Name, p.Name) {
				return domain.ErrDuplicate
			}
		}
		cur.CategoryID = p.CategoryID
		cur.Name = p.Name
		cur.OriginalPrice = p.OriginalPrice
		cur.UpdatedAt = time.Now()
		st.products[p.ID] = cur
		*p = cur
		return nil
	})
}

func (r *ProductRepo) AdjustQuantity(ctx context.Context, id int64, delta int) (int, error) {
	var qty int
	err := r.h.with(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		p.Quantity += delta
		p.UpdatedAt = time.Now()
		st.products[id] = p
		qty = p.Quantity
		return nil
	})
	return qty, err
}

func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.h.with(func(st *state) error {
		ids := make([]int64, 0, len(st.products))
		for id := range st.products {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		for i, id := range ids {
			if i < offset {
				continue
			}
			if limit > 0 && len(out) >= limit {
				break
			}
			p := st.products[id]
			out = append(out, &p)
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	return r.h.with(func(st *state) error {
		if _, ok := st.products[id]; !ok {
			return domain.ErrNotFound
		}
		if st.hasSalesFor(id) {
			return domain.ErrConflict
		}
		delete(st.products, id)
		for rid, o := range st.restocks {
			if o.ProductID == id {
				delete(st.restocks, rid)
			}
		}
		return nil
	})
}

// CategoryRepo implementación en memoria de repository.CategoryRepository.
type CategoryRepo struct {
	h handle
}

func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	var out *entity.Category
	err := r.h.with(func(st *state) error {
		if c, ok := st.categories[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

// UserRepo implementación en memoria de repository.UserRepository.
type UserRepo struct {
	h handle
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	var out *entity.User
	err := r.h.with(func(st *state) error {
		if u, ok := st.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

// hasSalesFor replica la restricción de clave foránea de product_details y delivery_products.
func (st *state) hasSalesFor(productID int64) bool {
	for _, po := range st.purchaseOrders {
		for _, d := range po.Details {
			if d.ProductID == productID {
				return true
			}
		}
	}
	for _, d := range st.deliveries {
		for _, l := range d.Lines {
			if l.ProductID == productID {
				return true
			}
		}
	}
	return false
}
