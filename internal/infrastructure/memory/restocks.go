package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

var _ repository.RestockOrderRepository = (*RestockOrderRepo)(nil)

// RestockOrderRepo implementación en memoria de repository.RestockOrderRepository.
type RestockOrderRepo struct {
	h handle
}

func (r *RestockOrderRepo) Create(ctx context.Context, o *entity.RestockOrder) error {
	return r.h.with(func(st *state) error {
		if _, ok := st.products[o.ProductID]; !ok {
			return domain.ErrNotFound
		}
		o.ID = st.nextID()
		if o.CreatedAt.IsZero() {
			o.CreatedAt = time.Now()
		}
		o.UpdatedAt = o.CreatedAt
		st.restocks[o.ID] = *o
		return nil
	})
}

func (r *RestockOrderRepo) GetByID(ctx context.Context, id int64) (*entity.RestockOrder, error) {
	var out *entity.RestockOrder
	err := r.h.with(func(st *state) error {
		if o, ok := st.restocks[id]; ok {
			out = &o
		}
		return nil
	})
	return out, err
}

func (r *RestockOrderRepo) GetDetail(ctx context.Context, id int64) (*entity.RestockOrderDetail, error) {
	var out *entity.RestockOrderDetail
	err := r.h.with(func(st *state) error {
		if o, ok := st.restocks[id]; ok {
			out = st.restockDetail(o)
		}
		return nil
	})
	return out, err
}

func (r *RestockOrderRepo) Update(ctx context.Context, o *entity.RestockOrder) error {
	return r.h.with(func(st *state) error {
		cur, ok := st.restocks[o.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.ProductID = o.ProductID
		cur.UserID = o.UserID
		cur.Quantity = o.Quantity
		cur.UpdatedAt = time.Now()
		st.restocks[o.ID] = cur
		*o = cur
		return nil
	})
}

func (r *RestockOrderRepo) Delete(ctx context.Context, id int64) error {
	return r.h.with(func(st *state) error {
		if _, ok := st.restocks[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.restocks, id)
		return nil
	})
}

func (r *RestockOrderRepo) List(ctx context.Context) ([]*entity.RestockOrderDetail, error) {
	return r.list(func(entity.RestockOrder) bool { return true })
}

func (r *RestockOrderRepo) ListByProduct(ctx context.Context, productID int64) ([]*entity.RestockOrderDetail, error) {
	return r.list(func(o entity.RestockOrder) bool { return o.ProductID == productID })
}

func (r *RestockOrderRepo) SumQuantityByProduct(ctx context.Context, productID int64) (int, error) {
	var sum int
	err := r.h.with(func(st *state) error {
		for _, o := range st.restocks {
			if o.ProductID == productID {
				sum += o.Quantity
			}
		}
		return nil
	})
	return sum, err
}

// list ordena por fecha de creación descendente, luego id descendente.
func (r *RestockOrderRepo) list(keep func(entity.RestockOrder) bool) ([]*entity.RestockOrderDetail, error) {
	var out []*entity.RestockOrderDetail
	err := r.h.with(func(st *state) error {
		for _, o := range st.restocks {
			if keep(o) {
				out = append(out, st.restockDetail(o))
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, err
}

func (st *state) restockDetail(o entity.RestockOrder) *entity.RestockOrderDetail {
	d := &entity.RestockOrderDetail{RestockOrder: o}
	if p, ok := st.products[o.ProductID]; ok {
		d.ProductName = p.Name
		d.ProductQuantity = p.Quantity
	}
	if u, ok := st.users[o.UserID]; ok {
		d.UserName = u.Name
		d.UserEmail = u.Email
	}
	return d
}
