package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

var (
	_ repository.TransactionSourceRepository = (*TransactionRepo)(nil)
	_ repository.ReorderRepository           = (*ReorderRepo)(nil)
)

// TransactionRepo implementación en memoria de las tres fuentes del feed.
type TransactionRepo struct {
	h handle
}

func (r *TransactionRepo) ListRestocks(ctx context.Context, f repository.TransactionFilter) ([]entity.Transaction, error) {
	var out []entity.Transaction
	err := r.h.with(func(st *state) error {
		for _, o := range st.restocks {
			p, cat, ok := st.productWithCategory(o.ProductID)
			if !ok || !matches(f, p, cat, o.CreatedAt) {
				continue
			}
			at := o.CreatedAt
			out = append(out, entity.Transaction{
				Type:         entity.TransactionRestock,
				ProductID:    p.ID,
				ProductName:  p.Name,
				CategoryName: cat,
				Quantity:     o.Quantity,
				UnitPrice:    p.OriginalPrice,
				DateIn:       &at,
				DateOut:      &at,
			})
		}
		return nil
	})
	return out, err
}

func (r *TransactionRepo) ListDeliveries(ctx context.Context, f repository.TransactionFilter) ([]entity.Transaction, error) {
	var out []entity.Transaction
	err := r.h.with(func(st *state) error {
		idx := st.restockIndex()
		for _, d := range st.deliveries {
			if d.Status != entity.DeliveryStatusSettled {
				continue
			}
			po := st.purchaseOrders[d.PurchaseOrderID]
			out0 := d.CreatedAt
			if d.DeliveredAt != nil {
				out0 = *d.DeliveredAt
			}
			for _, line := range d.Lines {
				p, cat, ok := st.productWithCategory(line.ProductID)
				if !ok || !matches(f, p, cat, d.CreatedAt) {
					continue
				}
				price := p.OriginalPrice
				if detail, found := findDetail(po.Details, line.ProductID); found {
					price = detail.Price
				}
				id := d.ID
				status := d.Status
				damages := line.NoOfDamages
				dateOut := out0
				out = append(out, entity.Transaction{
					Type:           entity.TransactionDelivery,
					ProductID:      p.ID,
					ProductName:    p.Name,
					CategoryName:   cat,
					DeliveryID:     &id,
					Quantity:       line.Quantity,
					UnitPrice:      price,
					DateIn:         idx.latestAtOrBefore(p.ID, dateOut),
					DateOut:        &dateOut,
					DeliveryStatus: &status,
					TotalDamages:   &damages,
				})
			}
		}
		return nil
	})
	return out, err
}

func (r *TransactionRepo) ListWalkIns(ctx context.Context, f repository.TransactionFilter) ([]entity.Transaction, error) {
	var out []entity.Transaction
	err := r.h.with(func(st *state) error {
		idx := st.restockIndex()
		for _, po := range st.purchaseOrders {
			if po.SaleTypeID != entity.SaleTypeWalkIn {
				continue
			}
			for _, line := range po.Details {
				p, cat, ok := st.productWithCategory(line.ProductID)
				if !ok || !matches(f, p, cat, po.CreatedAt) {
					continue
				}
				dateOut := po.CreatedAt
				out = append(out, entity.Transaction{
					Type:         entity.TransactionWalkIn,
					ProductID:    p.ID,
					ProductName:  p.Name,
					CategoryName: cat,
					Quantity:     line.Quantity,
					UnitPrice:    p.OriginalPrice,
					DateIn:       idx.latestAtOrBefore(p.ID, dateOut),
					DateOut:      &dateOut,
				})
			}
		}
		return nil
	})
	return out, err
}

func (st *state) productWithCategory(id int64) (entity.Product, string, bool) {
	p, ok := st.products[id]
	if !ok {
		return p, "", false
	}
	return p, strings.TrimSpace(st.categories[p.CategoryID].Name), true
}

func findDetail(details []entity.ProductDetail, productID int64) (entity.ProductDetail, bool) {
	for _, d := range details {
		if d.ProductID == productID {
			return d, true
		}
	}
	return entity.ProductDetail{}, false
}

// matches aplica el filtro compartido; at es la fecha de creación propia de la fuente.
func matches(f repository.TransactionFilter, p entity.Product, category string, at time.Time) bool {
	if f.ProductID != nil && *f.ProductID != p.ID {
		return false
	}
	if f.DateFrom != nil && at.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && !at.Before(*f.DateTo) {
		return false
	}
	if len(f.Categories) > 0 {
		found := false
		for _, c := range f.Categories {
			if strings.TrimSpace(c) == category {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		inProduct := strings.Contains(strings.ToLower(p.Name), needle)
		inCategory := strings.Contains(strings.ToLower(category), needle)
		switch f.SearchField {
		case repository.SearchFieldProduct:
			return inProduct
		case repository.SearchFieldCategory:
			return inCategory
		default:
			return inProduct || inCategory
		}
	}
	return true
}

// restockIndex fechas de reabastecimiento por producto, ascendentes.
type restockIndex map[int64][]time.Time

func (st *state) restockIndex() restockIndex {
	idx := restockIndex{}
	for _, o := range st.restocks {
		idx[o.ProductID] = append(idx[o.ProductID], o.CreatedAt)
	}
	for _, ts := range idx {
		sort.Slice(ts, func(i, j int) bool { return ts[i].Before(ts[j]) })
	}
	return idx
}

// latestAtOrBefore último reabastecimiento con fecha <= t, o nil.
func (idx restockIndex) latestAtOrBefore(productID int64, t time.Time) *time.Time {
	ts := idx[productID]
	i := sort.Search(len(ts), func(i int) bool { return ts[i].After(t) })
	if i == 0 {
		return nil
	}
	v := ts[i-1]
	return &v
}

// ReorderRepo implementación en memoria de repository.ReorderRepository.
type ReorderRepo struct {
	h handle
}

func (r *ReorderRepo) ListProductUsage(ctx context.Context, since time.Time, statuses []string) ([]repository.ProductUsage, error) {
	var out []repository.ProductUsage
	err := r.h.with(func(st *state) error {
		delivered := map[int64]int{}
		for _, d := range st.deliveries {
			if d.CreatedAt.Before(since) || !contains(statuses, d.Status) {
				continue
			}
			for _, l := range d.Lines {
				delivered[l.ProductID] += l.Quantity
			}
		}
		for _, p := range st.products {
			u := repository.ProductUsage{
				ProductID:         p.ID,
				ProductName:       p.Name,
				CurrentQuantity:   p.Quantity,
				DeliveredQuantity: delivered[p.ID],
			}
			if c, ok := st.categories[p.CategoryID]; ok {
				name := c.Name
				u.CategoryName = &name
				u.SafetyStock = c.SafetyStock
			}
			out = append(out, u)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].CurrentQuantity != out[j].CurrentQuantity {
			return out[i].CurrentQuantity < out[j].CurrentQuantity
		}
		return out[i].ProductID < out[j].ProductID
	})
	return out, err
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
