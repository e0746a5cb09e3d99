package reporting

import (
	"context"
	"time"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/report"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

// ReorderUseCase productos cuyo stock actual está en o por debajo de su nivel de reorden.
type ReorderUseCase struct {
	repo   repository.ReorderRepository
	policy report.ReorderPolicy
	now    func() time.Time
}

// NewReorderUseCase construye el caso de uso.
func NewReorderUseCase(repo repository.ReorderRepository, policy report.ReorderPolicy) *ReorderUseCase {
	return &ReorderUseCase{repo: repo, policy: policy, now: time.Now}
}

// Flagged evalúa todos los productos y devuelve solo los marcados, en el orden del repositorio
// (cantidad actual ascendente).
func (uc *ReorderUseCase) Flagged(ctx context.Context) ([]dto.ReorderItemDTO, error) {
	window := uc.policy.WindowDays
	if window <= 0 {
		window = 30
	}
	since := uc.now().AddDate(0, 0, -window)
	usage, err := uc.repo.ListProductUsage(ctx, since, entity.ConsumptionStatuses)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReorderItemDTO, 0)
	for _, u := range usage {
		r := uc.policy.Evaluate(u.DeliveredQuantity, u.SafetyStock, u.CurrentQuantity)
		if !r.NeedsReorder {
			continue
		}
		category := "N/A"
		if u.CategoryName != nil {
			category = *u.CategoryName
		}
		usageF, _ := r.AverageDailyUsage.Round(2).Float64()
		levelF, _ := r.ReorderLevel.Round(2).Float64()
		out = append(out, dto.ReorderItemDTO{
			ProductID:         u.ProductID,
			ProductName:       u.ProductName,
			CurrentQuantity:   u.CurrentQuantity,
			CategoryName:      category,
			DeliveredQuantity: u.DeliveredQuantity,
			SafetyStock:       r.SafetyStock,
			AverageDailyUsage: usageF,
			ReorderLevel:      levelF,
			NeedsReorder:      true,
		})
	}
	return out, nil
}

// Evaluate GET /api/products/reorder-level: Flagged paginado con page/limit.
func (uc *ReorderUseCase) Evaluate(ctx context.Context, q dto.ReorderQuery) (*dto.ReorderLevelResponse, error) {
	ve := domain.NewValidationError()
	page, limit := pageParams(ve, q.Page, q.Limit, report.DefaultPerPage, "limit")
	if err := ve.OrNil(); err != nil {
		return nil, err
	}
	flagged, err := uc.Flagged(ctx)
	if err != nil {
		return nil, err
	}
	rows, meta := report.Paginate(flagged, page, limit)
	return &dto.ReorderLevelResponse{
		Data: rows,
		Pagination: dto.ReorderPagination{
			Total:       meta.Total,
			PerPage:     meta.PerPage,
			CurrentPage: meta.CurrentPage,
			LastPage:    meta.LastPage,
		},
		ReorderCount: len(flagged),
	}, nil
}
