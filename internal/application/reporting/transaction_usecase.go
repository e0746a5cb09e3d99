package reporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/domain/report"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
)

// TransactionUseCase feed unificado: consulta las tres fuentes en paralelo, fusiona en orden
// reabastecimiento → entrega → walk-in, ordena por date_out descendente y pagina.
type TransactionUseCase struct {
	sources     repository.TransactionSourceRepository
	productRepo repository.ProductRepository
	cfg         Config
	now         func() time.Time
}

// NewTransactionUseCase construye el caso de uso.
func NewTransactionUseCase(sources repository.TransactionSourceRepository, productRepo repository.ProductRepository, cfg Config) *TransactionUseCase {
	return &TransactionUseCase{
		sources:     sources,
		productRepo: productRepo,
		cfg:         cfg.withDefaults(),
		now:         time.Now,
	}
}

// ViewTransactions GET /api/inventory/transactions.
func (uc *TransactionUseCase) ViewTransactions(ctx context.Context, q dto.TransactionQuery) (*dto.TransactionFeedResponse, error) {
	return uc.feed(ctx, nil, q)
}

// ViewProductTransactions mismo feed restringido a un producto existente.
func (uc *TransactionUseCase) ViewProductTransactions(ctx context.Context, productID int64, q dto.TransactionQuery) (*dto.TransactionFeedResponse, error) {
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return uc.feed(ctx, &productID, q)
}

func (uc *TransactionUseCase) feed(ctx context.Context, productID *int64, q dto.TransactionQuery) (*dto.TransactionFeedResponse, error) {
	ve := domain.NewValidationError()
	page, perPage := pageParams(ve, q.Page, q.PerPage, uc.cfg.DefaultPerPage, "per_page")

	filter := repository.TransactionFilter{
		ProductID:   productID,
		Categories:  trimAll(q.Categories),
		Search:      strings.TrimSpace(q.Search),
		SearchField: q.SearchType,
	}
	switch q.SearchType {
	case repository.SearchFieldAny, repository.SearchFieldProduct, repository.SearchFieldCategory:
	default:
		ve.Add("search_type", "debe ser product o category")
	}
	from, to, err := report.DayRange(q.DateFrom, q.DateTo, uc.cfg.Location)
	if err != nil {
		ve.Add("date_range", err.Error())
	}
	filter.DateFrom, filter.DateTo = from, to

	sel, err := report.ParseTypeSelection(q.TransactionTypes)
	if err != nil {
		ve.Add("transaction_types", err.Error())
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	merged, restocked, err := uc.collect(ctx, filter, sel)
	if err != nil {
		return nil, err
	}
	return &dto.TransactionFeedResponse{
		TotalRestockedQuantity: restocked,
		Transactions:           uc.page(merged, page, perPage),
	}, nil
}

// ProductHistory historial de un producto filtrado por tipo y periodo relativo.
func (uc *TransactionUseCase) ProductHistory(ctx context.Context, productID int64, q dto.ProductHistoryQuery) (*dto.ProductHistoryResponse, error) {
	ve := domain.NewValidationError()
	page, perPage := pageParams(ve, q.Page, q.PerPage, uc.cfg.HistoryPerPage, "perPage")

	var rawTypes []string
	if q.TransactionType != "" {
		rawTypes = []string{q.TransactionType}
	}
	sel, err := report.ParseTypeSelection(rawTypes)
	if err != nil {
		ve.Add("transaction_type", err.Error())
	}
	since, err := report.PeriodStart(q.TimePeriod, uc.now())
	if err != nil {
		ve.Add("time_period", err.Error())
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}

	merged, restocked, err := uc.collect(ctx, repository.TransactionFilter{ProductID: &productID, DateFrom: since}, sel)
	if err != nil {
		return nil, err
	}
	return &dto.ProductHistoryResponse{
		ProductID:              p.ID,
		ProductName:            p.Name,
		ProductCreatedDate:     p.CreatedAt.In(uc.cfg.Location).Format("01/02/2006"),
		RemainingQuantity:      p.Quantity,
		TotalRestockedQuantity: restocked,
		Transactions:           uc.page(merged, page, perPage),
	}, nil
}

// collect ejecuta las fuentes seleccionadas en paralelo; el primer error cancela las demás.
// Devuelve el conjunto fusionado y ordenado y el total reabastecido según la política.
func (uc *TransactionUseCase) collect(ctx context.Context, f repository.TransactionFilter, sel report.TypeSelection) ([]entity.Transaction, int, error) {
	var restocks, deliveries, walkIns []entity.Transaction
	runRestocks := sel.Has(entity.TransactionRestock) || uc.cfg.RestockTotalPolicy == TotalPolicyAlways

	g, gctx := errgroup.WithContext(ctx)
	if runRestocks {
		g.Go(func() error {
			rows, err := uc.sources.ListRestocks(gctx, f)
			if err != nil {
				return fmt.Errorf("reabastecimientos: %w", err)
			}
			restocks = rows
			return nil
		})
	}
	if sel.Has(entity.TransactionDelivery) {
		g.Go(func() error {
			rows, err := uc.sources.ListDeliveries(gctx, f)
			if err != nil {
				return fmt.Errorf("entregas: %w", err)
			}
			deliveries = rows
			return nil
		})
	}
	if sel.Has(entity.TransactionWalkIn) {
		g.Go(func() error {
			rows, err := uc.sources.ListWalkIns(gctx, f)
			if err != nil {
				return fmt.Errorf("ventas walk-in: %w", err)
			}
			walkIns = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	restocked := report.SumQuantity(restocks, entity.TransactionRestock)
	if !sel.Has(entity.TransactionRestock) {
		restocks = nil
	}
	merged := report.Merge(restocks, deliveries, walkIns)
	report.SortByDateOut(merged)
	return merged, restocked, nil
}

func (uc *TransactionUseCase) page(merged []entity.Transaction, page, perPage int) dto.TransactionPage {
	rows, meta := report.Paginate(merged, page, perPage)
	data := make([]dto.TransactionDTO, 0, len(rows))
	for _, t := range rows {
		data = append(data, toTransactionDTO(t, uc.cfg.Location))
	}
	return dto.TransactionPage{
		Data: data,
		Pagination: dto.FeedPagination{
			Total:       meta.Total,
			PerPage:     meta.PerPage,
			CurrentPage: meta.CurrentPage,
			LastPage:    meta.LastPage,
		},
	}
}

func toTransactionDTO(t entity.Transaction, loc *time.Location) dto.TransactionDTO {
	return dto.TransactionDTO{
		ProductID:       t.ProductID,
		ProductName:     t.ProductName,
		CategoryName:    t.CategoryName,
		DeliveryID:      t.DeliveryID,
		Quantity:        t.Quantity,
		TotalValue:      report.FormatMoney(t.TotalValue()),
		DateIn:          report.FormatTimestamp(t.DateIn, loc),
		DateOut:         report.FormatTimestamp(t.DateOut, loc),
		TransactionType: string(t.Type),
		DeliveryStatus:  t.DeliveryStatus,
		TotalDamages:    t.TotalDamages,
	}
}

// pageParams aplica los valores por defecto y registra en ve los valores < 1.
func pageParams(ve *domain.ValidationError, page, perPage *int, defPerPage int, perPageField string) (int, int) {
	p, pp := report.DefaultPage, defPerPage
	if page != nil {
		if *page < 1 {
			ve.Add("page", "debe ser mayor o igual a 1")
		}
		p = *page
	}
	if perPage != nil {
		if *perPage < 1 {
			ve.Add(perPageField, "debe ser mayor o igual a 1")
		}
		pp = *perPage
	}
	return p, pp
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
