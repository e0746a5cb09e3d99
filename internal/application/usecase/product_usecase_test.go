package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockledger-api/internal/application/dto"
	"github.com/jhoicas/stockledger-api/internal/application/usecase"
	"github.com/jhoicas/stockledger-api/internal/domain"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/infrastructure/memory"
)

func newProductUC(t *testing.T) (*memory.Store, *usecase.ProductUseCase, entity.Category, entity.User) {
	t.Helper()
	s := memory.NewStore()
	cat := s.PutCategory(entity.Category{Name: "Beverages"})
	user := s.PutUser(entity.User{Name: "Ana"})
	return s, usecase.NewProductUseCase(memory.NewTxRunner(s), s.Products(), s.Categories(), s.Users()), cat, user
}

func price(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func TestProducto_CrearRegistraReabastecimientoInicial(t *testing.T) {
	s, uc, cat, user := newProductUC(t)
	ctx := context.Background()

	out, err := uc.Create(ctx, user.ID, dto.CreateProductRequest{
		CategoryID: cat.ID, ProductName: "  Water  ", OriginalPrice: price("12.50"), Quantity: 40,
	})
	require.NoError(t, err)
	assert.Equal(t, "Water", out.ProductName)
	assert.Equal(t, "Beverages", out.CategoryName)
	assert.Equal(t, 40, out.TotalStock)

	total, err := s.Restocks().SumQuantityByProduct(ctx, out.ProductID)
	require.NoError(t, err)
	assert.Equal(t, 40, total)
}

func TestProducto_CrearValida(t *testing.T) {
	_, uc, cat, user := newProductUC(t)
	ctx := context.Background()
	_, err := uc.Create(ctx, user.ID, dto.CreateProductRequest{CategoryID: cat.ID, ProductName: "Water", OriginalPrice: price("1"), Quantity: 1})
	require.NoError(t, err)

	_, err = uc.Create(ctx, 0, dto.CreateProductRequest{
		CategoryID: 999, ProductName: "water", OriginalPrice: price("-1"), Quantity: 0,
	})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	for _, f := range []string{"category_id", "product_name", "original_price", "quantity", "user_id"} {
		assert.Contains(t, ve.Fields, f)
	}
}

func TestProducto_ActualizarYEliminar(t *testing.T) {
	s, uc, cat, user := newProductUC(t)
	ctx := context.Background()
	a, err := uc.Create(ctx, user.ID, dto.CreateProductRequest{CategoryID: cat.ID, ProductName: "A", OriginalPrice: price("1"), Quantity: 5})
	require.NoError(t, err)
	b, err := uc.Create(ctx, user.ID, dto.CreateProductRequest{CategoryID: cat.ID, ProductName: "B", OriginalPrice: price("1"), Quantity: 5})
	require.NoError(t, err)

	newName := "A2"
	got, err := uc.Update(ctx, a.ProductID, dto.UpdateProductRequest{ProductName: &newName, OriginalPrice: price("3.25")})
	require.NoError(t, err)
	assert.Equal(t, "A2", got.ProductName)
	assert.True(t, decimal.RequireFromString("3.25").Equal(got.OriginalPrice))
	assert.Equal(t, 5, got.Quantity)

	taken := "B"
	_, err = uc.Update(ctx, a.ProductID, dto.UpdateProductRequest{ProductName: &taken})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "product_name")

	_, err = uc.Update(ctx, 999, dto.UpdateProductRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, uc.Delete(ctx, b.ProductID))
	_, err = uc.GetByID(ctx, b.ProductID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	orders, err := s.Restocks().ListByProduct(ctx, b.ProductID)
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.ErrorIs(t, uc.Delete(ctx, b.ProductID), domain.ErrNotFound)
}

func TestProducto_EliminarConVentasEsConflicto(t *testing.T) {
	s, uc, cat, user := newProductUC(t)
	ctx := context.Background()
	p, err := uc.Create(ctx, user.ID, dto.CreateProductRequest{CategoryID: cat.ID, ProductName: "A", OriginalPrice: price("1"), Quantity: 5})
	require.NoError(t, err)
	s.PutPurchaseOrder(entity.PurchaseOrder{SaleTypeID: entity.SaleTypeWalkIn, UserID: user.ID,
		Details: []entity.ProductDetail{{ProductID: p.ProductID, Quantity: 1}}})

	assert.ErrorIs(t, uc.Delete(ctx, p.ProductID), domain.ErrConflict)
}

func TestProducto_Listar(t *testing.T) {
	_, uc, cat, user := newProductUC(t)
	ctx := context.Background()
	for _, n := range []string{"A", "B", "C"} {
		_, err := uc.Create(ctx, user.ID, dto.CreateProductRequest{CategoryID: cat.ID, ProductName: n, OriginalPrice: price("1"), Quantity: 1})
		require.NoError(t, err)
	}
	out, err := uc.List(ctx, dto.PageRequest{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "B", out.Items[0].ProductName)
}
