package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"gitlab.com/sprinkles/storefront/internal/repository"
)

func parsePrice(raw string) (decimal.Decimal, bool) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || !price.IsPositive() || price.GreaterThanOrEqual(maxPrice) {
		return decimal.Zero, false
	}
	if !price.Equal(price.Round(2)) {
		return decimal.Zero, false
	}
	return price, true
}

func (s *Storage) AddProduct(ctx context.Context, actor Account, form ProductForm) (int64, error) {
	if err := requireRole(actor, RoleAdmin); err != nil {
		return 0, err
	}

	name := strings.TrimSpace(form.Name)
	description := strings.TrimSpace(form.Description)
	category := strings.TrimSpace(form.Category)

	var messages []string
	if name == "" || description == "" || category == "" || strings.TrimSpace(form.Price) == "" {
		messages = append(messages, "Enter all fields")
	}
	if tooLong(name, maxTextLength) || tooLong(category, maxTextLength) {
		messages = append(messages, fmt.Sprintf("Name and category must be at most %d characters", maxTextLength))
	}
	if tooLong(description, maxDescriptionLength) {
		messages = append(messages, fmt.Sprintf("Description must be at most %d characters", maxDescriptionLength))
	}
	price, ok := parsePrice(form.Price)
	if !ok {
		messages = append(messages, "Please enter a valid price")
	}
	if len(messages) > 0 {
		return 0, newValidationError(messages...)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.productRepo.GetByName(ctx, name)
	switch {
	case err == nil:
		return 0, newConflictError("Product already added")
	case !errors.Is(err, repository.ErrObjectNotFound):
		return 0, classify("add_product", err)
	}

	product := &repository.Product{
		Name:        name,
		Description: description,
		Price:       price,
		Category:    category,
	}
	id, err := s.productRepo.Create(ctx, product)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, newConflictError("Product already added")
		}
		return 0, classify("add_product", err)
	}

	if s.catalog != nil {
		s.catalog.Set(product)
	}
	s.logger.Info("product added", zap.Int64("product_id", id), zap.String("name", name))
	return id, nil
}

// DeleteProduct removes the product. Orders are untouched because they carry
// their own copy of the product name and price.
func (s *Storage) DeleteProduct(ctx context.Context, actor Account, id int64) error {
	if err := requireRole(actor, RoleAdmin); err != nil {
		return err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return classify("delete_product", err)
	}
	if s.catalog != nil {
		s.catalog.Delete(id)
	}
	s.logger.Info("product deleted", zap.Int64("product_id", id), zap.Int64("admin_id", actor.ID))
	return nil
}

func (s *Storage) GetProduct(ctx context.Context, id int64) (*Product, error) {
	if s.catalog != nil {
		if cached, ok := s.catalog.Get(id); ok {
			product := toProduct(cached)
			return &product, nil
		}
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	repoProduct, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, classify("get_product", err)
	}
	product := toProduct(repoProduct)
	return &product, nil
}

func (s *Storage) ListProducts(ctx context.Context) ([]Product, error) {
	if s.catalog != nil {
		if cached, ok := s.catalog.All(); ok {
			return toProducts(cached), nil
		}
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var version uint64
	if s.catalog != nil {
		version = s.catalog.Version()
	}
	repoProducts, err := s.productRepo.GetAll(ctx)
	if err != nil {
		return nil, classify("list_products", err)
	}
	if s.catalog != nil {
		s.catalog.ReplaceIfUnchanged(repoProducts, version)
	}
	return toProducts(repoProducts), nil
}

func toProducts(products []*repository.Product) []Product {
	result := make([]Product, len(products))
	for i, p := range products {
		result[i] = toProduct(p)
	}
	return result
}
