package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// Reader читает каталог товаров.
type Reader struct {
	products domain.ProductRepository
	logger   *log.Entry
}

// NewReader создаёт Reader поверх репозитория товаров.
func NewReader(products domain.ProductRepository, logger *log.Entry) *Reader {
	if logger == nil {
		logger = log.New().WithField("component", "catalog")
	}
	return &Reader{products: products, logger: logger}
}

// GetProduct возвращает товар по идентификатору.
// Пустой id, отсутствие записи и ошибка запроса одинаково дают ErrProductNotFound.
func (r *Reader) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, domain.ErrProductNotFound
	}

	product, err := r.products.Get(ctx, id)
	if err == nil {
		return product, nil
	}
	if errors.Is(err, domain.ErrProductNotFound) {
		return domain.Product{}, domain.ErrProductNotFound
	}

	r.logger.WithError(err).WithField("product_id", id).Warn("catalog lookup failed")
	return domain.Product{}, errors.Join(domain.ErrProductNotFound, fmt.Errorf("lookup product %s: %w", id, err))
}

// ListProducts возвращает весь каталог.
func (r *Reader) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := r.products.List(ctx)
	if err != nil {
		r.logger.WithError(err).Warn("catalog listing failed")
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}
