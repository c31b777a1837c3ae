package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// productRepositoryInMemory хранит каталог в памяти для локальной разработки и тестов.
type productRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Product
}

// NewProductRepository возвращает in-memory каталог, заполненный переданными товарами.
func NewProductRepository(products ...domain.Product) domain.ProductRepository {
	items := make(map[string]domain.Product, len(products))
	for _, p := range products {
		items[p.ID] = p
	}
	return &productRepositoryInMemory{items: items}
}

// DemoProducts возвращает витрину по умолчанию для режима без внешней БД.
func DemoProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          "p1",
			Name:        "Widget",
			Description: "A small widget for everyday use",
			ImageURL:    "https://images.example.com/widget.png",
			Price:       "9.99",
		},
		{
			ID:          "p2",
			Name:        "Gadget",
			Description: "Gadget with a long battery life",
			ImageURL:    "https://images.example.com/gadget.png",
			Price:       "24.50",
		},
		{
			ID:          "p3",
			Name:        "Gizmo",
			Description: "Mystery gizmo, no photo yet",
			Price:       "5.00",
		},
	}
}

// Get возвращает товар или ErrProductNotFound.
func (r *productRepositoryInMemory) Get(_ context.Context, id string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.items[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

// List возвращает товары, отсортированные по ID.
func (r *productRepositoryInMemory) List(_ context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Product, 0, len(r.items))
	for _, p := range r.items {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

var _ domain.ProductRepository = (*productRepositoryInMemory)(nil)
