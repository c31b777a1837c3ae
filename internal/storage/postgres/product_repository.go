package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

var productColumns = []string{"id", "name", "description", "image_url", "price"}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository создаёт PostgreSQL-реализацию ProductRepository.
func NewProductRepository(store *Store) domain.ProductRepository {
	return &productRepository{db: store.DB()}
}

func (r *productRepository) Get(ctx context.Context, id string) (domain.Product, error) {
	query, args, err := psql.Select(productColumns...).
		From("products").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.Product{}, fmt.Errorf("build product query: %w", err)
	}

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("select product: %w", err)
	}
	return product, nil
}

func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	query, args, err := psql.Select(productColumns...).
		From("products").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build products query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanProduct читает строку каталога; NULL в опциональных колонках превращается в пустую строку.
func scanProduct(row rowScanner) (domain.Product, error) {
	var product domain.Product
	var name, description, image, price sql.NullString
	if err := row.Scan(&product.ID, &name, &description, &image, &price); err != nil {
		return domain.Product{}, err
	}
	product.Name = name.String
	product.Description = description.String
	product.ImageURL = image.String
	product.Price = price.String
	return product, nil
}

var _ domain.ProductRepository = (*productRepository)(nil)
