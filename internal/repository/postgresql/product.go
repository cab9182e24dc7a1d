package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	"gitlab.com/sprinkles/storefront/internal/db"
	"gitlab.com/sprinkles/storefront/internal/repository"
	"gitlab.com/sprinkles/storefront/internal/storage"
)

const productColumns = `id, name, description, price, category, created_at`

type ProductRepo struct {
	db db.DB
}

func NewProductRepo(db db.DB) storage.ProductRepository {
	return &ProductRepo{db: db}
}

func (r *ProductRepo) Create(ctx context.Context, product *repository.Product) (int64, error) {
	var id int64
	err := r.db.Get(ctx, &id, `
        INSERT INTO products (name, description, price, category)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `, product.Name, product.Description, product.Price, product.Category)
	if err != nil {
		return 0, err
	}
	product.ID = id
	return id, nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*repository.Product, error) {
	var product repository.Product
	err := r.db.Get(ctx, &product, "SELECT "+productColumns+" FROM products WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepo) GetByName(ctx context.Context, name string) (*repository.Product, error) {
	var product repository.Product
	err := r.db.Get(ctx, &product, "SELECT "+productColumns+" FROM products WHERE name = $1", name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepo) GetAll(ctx context.Context) ([]*repository.Product, error) {
	var products []*repository.Product
	err := r.db.Select(ctx, &products, "SELECT "+productColumns+" FROM products ORDER BY id ASC")
	return products, err
}

func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}
