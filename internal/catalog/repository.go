package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

type Repository interface {
	// ProductByID returns nil, nil when the product does not exist.
	ProductByID(ctx context.Context, id string) (*Product, error)
	// ProductsByIDs returns the products that exist, in no particular
	// order; unknown ids are skipped, not errors.
	ProductsByIDs(ctx context.Context, ids []string) ([]*Product, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ProductByID(ctx context.Context, id string) (*Product, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, price, currency, image_url, status
		FROM products
		WHERE id = $1 AND status = 'ACTIVE'
	`, id)

	p := &Product{}
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Currency, &p.ImageURL, &p.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadAttributes(ctx, map[string]*Product{p.ID: p}); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) ProductsByIDs(ctx context.Context, ids []string) ([]*Product, error) {
	if len(ids) == 0 {
		return []*Product{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, price, currency, image_url, status
		FROM products
		WHERE id = ANY($1) AND status = 'ACTIVE'
	`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[string]*Product)
	var products []*Product
	for rows.Next() {
		p := &Product{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Currency, &p.ImageURL, &p.Status); err != nil {
			return nil, err
		}
		byID[p.ID] = p
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadAttributes(ctx, byID); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) loadAttributes(ctx context.Context, byID map[string]*Product) error {
	if len(byID) == 0 {
		return nil
	}

	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, name, value, hex
		FROM product_attributes
		WHERE product_id = ANY($1)
		ORDER BY product_id, name
	`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var productID string
		var attr Attribute
		if err := rows.Scan(&productID, &attr.Name, &attr.Value, &attr.Hex); err != nil {
			return err
		}
		if p, ok := byID[productID]; ok {
			p.Attributes = append(p.Attributes, attr)
		}
	}
	return rows.Err()
}
