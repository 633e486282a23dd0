package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productColumns() []string {
	return []string{"id", "name", "description", "price", "currency", "image_url", "status"}
}

func TestRepository_ProductByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(productColumns()).
			AddRow("prod-1", "Genesis Tee", "First drop", 29.99, "USD", nil, "ACTIVE")

		mock.ExpectQuery("SELECT id, name, description, price, currency, image_url, status").
			WithArgs("prod-1").
			WillReturnRows(rows)
		mock.ExpectQuery("SELECT product_id, name, value, hex FROM product_attributes").
			WillReturnRows(sqlmock.NewRows([]string{"product_id", "name", "value", "hex"}).
				AddRow("prod-1", "Color", "Black", "#000000").
				AddRow("prod-1", "Size", "M", nil))

		p, err := repo.ProductByID(context.Background(), "prod-1")
		assert.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "Genesis Tee", p.Name)
		assert.Len(t, p.Attributes, 2)
		assert.Equal(t, "Black", OptionValue(p.Attributes, "color"))
		assert.Equal(t, "#000000", AttributeHex(p.Attributes, "Color"))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, description, price, currency, image_url, status").
			WithArgs("prod-x").
			WillReturnRows(sqlmock.NewRows(productColumns()))

		p, err := repo.ProductByID(context.Background(), "prod-x")
		assert.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, description, price, currency, image_url, status").
			WillReturnError(errors.New("db error"))

		_, err := repo.ProductByID(context.Background(), "prod-1")
		assert.Error(t, err)
	})
}

func TestRepository_ProductsByIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(productColumns()).
			AddRow("prod-1", "Genesis Tee", nil, 29.99, "USD", nil, "ACTIVE").
			AddRow("prod-2", "Pixel Hoodie", nil, 59.99, "USD", nil, "ACTIVE")

		mock.ExpectQuery("SELECT id, name, description, price, currency, image_url, status").
			WithArgs(sqlmock.AnyArg()).
			WillReturnRows(rows)
		mock.ExpectQuery("SELECT product_id, name, value, hex FROM product_attributes").
			WillReturnRows(sqlmock.NewRows([]string{"product_id", "name", "value", "hex"}))

		products, err := repo.ProductsByIDs(context.Background(), []string{"prod-1", "prod-2", "prod-gone"})
		assert.NoError(t, err)
		assert.Len(t, products, 2)
	})

	t.Run("EmptyInput", func(t *testing.T) {
		products, err := repo.ProductsByIDs(context.Background(), nil)
		assert.NoError(t, err)
		assert.Empty(t, products)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, description, price, currency, image_url, status").
			WillReturnError(errors.New("db error"))

		_, err := repo.ProductsByIDs(context.Background(), []string{"prod-1"})
		assert.Error(t, err)
	})
}
