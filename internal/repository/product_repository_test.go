package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menu-admin/internal/domain"
)

var productColumns = []string{
	"id", "uuid", "name", "info", "price", "image_url", "category_id",
	"category_name", "created_at", "updated_at",
}

func TestProductRepository_ListResolvesJoin(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	now := time.Now()
	u1, u2 := uuid.New(), uuid.New()
	rows := sqlmock.NewRows(productColumns).
		AddRow(int64(1), u1, "Margherita", "Tomato and mozzarella", 9.5, "", int64(1), "Pizza", now, now).
		AddRow(int64(2), u2, "Orphan Dish", "No category anymore", 5.0, "", int64(99), nil, now, now)

	mock.ExpectQuery(`FROM product p\s+LEFT JOIN category c`).WillReturnRows(rows)

	products, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "Pizza", products[0].CategoryName)
	assert.Equal(t, u1, products[0].UUID)

	// A missed join yields the fallback name, never an empty string
	assert.Equal(t, UnknownCategoryName, products[1].CategoryName)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_InsertReturnsAssignedID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	now := time.Now()
	product := &domain.Product{
		UUID:       uuid.New(),
		Name:       "Margherita",
		Info:       "Tomato and mozzarella",
		Price:      9.5,
		ImageURL:   "https://cdn.test/images/margherita.png",
		CategoryID: 1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	mock.ExpectQuery(`INSERT INTO product`).
		WithArgs(product.UUID, product.Name, product.Info, product.Price,
			product.ImageURL, product.CategoryID, product.CreatedAt, product.UpdatedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	inserted, err := repo.Insert(context.Background(), product)
	require.NoError(t, err)
	assert.Equal(t, int64(11), inserted.ID)
	assert.Equal(t, product.UUID, inserted.UUID)
	assert.Equal(t, product.Name, inserted.Name)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_UpdatePreservesUUIDAndCreatedAt(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	created := time.Now().Add(-time.Hour)
	updatedAt := time.Now()
	storedUUID := uuid.New()

	product := &domain.Product{
		Name:       "Margherita",
		Info:       "Extra basil",
		Price:      10.0,
		ImageURL:   "",
		CategoryID: 1,
		UpdatedAt:  updatedAt,
	}

	returned := sqlmock.NewRows([]string{
		"id", "uuid", "name", "info", "price", "image_url", "category_id", "created_at", "updated_at",
	}).AddRow(int64(11), storedUUID, "Margherita", "Extra basil", 10.0, "", int64(1), created, updatedAt)

	mock.ExpectQuery(`UPDATE product`).
		WithArgs(int64(11), product.Name, product.Info, product.Price,
			product.ImageURL, product.CategoryID, product.UpdatedAt).
		WillReturnRows(returned)

	updated, err := repo.Update(context.Background(), 11, product)
	require.NoError(t, err)
	assert.Equal(t, storedUUID, updated.UUID)
	assert.Equal(t, created, updated.CreatedAt)
	assert.Equal(t, "Extra basil", updated.Info)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_UpdateMissingRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectQuery(`UPDATE product`).
		WillReturnError(sql.ErrNoRows)

	updated, err := repo.Update(context.Background(), 404, &domain.Product{Name: "Ghost"})
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Nil(t, updated)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_DoubleDelete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectExec(`DELETE FROM product WHERE id = \$1`).
		WithArgs(int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM product WHERE id = \$1`).
		WithArgs(int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), 11))

	err := repo.Delete(context.Background(), 11)
	assert.ErrorIs(t, err, ErrProductNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_FindByIDMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectQuery(`SELECT id, uuid, name, info, price, image_url, category_id, created_at, updated_at\s+FROM product`).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	product, err := repo.FindByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Nil(t, product)

	require.NoError(t, mock.ExpectationsWereMet())
}
