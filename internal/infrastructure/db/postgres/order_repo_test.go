package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopstream/storefront/internal/domain"
)

func TestOrderRepo_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepo(db)
	now := time.Now().UTC()

	order := domain.Order{
		ID:               "o1",
		UserID:           "u1",
		TotalCents:       17998,
		PaymentSessionID: "cs_test_1",
		Items: []domain.OrderItem{
			{ProductID: "p1", Quantity: 2, PriceCents: 4999},
			{ProductID: "p2", Quantity: 1, PriceCents: 8000},
		},
	}

	t.Run("inserts_order_and_items", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO orders").
			WithArgs("o1", "u1", int64(17998), "cs_test_1").
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))
		mock.ExpectExec("INSERT INTO order_items").
			WithArgs("o1", "p1", 2, int64(4999)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO order_items").
			WithArgs("o1", "p2", 1, int64(8000)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		created, err := repo.Create(context.Background(), order)
		require.NoError(t, err)
		assert.Equal(t, "o1", created.ID)
		assert.Equal(t, now, created.CreatedAt)
	})

	t.Run("replay_returns_existing_order", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO orders").
			WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "orders_payment_session_id_key"`))
		mock.ExpectQuery("SELECT (.+) FROM orders WHERE payment_session_id =").
			WithArgs("cs_test_1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "total_cents", "payment_session_id", "created_at"}).
				AddRow("o1", "u1", int64(17998), "cs_test_1", now))
		mock.ExpectQuery("SELECT (.+) FROM order_items").
			WithArgs("o1").
			WillReturnRows(sqlmock.NewRows([]string{"product_id", "quantity", "price_cents"}).
				AddRow("p1", 2, int64(4999)).
				AddRow("p2", 1, int64(8000)))
		mock.ExpectRollback()

		existing, err := repo.Create(context.Background(), order)
		require.NoError(t, err)
		assert.Equal(t, "o1", existing.ID)
		assert.Len(t, existing.Items, 2)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_GetBySessionID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepo(db)

	mock.ExpectQuery("SELECT (.+) FROM orders WHERE payment_session_id =").
		WithArgs("cs_missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetBySessionID(context.Background(), "cs_missing")
	assert.True(t, domain.Is(err, "order_not_found"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_SalesTotals(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepo(db)

	mock.ExpectQuery("SELECT COUNT(.+) FROM orders").
		WillReturnRows(sqlmock.NewRows([]string{"count", "sum"}).AddRow(7, 123400))

	sales, revenue, err := repo.SalesTotals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), sales)
	assert.Equal(t, int64(123400), revenue)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_DailySales(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepo(db)

	start := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 6)
	day := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT date_trunc").
		WithArgs(start, end).
		WillReturnRows(sqlmock.NewRows([]string{"day", "count", "sum"}).
			AddRow(day, 3, 45000))

	out, err := repo.DailySales(context.Background(), start, end)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, domain.DailySales{Day: day, Sales: 3, RevenueCents: 45000}, out[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}
