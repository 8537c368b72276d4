package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"kledje/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return db, mock
}

func TestUserRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`INSERT INTO "users"`).WillReturnResult(sqlmock.NewResult(0, 1))

	user := &domain.User{Name: "Mona", Email: "mona@example.com", Password: "hash"}
	require.NoError(t, repo.Create(context.Background(), user))

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`INSERT INTO "users"`).WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := repo.Create(context.Background(), &domain.User{Name: "Mona", Email: "mona@example.com"})
	require.Error(t, err)

	var pgErr *pgconn.PgError
	assert.ErrorAs(t, err, &pgErr)
	assert.True(t, domain.IsKind(err, domain.KindUpstreamStore))
}

func TestUserRepository_FindByEmailNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WithArgs("ghost@example.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByEmail(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password", "role"}).
			AddRow("3f1c2b9e-6f0a-4a55-9a55-8d1c2f6e7a10", "Mona", "mona@example.com", "hash", "admin"))

	user, err := repo.FindByID(context.Background(), "3f1c2b9e-6f0a-4a55-9a55-8d1c2f6e7a10")
	require.NoError(t, err)
	assert.Equal(t, "Mona", user.Name)
	assert.True(t, user.IsAdmin())
}

func TestUserRepository_UpdateMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`UPDATE "users" SET "name"=\$1,"updated_at"=\$2 WHERE id = \$3`).
		WithArgs("New", sqlmock.AnyArg(), "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &domain.User{ID: "missing", Name: "New"}, "name")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_CreateAndCategories(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectExec(`INSERT INTO "products"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT DISTINCT "category" FROM "products" WHERE category IS NOT NULL ORDER BY category`).
		WillReturnRows(sqlmock.NewRows([]string{"category"}).AddRow("kleija").AddRow("maamoul"))

	product := &domain.Product{
		Name:        "كليجة",
		Price:       45,
		Category:    "kleija",
		Ingredients: datatypes.JSONSlice[string]{"flour", "dates"},
		InStock:     true,
	}
	require.NoError(t, repo.Create(context.Background(), product))
	assert.NotEmpty(t, product.ID)

	categories, err := repo.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"kleija", "maamoul"}, categories)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_UpdateAndDeleteMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProductRepository(db)

	mock.ExpectExec(`UPDATE "products" SET`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "products" WHERE id = \$1`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &domain.Product{ID: "missing", Name: "x", Price: 1, Category: "c"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = repo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOfferRepository_ListActive(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOfferRepository(db)
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "offers" WHERE "active" = \$1 AND \("end_date" IS NULL OR "end_date" > \$2\) ORDER BY "created_at" DESC`).
		WithArgs(true, now).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "discount", "active"}).
			AddRow("5d6e7f80-1a2b-4c3d-9e8f-0a1b2c3d4e5f", "عرض العيد", 20, true))

	offers, err := repo.ListActive(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, 20, offers[0].Discount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrdersRepository_Stats(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrdersRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(6))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(total\), 0\) FROM "orders" WHERE status = \$1`).
		WithArgs(domain.OrderStatusDelivered).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(125.5))
	mock.ExpectQuery(`SELECT status, COUNT\(\*\) AS count FROM "orders" WHERE status IS NOT NULL GROUP BY "status"`).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("placed", 3).
			AddRow("delivered", 2).
			AddRow("cancelled", 1))

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(6), stats.TotalOrders)
	assert.Equal(t, 125.5, stats.TotalRevenue)
	assert.Equal(t, map[string]int64{"placed": 3, "delivered": 2, "cancelled": 1}, stats.OrdersByStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrdersRepository_GetOrderStoreFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrdersRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "orders"`).WillReturnError(errors.New("connection refused"))

	_, err := repo.GetOrder(context.Background(), "KLD-1717000000000")
	assert.True(t, domain.IsKind(err, domain.KindUpstreamStore))
}

func TestSettingsRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSettingsRepository(db)

	mock.ExpectExec(`UPDATE "site_settings" SET .*"hero_title"=.* WHERE id = \$`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), map[string]any{
		"hero_title":   "كليجة بيتي",
		"contact_info": datatypes.NewJSONType(domain.ContactInfo{Phone: "01012345678"}),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
