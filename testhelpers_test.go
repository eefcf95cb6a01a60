//go:build integration

package main_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"renthub/internal/domain/booking"
	"renthub/internal/domain/item"
	"renthub/internal/domain/user"
	"renthub/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgres starts a PostgreSQL testcontainer, migrates the schema and
// returns a connected GORM DB. The container is terminated via t.Cleanup.
func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("renthub_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start PostgreSQL container")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Poll until GORM can actually connect and ping.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err != nil {
			return false
		}
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	require.NoError(t, db.AutoMigrate(
		&repository.UserModel{},
		&repository.RequestModel{},
		&repository.ItemModel{},
		&repository.BookingModel{},
		&repository.CommentModel{},
	))

	return db
}

// seedUser inserts a user and returns its id.
func seedUser(t *testing.T, db *gorm.DB, name string) uuid.UUID {
	t.Helper()
	repo := repository.NewGormUserRepository(db)
	u, err := user.NewUser(name, fmt.Sprintf("%s-%s@example.com", name, uuid.New().String()[:8]), time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), u))
	return u.ID()
}

// seedItem inserts an item owned by ownerID and returns its id.
func seedItem(t *testing.T, db *gorm.DB, ownerID uuid.UUID, name string, available bool) uuid.UUID {
	t.Helper()
	repo := repository.NewGormItemRepository(db)
	it, err := item.NewItem(ownerID, name, name+" description", available, nil, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), it))
	return it.ID()
}

// seedBooking inserts a booking with the given interval and status.
func seedBooking(t *testing.T, db *gorm.DB, itemID, bookerID uuid.UUID, start, end time.Time, status booking.Status) uuid.UUID {
	t.Helper()
	repo := repository.NewGormBookingRepository(db)
	now := time.Now().UTC()
	bk := booking.Reconstruct(uuid.New(), itemID, bookerID, start, end, status, 1, now, now)
	require.NoError(t, repo.Save(context.Background(), bk))
	return bk.ID()
}
