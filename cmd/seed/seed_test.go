package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/xiebiao/bookstore-api/internal/domain/user"
	"github.com/xiebiao/bookstore-api/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookstore-api/internal/testutil"
)

func TestSeeder_Idempotent(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	users := user.NewServiceWithCost(mysql.NewUserRepository(db), bcrypt.MinCost)
	seeder := NewSeeder(db, users)

	res, err := seeder.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, Result{Users: 2, Categories: 1, Authors: 1, Books: 1}, res)

	res, err = seeder.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)

	var bookCount int64
	require.NoError(t, db.Model(&mysql.BookModel{}).Count(&bookCount).Error)
	assert.Equal(t, int64(1), bookCount)

	var seeded mysql.BookModel
	require.NoError(t, db.Where("title = ?", "Seed Book").First(&seeded).Error)
	assert.Equal(t, "15000.00", seeded.Price.StringFixed(2))
	assert.Equal(t, 50, seeded.StockCnt)

	admin, err := users.Authenticate(ctx, "admin@example.com", "Admin123!")
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, admin.Role)

	u1, err := users.Authenticate(ctx, "user1@example.com", "User1123!")
	require.NoError(t, err)
	assert.Equal(t, user.RoleUser, u1.Role)
}
