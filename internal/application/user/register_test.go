package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/xiebiao/bookstore-api/internal/domain/user"
	"github.com/xiebiao/bookstore-api/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookstore-api/internal/testutil"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

func newRegisterUseCase(t *testing.T) *RegisterUseCase {
	db := testutil.NewDB(t)
	return NewRegisterUseCase(user.NewServiceWithCost(mysql.NewUserRepository(db), bcrypt.MinCost))
}

func TestRegister(t *testing.T) {
	uc := newRegisterUseCase(t)
	ctx := context.Background()

	resp, err := uc.Execute(ctx, nil, RegisterRequest{Email: "reader@example.com", Password: "secret123", Name: "Reader"})
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.Equal(t, "USER", resp.Role)

	_, err = uc.Execute(ctx, nil, RegisterRequest{Email: "READER@example.com", Password: "secret123", Name: "Again"})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeDuplicate))
}

func TestRegister_AdminRole(t *testing.T) {
	uc := newRegisterUseCase(t)
	ctx := context.Background()
	req := RegisterRequest{Email: "boss@example.com", Password: "secret123", Name: "Boss", Role: "ADMIN"}

	_, err := uc.Execute(ctx, nil, req)
	assert.ErrorIs(t, err, user.ErrRoleEscalation)

	resp, err := uc.Execute(ctx, &user.Principal{UserID: 1, Role: user.RoleAdmin}, req)
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", resp.Role)
}
