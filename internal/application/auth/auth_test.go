package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-api/internal/domain/user"
	"github.com/xiebiao/bookstore-api/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookstore-api/internal/testutil"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
	"github.com/xiebiao/bookstore-api/pkg/jwt"
)

// memSessionStore 内存会话存储
type memSessionStore struct {
	mu       sync.Mutex
	sessions map[uint]map[string]interface{}
	revoked  map[string]time.Duration
	saveErr  error
	getErr   error
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{
		sessions: map[uint]map[string]interface{}{},
		revoked:  map[string]time.Duration{},
	}
}

func (s *memSessionStore) SaveSession(_ context.Context, userID uint, data map[string]interface{}, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.sessions[userID] = data
	return nil
}

func (s *memSessionStore) GetSession(_ context.Context, userID uint) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	data, ok := s.sessions[userID]
	if !ok {
		return nil, apperrors.ErrUnauthorized
	}
	out := make(map[string]string, len(data))
	for k, v := range data {
		out[k] = fmt.Sprint(v)
	}
	return out, nil
}

func (s *memSessionStore) DeleteSession(_ context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}

func (s *memSessionStore) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[jti] = ttl
	return nil
}

func (s *memSessionStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.revoked[jti]
	return ok, nil
}

type fixture struct {
	db      *gorm.DB
	repo    user.Repository
	jwt     *jwt.Manager
	store   *memSessionStore
	login   *LoginUseCase
	refresh *RefreshUseCase
	logout  *LogoutUseCase
}

func newFixture(t *testing.T) *fixture {
	db := testutil.NewDB(t)
	repo := mysql.NewUserRepository(db)
	manager := jwt.NewManager("test-secret", 30*time.Minute, 7*24*time.Hour)
	store := newMemSessionStore()
	svc := user.NewServiceWithCost(repo, bcrypt.MinCost)
	return &fixture{
		db:      db,
		repo:    repo,
		jwt:     manager,
		store:   store,
		login:   NewLoginUseCase(svc, manager, store),
		refresh: NewRefreshUseCase(repo, manager, store),
		logout:  NewLogoutUseCase(store),
	}
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	u := testutil.UserFixture(t, f.db, "reader@example.com", "secret123", "USER")
	ctx := context.Background()

	resp, err := f.login.Execute(ctx, LoginRequest{Email: "reader@example.com", Password: "secret123", ClientIP: "10.0.0.1"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, resp.User.ID)
	assert.Equal(t, "USER", resp.User.Role)
	assert.Equal(t, "10.0.0.1", f.store.sessions[u.ID]["ip"])

	claims, err := f.jwt.Parse(resp.AccessToken, jwt.TypeAccess)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)

	_, err = f.login.Execute(ctx, LoginRequest{Email: "reader@example.com", Password: "wrong-pass1"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestLogin_SessionFailureIgnored(t *testing.T) {
	f := newFixture(t)
	testutil.UserFixture(t, f.db, "reader@example.com", "secret123", "USER")
	f.store.saveErr = errors.New("redis down")

	resp, err := f.login.Execute(context.Background(), LoginRequest{Email: "reader@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestRefresh(t *testing.T) {
	f := newFixture(t)
	u := testutil.UserFixture(t, f.db, "reader@example.com", "secret123", "USER")
	ctx := context.Background()

	login, err := f.login.Execute(ctx, LoginRequest{Email: "reader@example.com", Password: "secret123"})
	require.NoError(t, err)
	pair := &jwt.TokenPair{AccessToken: login.AccessToken, RefreshToken: login.RefreshToken}

	// access token 不能用来刷新
	_, err = f.refresh.Execute(ctx, pair.AccessToken)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))

	// 角色从用户表重新读取
	require.NoError(t, f.db.Model(&mysql.UserModel{}).Where("id = ?", u.ID).Update("role", "ADMIN").Error)
	next, err := f.refresh.Execute(ctx, pair.RefreshToken)
	require.NoError(t, err)
	claims, err := f.jwt.Parse(next.AccessToken, jwt.TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", claims.Role)

	require.NoError(t, f.repo.SoftDelete(ctx, u.ID))
	_, err = f.refresh.Execute(ctx, pair.RefreshToken)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUserNotFound))
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusUnauthorized, appErr.Status)
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	u := testutil.UserFixture(t, f.db, "reader@example.com", "secret123", "USER")
	ctx := context.Background()

	resp, err := f.login.Execute(ctx, LoginRequest{Email: "reader@example.com", Password: "secret123"})
	require.NoError(t, err)
	claims, err := f.jwt.Parse(resp.AccessToken, jwt.TypeAccess)
	require.NoError(t, err)

	require.NoError(t, f.logout.Execute(ctx, u.ID, claims))

	revoked, err := f.store.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.Greater(t, f.store.revoked[claims.ID], time.Duration(0))
	assert.NotContains(t, f.store.sessions, u.ID)
}

func TestRefresh_AfterLogoutRejected(t *testing.T) {
	f := newFixture(t)
	u := testutil.UserFixture(t, f.db, "reader@example.com", "secret123", "USER")
	ctx := context.Background()

	resp, err := f.login.Execute(ctx, LoginRequest{Email: "reader@example.com", Password: "secret123"})
	require.NoError(t, err)
	claims, err := f.jwt.Parse(resp.AccessToken, jwt.TypeAccess)
	require.NoError(t, err)

	_, err = f.refresh.Execute(ctx, resp.RefreshToken)
	require.NoError(t, err)

	require.NoError(t, f.logout.Execute(ctx, u.ID, claims))
	_, err = f.refresh.Execute(ctx, resp.RefreshToken)
	assert.ErrorIs(t, err, ErrSessionEnded)
}

func TestRefresh_SessionStoreDownAllowed(t *testing.T) {
	f := newFixture(t)
	testutil.UserFixture(t, f.db, "reader@example.com", "secret123", "USER")
	ctx := context.Background()

	resp, err := f.login.Execute(ctx, LoginRequest{Email: "reader@example.com", Password: "secret123"})
	require.NoError(t, err)

	f.store.getErr = apperrors.Wrap(errors.New("redis down"), "get session")
	pair, err := f.refresh.Execute(ctx, resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
}
