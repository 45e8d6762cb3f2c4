package user

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

// memRepo 内存实现，只用于领域服务测试
type memRepo struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*User
}

func newMemRepo() *memRepo {
	return &memRepo{users: map[uint]*User{}}
}

func (r *memRepo) Create(_ context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return ErrEmailDuplicate
		}
	}
	r.nextID++
	u.ID = r.nextID
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memRepo) FindByID(_ context.Context, id uint) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.IsDeleted() {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memRepo) FindByEmail(_ context.Context, email string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email && !u.IsDeleted() {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *memRepo) List(context.Context) ([]*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*User
	for id := uint(1); id <= r.nextID; id++ {
		if u, ok := r.users[id]; ok && !u.IsDeleted() {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *memRepo) Update(_ context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memRepo) SoftDelete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.IsDeleted() {
		return ErrUserNotFound
	}
	now := time.Now()
	u.DeletedAt = &now
	return nil
}

func newTestService() (Service, *memRepo) {
	repo := newMemRepo()
	return NewServiceWithCost(repo, bcrypt.MinCost), repo
}

func validParams() RegisterParams {
	return RegisterParams{Email: " Alice@Example.com ", Password: "secret123", Name: "Alice"}
}

func TestRegister_Success(t *testing.T) {
	svc, _ := newTestService()

	u, err := svc.Register(context.Background(), nil, validParams())
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, RoleUser, u.Role)
	assert.NotEqual(t, "secret123", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret123")))
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestService()

	p := validParams()
	p.Password = "onlyletters"
	_, err := svc.Register(context.Background(), nil, p)
	assert.ErrorIs(t, err, ErrWeakPassword)

	p = validParams()
	p.Email = "not-an-email"
	_, err = svc.Register(context.Background(), nil, p)
	assert.ErrorIs(t, err, ErrInvalidEmail)

	p = validParams()
	p.Name = ""
	_, err = svc.Register(context.Background(), nil, p)
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Register(context.Background(), nil, validParams())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), nil, validParams())
	assert.True(t, apperrors.HasCode(err, apperrors.CodeDuplicate))
}

func TestRegister_AdminRoleRequiresAdmin(t *testing.T) {
	svc, _ := newTestService()
	p := validParams()
	p.Role = RoleAdmin

	_, err := svc.Register(context.Background(), nil, p)
	assert.ErrorIs(t, err, ErrRoleEscalation)

	_, err = svc.Register(context.Background(), &Principal{UserID: 9, Role: RoleUser}, p)
	assert.ErrorIs(t, err, ErrRoleEscalation)

	u, err := svc.Register(context.Background(), &Principal{UserID: 9, Role: RoleAdmin}, p)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, u.Role)
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newTestService()
	created, err := svc.Register(context.Background(), nil, validParams())
	require.NoError(t, err)

	u, err := svc.Authenticate(context.Background(), "ALICE@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)

	_, err = svc.Authenticate(context.Background(), "alice@example.com", "wrong-pass1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_DeletedUserRejected(t *testing.T) {
	svc, _ := newTestService()
	created, err := svc.Register(context.Background(), nil, validParams())
	require.NoError(t, err)

	admin := Principal{UserID: 100, Role: RoleAdmin}
	require.NoError(t, svc.Delete(context.Background(), admin, created.ID))

	_, err = svc.Authenticate(context.Background(), "alice@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestOwnershipRules(t *testing.T) {
	svc, _ := newTestService()
	created, err := svc.Register(context.Background(), nil, validParams())
	require.NoError(t, err)

	self := Principal{UserID: created.ID, Role: RoleUser}
	other := Principal{UserID: created.ID + 1, Role: RoleUser}

	_, err = svc.Get(context.Background(), other, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	renamed, err := svc.Rename(context.Background(), self, created.ID, "Alice B")
	require.NoError(t, err)
	assert.Equal(t, "Alice B", renamed.Name)

	_, err = svc.List(context.Background(), self)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.ErrorIs(t, svc.Delete(context.Background(), self, created.ID), apperrors.ErrForbidden)
}

func TestResolveTarget(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	created, err := svc.Register(ctx, nil, validParams())
	require.NoError(t, err)

	self := Principal{UserID: 50, Role: RoleUser}
	admin := Principal{UserID: 60, Role: RoleAdmin}

	id, err := svc.ResolveTarget(ctx, self, nil)
	require.NoError(t, err)
	assert.Equal(t, uint(50), id)

	_, err = svc.ResolveTarget(ctx, self, &created.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	id, err = svc.ResolveTarget(ctx, admin, &created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, id)

	missing := uint(999)
	_, err = svc.ResolveTarget(ctx, admin, &missing)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
