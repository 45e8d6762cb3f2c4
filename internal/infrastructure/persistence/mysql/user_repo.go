package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-api/internal/domain/user"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

// userRepository 用户仓储实现
// 邮箱唯一性由数据库UNIQUE索引保证（而非应用层SELECT再INSERT）
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
// 返回domain层的接口类型（依赖倒置）
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	model := toUserModel(u)
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return user.ErrEmailDuplicate.WithDetails(map[string]interface{}{"email": u.Email})
		}
		return apperrors.Wrap(err, "create user")
	}

	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	u.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var model UserModel
	err := conn(ctx, r.db).Scopes(notDeleted("users")).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "find user")
	}
	return toUserEntity(&model), nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserModel
	err := conn(ctx, r.db).Scopes(notDeleted("users")).Where("email = ?", email).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "find user by email")
	}
	return toUserEntity(&model), nil
}

func (r *userRepository) List(ctx context.Context) ([]*user.User, error) {
	var models []UserModel
	if err := conn(ctx, r.db).Scopes(notDeleted("users")).Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "list users")
	}
	users := make([]*user.User, len(models))
	for i := range models {
		users[i] = toUserEntity(&models[i])
	}
	return users, nil
}

// Update 只更新资料字段，邮箱、角色、密码不在这里修改
func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	result := conn(ctx, r.db).Model(&UserModel{}).
		Scopes(notDeleted("users")).
		Where("id = ?", u.ID).
		Updates(map[string]interface{}{
			"name":         u.Name,
			"birth_date":   u.BirthDate,
			"gender":       u.Gender,
			"address":      u.Address,
			"phone_number": u.PhoneNumber,
			"updated_at":   u.UpdatedAt,
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "update user")
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) SoftDelete(ctx context.Context, id uint) error {
	now := time.Now()
	result := conn(ctx, r.db).Model(&UserModel{}).
		Scopes(notDeleted("users")).
		Where("id = ?", id).
		Updates(map[string]interface{}{"deleted_at": now, "updated_at": now})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "delete user")
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func toUserModel(u *user.User) *UserModel {
	return &UserModel{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		BirthDate:    u.BirthDate,
		Gender:       u.Gender,
		Address:      u.Address,
		PhoneNumber:  u.PhoneNumber,
		Role:         string(u.Role),
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
		DeletedAt:    u.DeletedAt,
	}
}

func toUserEntity(m *UserModel) *user.User {
	return &user.User{
		ID:           m.ID,
		Email:        m.Email,
		Name:         m.Name,
		Role:         user.Role(m.Role),
		PasswordHash: m.PasswordHash,
		BirthDate:    m.BirthDate,
		Gender:       m.Gender,
		Address:      m.Address,
		PhoneNumber:  m.PhoneNumber,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		DeletedAt:    m.DeletedAt,
	}
}
