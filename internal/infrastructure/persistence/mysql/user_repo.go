package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yushu/bookadmin/internal/domain/user"
	apperrors "github.com/yushu/bookadmin/pkg/errors"
)

// userRepository 用户仓储实现(MySQL)
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

// Create 创建用户
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	model := &UserModel{
		Name:     u.Name,
		NickName: u.NickName,
		Password: u.Password,
		Role:     string(u.Role),
		Status:   string(u.Status),
		Sex:      string(u.Sex),
	}

	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return user.ErrNameDuplicate
		}
		return apperrors.Wrap(err, "创建用户失败")
	}

	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	u.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找用户
func (r *userRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var model UserModel
	err := dbFromContext(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "查询用户失败")
	}

	return toUserEntity(&model), nil
}

// FindByName 根据用户名查找用户(登录场景)
func (r *userRepository) FindByName(ctx context.Context, name string) (*user.User, error) {
	var model UserModel
	err := dbFromContext(ctx, r.db).Where("name = ?", name).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "查询用户失败")
	}

	return toUserEntity(&model), nil
}

// Update 更新用户
func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	result := dbFromContext(ctx, r.db).Model(&UserModel{ID: u.ID}).
		Select("nick_name", "password", "role", "status", "sex").
		Updates(&UserModel{
			NickName: u.NickName,
			Password: u.Password,
			Role:     string(u.Role),
			Status:   string(u.Status),
			Sex:      string(u.Sex),
		})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新用户失败")
	}

	if result.RowsAffected == 0 {
		var count int64
		dbFromContext(ctx, r.db).Model(&UserModel{}).Where("id = ?", u.ID).Count(&count)
		if count == 0 {
			return user.ErrUserNotFound
		}
	}

	return nil
}

// Delete 删除用户(软删除)
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	result := dbFromContext(ctx, r.db).Delete(&UserModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除用户失败")
	}

	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// List 分页查询用户列表
func (r *userRepository) List(ctx context.Context, params user.ListParams) ([]*user.User, int64, error) {
	var models []UserModel
	var total int64

	query := dbFromContext(ctx, r.db).Model(&UserModel{})

	if params.Name != "" {
		query = query.Where("name LIKE ? OR nick_name LIKE ?",
			"%"+params.Name+"%", "%"+params.Name+"%")
	}
	if params.Status != nil {
		query = query.Where("status = ?", string(*params.Status))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询用户总数失败")
	}

	query = query.Order("created_at DESC")

	if !params.All {
		offset := (params.Page - 1) * params.PageSize
		query = query.Limit(params.PageSize).Offset(offset)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询用户列表失败")
	}

	users := make([]*user.User, len(models))
	for i := range models {
		users[i] = toUserEntity(&models[i])
	}

	return users, total, nil
}

// toUserEntity GORM模型 → 领域实体
func toUserEntity(model *UserModel) *user.User {
	return &user.User{
		ID:        model.ID,
		Name:      model.Name,
		NickName:  model.NickName,
		Password:  model.Password,
		Role:      user.Role(model.Role),
		Status:    user.Status(model.Status),
		Sex:       user.Sex(model.Sex),
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
