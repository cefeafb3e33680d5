package repository

import (
	"context"

	"github.com/abdalla1234567890/chatbot/internal/model"

	"gorm.io/gorm"
)

// UserRepository defines the interface for data access of User entities
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByCode(ctx context.Context, code string) (*model.User, error)
	GetByIDHash(ctx context.Context, idHash string) (*model.User, error)
	// GetByRef resolves a user by identity hash first, then by plain code.
	// Admin mutation endpoints accept either form.
	GetByRef(ctx context.Context, ref string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, user *model.User) error
	CountAdmins(ctx context.Context) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new instance of UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return GetDB(ctx, r.db).Create(user).Error
}

func (r *userRepository) GetByCode(ctx context.Context, code string) (*model.User, error) {
	var user model.User
	if err := GetDB(ctx, r.db).First(&user, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByIDHash(ctx context.Context, idHash string) (*model.User, error) {
	var user model.User
	if err := GetDB(ctx, r.db).First(&user, "id_hash = ?", idHash).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByRef(ctx context.Context, ref string) (*model.User, error) {
	user, err := r.GetByIDHash(ctx, ref)
	if err == nil {
		return user, nil
	}
	return r.GetByCode(ctx, ref)
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := GetDB(ctx, r.db).Order("created_at asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return GetDB(ctx, r.db).Save(user).Error
}

func (r *userRepository) Delete(ctx context.Context, user *model.User) error {
	return GetDB(ctx, r.db).Delete(user).Error
}

func (r *userRepository) CountAdmins(ctx context.Context) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.User{}).Where("is_admin = ?", 1).Count(&count).Error
	return count, err
}
