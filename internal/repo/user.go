package repo

import (
	"context"

	"github.com/crucial707/watchlist/internal/models"
	"gorm.io/gorm"
)

// ==========================
// UserRepo
// ==========================
type UserRepo struct {
	DB *gorm.DB
}

// ==========================
// Constructor
// ==========================
func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{DB: db}
}

// ==========================
// Create User
// ==========================
func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

// ==========================
// First User
// ==========================

// First returns the user with the lowest id. The application has a single
// meaningful user, so this is "the" user.
func (r *UserRepo) First(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// ==========================
// Get By ID
// ==========================
func (r *UserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// ==========================
// Update Name
// ==========================
func (r *UserRepo) UpdateName(ctx context.Context, id int, name string) error {
	return r.DB.WithContext(ctx).
		Model(&models.User{ID: id}).
		Update("name", name).
		Error
}

// ==========================
// Update Credentials
// ==========================
func (r *UserRepo) UpdateCredentials(ctx context.Context, user *models.User) error {
	return r.DB.WithContext(ctx).
		Model(user).
		Updates(map[string]interface{}{"username": user.Username, "password_hash": user.PasswordHash}).
		Error
}
