package repository

import (
	"context"
	"log/slog"

	"holonet/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, limit, offset int) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	SetActive(ctx context.Context, id uint, active bool) error
	Delete(ctx context.Context, id uint) error
}

type userRepository struct {
	base
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{base: newBase(db, "users")}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.observe(ctx, "Create", func(ctx context.Context) error {
		if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
			return r.writeErr(ctx, "Create", err)
		}
		r.log.LogWrite(ctx, "Create", slog.Uint64("id", uint64(user.ID)))
		return nil
	})
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.observe(ctx, "GetByID", func(ctx context.Context) error {
		if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
			return r.readErr(ctx, "GetByID", "User", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.observe(ctx, "GetByEmail", func(ctx context.Context) error {
		if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
			return r.readErr(ctx, "GetByEmail", "User", email, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	var users []models.User
	err := r.observe(ctx, "List", func(ctx context.Context) error {
		if err := page(r.db.WithContext(ctx), "id", limit, offset).Find(&users).Error; err != nil {
			return r.readErr(ctx, "List", "User", nil, err)
		}
		return nil
	})
	return users, err
}

// Update writes every mutable column. A non-empty password must already be a
// bcrypt hash; an empty one leaves the stored hash alone. subscription_date is
// never rewritten.
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	omit := []string{"id", "subscription_date", clause.Associations}
	if user.Password == "" {
		omit = append(omit, "password")
	}
	return r.observe(ctx, "Update", func(ctx context.Context) error {
		result := r.db.WithContext(ctx).Model(user).
			Select("*").Omit(omit...).
			Updates(user)
		if err := affected(result, "User", user.ID); err != nil {
			return r.writeErr(ctx, "Update", err)
		}
		r.log.LogWrite(ctx, "Update", slog.Uint64("id", uint64(user.ID)))
		return nil
	})
}

// SetActive flips is_active. The column defaults to true on insert, so this is
// the way to store an inactive user.
func (r *userRepository) SetActive(ctx context.Context, id uint, active bool) error {
	return r.observe(ctx, "SetActive", func(ctx context.Context) error {
		result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("is_active", active)
		if err := affected(result, "User", id); err != nil {
			return r.writeErr(ctx, "SetActive", err)
		}
		r.log.LogWrite(ctx, "SetActive", slog.Uint64("id", uint64(id)), slog.Bool("active", active))
		return nil
	})
}

// Delete removes the user and, through the junction cascades, its favorites.
// A user who still authors posts cannot be deleted.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.observe(ctx, "Delete", func(ctx context.Context) error {
		result := r.db.WithContext(ctx).Delete(&models.User{}, id)
		if err := affected(result, "User", id); err != nil {
			return r.writeErr(ctx, "Delete", err)
		}
		r.log.LogWrite(ctx, "Delete", slog.Uint64("id", uint64(id)))
		return nil
	})
}
