package repository

import (
	"context"
	"log/slog"

	"holonet/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines persistence operations for posts. Loaded posts carry
// their author so they can be projected.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, limit, offset int) ([]models.Post, error)
	ListByAuthor(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	base
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{base: newBase(db, "posts")}
}

// Create inserts the post. A loaded Author only supplies its ID.
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.observe(ctx, "Create", func(ctx context.Context) error {
		if post.Author != nil && post.UserID == 0 {
			post.UserID = post.Author.ID
		}
		if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error; err != nil {
			return r.writeErr(ctx, "Create", err)
		}
		r.log.LogWrite(ctx, "Create", slog.Uint64("id", uint64(post.ID)), slog.Uint64("user_id", uint64(post.UserID)))
		return nil
	})
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.observe(ctx, "GetByID", func(ctx context.Context) error {
		if err := r.db.WithContext(ctx).Preload("Author").First(&post, id).Error; err != nil {
			return r.readErr(ctx, "GetByID", "Post", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	err := r.observe(ctx, "List", func(ctx context.Context) error {
		err := page(r.db.WithContext(ctx).Preload("Author"), "id", limit, offset).Find(&posts).Error
		if err != nil {
			return r.readErr(ctx, "List", "Post", nil, err)
		}
		return nil
	})
	return posts, err
}

func (r *postRepository) ListByAuthor(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	err := r.observe(ctx, "ListByAuthor", func(ctx context.Context) error {
		q := r.db.WithContext(ctx).Preload("Author").Where("user_id = ?", userID)
		if err := page(q, "id", limit, offset).Find(&posts).Error; err != nil {
			return r.readErr(ctx, "ListByAuthor", "Post", nil, err)
		}
		return nil
	})
	return posts, err
}

// Update rewrites title, content and author. created_at is never rewritten.
// A loaded Author that no longer matches UserID is reloaded.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	return r.observe(ctx, "Update", func(ctx context.Context) error {
		db := r.db.WithContext(ctx)
		result := db.Model(post).
			Select("title", "content", "user_id").
			Updates(post)
		if err := affected(result, "Post", post.ID); err != nil {
			return r.writeErr(ctx, "Update", err)
		}
		if post.Author != nil && post.Author.ID != post.UserID {
			var author models.User
			if err := db.First(&author, post.UserID).Error; err != nil {
				return r.readErr(ctx, "Update", "User", post.UserID, err)
			}
			post.Author = &author
		}
		r.log.LogWrite(ctx, "Update", slog.Uint64("id", uint64(post.ID)))
		return nil
	})
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.observe(ctx, "Delete", func(ctx context.Context) error {
		result := r.db.WithContext(ctx).Delete(&models.Post{}, id)
		if err := affected(result, "Post", id); err != nil {
			return r.writeErr(ctx, "Delete", err)
		}
		r.log.LogWrite(ctx, "Delete", slog.Uint64("id", uint64(id)))
		return nil
	})
}
