// Package seed provides helpers to create demo data for the Holonet database.
// These helpers are intended for development and testing only.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"holonet/internal/models"
	"holonet/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
)

// DefaultPassword is the password every generated user is given.
const DefaultPassword = "password123"

const maxEmailAttempts = 5

// Factory builds users and posts with fake content and persists them
// through the repositories.
type Factory struct {
	store        *repository.Store
	faker        *gofakeit.Faker
	passwordCost int
	maxDays      int
}

// NewFactory creates a Factory. A zero seed picks a random one.
func NewFactory(store *repository.Store, seed int64, passwordCost int) *Factory {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if passwordCost == 0 {
		passwordCost = models.PasswordCost
	}
	return &Factory{store: store, faker: gofakeit.New(seed), passwordCost: passwordCost, maxDays: 90}
}

// BuildUser constructs an unsaved user with a hashed DefaultPassword.
func (f *Factory) BuildUser(overrides ...func(*models.User)) (*models.User, error) {
	first, last := f.faker.FirstName(), f.faker.LastName()
	user := &models.User{
		Email:     f.email(first, last),
		FirstName: first,
		LastName:  last,
	}
	if err := user.SetPasswordWithCost(DefaultPassword, f.passwordCost); err != nil {
		return nil, err
	}
	for _, override := range overrides {
		override(user)
	}
	return user, nil
}

// CreateUser builds and persists a user, drawing a new email when the
// generated one is already taken.
func (f *Factory) CreateUser(ctx context.Context, overrides ...func(*models.User)) (*models.User, error) {
	var lastErr error
	for attempt := 0; attempt < maxEmailAttempts; attempt++ {
		user, err := f.BuildUser(overrides...)
		if err != nil {
			return nil, err
		}
		err = f.store.Users.Create(ctx, user)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, models.ErrUniqueViolation) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("create user: %w", lastErr)
}

// BuildPost constructs an unsaved post by author, dated within the last
// maxDays days.
func (f *Factory) BuildPost(author *models.User, overrides ...func(*models.Post)) *models.Post {
	back := time.Duration(f.faker.Number(0, f.maxDays*24*60)) * time.Minute
	post := &models.Post{
		Title:     strings.TrimSuffix(f.faker.Sentence(f.faker.Number(3, 8)), "."),
		Content:   f.faker.Paragraph(1, f.faker.Number(2, 5), 10, "\n"),
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond).Add(-back),
		UserID:    author.ID,
		Author:    author,
	}
	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePost builds and persists a post by author.
func (f *Factory) CreatePost(ctx context.Context, author *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := f.BuildPost(author, overrides...)
	if err := f.store.Posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// pick returns up to n distinct indexes in [0, size).
func (f *Factory) pick(size, n int) []int {
	if n > size {
		n = size
	}
	perm := make([]int, size)
	for i := range perm {
		perm[i] = i
	}
	for i := size - 1; i > 0; i-- {
		j := f.faker.Number(0, i)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm[:n]
}

func (f *Factory) email(first, last string) string {
	local := strings.ToLower(strings.Map(func(r rune) rune {
		if r == ' ' || r == '\'' {
			return -1
		}
		return r
	}, first+"."+last))
	return fmt.Sprintf("%s%d@%s", local, f.faker.Number(100, 9999), f.faker.DomainName())
}
