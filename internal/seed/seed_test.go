package seed

import (
	"context"
	"testing"

	"holonet/internal/models"
	"holonet/internal/repository"
	"holonet/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newSeeder(t *testing.T) (*Seeder, *repository.Store) {
	t.Helper()
	store := repository.NewStore(testutil.NewSQLiteDB(t), nil)
	s, err := NewSeeder(store, nil)
	require.NoError(t, err)
	return s, store
}

func testOptions() Options {
	return Options{NumUsers: 5, NumPosts: 12, Seed: 42, PasswordCost: bcrypt.MinCost}
}

func TestDefaultCatalog(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)
	assert.Len(t, c.Planets, 10)
	assert.Len(t, c.Vehicles, 8)
	assert.Len(t, c.Characters, 10)
	assert.Equal(t, "Luke Skywalker", c.Characters[0].Name)
	assert.Equal(t, "Tatooine", c.Characters[0].Origin)
}

func TestParseCatalog_RejectsDanglingReferences(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown origin", "planets: [{name: Hoth}]\ncharacters: [{name: Luke, origin: Tatooine}]"},
		{"unknown vehicle", "vehicles: [{name: AT-AT}]\ncharacters: [{name: Luke, vehicles: [X-wing]}]"},
		{"unnamed planet", "planets: [{climate: arid}]"},
		{"malformed", "planets: {"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestSeeder_Run(t *testing.T) {
	s, store := newSeeder(t)
	ctx := context.Background()

	report, err := s.Run(ctx, testOptions())
	require.NoError(t, err)
	assert.Equal(t, 10, report.Planets)
	assert.Equal(t, 8, report.Vehicles)
	assert.Equal(t, 10, report.Characters)
	assert.Equal(t, 7, report.Pilots)
	assert.Equal(t, 5, report.Users)
	assert.Equal(t, 12, report.Posts)

	luke, err := store.Characters.GetByName(ctx, "Luke Skywalker")
	require.NoError(t, err)
	assert.Equal(t, "Tatooine", luke.Serialize()["origin_planet"])

	vehicles, err := store.Characters.Vehicles(ctx, luke.ID)
	require.NoError(t, err)
	assert.Len(t, vehicles, 3)

	yoda, err := store.Characters.GetByName(ctx, "Yoda")
	require.NoError(t, err)
	assert.Nil(t, yoda.Serialize()["origin_planet"])

	users, err := store.Users.List(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, users, 5)
	assert.True(t, users[0].CheckPassword(DefaultPassword))

	posts, err := store.Posts.List(ctx, 100, 0)
	require.NoError(t, err)
	require.Len(t, posts, 12)
	for _, p := range posts {
		assert.NotEmpty(t, p.Serialize()["author"])
	}
}

func TestSeeder_RunTwiceReusesCatalog(t *testing.T) {
	s, store := newSeeder(t)
	ctx := context.Background()

	_, err := s.Run(ctx, testOptions())
	require.NoError(t, err)

	opts := testOptions()
	opts.Seed = 7
	report, err := s.Run(ctx, opts)
	require.NoError(t, err)
	assert.Zero(t, report.Planets)
	assert.Zero(t, report.Characters)
	assert.Zero(t, report.Pilots)
	assert.Equal(t, 5, report.Users)

	users, err := store.Users.List(ctx, 100, 0)
	require.NoError(t, err)
	assert.Len(t, users, 10)
}

func TestSeeder_Clean(t *testing.T) {
	s, store := newSeeder(t)
	ctx := context.Background()

	_, err := s.Run(ctx, testOptions())
	require.NoError(t, err)

	report, err := s.Run(ctx, Options{ShouldClean: true, PasswordCost: bcrypt.MinCost})
	require.NoError(t, err)
	assert.Equal(t, 10, report.Planets, "catalog is reloaded from scratch")
	assert.Zero(t, report.Users)

	users, err := store.Users.List(ctx, 100, 0)
	require.NoError(t, err)
	assert.Empty(t, users)

	var favorites int64
	require.NoError(t, store.DB().Model(&models.UserPlanetFavorite{}).Count(&favorites).Error)
	assert.Zero(t, favorites)
}

func TestSeeder_PostsUseExistingUsers(t *testing.T) {
	s, store := newSeeder(t)
	ctx := context.Background()

	_, err := s.Run(ctx, Options{NumUsers: 2, Seed: 1, PasswordCost: bcrypt.MinCost})
	require.NoError(t, err)

	report, err := s.Run(ctx, Options{NumPosts: 4, Seed: 2, PasswordCost: bcrypt.MinCost})
	require.NoError(t, err)
	assert.Equal(t, 4, report.Posts)

	posts, err := store.Posts.List(ctx, 100, 0)
	require.NoError(t, err)
	assert.Len(t, posts, 4)
}

func TestSeeder_PostsWithoutUsersAreSkipped(t *testing.T) {
	s, _ := newSeeder(t)
	report, err := s.Run(context.Background(), Options{NumPosts: 3, PasswordCost: bcrypt.MinCost})
	require.NoError(t, err)
	assert.Zero(t, report.Posts)
}

func TestFactory_Pick(t *testing.T) {
	f := NewFactory(nil, 3, bcrypt.MinCost)
	got := f.pick(5, 3)
	assert.Len(t, got, 3)
	seen := map[int]bool{}
	for _, i := range got {
		assert.GreaterOrEqual(t, i, 0)
		assert.Less(t, i, 5)
		assert.False(t, seen[i], "indexes are distinct")
		seen[i] = true
	}
	assert.Len(t, f.pick(2, 10), 2)
	assert.Empty(t, f.pick(0, 3))
}

func TestFactory_BuildPost(t *testing.T) {
	f := NewFactory(nil, 9, bcrypt.MinCost)
	author := &models.User{ID: 4, FirstName: "Mon", LastName: "Mothma"}
	post := f.BuildPost(author, func(p *models.Post) { p.Title = "Many Bothans died" })

	assert.Equal(t, uint(4), post.UserID)
	assert.Equal(t, "Many Bothans died", post.Title)
	assert.NotEmpty(t, post.Content)
	assert.False(t, post.CreatedAt.IsZero())
	assert.Equal(t, "Mon Mothma", post.Serialize()["author"])
}
