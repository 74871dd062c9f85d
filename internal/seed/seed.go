package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"holonet/internal/database"
	"holonet/internal/models"
	"holonet/internal/observability"
	"holonet/internal/repository"
)

// Options configuration for the seeder
type Options struct {
	NumUsers int
	NumPosts int
	// MaxFavorites caps how many records of each kind a user favorites.
	MaxFavorites int
	ShouldClean  bool
	// Seed makes generated content reproducible. Zero picks a random seed.
	Seed int64
	// PasswordCost overrides the bcrypt cost. Zero uses models.PasswordCost.
	PasswordCost int
}

// Report counts what a run wrote.
type Report struct {
	Planets    int `json:"planets"`
	Vehicles   int `json:"vehicles"`
	Characters int `json:"characters"`
	Pilots     int `json:"pilots"`
	Users      int `json:"users"`
	Posts      int `json:"posts"`
	Favorites  int `json:"favorites"`
}

// Seeder loads the catalog and generated users into a store.
type Seeder struct {
	store   *repository.Store
	catalog *Catalog
}

// NewSeeder creates a Seeder over store using catalog. A nil catalog uses the
// embedded one.
func NewSeeder(store *repository.Store, catalog *Catalog) (*Seeder, error) {
	if catalog == nil {
		c, err := DefaultCatalog()
		if err != nil {
			return nil, err
		}
		catalog = c
	}
	return &Seeder{store: store, catalog: catalog}, nil
}

// Run seeds the database. Catalog records that already exist (matched by
// name) are reused, so running twice without ShouldClean only adds users and
// posts.
func (s *Seeder) Run(ctx context.Context, opts Options) (*Report, error) {
	observability.Logger.InfoContext(ctx, "Starting database seeding",
		slog.Int("users", opts.NumUsers), slog.Int("posts", opts.NumPosts), slog.Bool("clean", opts.ShouldClean))

	if opts.ShouldClean {
		if err := s.ClearAll(ctx); err != nil {
			return nil, fmt.Errorf("failed to clear data: %w", err)
		}
	}

	report := &Report{}
	var (
		planets    []models.Planet
		vehicles   []models.Vehicle
		characters []models.Character
	)
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		if planets, err = s.loadPlanets(ctx, tx, report); err != nil {
			return err
		}
		if vehicles, err = s.loadVehicles(ctx, tx, report); err != nil {
			return err
		}
		characters, err = s.loadCharacters(ctx, tx, planets, vehicles, report)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	observability.Logger.InfoContext(ctx, "Catalog loaded",
		slog.Int("planets", len(planets)), slog.Int("vehicles", len(vehicles)), slog.Int("characters", len(characters)))

	factory := NewFactory(s.store, opts.Seed, opts.PasswordCost)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create users: %w", err)
		}
		users = append(users, user)
	}
	report.Users = len(users)

	if opts.NumPosts > 0 {
		authors, err := s.authors(ctx, users)
		if err != nil {
			return nil, err
		}
		if len(authors) == 0 {
			observability.Logger.WarnContext(ctx, "No users to author posts, skipping posts")
		}
		for i := 0; i < opts.NumPosts && len(authors) > 0; i++ {
			author := authors[factory.faker.Number(0, len(authors)-1)]
			if _, err := factory.CreatePost(ctx, author); err != nil {
				return nil, fmt.Errorf("failed to create posts: %w", err)
			}
			report.Posts++
		}
	}

	maxFavorites := opts.MaxFavorites
	if maxFavorites <= 0 {
		maxFavorites = 3
	}
	for _, user := range users {
		n, err := s.favorite(ctx, factory, user, maxFavorites, planets, characters, vehicles)
		if err != nil {
			return nil, fmt.Errorf("failed to create favorites: %w", err)
		}
		report.Favorites += n
	}

	observability.Logger.InfoContext(ctx, "Seeding complete",
		slog.Int("users", report.Users), slog.Int("posts", report.Posts), slog.Int("favorites", report.Favorites))
	return report, nil
}

// ClearAll deletes every row, junction tables first, and drops cached
// planets and vehicles.
func (s *Seeder) ClearAll(ctx context.Context) error {
	db := s.store.DB().WithContext(ctx)

	var planetIDs, vehicleIDs []uint
	if err := db.Model(&models.Planet{}).Pluck("id", &planetIDs).Error; err != nil {
		return err
	}
	if err := db.Model(&models.Vehicle{}).Pluck("id", &vehicleIDs).Error; err != nil {
		return err
	}

	for _, table := range database.TableNames() {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	s.store.InvalidateAll(ctx, planetIDs, vehicleIDs)
	observability.Logger.InfoContext(ctx, "Existing data cleared")
	return nil
}

func (s *Seeder) loadPlanets(ctx context.Context, tx *repository.Store, report *Report) ([]models.Planet, error) {
	planets := make([]models.Planet, 0, len(s.catalog.Planets))
	for _, entry := range s.catalog.Planets {
		planet, err := tx.Planets.GetByName(ctx, entry.Name)
		if errors.Is(err, models.ErrNotFound) {
			planet = entry.model()
			err = tx.Planets.Create(ctx, planet)
			report.Planets++
		}
		if err != nil {
			return nil, err
		}
		planets = append(planets, *planet)
	}
	return planets, nil
}

func (s *Seeder) loadVehicles(ctx context.Context, tx *repository.Store, report *Report) ([]models.Vehicle, error) {
	vehicles := make([]models.Vehicle, 0, len(s.catalog.Vehicles))
	for _, entry := range s.catalog.Vehicles {
		vehicle, err := tx.Vehicles.GetByName(ctx, entry.Name)
		if errors.Is(err, models.ErrNotFound) {
			vehicle = entry.model()
			err = tx.Vehicles.Create(ctx, vehicle)
			report.Vehicles++
		}
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, *vehicle)
	}
	return vehicles, nil
}

func (s *Seeder) loadCharacters(ctx context.Context, tx *repository.Store, planets []models.Planet, vehicles []models.Vehicle, report *Report) ([]models.Character, error) {
	planetByName := make(map[string]*models.Planet, len(planets))
	for i := range planets {
		planetByName[planets[i].Name] = &planets[i]
	}
	vehicleByName := make(map[string]uint, len(vehicles))
	for _, v := range vehicles {
		vehicleByName[v.Name] = v.ID
	}

	characters := make([]models.Character, 0, len(s.catalog.Characters))
	for _, entry := range s.catalog.Characters {
		character, err := tx.Characters.GetByName(ctx, entry.Name)
		if errors.Is(err, models.ErrNotFound) {
			character = &models.Character{
				Name:         entry.Name,
				Gender:       entry.Gender,
				BirthYear:    entry.BirthYear,
				OriginPlanet: planetByName[entry.Origin],
			}
			err = tx.Characters.Create(ctx, character)
			report.Characters++
		}
		if err != nil {
			return nil, err
		}

		for _, name := range entry.Vehicles {
			added, err := tx.Characters.AddVehicle(ctx, character.ID, vehicleByName[name])
			if err != nil {
				return nil, err
			}
			if added {
				report.Pilots++
			}
		}
		characters = append(characters, *character)
	}
	return characters, nil
}

// authors returns the users posts may be attributed to: the ones just
// created, or existing users when none were.
func (s *Seeder) authors(ctx context.Context, created []*models.User) ([]*models.User, error) {
	if len(created) > 0 {
		return created, nil
	}
	existing, err := s.store.Users.List(ctx, 100, 0)
	if err != nil {
		return nil, err
	}
	authors := make([]*models.User, len(existing))
	for i := range existing {
		authors[i] = &existing[i]
	}
	return authors, nil
}

func (s *Seeder) favorite(ctx context.Context, f *Factory, user *models.User, max int,
	planets []models.Planet, characters []models.Character, vehicles []models.Vehicle) (int, error) {
	total := 0
	count := func(added bool, err error) error {
		if added {
			total++
		}
		return err
	}

	for _, i := range f.pick(len(planets), f.faker.Number(0, max)) {
		if err := count(s.store.Favorites.AddPlanet(ctx, user.ID, planets[i].ID)); err != nil {
			return total, err
		}
	}
	for _, i := range f.pick(len(characters), f.faker.Number(0, max)) {
		if err := count(s.store.Favorites.AddCharacter(ctx, user.ID, characters[i].ID)); err != nil {
			return total, err
		}
	}
	for _, i := range f.pick(len(vehicles), f.faker.Number(0, max)) {
		if err := count(s.store.Favorites.AddVehicle(ctx, user.ID, vehicles[i].ID)); err != nil {
			return total, err
		}
	}
	return total, nil
}
