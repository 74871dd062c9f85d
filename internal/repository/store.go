package repository

import (
	"context"

	"holonet/internal/cache"

	"gorm.io/gorm"
)

// Store groups the repositories built over one database handle.
type Store struct {
	Users      UserRepository
	Planets    PlanetRepository
	Characters CharacterRepository
	Vehicles   VehicleRepository
	Posts      PostRepository
	Favorites  FavoriteRepository

	db    *gorm.DB
	cache *cache.Cache
}

// NewStore builds every repository over db. c may be nil to disable caching.
func NewStore(db *gorm.DB, c *cache.Cache) *Store {
	return &Store{
		Users:      NewUserRepository(db),
		Planets:    NewPlanetRepository(db, c),
		Characters: NewCharacterRepository(db),
		Vehicles:   NewVehicleRepository(db, c),
		Posts:      NewPostRepository(db),
		Favorites:  NewFavoriteRepository(db),
		db:         db,
		cache:      c,
	}
}

// DB returns the underlying handle.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn with a Store bound to a single transaction. The cache is
// bypassed inside the transaction so uncommitted rows are never cached.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx, nil))
	})
}

// InvalidateAll drops the cached projections for the given planets and vehicles,
// for callers that changed them inside a Transaction.
func (s *Store) InvalidateAll(ctx context.Context, planetIDs, vehicleIDs []uint) {
	keys := make([]string, 0, len(planetIDs)+len(vehicleIDs))
	for _, id := range planetIDs {
		keys = append(keys, cache.PlanetKey(id))
	}
	for _, id := range vehicleIDs {
		keys = append(keys, cache.VehicleKey(id))
	}
	s.cache.Invalidate(ctx, keys...)
}
