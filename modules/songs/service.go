package songs

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/example/songvault/domain/song"
	"github.com/example/songvault/storage"
)

// ErrNameRequired is returned when a song is created without a name.
var ErrNameRequired = errors.New("song name is required")

// Service provides owner-scoped song operations. Every call carries the
// caller's raw bearer token; the scoped accessor resolves it to a user and
// filters or tags rows with that user's id.
type Service struct {
	db       *gorm.DB
	resolver storage.UserResolver
}

// NewService creates a new songs Service.
func NewService(db *gorm.DB, resolver storage.UserResolver) *Service {
	return &Service{
		db:       db,
		resolver: resolver,
	}
}

// Create persists a new song owned by the token's user. Any owner id the
// client smuggled into the payload is discarded by the accessor.
func (s *Service) Create(ctx context.Context, token, name, artist string, year int) (*domain.Song, error) {
	if name == "" {
		return nil, ErrNameRequired
	}

	obj := &domain.Song{
		ID:     uuid.New().String(),
		Name:   name,
		Artist: artist,
		Year:   year,
	}

	return storage.Create(ctx, s.resolver, s.access(token), obj)
}

// List returns every song owned by the token's user.
func (s *Service) List(ctx context.Context, token string) ([]*domain.Song, error) {
	return storage.SelectAll[*domain.Song](ctx, s.resolver, s.access(token))
}

// Get returns one song owned by the token's user. A song owned by someone
// else yields storage.ErrNotFound, same as a song that does not exist.
func (s *Service) Get(ctx context.Context, token, id string) (*domain.Song, error) {
	filter := storage.Filter{Query: "id = ?", Args: []any{id}}
	return storage.SelectOne[*domain.Song](ctx, s.resolver, s.access(token), filter)
}

func (s *Service) access(token string) storage.Access {
	return storage.Access{Token: token, DB: s.db}
}
