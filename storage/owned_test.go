package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/songvault/domain/song"
)

var errBadToken = errors.New("could not validate credentials")

// stubResolver maps fixed tokens to user ids.
type stubResolver struct {
	users map[string]string
}

func (r *stubResolver) ResolveUser(_ context.Context, token string) (string, error) {
	id, ok := r.users[token]
	if !ok {
		return "", errBadToken
	}
	return id, nil
}

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&song.Song{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func testResolver() *stubResolver {
	return &stubResolver{users: map[string]string{
		"john-token": "john-id",
		"jane-token": "jane-id",
	}}
}

func TestCreate_ForcesOwner(t *testing.T) {
	db := setupTestDB(t)
	resolver := testResolver()
	access := Access{Token: "jane-token", DB: db}

	// Client-supplied owner id must be overwritten, not kept as a default.
	forged := &song.Song{
		ID:      uuid.New().String(),
		OwnerID: "john-id",
		Name:    "Aberdeen",
		Artist:  "Cage the Elephant",
		Year:    2011,
	}

	created, err := Create(context.Background(), resolver, access, forged)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if created.OwnerID != "jane-id" {
		t.Errorf("created.OwnerID = %q, want %q", created.OwnerID, "jane-id")
	}

	var stored song.Song
	if err := db.First(&stored, "id = ?", forged.ID).Error; err != nil {
		t.Fatalf("failed to load stored song: %v", err)
	}
	if stored.OwnerID != "jane-id" {
		t.Errorf("stored.OwnerID = %q, want %q", stored.OwnerID, "jane-id")
	}
	if stored.CreatedAt.IsZero() {
		t.Error("stored.CreatedAt not assigned")
	}
}

func TestCreate_InvalidToken(t *testing.T) {
	db := setupTestDB(t)
	resolver := testResolver()
	access := Access{Token: "no-such-token", DB: db}

	_, err := Create(context.Background(), resolver, access, &song.Song{
		ID:   uuid.New().String(),
		Name: "Nope",
	})
	if !errors.Is(err, errBadToken) {
		t.Errorf("Create() error = %v, want %v", err, errBadToken)
	}

	// Nothing may be persisted on a failed resolution.
	var count int64
	if err := db.Model(&song.Song{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 stored songs, got %d", count)
	}
}

func TestSelectAll_ScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	resolver := testResolver()

	seed := []*song.Song{
		{ID: uuid.New().String(), OwnerID: "john-id", Name: "Where Is My Mind?", Artist: "Pixies", Year: 1988},
		{ID: uuid.New().String(), OwnerID: "jane-id", Name: "Big Boss Rabbit", Artist: "Freddie Gibbs"},
	}
	for _, s := range seed {
		if err := db.Create(s).Error; err != nil {
			t.Fatalf("failed to seed song: %v", err)
		}
	}

	johns, err := SelectAll[*song.Song](context.Background(), resolver, Access{Token: "john-token", DB: db})
	if err != nil {
		t.Fatalf("SelectAll() error = %v", err)
	}

	if len(johns) != 1 {
		t.Fatalf("expected 1 song for john, got %d", len(johns))
	}
	if johns[0].Name != "Where Is My Mind?" {
		t.Errorf("song name = %q, want %q", johns[0].Name, "Where Is My Mind?")
	}

	janes, err := SelectAll[*song.Song](context.Background(), resolver, Access{Token: "jane-token", DB: db})
	if err != nil {
		t.Fatalf("SelectAll() error = %v", err)
	}
	if len(janes) != 1 || janes[0].Name != "Big Boss Rabbit" {
		t.Errorf("jane's songs = %+v, want only Big Boss Rabbit", janes)
	}
}

func TestSelectAll_InvalidToken(t *testing.T) {
	db := setupTestDB(t)
	resolver := testResolver()

	_, err := SelectAll[*song.Song](context.Background(), resolver, Access{Token: "bogus", DB: db})
	if !errors.Is(err, errBadToken) {
		t.Errorf("SelectAll() error = %v, want %v", err, errBadToken)
	}
}

func TestSelectOne(t *testing.T) {
	db := setupTestDB(t)
	resolver := testResolver()

	mine := &song.Song{ID: uuid.New().String(), OwnerID: "jane-id", Name: "Aberdeen", Artist: "Cage the Elephant", Year: 2011}
	theirs := &song.Song{ID: uuid.New().String(), OwnerID: "john-id", Name: "Debaser", Artist: "Pixies", Year: 1989}
	for _, s := range []*song.Song{mine, theirs} {
		if err := db.Create(s).Error; err != nil {
			t.Fatalf("failed to seed song: %v", err)
		}
	}

	access := Access{Token: "jane-token", DB: db}

	t.Run("own record by id", func(t *testing.T) {
		got, err := SelectOne[*song.Song](context.Background(), resolver, access, Filter{Query: "id = ?", Args: []any{mine.ID}})
		if err != nil {
			t.Fatalf("SelectOne() error = %v", err)
		}
		if got.Name != "Aberdeen" {
			t.Errorf("got.Name = %q, want %q", got.Name, "Aberdeen")
		}
	})

	t.Run("another user's record is not found", func(t *testing.T) {
		_, err := SelectOne[*song.Song](context.Background(), resolver, access, Filter{Query: "id = ?", Args: []any{theirs.ID}})
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("SelectOne() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("absent record is not found", func(t *testing.T) {
		_, err := SelectOne[*song.Song](context.Background(), resolver, access, Filter{Query: "id = ?", Args: []any{"missing"}})
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("SelectOne() error = %v, want ErrNotFound", err)
		}
	})
}

func TestSelectOne_MultipleMatches(t *testing.T) {
	db := setupTestDB(t)
	resolver := testResolver()

	for i := 0; i < 2; i++ {
		s := &song.Song{ID: uuid.New().String(), OwnerID: "jane-id", Name: "Duplicate", Artist: "Various"}
		if err := db.Create(s).Error; err != nil {
			t.Fatalf("failed to seed song: %v", err)
		}
	}

	access := Access{Token: "jane-token", DB: db}
	_, err := SelectOne[*song.Song](context.Background(), resolver, access, Filter{Query: "name = ?", Args: []any{"Duplicate"}})
	if !errors.Is(err, ErrMultipleMatches) {
		t.Errorf("SelectOne() error = %v, want ErrMultipleMatches", err)
	}
}
