package songs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/example/songvault/domain/song"
	"github.com/example/songvault/modules/auth"
)

// SongsModule provides owner-scoped song services.
type SongsModule struct {
	db      *gorm.DB
	service *Service
	dbPath  string

	authAdapter *auth.AuthAdapter
}

// Compile-time interface checks.
var _ mono.Module = (*SongsModule)(nil)
var _ mono.ServiceProviderModule = (*SongsModule)(nil)
var _ mono.DependentModule = (*SongsModule)(nil)
var _ mono.HealthCheckableModule = (*SongsModule)(nil)

// NewModule creates a new SongsModule.
func NewModule() *SongsModule {
	dbPath := os.Getenv("SONGVAULT_DB_PATH")
	if dbPath == "" {
		dbPath = "songvault.db"
	}
	return &SongsModule{
		dbPath: dbPath,
	}
}

// Name returns the module name.
func (m *SongsModule) Name() string {
	return "songs"
}

// Dependencies returns the list of module dependencies.
func (m *SongsModule) Dependencies() []string {
	return []string{"auth"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *SongsModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "auth" {
		m.authAdapter = auth.NewAuthAdapter(container)
	}
}

// Start initializes the songs module.
func (m *SongsModule) Start(_ context.Context) error {
	if m.authAdapter == nil {
		return fmt.Errorf("auth dependency not set")
	}

	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	// Auto-migrate the Song schema
	if err := db.AutoMigrate(&domain.Song{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	m.service = NewService(db, m.authAdapter)

	log.Printf("[songs] Module started (database: %s)", m.dbPath)
	return nil
}

// Stop shuts down the module.
func (m *SongsModule) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[songs] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *SongsModule) Health(_ context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}

	if err := sqlDB.Ping(); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database": m.dbPath,
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *SongsModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container,
		"create-song",
		json.Unmarshal,
		json.Marshal,
		m.handleCreateSong,
	); err != nil {
		return fmt.Errorf("failed to register create-song service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container,
		"list-songs",
		json.Unmarshal,
		json.Marshal,
		m.handleListSongs,
	); err != nil {
		return fmt.Errorf("failed to register list-songs service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container,
		"get-song",
		json.Unmarshal,
		json.Marshal,
		m.handleGetSong,
	); err != nil {
		return fmt.Errorf("failed to register get-song service: %w", err)
	}

	log.Printf("[songs] Registered services: create-song, list-songs, get-song")
	return nil
}

// handleCreateSong persists a song owned by the caller.
func (m *SongsModule) handleCreateSong(ctx context.Context, req CreateSongRequest, _ *mono.Msg) (SongResponse, error) {
	song, err := m.service.Create(ctx, req.Token, req.Name, req.Artist, req.Year)
	if err != nil {
		return SongResponse{}, err
	}
	return toSongResponse(song), nil
}

// handleListSongs lists the caller's songs.
func (m *SongsModule) handleListSongs(ctx context.Context, req ListSongsRequest, _ *mono.Msg) (ListSongsResponse, error) {
	songList, err := m.service.List(ctx, req.Token)
	if err != nil {
		return ListSongsResponse{}, err
	}

	response := ListSongsResponse{
		Songs: make([]SongResponse, 0, len(songList)),
		Total: len(songList),
	}
	for _, s := range songList {
		response.Songs = append(response.Songs, toSongResponse(s))
	}
	return response, nil
}

// handleGetSong fetches one of the caller's songs.
func (m *SongsModule) handleGetSong(ctx context.Context, req GetSongRequest, _ *mono.Msg) (SongResponse, error) {
	song, err := m.service.Get(ctx, req.Token, req.ID)
	if err != nil {
		return SongResponse{}, err
	}
	return toSongResponse(song), nil
}

// toSongResponse converts a Song entity to a SongResponse.
func toSongResponse(s *domain.Song) SongResponse {
	return SongResponse{
		ID:        s.ID,
		OwnerID:   s.OwnerID,
		Name:      s.Name,
		Artist:    s.Artist,
		Year:      s.Year,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
