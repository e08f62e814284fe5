package songs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// SongsPort defines the interface other modules use to access song
// operations. Every method takes the caller's raw bearer token; scoping to
// the token's user happens inside the songs module.
type SongsPort interface {
	Create(ctx context.Context, token, name, artist string, year int) (*SongResponse, error)
	List(ctx context.Context, token string) (*ListSongsResponse, error)
	Get(ctx context.Context, token, id string) (*SongResponse, error)
}

// SongsAdapter implements SongsPort using the service container.
type SongsAdapter struct {
	container mono.ServiceContainer
}

// NewSongsAdapter creates a new SongsAdapter.
func NewSongsAdapter(container mono.ServiceContainer) *SongsAdapter {
	return &SongsAdapter{
		container: container,
	}
}

// Create persists a song owned by the token's user.
func (a *SongsAdapter) Create(ctx context.Context, token, name, artist string, year int) (*SongResponse, error) {
	req := CreateSongRequest{Token: token, Name: name, Artist: artist, Year: year}
	var resp SongResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"create-song",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("create-song request failed: %w", err)
	}
	return &resp, nil
}

// List returns the songs owned by the token's user.
func (a *SongsAdapter) List(ctx context.Context, token string) (*ListSongsResponse, error) {
	req := ListSongsRequest{Token: token}
	var resp ListSongsResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"list-songs",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("list-songs request failed: %w", err)
	}
	return &resp, nil
}

// Get returns one song owned by the token's user.
func (a *SongsAdapter) Get(ctx context.Context, token, id string) (*SongResponse, error) {
	req := GetSongRequest{Token: token, ID: id}
	var resp SongResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"get-song",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("get-song request failed: %w", err)
	}
	return &resp, nil
}
