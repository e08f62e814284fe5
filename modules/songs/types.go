package songs

import (
	"time"
)

// CreateSongRequest carries the caller's token and the song fields. Owner id
// is deliberately absent: ownership always comes from the token.
type CreateSongRequest struct {
	Token  string `json:"token"`
	Name   string `json:"name"`
	Artist string `json:"artist"`
	Year   int    `json:"year"`
}

// ListSongsRequest asks for every song owned by the token's user.
type ListSongsRequest struct {
	Token string `json:"token"`
}

// GetSongRequest asks for a single song owned by the token's user.
type GetSongRequest struct {
	Token string `json:"token"`
	ID    string `json:"id"`
}

// SongResponse represents a stored song.
type SongResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Artist    string    `json:"artist"`
	Year      int       `json:"year,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListSongsResponse represents a list of stored songs.
type ListSongsResponse struct {
	Songs []SongResponse `json:"songs"`
	Total int            `json:"total"`
}
