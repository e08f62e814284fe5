package song

import (
	"time"
)

// Song is a record owned by exactly one user. OwnerID is assigned from the
// authenticated caller when the row is created, never from client input.
type Song struct {
	ID        string `gorm:"primaryKey;type:text" json:"id"`
	OwnerID   string `gorm:"index;not null;type:text" json:"owner_id"`
	Name      string `gorm:"not null;type:text" json:"name"`
	Artist    string `gorm:"type:text" json:"artist"`
	Year      int    `json:"year,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the Song entity.
func (Song) TableName() string {
	return "songs"
}

// Owner returns the id of the owning user.
func (s *Song) Owner() string {
	return s.OwnerID
}

// SetOwner assigns the owning user, overwriting any value already present.
func (s *Song) SetOwner(id string) {
	s.OwnerID = id
}
