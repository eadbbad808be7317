package db

import (
	"time"
)

// Profile table.
//
// Indexes:
//   - idx_gender_os_id(gender, os, id)
//     Serves the candidate query: equality on gender and os, ordered by id.
type Profile struct {
	ID        string    `gorm:"primaryKey;size:64;index:idx_gender_os_id,priority:3"`
	Name      string    `gorm:"size:128;not null"`
	Gender    string    `gorm:"size:16;not null;index:idx_gender_os_id,priority:1"`
	OS        string    `gorm:"column:os;size:64;not null;index:idx_gender_os_id,priority:2"`
	BirthDate time.Time `gorm:"not null"`
	Bio       string    `gorm:"size:1024"`
	Image     string    `gorm:"size:512"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Interest records a directional like from FromID to ToID.
//
// Composite PK: (FromID, ToID)
//   - At most one row per ordered pair; re-liking never creates a duplicate.
//
// Indexes:
//   - idx_to_created(to_id, created_at)
//     Serves "who liked me" scans for the match roster.
//
// Fields:
//   - FromID: The profile expressing interest.
//   - ToID: The profile being liked.
//   - CreatedAt: Store-assigned timestamp of the first like.
type Interest struct {
	FromID    string    `gorm:"primaryKey;size:64"`
	ToID      string    `gorm:"primaryKey;size:64;index:idx_to_created,priority:1"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_to_created,priority:2"`
}
