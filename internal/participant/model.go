package participant

import (
	"time"

	"github.com/google/uuid"
)

// MaxPerGroup caps how many participants a group may hold
const MaxPerGroup = 4

// colorPalette holds the display colors assigned to participants in
// join order; the palette wraps if a slot is freed and refilled.
var colorPalette = []string{
	"#2DD4BF", // teal
	"#FCD34D", // amber
	"#F43F5E", // rose
	"#3B82F6", // blue
}

// ColorForIndex returns the palette color for the nth participant of a group
func ColorForIndex(index int) string {
	return colorPalette[index%len(colorPalette)]
}

// Participant represents a person sharing expenses within a group.
// Participants are plain records scoped to one group; they are not user
// accounts and carry no credentials.
type Participant struct {
	ID        uuid.UUID `json:"id"`
	GroupID   uuid.UUID `json:"group_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
