package nav

import (
	"github.com/google/uuid"
)

const markerPrefix = "NAV_"

// NewMarker returns a fresh tab marker. Each run gets its own so
// concurrent runs against the same browser never collide.
func NewMarker() string {
	return markerPrefix + uuid.New().String()[:8]
}
