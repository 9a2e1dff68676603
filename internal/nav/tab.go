package nav

import (
	"context"

	"github.com/ShreyashPatil123/Panther-update-sub001/internal/platform"
)

// Tab is the slice of the browser page surface the pipeline drives.
// *browser.Page satisfies it; tests substitute fakes.
type Tab interface {
	PlantMarker(ctx context.Context, marker string) (string, error)
	RestoreTitle(ctx context.Context, title string) error
	Title(ctx context.Context) (string, error)
	BringToFront(ctx context.Context) error
	FocusBody(ctx context.Context) error
	CurrentURL(ctx context.Context) (string, error)
	WaitForLoad(ctx context.Context) error
	Keys(ctx context.Context) platform.Inputter
}
