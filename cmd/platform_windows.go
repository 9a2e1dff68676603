//go:build windows

package cmd

import (
	// Registers the user32-backed provider with platform.NewProviderFunc.
	_ "github.com/ShreyashPatil123/Panther-update-sub001/internal/platform/windows"
)
