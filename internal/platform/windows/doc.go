//go:build windows

// Package windows provides Windows platform support through user32.
// Window enumeration, foreground control, and key injection go through
// the same entry points the OS shell itself uses, so no elevated
// privileges are required beyond an interactive session.
package windows
