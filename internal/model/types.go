// Package model defines shared data structures.
package model

// Config holds the resolved settings after flags, environment and the
// config file have been merged.
type Config struct {
	SaveFile string
	Autosave bool
	DBPath   string
	ASCII    bool
	Sort     string
	LogLevel string
	LogFile  string
}
