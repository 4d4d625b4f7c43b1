// Package watcher turns video files dropped into the input directory into pipeline runs.
package watcher

import "context"

// Watcher defines the interface for file system monitoring
type Watcher interface {
	// Start handles videos already in the directory, then new ones until ctx ends.
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler is a function that handles file events
type EventHandler func(ctx context.Context, filePath string) error
