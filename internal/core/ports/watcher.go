package ports

import "context"

//go:generate go run go.uber.org/mock/mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks

// BookWatcher reports changes to book files.
type BookWatcher interface {
	// Watch sends the resolved book path each time the book file changes,
	// until ctx is cancelled. Bursts of changes are coalesced into one send.
	Watch(ctx context.Context, path string) (<-chan string, error)
}
