package ports

// Publisher exposes one cache entry as the current result through a symbolic link.
//
//go:generate go run go.uber.org/mock/mockgen -source=publisher.go -destination=mocks/mock_publisher.go -package=mocks
type Publisher interface {
	// Publish points linkPath at entryPath, replacing whatever occupied linkPath.
	// It is idempotent.
	Publish(entryPath, linkPath string) error

	// Resolve returns the target of linkPath, or an empty string when no symlink exists there.
	Resolve(linkPath string) (string, error)
}
