package ports

// TreeHasher computes content checksums of cache entries.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type TreeHasher interface {
	// ComputeTreeHash hashes every path, mode and file content under root.
	ComputeTreeHash(root string) (string, error)
}
