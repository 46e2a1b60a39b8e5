package storage

import "io"

// Storage persists image blobs and hands back retrievable URLs. Used by the
// photo-attachment path and the seeding utilities.
type Storage interface {
	// Save writes the blob under filename and returns its public URL.
	Save(filename string, r io.Reader) (string, error)
	// Remove deletes the blob a previous Save returned url for.
	Remove(url string) error
}
