package sketch

import (
	"github.com/minio/highwayhash"
)

var key = []byte("0123456789ABCDEF0123456789ABCDEF")

// Hash computes a stable content fingerprint for an artifact
func Hash(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(key)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}

// Fingerprint returns the content hash of the source buffer
func (s *Source) Fingerprint() (uint64, error) {
	return Hash(s.Data)
}
