package checksum

import (
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/xxh3"
)

// digest algorithm identifiers, persisted next to every hash value
const (
	HASH_XXH3_64 string = "xxh3_64"
	HASH_XXH64   string = "xxh64"
)

const DefaultHashType = HASH_XXH3_64

var ErrUnrecognizedAlgorithm = errors.New("unrecognized digest algorithm")

// Digest is a streaming 64-bit content hash.
// Feeding the same bytes in any number of Write calls yields the same digest.
type Digest interface {
	hash.Hash64
	// lowercase, zero padded, 16 hex characters
	HexDigest() string
	// algorithm identifier to store alongside HexDigest
	Type() string
}

type digest struct {
	hash.Hash64
	hashType string
}

func (d *digest) HexDigest() string {
	return FormatSum64(d.Sum64())
}

func (d *digest) Type() string {
	return d.hashType
}

// New returns a fresh digest for hashType.
func New(hashType string) (Digest, error) {
	switch hashType {
	case HASH_XXH3_64:
		return &digest{Hash64: xxh3.New(), hashType: hashType}, nil
	case HASH_XXH64:
		return &digest{Hash64: xxhash.New(), hashType: hashType}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnrecognizedAlgorithm, hashType)
	}
}

func IsSupported(hashType string) bool {
	switch hashType {
	case HASH_XXH3_64, HASH_XXH64:
		return true
	}
	return false
}

func SupportedTypes() []string {
	return []string{HASH_XXH3_64, HASH_XXH64}
}

func FormatSum64(sum uint64) string {
	s := strconv.FormatUint(sum, 16)
	if len(s) < 16 {
		s = "0000000000000000"[len(s):] + s
	}
	return s
}

// File streams the file at path through a fresh digest in chunkSize reads.
func File(path string, hashType string, chunkSize int) (hexDigest string, size int64, err error) {
	d, err := New(hashType)
	if err != nil {
		return "", 0, err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	if chunkSize <= 0 {
		chunkSize = 8192
	}
	buf := make([]byte, chunkSize)
	size, err = io.CopyBuffer(d, onlyReader{f}, buf)
	if err != nil {
		return "", size, err
	}
	return d.HexDigest(), size, nil
}

// hides *os.File's WriterTo so io.CopyBuffer honours the chunk size
type onlyReader struct {
	io.Reader
}

func Bytes(hashType string, data []byte) (string, error) {
	d, err := New(hashType)
	if err != nil {
		return "", err
	}
	_, _ = d.Write(data)
	return d.HexDigest(), nil
}
