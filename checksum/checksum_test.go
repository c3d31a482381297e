package checksum

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPayload(n int) []byte {
	r := rand.New(rand.NewSource(42))
	b := make([]byte, n)
	r.Read(b)
	return b
}

func TestDigestChunkingIsDeterministic(t *testing.T) {
	payload := testPayload(1<<20 + 317)

	for _, hashType := range SupportedTypes() {
		t.Run(hashType, func(t *testing.T) {
			whole, err := Bytes(hashType, payload)
			require.NoError(t, err)
			assert.Len(t, whole, 16)

			for _, chunkSize := range []int{1, 7, 64, 4096, 65537, len(payload)} {
				d, err := New(hashType)
				require.NoError(t, err)
				for off := 0; off < len(payload); off += chunkSize {
					end := min(off+chunkSize, len(payload))
					_, err := d.Write(payload[off:end])
					require.NoError(t, err)
				}
				assert.Equal(t, whole, d.HexDigest(), "chunk size %d", chunkSize)
				assert.Equal(t, hashType, d.Type())
			}

			// irregular boundaries
			d, err := New(hashType)
			require.NoError(t, err)
			r := rand.New(rand.NewSource(7))
			for off := 0; off < len(payload); {
				end := min(off+1+r.Intn(9000), len(payload))
				d.Write(payload[off:end])
				off = end
			}
			assert.Equal(t, whole, d.HexDigest())
		})
	}
}

func TestDigestIsOrderSensitive(t *testing.T) {
	a, err := Bytes(HASH_XXH3_64, []byte("abcdef"))
	require.NoError(t, err)
	b, err := Bytes(HASH_XXH3_64, []byte("defabc"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestNewUnrecognizedAlgorithm(t *testing.T) {
	_, err := New("unknown-algo")
	assert.ErrorIs(t, err, ErrUnrecognizedAlgorithm)
	assert.False(t, IsSupported("unknown-algo"))
	assert.True(t, IsSupported(DefaultHashType))
}

func TestFormatSum64(t *testing.T) {
	assert.Equal(t, "0000000000000000", FormatSum64(0))
	assert.Equal(t, "00000000000000ff", FormatSum64(255))
	assert.Equal(t, "ffffffffffffffff", FormatSum64(^uint64(0)))
}

func TestFile(t *testing.T) {
	payload := testPayload(50_000)
	path := filepath.Join(t.TempDir(), "payload.bin")
	require.NoError(t, os.WriteFile(path, payload, 0o644))

	want, err := Bytes(HASH_XXH3_64, payload)
	require.NoError(t, err)

	got, size, err := File(path, HASH_XXH3_64, 8192)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, int64(len(payload)), size)

	t.Run("MissingFile", func(t *testing.T) {
		_, _, err := File(filepath.Join(t.TempDir(), "nope"), HASH_XXH3_64, 8192)
		assert.Error(t, err)
	})

	t.Run("UnknownAlgorithm", func(t *testing.T) {
		_, _, err := File(path, "md5", 8192)
		assert.ErrorIs(t, err, ErrUnrecognizedAlgorithm)
	})
}
