package hash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCRC32C(t *testing.T) {
	// RFC 3720 appendix B.4 check value for "123456789".
	assert.Equal(t, uint32(0xE3069283), CRC32C([]byte("123456789")))
	assert.Equal(t, uint32(0), CRC32C(nil))
}

func TestNewCRC32CStreaming(t *testing.T) {
	h := NewCRC32C()
	h.Write([]byte("12345"))
	h.Write([]byte("6789"))

	assert.Equal(t, CRC32C([]byte("123456789")), h.Sum32())
}

func TestChecksumReader(t *testing.T) {
	sum, err := ChecksumReader(strings.NewReader("123456789"))
	require.NoError(t, err)

	assert.Equal(t, uint32(0xE3069283), sum)
}
