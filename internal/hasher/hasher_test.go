package hasher

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSHA256Sum(t *testing.T) {
	h := SHA256{}
	buf := []byte("the quick brown fox jumps over the lazy dog")

	got := h.Sum(buf)
	want := sha256.Sum256(buf)

	require.Equal(t, want, got)
}

func TestSHA256SumDeterministic(t *testing.T) {
	h := SHA256{}
	buf := []byte("pictDB")

	require.Equal(t, h.Sum(buf), h.Sum(buf))
}

func TestSHA256SumDistinguishesContent(t *testing.T) {
	h := SHA256{}

	require.NotEqual(t, h.Sum([]byte("a")), h.Sum([]byte("b")))
}
