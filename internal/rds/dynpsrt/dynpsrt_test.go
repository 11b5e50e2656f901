package dynpsrt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UoC-Radio/jmpxrds-go/internal/rds"
)

func TestNewRejectsMissingFixedPS(t *testing.T) {
	st := rds.NewState()
	_, err := New(st, "/nonexistent")
	require.ErrorIs(t, err, errNoFixedPS)
}

func TestNewRTRejectsMissingFixedRT(t *testing.T) {
	st := rds.NewState()
	_, err := NewRT(st, "/nonexistent")
	require.ErrorIs(t, err, errNoFixedRT)
}

func TestSanitizeTrimsWhitespace(t *testing.T) {
	assert.Equal(t, "hello", sanitize("  hello  \n"))
	assert.Equal(t, "", sanitize("   \t\n"))
}

func TestReadSegmentsSkipsOverlongAndBlankLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rt.txt")

	long := make([]byte, rds.RTLength+5)
	for i := range long {
		long[i] = 'x'
	}

	content := "first segment\n\n" + string(long) + "\nsecond segment\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	segments := readSegments(path)
	assert.Equal(t, []string{"first segment", "second segment"}, segments)
}

func TestReadSegmentsCapsAtMaxSegments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rt.txt")

	require.NoError(t, os.WriteFile(path, []byte("a\nb\nc\nd\ne\n"), 0o644))

	segments := readSegments(path)
	assert.Len(t, segments, MaxSegments)
}
