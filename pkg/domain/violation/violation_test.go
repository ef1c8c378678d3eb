package violation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloxchat/sentinel/pkg/domain/violation"
)

func TestFingerprint_Deterministic(t *testing.T) {
	a := violation.Fingerprint("some toxic message")
	b := violation.Fingerprint("some toxic message")
	c := violation.Fingerprint("a different message")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

func TestDetectedWords_RoundTrip(t *testing.T) {
	words := violation.DetectedWords{"one", "two"}

	value, err := words.Value()
	require.NoError(t, err)

	var decoded violation.DetectedWords
	require.NoError(t, decoded.Scan(value))
	assert.Equal(t, words, decoded)
}

func TestDetectedWords_ScanNil(t *testing.T) {
	var decoded violation.DetectedWords
	require.NoError(t, decoded.Scan(nil))
	assert.Empty(t, decoded)
}
