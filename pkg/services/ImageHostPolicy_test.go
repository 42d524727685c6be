package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultHostsAreAllowed(t *testing.T) {
	policy := NewImageHostPolicy(ParseImageHosts(""))

	for _, raw := range []string{
		"https://images.unsplash.com/photo-1529626455594-4ff0802cfb7e",
		"https://source.unsplash.com/random",
		"https://f000.backblazeb2.com/file/bucket/a.jpg",
	} {
		u, err := policy.Check(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, raw, u.String())
	}
}

func TestOtherHostsAreRejected(t *testing.T) {
	policy := NewImageHostPolicy(DefaultImageHosts)

	for _, raw := range []string{
		"https://evil.example.com/a.jpg",
		"file:///etc/passwd",
		"ftp://images.unsplash.com/a.jpg",
		"https://images.unsplash.com.evil.example.com/a.jpg",
	} {
		_, err := policy.Check(raw)
		assert.ErrorIs(t, err, ErrImageHostNotAllowed, raw)
	}
}

func TestParseImageHostsTrims(t *testing.T) {
	policy := NewImageHostPolicy(ParseImageHosts(" Images.Unsplash.com , ,localhost:8080"))

	assert.Equal(t, []string{"images.unsplash.com", "localhost:8080"}, policy.Hosts())

	_, err := policy.Check("http://localhost:8080/a.png")
	assert.NoError(t, err)
}
