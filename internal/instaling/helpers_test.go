package instaling

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustParseURL(t *testing.T, rawURL string) *url.URL {
	t.Helper()
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	return u
}
