package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_PrefixFormat(t *testing.T) {
	prefixes := []string{
		PrefixChild, PrefixItem, PrefixInterest, PrefixSquad,
		PrefixFavorite, PrefixAccount, PrefixToken, PrefixStream,
	}
	for _, prefix := range prefixes {
		got, err := Generate(prefix)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(got, prefix+"-"), "id %q should start with %q", got, prefix+"-")
		assert.Greater(t, len(got), len(prefix)+1)
	}
}

func TestGenerate_Unique(t *testing.T) {
	a, err := Generate(PrefixChild)
	require.NoError(t, err)
	b, err := Generate(PrefixChild)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestMustGenerate(t *testing.T) {
	got := MustGenerate(PrefixItem)
	assert.True(t, strings.HasPrefix(got, "itm-"))
}

func TestInviteCode(t *testing.T) {
	code, err := InviteCode()
	require.NoError(t, err)
	assert.Len(t, code, 8)
	for _, r := range code {
		assert.Contains(t, "ABCDEFGHJKLMNPQRSTUVWXYZ23456789", string(r))
	}
}
