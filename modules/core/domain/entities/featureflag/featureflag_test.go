package featureflag

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKey_IsValid(t *testing.T) {
	for _, k := range All() {
		require.True(t, k.IsValid(), "key %s should be valid", k)
	}
	require.False(t, Key("IS_UNKNOWN_ENABLED").IsValid())
	require.False(t, Key("").IsValid())
}

func TestAll_NoDuplicates(t *testing.T) {
	seen := make(map[Key]struct{}, len(All()))
	for _, k := range All() {
		_, dup := seen[k]
		require.False(t, dup, "duplicate key %s", k)
		seen[k] = struct{}{}
	}
}
