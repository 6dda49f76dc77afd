package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUint64Slice(t *testing.T) {
	ids, err := ParseUint64Slice([]string{"1", "", "abc", "42", "-3"})
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 42}, ids)

	ids, err = ParseUint64Slice(nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
