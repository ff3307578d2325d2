package phpserial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalStringSlice(t *testing.T) {
	assert.Equal(t, "a:0:{}", MarshalStringSlice(nil))
	assert.Equal(t, `a:1:{i:0;s:11:"foo/foo.php";}`, MarshalStringSlice([]string{"foo/foo.php"}))
	assert.Equal(t,
		`a:2:{i:0;s:19:"akismet/akismet.php";i:1;s:9:"hello.php";}`,
		MarshalStringSlice([]string{"akismet/akismet.php", "hello.php"}))
}

func TestUnmarshalStringSlice(t *testing.T) {
	t.Run("wordpress sample", func(t *testing.T) {
		values, err := UnmarshalStringSlice(`a:2:{i:0;s:19:"akismet/akismet.php";i:1;s:9:"hello.php";}`)
		require.NoError(t, err)
		assert.Equal(t, []string{"akismet/akismet.php", "hello.php"}, values)
	})

	t.Run("empty array", func(t *testing.T) {
		values, err := UnmarshalStringSlice("a:0:{}")
		require.NoError(t, err)
		assert.Empty(t, values)
	})

	t.Run("string keys dropped", func(t *testing.T) {
		values, err := UnmarshalStringSlice(`a:1:{s:3:"key";s:7:"foo.php";}`)
		require.NoError(t, err)
		assert.Equal(t, []string{"foo.php"}, values)
	})

	t.Run("payload may contain quotes and semicolons", func(t *testing.T) {
		values, err := UnmarshalStringSlice(`a:1:{i:0;s:4:"a";b";}`)
		require.NoError(t, err)
		assert.Equal(t, []string{`a";b`}, values)
	})

	t.Run("errors", func(t *testing.T) {
		for name, input := range map[string]string{
			"scalar value":      `s:3:"foo";`,
			"boolean":           "b:0;",
			"truncated":         `a:1:{i:0;s:7:"foo.php"`,
			"wrong length":      `a:1:{i:0;s:99:"foo.php";}`,
			"trailing garbage":  `a:0:{}x`,
			"non-string values": `a:1:{i:0;i:1;}`,
			"empty input":       "",
		} {
			t.Run(name, func(t *testing.T) {
				_, err := UnmarshalStringSlice(input)
				assert.Error(t, err)
			})
		}
	})
}

func TestRoundTrip(t *testing.T) {
	keys := []string{"akismet/akismet.php", "hello.php", "jetpack/jetpack.php"}
	decoded, err := UnmarshalStringSlice(MarshalStringSlice(keys))
	require.NoError(t, err)
	assert.Equal(t, keys, decoded)
}
