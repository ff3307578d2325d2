package plugin

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wprescue/wp-rescue/internal/types"
)

func TestParseHeader(t *testing.T) {
	t.Run("full header block", func(t *testing.T) {
		content := `<?php
/*
Plugin Name: Hello Dolly
Plugin URI: https://example.com/hello
Description: A classic.
Version: 1.7.2
Author: Matt
Author URI: https://example.com/
Text Domain: hello-dolly
Domain Path: /languages
Network: true
Requires at least: 4.6
Requires PHP: 5.6
*/
`
		h := ParseHeader(content)
		assert.Equal(t, types.PluginHeader{
			Name:        "Hello Dolly",
			PluginURI:   "https://example.com/hello",
			Version:     "1.7.2",
			Description: "A classic.",
			Author:      "Matt",
			AuthorURI:   "https://example.com/",
			TextDomain:  "hello-dolly",
			DomainPath:  "/languages",
			Network:     true,
			RequiresWP:  "4.6",
			RequiresPHP: "5.6",
		}, h)
		assert.True(t, h.Valid())
	})

	t.Run("missing name is invalid", func(t *testing.T) {
		h := ParseHeader("<?php\n/*\nDescription: nameless\nVersion: 1.0\n*/\n")
		assert.False(t, h.Valid())
		assert.Equal(t, "nameless", h.Description)
	})

	t.Run("star prefixed doc block", func(t *testing.T) {
		content := "<?php\n/**\n * Plugin Name: Starred\n * Version: 2.0\n */\n"
		h := ParseHeader(content)
		assert.Equal(t, "Starred", h.Name)
		assert.Equal(t, "2.0", h.Version)
	})

	t.Run("carriage returns normalized", func(t *testing.T) {
		content := "<?php\r\n/*\r\nPlugin Name: DOS Plugin\r\nVersion: 1.0\r\n*/\r\n"
		h := ParseHeader(content)
		assert.Equal(t, "DOS Plugin", h.Name)
		assert.Equal(t, "1.0", h.Version)
	})

	t.Run("trailing comment close stripped", func(t *testing.T) {
		h := ParseHeader("<?php /* Plugin Name: Tight */ ?>\n")
		assert.Equal(t, "Tight", h.Name)
	})

	t.Run("network flag only true for true", func(t *testing.T) {
		assert.True(t, ParseHeader("/*\nPlugin Name: N\nNetwork: TRUE\n*/").Network)
		assert.False(t, ParseHeader("/*\nPlugin Name: N\nNetwork: yes\n*/").Network)
		assert.False(t, ParseHeader("/*\nPlugin Name: N\n*/").Network)
	})

	t.Run("author uri does not clobber author", func(t *testing.T) {
		h := ParseHeader("/*\nPlugin Name: A\nAuthor URI: https://a.example\nAuthor: Alice\n*/")
		assert.Equal(t, "Alice", h.Author)
		assert.Equal(t, "https://a.example", h.AuthorURI)
	})

	t.Run("only first 8 KiB considered", func(t *testing.T) {
		padding := strings.Repeat("// filler\n", 1024)
		h := ParseHeader(padding + "/*\nPlugin Name: Too Deep\n*/")
		assert.False(t, h.Valid())
	})

	t.Run("labels are case-insensitive", func(t *testing.T) {
		h := ParseHeader("/*\nplugin name: lower\nVERSION: 3\n*/")
		assert.Equal(t, "lower", h.Name)
		assert.Equal(t, "3", h.Version)
	})
}
