package plugin

import (
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/wprescue/wp-rescue/internal/types"
)

// headerBytes is how much of an entry file is inspected for metadata.
// WordPress itself only reads the first 8 KiB.
const headerBytes = 8 * 1024

type headerField struct {
	re  *regexp.Regexp
	set func(*types.PluginHeader, string)
}

// Each field is matched by its own pattern: a line of optional comment
// markers, the label, a colon, and the value. Matching is case-insensitive
// and tolerant of the label appearing anywhere in the first 8 KiB.
func field(label string, set func(*types.PluginHeader, string)) headerField {
	return headerField{
		re:  regexp.MustCompile(`(?im)^[ \t]*(?:<\?php)?[ \t/*#@]*` + label + `:(.*)$`),
		set: set,
	}
}

var headerFields = []headerField{
	field("Plugin Name", func(h *types.PluginHeader, v string) { h.Name = v }),
	field("Plugin URI", func(h *types.PluginHeader, v string) { h.PluginURI = v }),
	field("Version", func(h *types.PluginHeader, v string) { h.Version = v }),
	field("Description", func(h *types.PluginHeader, v string) { h.Description = v }),
	field("Author URI", func(h *types.PluginHeader, v string) { h.AuthorURI = v }),
	field("Author", func(h *types.PluginHeader, v string) { h.Author = v }),
	field("Text Domain", func(h *types.PluginHeader, v string) { h.TextDomain = v }),
	field("Domain Path", func(h *types.PluginHeader, v string) { h.DomainPath = v }),
	field("Network", func(h *types.PluginHeader, v string) { h.Network = strings.EqualFold(v, "true") }),
	field("Requires at least", func(h *types.PluginHeader, v string) { h.RequiresWP = v }),
	field("Requires PHP", func(h *types.PluginHeader, v string) { h.RequiresPHP = v }),
}

// trailingMarkers strips a comment-close or code-close marker and anything
// after it from a captured header value.
var trailingMarkers = regexp.MustCompile(`\s*(?:\*/|\?>).*`)

// ParseHeader extracts plugin metadata from the leading bytes of an entry
// file. Carriage returns are normalized to newlines first so Windows-edited
// files parse the same as Unix ones.
func ParseHeader(content string) types.PluginHeader {
	if len(content) > headerBytes {
		content = content[:headerBytes]
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	var header types.PluginHeader
	for _, f := range headerFields {
		m := f.re.FindStringSubmatch(content)
		if m == nil {
			continue
		}
		value := strings.TrimSpace(trailingMarkers.ReplaceAllString(m[1], ""))
		f.set(&header, value)
	}
	return header
}

// readHeader parses the header of the file at path. Unreadable files yield
// the zero (invalid) header so callers simply exclude them.
func readHeader(path string) types.PluginHeader {
	f, err := os.Open(path)
	if err != nil {
		return types.PluginHeader{}
	}
	defer f.Close()

	buf, err := io.ReadAll(io.LimitReader(f, headerBytes))
	if err != nil {
		return types.PluginHeader{}
	}
	return ParseHeader(string(buf))
}
