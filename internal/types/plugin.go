package types

// PluginHeader holds the metadata declared in the leading comment block of a
// plugin entry file. All fields are raw text as found in the file except
// Network, which WordPress treats as a boolean.
type PluginHeader struct {
	Name        string `json:"name"`
	PluginURI   string `json:"plugin_uri,omitempty"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`
	Author      string `json:"author,omitempty"`
	AuthorURI   string `json:"author_uri,omitempty"`
	TextDomain  string `json:"text_domain,omitempty"`
	DomainPath  string `json:"domain_path,omitempty"`
	Network     bool   `json:"network,omitempty"`
	RequiresWP  string `json:"requires_at_least,omitempty"`
	RequiresPHP string `json:"requires_php,omitempty"`
}

// Valid reports whether the header describes a real plugin. WordPress only
// requires the name line; everything else is optional.
func (h PluginHeader) Valid() bool {
	return h.Name != ""
}

// PluginEntry pairs a plugin file key (the entry file path relative to the
// plugins directory, forward slashes) with its parsed header. The key is what
// the active_plugins option stores.
type PluginEntry struct {
	Key    string       `json:"key"`
	Header PluginHeader `json:"header"`
}
