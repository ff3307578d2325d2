package plugin

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/wprescue/wp-rescue/internal/types"
)

// Scanner enumerates the plugins installed under a WordPress content
// directory.
type Scanner interface {
	Scan() ([]types.PluginEntry, error)
}

// DirScanner walks the plugins directory one level deep, resolving one entry
// file per plugin folder plus any standalone top-level .php files. Results
// follow directory iteration order; nothing is cached between calls.
type DirScanner struct {
	root   string
	logger *logrus.Logger
}

var _ Scanner = (*DirScanner)(nil)

func NewDirScanner(root string, logger *logrus.Logger) *DirScanner {
	return &DirScanner{root: root, logger: logger}
}

// Scan returns every valid plugin found under the root. A missing plugins
// directory is an empty installation, not an error.
func (s *DirScanner) Scan() ([]types.PluginEntry, error) {
	children, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		s.logger.WithError(err).WithField("root", s.root).Warn("cannot read plugins directory")
		return nil, nil
	}

	var entries []types.PluginEntry
	for _, child := range children {
		name := child.Name()
		if child.IsDir() {
			if entry, ok := s.scanFolder(name); ok {
				entries = append(entries, entry)
			}
			continue
		}
		if !strings.HasSuffix(name, ".php") {
			continue
		}
		header := readHeader(filepath.Join(s.root, name))
		if header.Valid() {
			entries = append(entries, types.PluginEntry{Key: name, Header: header})
		}
	}
	return entries, nil
}

// scanFolder resolves the entry file of one plugin folder. The conventional
// <dirname>.php wins when it exists; otherwise every .php file below the
// folder is tried in candidate order until one carries a valid header.
func (s *DirScanner) scanFolder(dir string) (types.PluginEntry, bool) {
	preferred := filepath.Join(s.root, dir, dir+".php")
	if _, err := os.Stat(preferred); err == nil {
		header := readHeader(preferred)
		if !header.Valid() {
			return types.PluginEntry{}, false
		}
		return types.PluginEntry{Key: path.Join(dir, dir+".php"), Header: header}, true
	}

	candidates := s.listPHPFiles(filepath.Join(s.root, dir))
	sortCandidates(candidates)

	for _, rel := range candidates {
		header := readHeader(filepath.Join(s.root, dir, filepath.FromSlash(rel)))
		if header.Valid() {
			return types.PluginEntry{Key: path.Join(dir, rel), Header: header}, true
		}
	}
	return types.PluginEntry{}, false
}

// listPHPFiles returns all .php files below dir as slash-separated paths
// relative to dir.
func (s *DirScanner) listPHPFiles(dir string) []string {
	var files []string
	_ = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".php") {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return nil
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	return files
}

// sortCandidates orders fallback entry-file candidates: index.php always
// sorts last, shallower paths come before deeper ones, ties break
// lexicographically. index.php is almost never a real entry file, so it is
// only tried once everything else has failed.
func sortCandidates(files []string) {
	sort.Slice(files, func(i, j int) bool {
		a, b := files[i], files[j]
		aIndex := path.Base(a) == "index.php"
		bIndex := path.Base(b) == "index.php"
		if aIndex != bIndex {
			return bIndex
		}
		aDepth := strings.Count(a, "/")
		bDepth := strings.Count(b, "/")
		if aDepth != bDepth {
			return aDepth < bDepth
		}
		return a < b
	})
}
