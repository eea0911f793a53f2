package mcmap

import (
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bodgit/mcmap/mapitem"
	"github.com/maruel/natural"
)

// SortOrder is the order in which located maps are returned.
type SortOrder int

const (
	// SortNone keeps the traversal order
	SortNone SortOrder = iota
	// SortByName compares full paths, treating runs of digits as numbers
	SortByName
	// SortByTime orders by modification time, oldest first
	SortByTime
)

var sortOrders = map[string]SortOrder{
	"none": SortNone,
	"name": SortByName,
	"time": SortByTime,
}

// ParseSortOrder parses "none", "name" or "time".
func ParseSortOrder(s string) (SortOrder, error) {
	if o, ok := sortOrders[strings.ToLower(s)]; ok {
		return o, nil
	}
	return SortNone, fmt.Errorf("unknown sort order %q", s)
}

func (o SortOrder) String() string {
	for k, v := range sortOrders {
		if v == o {
			return k
		}
	}
	return fmt.Sprintf("SortOrder(%d)", int(o))
}

type mapFile struct {
	path    string
	modTime time.Time
}

// Maps is an ordered collection of map item files. Files are only decoded
// when iterated.
type Maps struct {
	files []mapFile
}

// FromPaths returns the given files in the given order.
func FromPaths(paths []string) *Maps {
	maps := &Maps{files: make([]mapFile, 0, len(paths))}
	for _, path := range paths {
		maps.files = append(maps.files, mapFile{path: path})
	}
	return maps
}

func isMapFile(name string) bool {
	return strings.HasPrefix(name, mapitem.FilePrefix) && filepath.Ext(name) == mapitem.FileExt
}

// Locate finds map item files under root, breadth first. Only the entries
// of root itself are considered unless recursive is set. Symbolic links are
// never followed. Subdirectories that cannot be read are logged and skipped.
func (m *Mapper) Locate(root string, recursive bool) (*Maps, error) {
	maps := new(Maps)

	queue := []string{root}
	for len(queue) > 0 {
		dir := queue[0]
		queue = queue[1:]

		entries, err := os.ReadDir(dir)
		if err != nil {
			if dir == root {
				return nil, err
			}
			m.logger.WithError(err).WithField("path", dir).Warn("Skipping directory")
			continue
		}

		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())

			switch t := entry.Type(); {
			case t.IsDir():
				if recursive {
					queue = append(queue, path)
				}
			case t.IsRegular():
				if !isMapFile(entry.Name()) {
					continue
				}
				info, err := entry.Info()
				if err != nil {
					// Removed since the directory was read
					m.logger.WithError(err).WithField("path", path).Warn("Skipping file")
					continue
				}
				maps.files = append(maps.files, mapFile{path: path, modTime: info.ModTime()})
			}
		}
	}

	m.logger.WithField("path", root).Debugf("Found %d map files", maps.Len())

	return maps, nil
}

// Sort reorders the maps. Sorting is stable.
func (ms *Maps) Sort(order SortOrder) {
	switch order {
	case SortByName:
		sort.SliceStable(ms.files, func(i, j int) bool {
			return natural.Less(ms.files[i].path, ms.files[j].path)
		})
	case SortByTime:
		sort.SliceStable(ms.files, func(i, j int) bool {
			return ms.files[i].modTime.Before(ms.files[j].modTime)
		})
	}
}

// Len returns the number of files, without decoding any of them.
func (ms *Maps) Len() int {
	return len(ms.files)
}

// IsEmpty reports whether there are no files.
func (ms *Maps) IsEmpty() bool {
	return ms.Len() == 0
}

// Paths returns the file paths in order.
func (ms *Maps) Paths() []string {
	paths := make([]string, 0, len(ms.files))
	for _, f := range ms.files {
		paths = append(paths, f.path)
	}
	return paths
}

// All decodes each file in order. A file that fails to decode yields a nil
// item and its error; iteration carries on with the next file.
func (ms *Maps) All() iter.Seq2[*mapitem.Item, error] {
	return func(yield func(*mapitem.Item, error) bool) {
		for _, f := range ms.files {
			if !yield(mapitem.ReadFile(f.path)) {
				return
			}
		}
	}
}

// CommonBasePath returns the longest leading directory shared by every
// path. A single path yields its parent directory. It returns false if
// paths is empty.
func CommonBasePath(paths []string) (string, bool) {
	if len(paths) == 0 {
		return "", false
	}

	sep := string(filepath.Separator)

	common := strings.Split(filepath.Dir(filepath.Clean(paths[0])), sep)
	for _, path := range paths[1:] {
		parts := strings.Split(filepath.Dir(filepath.Clean(path)), sep)
		n := 0
		for n < len(common) && n < len(parts) && common[n] == parts[n] {
			n++
		}
		common = common[:n]
	}

	switch {
	case len(common) == 0:
		return "", true
	case len(common) == 1 && common[0] == "":
		// Only the root directory is shared
		return sep, true
	}

	return strings.Join(common, sep), true
}
