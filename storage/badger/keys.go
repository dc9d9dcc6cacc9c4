package badger

import (
	"path"
	"strings"
)

// Key prefixes for the two kinds of entries
const (
	dirPrefix  = "dir:"
	filePrefix = "file:"
)

// cleanPath converts p to a cleaned, slash separated path.
func cleanPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	if p == "" {
		return "."
	}
	return path.Clean(p)
}

// makeDirKey generates the marker key for a directory.
// Format: dir:path
func makeDirKey(p string) []byte {
	return []byte(dirPrefix + cleanPath(p))
}

// makeFileKey generates the key for a file.
// Format: file:path
func makeFileKey(p string) []byte {
	return []byte(filePrefix + cleanPath(p))
}

// makeFilePrefix generates the prefix for every file beneath a directory.
// Format: file:path/
func makeFilePrefix(dir string) []byte {
	dir = cleanPath(dir)
	if dir == "." {
		return []byte(filePrefix)
	}
	if dir == "/" {
		return []byte(filePrefix + "/")
	}
	return []byte(filePrefix + dir + "/")
}

// filePathFromKey strips the file prefix from a key.
func filePathFromKey(key []byte) string {
	return strings.TrimPrefix(string(key), filePrefix)
}

// parentDirs returns p and each of its ancestors, deepest first.
func parentDirs(p string) []string {
	p = cleanPath(p)
	var dirs []string
	for {
		dirs = append(dirs, p)
		parent := path.Dir(p)
		if parent == p {
			return dirs
		}
		p = parent
	}
}
