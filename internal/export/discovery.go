package export

import (
	"path/filepath"
	"sort"
)

// Vendor-named folders an export archive is expected to contain.
const (
	AccountDataDir     = "Spotify Account Data"
	ExtendedHistoryDir = "Spotify Extended Streaming History"
	TechnicalLogDir    = "Spotify Technical Log Information"
)

// Well-known account files consumed by the merger's allow-lists.
const (
	IdentityFile = "Identity.json"
	UserdataFile = "Userdata.json"
	LibraryFile  = "YourLibrary.json"
)

// ScanDirs lists the vendor folders the privacy scanner analyzes.
func ScanDirs() []string {
	return []string{AccountDataDir, ExtendedHistoryDir, TechnicalLogDir}
}

// SanitizeDirs lists the vendor folders the sanitizer mirrors. The technical
// log folder is excluded wholesale; its files never leave the raw archive.
func SanitizeDirs() []string {
	return []string{AccountDataDir, ExtendedHistoryDir}
}

// StreamingHistoryFiles returns every streaming-history export file under
// root, regular history first, then extended history, each group sorted.
func StreamingHistoryFiles(root string) []string {
	files := globSorted(filepath.Join(root, AccountDataDir, "StreamingHistory_music_*.json"))
	files = append(files, globSorted(filepath.Join(root, ExtendedHistoryDir, "Streaming_History_Audio_*.json"))...)
	return files
}

// PlaylistFiles returns every playlist export file under root, sorted.
func PlaylistFiles(root string) []string {
	return globSorted(filepath.Join(root, AccountDataDir, "Playlist*.json"))
}

// JSONFilesIn returns every JSON file directly inside the named vendor
// folder under root, sorted. A missing folder yields nil.
func JSONFilesIn(root, dir string) []string {
	return globSorted(filepath.Join(root, dir, "*.json"))
}

// AccountFilePath returns the path of a well-known account file under root.
func AccountFilePath(root, name string) string {
	return filepath.Join(root, AccountDataDir, name)
}

func globSorted(pattern string) []string {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		// Only possible with a malformed pattern; ours are fixed.
		return nil
	}
	sort.Strings(matches)
	return matches
}
