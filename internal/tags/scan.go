package tags

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// AudioExtensions lists the file extensions considered audio when walking
// directories.
var AudioExtensions = []string{".flac", ".mp3", ".m4a", ".ogg", ".opus", ".wav"}

// IsAudioFile reports whether path carries a recognized audio extension.
func IsAudioFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, candidate := range AudioExtensions {
		if ext == candidate {
			return true
		}
	}
	return false
}

// CollectAudioFiles expands the given arguments into a flat list of files to
// inspect. File arguments are taken as-is; directories are walked
// recursively and filtered by audio extension, in sorted order. Arguments
// that exist as neither are returned in missing.
func CollectAudioFiles(args []string) (files []string, missing []string) {
	for _, arg := range args {
		info, err := os.Stat(arg)
		switch {
		case err != nil:
			missing = append(missing, arg)
		case info.IsDir():
			var found []string
			_ = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
				if err != nil || d.IsDir() {
					return nil
				}
				if IsAudioFile(path) {
					found = append(found, path)
				}
				return nil
			})
			sort.Strings(found)
			files = append(files, found...)
		default:
			files = append(files, arg)
		}
	}
	return files, missing
}
