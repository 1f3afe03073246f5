package scan

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var digitRuns = regexp.MustCompile(`\d+`)

// LargestNumber returns the largest integer embedded in any image filename
// directly under dir. Every maximal run of decimal digits in a base name
// (extension stripped) is a candidate, so "img_10_v2.png" contributes both 10
// and 2. Returns 0 if the directory does not exist or no filename carries a
// number.
func LargestNumber(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}

	max := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !isImageExt(filepath.Ext(name)) {
			continue
		}
		base := strings.TrimSuffix(name, filepath.Ext(name))
		for _, run := range digitRuns.FindAllString(base, -1) {
			if n, err := strconv.Atoi(run); err == nil && n > max {
				max = n
			}
		}
	}
	return max
}

func isImageExt(ext string) bool {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg", ".png", ".bmp":
		return true
	default:
		return false
	}
}
