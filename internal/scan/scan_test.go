package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
}

func TestLargestNumber(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  int
	}{
		{
			name:  "mixed digit runs",
			files: []string{"frame3.png", "img_10_v2.png", "x.png"},
			want:  10,
		},
		{
			name:  "multiple runs in one name",
			files: []string{"take2_shot44.jpg"},
			want:  44,
		},
		{
			name:  "no digits anywhere",
			files: []string{"cover.png", "thumb.jpeg"},
			want:  0,
		},
		{
			name:  "non-image extensions ignored",
			files: []string{"notes99.txt", "clip100.mp4", "image_0007.png"},
			want:  7,
		},
		{
			name:  "uppercase extension counts",
			files: []string{"IMAGE_0042.PNG"},
			want:  42,
		},
		{
			name:  "digits in extension do not count",
			files: []string{"frame.mp4", "frame5.bmp"},
			want:  5,
		},
		{
			name:  "empty directory",
			files: nil,
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, f := range tt.files {
				touch(t, dir, f)
			}
			assert.Equal(t, tt.want, LargestNumber(dir))
		})
	}
}

func TestLargestNumberMissingDir(t *testing.T) {
	assert.Equal(t, 0, LargestNumber(filepath.Join(t.TempDir(), "nope")))
}

func TestLargestNumberSkipsSubdirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "999.png"), 0o755))
	touch(t, dir, "image_0003.png")
	assert.Equal(t, 3, LargestNumber(dir))
}
