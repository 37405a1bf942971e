package services

import "testing"

func TestThumbnail(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"absolute path", "/tmp/foo.jpg", "/thumbnails/foo.jpg.thumb"},
		{"bare name", "bar.png", "/thumbnails/bar.png.thumb"},
		{"windows path", `C:\images\cat.gif`, "/thumbnails/cat.gif.thumb"},
		{"trailing slash", "/tmp/dir/", "/thumbnails/dir.thumb"},
		{"empty", "", "/thumbnails/.thumb"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Thumbnail(tc.path)
			if got.ThumbnailURL != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got.ThumbnailURL)
			}
			if got.Size != "100x100" {
				t.Errorf("Expected size 100x100, got %q", got.Size)
			}
		})
	}
}

func TestThumbnail_Deterministic(t *testing.T) {
	first := Thumbnail("/tmp/foo.jpg")
	for i := 0; i < 3; i++ {
		if got := Thumbnail("/tmp/foo.jpg"); got != first {
			t.Fatalf("call %d returned %+v, want %+v", i, got, first)
		}
	}
}
