package services

import (
	"path"
	"strings"

	"copilot-replica/internal/models"
)

const thumbnailSize = "100x100"

// Thumbnail returns a placeholder descriptor built from the base name of
// filePath. The file itself is never read.
func Thumbnail(filePath string) models.Thumbnail {
	return models.Thumbnail{
		ThumbnailURL: "/thumbnails/" + baseName(filePath) + ".thumb",
		Size:         thumbnailSize,
	}
}

// baseName treats both separators alike so client paths from any platform
// resolve the same way.
func baseName(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	p = strings.TrimRight(p, "/")
	if p == "" {
		return ""
	}
	return path.Base(p)
}
