package domain

import (
	"fmt"
	"path"
	"strings"
	"time"
)

// GalleryImage is the metadata row for an image held in object storage.
// ImageKey is the object key; the bytes themselves never touch the database.
type GalleryImage struct {
	ID           int64
	Title        *string
	Description  *string
	ImageKey     string
	DisplayOrder int
	IsFeatured   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// GalleryKeyPrefix is the object key prefix shared by every gallery image.
const GalleryKeyPrefix = "gallery/"

// GalleryImageKey builds the object key for an uploaded file:
// gallery/<unix-millis>-<base filename>.
func GalleryImageKey(uploadedAt time.Time, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	name = strings.Join(strings.Fields(name), "-")
	if name == "" || name == "." || name == "/" {
		name = "image"
	}
	return fmt.Sprintf("%s%d-%s", GalleryKeyPrefix, uploadedAt.UnixMilli(), name)
}
