package file

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// allowed upload content types; uploads exist to be fetched back by vision
// models, so only image formats pass.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// buildObjectKey produces a collision-free, date-bucketed object key. The
// original filename is not trusted and only contributes its extension when
// the content type has no canonical one.
func buildObjectKey(originalName, contentType string, now time.Time) string {
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		ext = strings.ToLower(path.Ext(originalName))
	}
	return fmt.Sprintf("uploads/%s/%s%s", now.Format("2006/01/02"), uuid.New().String(), ext)
}

func isAllowedImage(contentType string) bool {
	_, ok := allowedImageTypes[contentType]
	return ok
}
