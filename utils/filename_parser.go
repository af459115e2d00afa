package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// Gallery files follow SNAKEID-LABEL.EXT, e.g. BP-001-head.jpg or BP-001.png
var galleryFileRegex = regexp.MustCompile(`(?i)^([a-z]+-\d+)(?:[-_](.+))?\.(png|jpe?g|webp)$`)

// ParseGalleryFileName extracts the snake ID and label from a gallery file name
func ParseGalleryFileName(filename string) (snakeID string, label string, err error) {
	matches := galleryFileRegex.FindStringSubmatch(strings.TrimSpace(filename))
	if len(matches) != 4 {
		return "", "", fmt.Errorf("invalid gallery filename %q: expected SNAKEID-LABEL.EXT (e.g., BP-001-head.jpg)", filename)
	}
	return strings.ToUpper(matches[1]), strings.ToLower(matches[2]), nil
}
