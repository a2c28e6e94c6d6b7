package pipeline

import (
	"fmt"
	"regexp"
)

const driveThumbnailWidth = "w1000"

var driveFileID = regexp.MustCompile(`(?:/d/|id=)([a-zA-Z0-9_-]{25,})`)

// DirectImageURL rewrites Google Drive share links to the embeddable
// thumbnail endpoint. Anything else is returned unchanged.
func DirectImageURL(link string) string {
	if link == "" {
		return ""
	}
	m := driveFileID.FindStringSubmatch(link)
	if len(m) < 2 {
		return link
	}
	return fmt.Sprintf("https://drive.google.com/thumbnail?id=%s&sz=%s", m[1], driveThumbnailWidth)
}
