package domain

import (
	"fmt"
	"regexp"
)

var youtubeIDPattern = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\n?#]+)`)

// ExtractVideoID pulls the video identifier out of a pasted YouTube URL.
// The same input always yields the same identifier. Returns "" when the URL
// does not match any known shape.
func ExtractVideoID(url string) string {
	m := youtubeIDPattern.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}

// VideoThumbnail returns the standard YouTube thumbnail URL for a video id.
func VideoThumbnail(videoID string) string {
	return fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", videoID)
}
