package services

import "regexp"

var youtubeIDPattern = regexp.MustCompile(`(?:youtu\.be/|youtube\.com/(?:watch\?v=|embed/))([A-Za-z0-9_-]{11})`)

// EmbedURL rewrites a YouTube watch or short-link URL to its embeddable
// form. Any other URL is returned unchanged and treated as a direct media
// source by the consumer.
func EmbedURL(rawURL string) string {
	if match := youtubeIDPattern.FindStringSubmatch(rawURL); match != nil {
		return "https://www.youtube.com/embed/" + match[1]
	}
	return rawURL
}
