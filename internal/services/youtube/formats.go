package youtube

import (
	"fmt"
	"regexp"
	"strings"
)

var qualityPattern = regexp.MustCompile(`^(\d+)p$`)

// ValidQuality reports whether q looks like "720p". Empty is valid and means "best".
func ValidQuality(q string) bool {
	return q == "" || qualityPattern.MatchString(q)
}

// FormatSelector builds the yt-dlp -f expression for a request.
//
//	audio:          bestaudio[ext=m4a]/bestaudio
//	video + "720p": bestvideo[height<=720]+bestaudio[ext=m4a]/best[ext=mp4]
//	video:          bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]
func FormatSelector(format MediaFormat, quality string) string {
	if format == FormatAudio {
		return "bestaudio[ext=m4a]/bestaudio"
	}

	if m := qualityPattern.FindStringSubmatch(strings.TrimSpace(quality)); m != nil {
		return fmt.Sprintf("bestvideo[height<=%s]+bestaudio[ext=m4a]/best[ext=mp4]", m[1])
	}
	return "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]"
}
