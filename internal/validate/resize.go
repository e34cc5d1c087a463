package validate

import (
	"regexp"
	"strconv"

	"github.com/itsyanis/1Day1Quote/internal/domain"
)

// thumbWidth matches the width segment of Wikimedia thumbnail URLs,
// e.g. ".../thumb/a/ab/Foo.jpg/320px-Foo.jpg".
var thumbWidth = regexp.MustCompile(`\d+px-`)

func ResizeImage(url string, width int) string {
	if url == "" {
		return domain.DefaultAvatar
	}
	loc := thumbWidth.FindStringIndex(url)
	if loc == nil {
		return url
	}
	return url[:loc[0]] + strconv.Itoa(width) + "px-" + url[loc[1]:]
}
