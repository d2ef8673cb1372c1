// Package placeholder builds the stand-in image URLs shown when a record
// has no image of its own.
package placeholder

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// Image is the generic 600x400 placeholder.
	Image = "https://placehold.co/600x400.png"
	// Video marks video teachings without a media URL.
	Video = "https://placehold.co/600x400.png/000000/FFFFFF?text=Video"
	// Audio marks audio teachings without a media URL.
	Audio = "https://placehold.co/600x400.png/E8E8E8/000000?text=Audio"
)

// Avatar sizes in pixels.
const (
	AvatarSmall = 40
	AvatarLarge = 128
)

// Media returns the placeholder for a teaching of the given media kind.
func Media(kind string) string {
	switch kind {
	case "video":
		return Video
	case "audio":
		return Audio
	}
	return Image
}

// Avatar returns a size x size image labelled with the first letter of name.
func Avatar(name string, size int) string {
	letter := "?"
	if r, _ := utf8.DecodeRuneInString(strings.TrimSpace(name)); r != utf8.RuneError {
		letter = string(unicode.ToUpper(r))
	}
	return fmt.Sprintf("https://placehold.co/%dx%d.png?text=%s", size, size, url.QueryEscape(letter))
}
