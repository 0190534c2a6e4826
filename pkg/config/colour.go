package config

import (
	"fmt"
	"regexp"

	"github.com/go-gl/mathgl/mgl32"
)

var colourRe = regexp.MustCompile(`^#([0-9A-Fa-f]{6}|[0-9A-Fa-f]{8})$`)

// ParseColor converts #RRGGBB[AA] into normalized RGBA.
func ParseColor(s string) (mgl32.Vec4, error) {
	if !colourRe.MatchString(s) {
		return mgl32.Vec4{}, fmt.Errorf("bad color: %q", s)
	}
	if len(s) == 7 {
		s += "ff"
	}
	var r, g, b, a uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x%02x", &r, &g, &b, &a); err != nil {
		return mgl32.Vec4{}, fmt.Errorf("bad color: %q, %w", s, err)
	}
	return mgl32.Vec4{float32(r) / 255, float32(g) / 255, float32(b) / 255, float32(a) / 255}, nil
}
