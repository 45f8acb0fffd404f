package style

import (
	"fmt"
	"strconv"
	"strings"
)

// KML colors are aabbggrr hex; web formats want rgb ordering with the
// alpha split out.

// HexRGB converts a KML aabbggrr color into a #rrggbb hex string and an
// opacity fraction in [0, 1]. ok is false when value is not an 8-digit
// hex color.
func HexRGB(value string) (string, float64, bool) {
	r, g, b, a, ok := colorComponents(value)
	if !ok {
		return "", 0, false
	}
	return fmt.Sprintf("#%02x%02x%02x", r, g, b), a, true
}

// CSSColor converts a KML aabbggrr color into a CSS rgba() expression.
// Values that do not parse are returned unchanged.
func CSSColor(value string) string {
	r, g, b, a, ok := colorComponents(value)
	if !ok {
		return value
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %.2f)", r, g, b, a)
}

func colorComponents(value string) (r, g, b uint8, a float64, ok bool) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(trimmed) != 8 {
		return 0, 0, 0, 0, false
	}
	raw, err := strconv.ParseUint(trimmed, 16, 32)
	if err != nil {
		return 0, 0, 0, 0, false
	}

	a = float64((raw>>24)&0xff) / 255
	b = uint8((raw >> 16) & 0xff)
	g = uint8((raw >> 8) & 0xff)
	r = uint8(raw & 0xff)
	return r, g, b, a, true
}
