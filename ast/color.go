package ast

import (
	"fmt"
	"strconv"
	"strings"
)

type Color struct {
	R, G, B uint8
}

var namedColors = map[string]Color{
	"red":     {255, 0, 0},
	"orange":  {255, 165, 0},
	"yellow":  {255, 255, 0},
	"green":   {0, 255, 0},
	"blue":    {0, 0, 255},
	"indigo":  {75, 0, 130},
	"violet":  {127, 0, 255},
	"black":   {0, 0, 0},
	"white":   {255, 255, 255},
	"gray":    {128, 128, 128},
	"grey":    {128, 128, 128},
	"brown":   {165, 42, 42},
	"pink":    {255, 192, 203},
	"purple":  {128, 0, 128},
	"cyan":    {0, 255, 255},
	"magenta": {255, 0, 255},
	"lime":    {0, 255, 0},
	"teal":    {0, 128, 128},
	"maroon":  {128, 0, 0},
	"navy":    {0, 0, 128},
}

// ParseColor accepts a color name, an "(r, g, b)" triple or a "#rgb"/"#rrggbb"
// hex literal.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return Color{}, fmt.Errorf("empty color literal")
	case strings.HasPrefix(s, "("):
		return parseRGB(s)
	case strings.HasPrefix(s, "#"):
		return parseHex(s)
	}
	c, ok := namedColors[strings.ToLower(s)]
	if !ok {
		return Color{}, fmt.Errorf("invalid color literal: %s", s)
	}
	return c, nil
}

func parseRGB(s string) (Color, error) {
	if !strings.HasSuffix(s, ")") {
		return Color{}, fmt.Errorf("unterminated rgb literal: %s", s)
	}
	parts := strings.Split(s[1:len(s)-1], ",")
	switch {
	case len(parts) < 3:
		return Color{}, fmt.Errorf("insufficient values for rgb literal: %s", s)
	case len(parts) > 3:
		return Color{}, fmt.Errorf("too many values for rgb literal: %s", s)
	}

	var rgb [3]uint8
	for i, p := range parts {
		p = strings.TrimSpace(p)
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return Color{}, fmt.Errorf("invalid value for rgb literal: %q", p)
		}
		if n > 255 {
			return Color{}, fmt.Errorf("rgb value out of range (0-255): %d", n)
		}
		rgb[i] = uint8(n)
	}
	return Color{rgb[0], rgb[1], rgb[2]}, nil
}

func parseHex(s string) (Color, error) {
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("invalid hex color literal: %s", s)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color literal: %s", s)
	}
	return Color{uint8(n >> 16), uint8(n >> 8), uint8(n)}, nil
}

func (c Color) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}
