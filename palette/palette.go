// Package palette holds the colours used by the dashboard charts.
package palette

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// rgb builds a colour from 8-bit channels.
func rgb(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// Chart colours.
var (
	Red    = rgb(255, 99, 132)
	Orange = rgb(255, 159, 64)
	Yellow = rgb(255, 205, 86)
	Green  = rgb(75, 192, 192)
	Blue   = rgb(54, 162, 235)
	Purple = rgb(153, 102, 255)
	Grey   = rgb(201, 203, 207)
)

// Names maps the colour names to their value.
var Names = map[string]colorful.Color{
	"red":    Red,
	"orange": Orange,
	"yellow": Yellow,
	"green":  Green,
	"blue":   Blue,
	"purple": Purple,
	"grey":   Grey,
}

var named = []colorful.Color{Red, Orange, Yellow, Green, Blue, Purple, Grey}

// smas are the colours of the simple moving average lines, in window order.
var smas = []colorful.Color{Blue, Purple, Orange, Grey, Yellow}

// DefaultOpacity is the opacity used to fill areas under a line.
const DefaultOpacity = 0.5

// Named returns the i-th named colour, cycling through the seven chart colours.
func Named(i int) colorful.Color { return named[wrap(i, len(named))] }

// SMA returns the colour of the i-th moving average line.
func SMA(i int) colorful.Color { return smas[wrap(i, len(smas))] }

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// RGB formats c as a CSS rgb() string.
func RGB(c colorful.Color) string {
	r, g, b := c.Clamped().RGB255()
	return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
}

// Transparentize formats c as a CSS rgba() string with an alpha of 1-opacity.
func Transparentize(c colorful.Color, opacity float64) string {
	alpha := min(max(1-opacity, 0), 1)
	r, g, b := c.Clamped().RGB255()
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, strconv.FormatFloat(alpha, 'f', -1, 64))
}

var rgbRE = regexp.MustCompile(`^rgba?\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*(?:,\s*[0-9.]+\s*)?\)$`)

// Parse reads a colour name, a #hex string or a CSS rgb()/rgba() string.
// The alpha channel of rgba() is ignored.
func Parse(s string) (colorful.Color, error) {
	s = strings.TrimSpace(s)
	if c, ok := Names[strings.ToLower(s)]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return colorful.Color{}, fmt.Errorf("invalid colour %q: %w", s, err)
		}
		return c, nil
	}
	m := rgbRE.FindStringSubmatch(s)
	if m == nil {
		return colorful.Color{}, fmt.Errorf("invalid colour %q: want a name, #hex or rgb(r, g, b)", s)
	}
	var channels [3]uint8
	for i := range channels {
		v, err := strconv.Atoi(m[i+1])
		if err != nil || v > 255 {
			return colorful.Color{}, fmt.Errorf("invalid colour %q: channel %q out of range", s, m[i+1])
		}
		channels[i] = uint8(v)
	}
	return rgb(channels[0], channels[1], channels[2]), nil
}
