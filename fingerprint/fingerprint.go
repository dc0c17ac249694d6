package fingerprint

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf16"
)

const (
	probeText = "Device fingerprint"
	probeFont = "14px Arial"

	// Only the head of the serialized rendering participates in identity.
	probePrefixLen = 100
)

// Signals is a read-only snapshot of the environment the client runtime
// exposes. Zero values are valid and simply weaken the identifier.
type Signals struct {
	UserAgent         string
	Language          string
	ColorDepth        int
	ScreenWidth       int
	ScreenHeight      int
	TimezoneOffsetMin int
	Timezone          string
}

// Surface models an offscreen 2D raster used as an extra identity component.
// Render draws text with the given font and returns a serialized pixel
// encoding. Implementations that cannot render return an error; the
// generator degrades to an empty component rather than failing.
type Surface interface {
	Render(text, font string) (string, error)
}

// NullSurface is a [Surface] for environments without raster support.
type NullSurface struct{}

// Render describes the render operation and its observable behavior.
func (NullSurface) Render(string, string) (string, error) {
	return "", nil
}

// DeviceInfo is the result of [Generate]. DeviceID is the identity; the
// remaining fields are descriptive metadata and never feed the hash.
type DeviceInfo struct {
	DeviceID         string    `json:"deviceId"`
	Browser          string    `json:"browser"`
	OS               string    `json:"os"`
	ScreenResolution string    `json:"screenResolution"`
	Timezone         string    `json:"timezone"`
	Language         string    `json:"language"`
	Timestamp        time.Time `json:"timestamp"`
}

// Generate derives a [DeviceInfo] from the given signals. Deterministic for
// a fixed snapshot; collisions across identically configured devices are
// expected and acceptable.
func Generate(sig Signals, surface Surface) DeviceInfo {
	probe := renderProbe(surface)

	components := []string{
		sig.UserAgent,
		sig.Language,
		strconv.Itoa(sig.ColorDepth),
		strconv.Itoa(sig.ScreenWidth),
		strconv.Itoa(sig.ScreenHeight),
		strconv.Itoa(sig.TimezoneOffsetMin),
		probe,
	}

	return DeviceInfo{
		DeviceID:         hashComponents(strings.Join(components, "|")),
		Browser:          ClassifyBrowser(sig.UserAgent),
		OS:               ClassifyOS(sig.UserAgent),
		ScreenResolution: strconv.Itoa(sig.ScreenWidth) + "x" + strconv.Itoa(sig.ScreenHeight),
		Timezone:         sig.Timezone,
		Language:         sig.Language,
		Timestamp:        time.Now(),
	}
}

func renderProbe(surface Surface) string {
	if surface == nil {
		return ""
	}
	encoded, err := surface.Render(probeText, probeFont)
	if err != nil {
		return ""
	}
	if len(encoded) > probePrefixLen {
		encoded = encoded[:probePrefixLen]
	}
	return encoded
}

// hashComponents reduces s through a 32-bit rolling hash
// (h = h*31 + codeUnit, wrapped to signed 32-bit) and renders the absolute
// value as lowercase hex. Operates on UTF-16 code units so identifiers match
// those produced by browser runtimes for the same component string.
func hashComponents(s string) string {
	var h int32
	for _, u := range utf16.Encode([]rune(s)) {
		h = (h << 5) - h + int32(u)
	}

	v := int64(h)
	if v < 0 {
		v = -v
	}
	return strconv.FormatInt(v, 16)
}
