package fingerprint

import "testing"

const chromeLinuxUA = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

func testSignals() Signals {
	return Signals{
		UserAgent:         chromeLinuxUA,
		Language:          "en-US",
		ColorDepth:        24,
		ScreenWidth:       1920,
		ScreenHeight:      1080,
		TimezoneOffsetMin: -120,
		Timezone:          "Europe/Berlin",
	}
}

type staticSurface struct {
	encoded string
	err     error
}

func (s staticSurface) Render(string, string) (string, error) {
	return s.encoded, s.err
}

func TestGenerateDeterministic(t *testing.T) {
	first := Generate(testSignals(), NullSurface{})
	second := Generate(testSignals(), NullSurface{})

	if first.DeviceID == "" {
		t.Fatal("expected non-empty device id")
	}
	if first.DeviceID != second.DeviceID {
		t.Fatalf("expected stable device id, got %q and %q", first.DeviceID, second.DeviceID)
	}
}

func TestGenerateChangedSignalChangesID(t *testing.T) {
	base := Generate(testSignals(), NullSurface{})

	changed := testSignals()
	changed.ScreenWidth = 2560
	other := Generate(changed, NullSurface{})

	if base.DeviceID == other.DeviceID {
		t.Fatalf("expected changed screen width to change device id, got %q twice", base.DeviceID)
	}
}

func TestGenerateSurfaceParticipatesInIdentity(t *testing.T) {
	plain := Generate(testSignals(), NullSurface{})
	rastered := Generate(testSignals(), staticSurface{encoded: "data:image/png;base64,AAAA"})

	if plain.DeviceID == rastered.DeviceID {
		t.Fatal("expected raster component to change device id")
	}
}

func TestGenerateSurfaceFailureDegrades(t *testing.T) {
	failed := Generate(testSignals(), staticSurface{err: errRender})
	missing := Generate(testSignals(), nil)
	null := Generate(testSignals(), NullSurface{})

	if failed.DeviceID != null.DeviceID || missing.DeviceID != null.DeviceID {
		t.Fatal("expected failing and missing surfaces to degrade to the empty component")
	}
}

func TestGenerateProbeTruncated(t *testing.T) {
	long := make([]byte, 400)
	for i := range long {
		long[i] = 'x'
	}

	full := Generate(testSignals(), staticSurface{encoded: string(long)})
	truncated := Generate(testSignals(), staticSurface{encoded: string(long[:100])})

	if full.DeviceID != truncated.DeviceID {
		t.Fatal("expected probe to be truncated to its first 100 characters")
	}
}

func TestGenerateMetadata(t *testing.T) {
	info := Generate(testSignals(), NullSurface{})

	if info.Browser != "Chrome" {
		t.Fatalf("expected Chrome, got %q", info.Browser)
	}
	if info.OS != "Linux" {
		t.Fatalf("expected Linux, got %q", info.OS)
	}
	if info.ScreenResolution != "1920x1080" {
		t.Fatalf("unexpected resolution %q", info.ScreenResolution)
	}
	if info.Timezone != "Europe/Berlin" || info.Language != "en-US" {
		t.Fatalf("unexpected metadata: %+v", info)
	}
}

func TestClassifyRules(t *testing.T) {
	cases := []struct {
		ua      string
		browser string
		os      string
	}{
		{chromeLinuxUA, "Chrome", "Linux"},
		{"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0", "Firefox", "Windows"},
		{"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 Version/17.0 Safari/605.1.15", "Safari", "macOS"},
		{"curl/8.4.0", "Unknown", "Unknown"},
		{"", "Unknown", "Unknown"},
	}

	for _, tc := range cases {
		if got := ClassifyBrowser(tc.ua); got != tc.browser {
			t.Fatalf("browser for %q: got %q want %q", tc.ua, got, tc.browser)
		}
		if got := ClassifyOS(tc.ua); got != tc.os {
			t.Fatalf("os for %q: got %q want %q", tc.ua, got, tc.os)
		}
	}
}

var errRender = &renderError{}

type renderError struct{}

func (*renderError) Error() string { return "raster unavailable" }
