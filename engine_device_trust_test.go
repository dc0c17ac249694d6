package trustkit

import (
	"context"
	"testing"

	"github.com/vigilops/trustkit/fingerprint"
)

func testDeviceInfo(ua string) DeviceInfo {
	return fingerprint.Generate(fingerprint.Signals{
		UserAgent:         ua,
		Language:          "en-US",
		ColorDepth:        24,
		ScreenWidth:       1920,
		ScreenHeight:      1080,
		TimezoneOffsetMin: -120,
		Timezone:          "Europe/Berlin",
	}, nil)
}

func TestTrustDeviceAndList(t *testing.T) {
	_, rdb := newTestRedis(t)
	engine := newTestEngine(t, rdb, testConfig())
	ctx := context.Background()

	chrome := testDeviceInfo("Mozilla/5.0 (Windows NT 10.0; Win64) Chrome/120.0")
	firefox := testDeviceInfo("Mozilla/5.0 (X11; Linux x86_64) Firefox/121.0")

	if _, err := engine.TrustDevice(ctx, "u1", chrome); err != nil {
		t.Fatalf("TrustDevice failed: %v", err)
	}
	if _, err := engine.TrustDevice(ctx, "u1", firefox); err != nil {
		t.Fatalf("TrustDevice failed: %v", err)
	}

	devices, err := engine.TrustedDevices(ctx, "u1")
	if err != nil {
		t.Fatalf("TrustedDevices failed: %v", err)
	}
	if len(devices) != 2 {
		t.Fatalf("expected 2 devices, got %d", len(devices))
	}
	if devices[0].ID != chrome.DeviceID || devices[1].ID != firefox.DeviceID {
		t.Fatal("expected insertion order to be preserved")
	}
	if devices[0].Name != "Chrome on Windows" {
		t.Fatalf("unexpected device name %q", devices[0].Name)
	}
	if devices[1].Name != "Firefox on Linux" {
		t.Fatalf("unexpected device name %q", devices[1].Name)
	}
	if devices[0].Browser != "Chrome" || devices[0].OS != "Windows" {
		t.Fatalf("expected browser/os to be persisted, got %q/%q", devices[0].Browser, devices[0].OS)
	}
	if devices[1].Browser != "Firefox" || devices[1].OS != "Linux" {
		t.Fatalf("expected browser/os to be persisted, got %q/%q", devices[1].Browser, devices[1].OS)
	}
	if devices[0].Location != "Unknown" || !devices[0].Trusted {
		t.Fatalf("unexpected record: %+v", devices[0])
	}
}

func TestTrustDeviceIdempotent(t *testing.T) {
	_, rdb := newTestRedis(t)
	engine := newTestEngine(t, rdb, testConfig())
	ctx := context.Background()

	info := testDeviceInfo("Mozilla/5.0 Chrome/120.0")
	if _, err := engine.TrustDevice(ctx, "u1", info); err != nil {
		t.Fatalf("TrustDevice failed: %v", err)
	}
	if _, err := engine.TrustDevice(ctx, "u1", info); err != nil {
		t.Fatalf("second TrustDevice failed: %v", err)
	}

	devices, err := engine.TrustedDevices(ctx, "u1")
	if err != nil {
		t.Fatalf("TrustedDevices failed: %v", err)
	}
	if len(devices) != 1 {
		t.Fatalf("expected 1 device after re-trust, got %d", len(devices))
	}
}

func TestRevokeDevice(t *testing.T) {
	_, rdb := newTestRedis(t)
	engine := newTestEngine(t, rdb, testConfig())
	ctx := context.Background()

	info := testDeviceInfo("Mozilla/5.0 Chrome/120.0")
	if _, err := engine.TrustDevice(ctx, "u1", info); err != nil {
		t.Fatalf("TrustDevice failed: %v", err)
	}

	if err := engine.RevokeDevice(ctx, "u1", info.DeviceID); err != nil {
		t.Fatalf("RevokeDevice failed: %v", err)
	}

	trusted, err := engine.IsDeviceTrusted(ctx, "u1", info.DeviceID)
	if err != nil {
		t.Fatalf("IsDeviceTrusted failed: %v", err)
	}
	if trusted {
		t.Fatal("expected device to be untrusted after revoke")
	}

	// Revoking an absent device is a no-op.
	if err := engine.RevokeDevice(ctx, "u1", "nope"); err != nil {
		t.Fatalf("expected nil for absent device, got %v", err)
	}
}

func TestCorruptRegistryDegradesToEmpty(t *testing.T) {
	mr, rdb := newTestRedis(t)
	engine := newTestEngine(t, rdb, testConfig())
	ctx := context.Background()

	if err := mr.Set("tdr:0:u1", "{not json"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	devices, err := engine.TrustedDevices(ctx, "u1")
	if err != nil {
		t.Fatalf("expected corrupt registry to degrade, got %v", err)
	}
	if len(devices) != 0 {
		t.Fatalf("expected empty list, got %d entries", len(devices))
	}

	// The registry stays usable after the reset.
	if _, err := engine.TrustDevice(ctx, "u1", testDeviceInfo("Mozilla/5.0 Chrome/120.0")); err != nil {
		t.Fatalf("TrustDevice after corrupt registry failed: %v", err)
	}
	devices, err = engine.TrustedDevices(ctx, "u1")
	if err != nil {
		t.Fatalf("TrustedDevices failed: %v", err)
	}
	if len(devices) != 1 {
		t.Fatalf("expected 1 device, got %d", len(devices))
	}
}

func TestDeviceRegistriesAreTenantScoped(t *testing.T) {
	_, rdb := newTestRedis(t)
	engine := newTestEngine(t, rdb, testConfig())

	info := testDeviceInfo("Mozilla/5.0 Chrome/120.0")
	ctxA := WithTenantID(context.Background(), "a")
	ctxB := WithTenantID(context.Background(), "b")

	if _, err := engine.TrustDevice(ctxA, "u1", info); err != nil {
		t.Fatalf("TrustDevice failed: %v", err)
	}

	trusted, err := engine.IsDeviceTrusted(ctxB, "u1", info.DeviceID)
	if err != nil {
		t.Fatalf("IsDeviceTrusted failed: %v", err)
	}
	if trusted {
		t.Fatal("device trusted in tenant a must not leak into tenant b")
	}
}

func TestTrustDeviceEvictsOldestAtCap(t *testing.T) {
	_, rdb := newTestRedis(t)
	cfg := testConfig()
	cfg.DeviceTrust.MaxDevices = 2
	engine := newTestEngine(t, rdb, cfg)
	ctx := context.Background()

	first := testDeviceInfo("Mozilla/5.0 Chrome/118.0 variant-a")
	second := testDeviceInfo("Mozilla/5.0 Chrome/119.0 variant-b")
	third := testDeviceInfo("Mozilla/5.0 Chrome/120.0 variant-c")

	for _, info := range []DeviceInfo{first, second, third} {
		if _, err := engine.TrustDevice(ctx, "u1", info); err != nil {
			t.Fatalf("TrustDevice failed: %v", err)
		}
	}

	devices, err := engine.TrustedDevices(ctx, "u1")
	if err != nil {
		t.Fatalf("TrustedDevices failed: %v", err)
	}
	if len(devices) != 2 {
		t.Fatalf("expected cap of 2, got %d", len(devices))
	}
	if devices[0].ID != second.DeviceID || devices[1].ID != third.DeviceID {
		t.Fatal("expected oldest device to be evicted")
	}
}

func TestDeviceOperationsRequireUserID(t *testing.T) {
	_, rdb := newTestRedis(t)
	engine := newTestEngine(t, rdb, testConfig())
	ctx := context.Background()

	if _, err := engine.TrustedDevices(ctx, ""); err != ErrUserIDRequired {
		t.Fatalf("expected ErrUserIDRequired, got %v", err)
	}
	if _, err := engine.TrustDevice(ctx, "", testDeviceInfo("ua")); err != ErrUserIDRequired {
		t.Fatalf("expected ErrUserIDRequired, got %v", err)
	}
	if err := engine.RevokeDevice(ctx, "", "d1"); err != ErrUserIDRequired {
		t.Fatalf("expected ErrUserIDRequired, got %v", err)
	}
}
