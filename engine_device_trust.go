package trustkit

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// TrustedDevices lists the user's registry in insertion order. A missing or
// corrupt registry yields an empty list, never an error.
func (e *Engine) TrustedDevices(ctx context.Context, userID string) ([]TrustedDevice, error) {
	if e == nil || e.deviceStore == nil {
		return nil, ErrEngineNotReady
	}
	if userID == "" {
		return nil, ErrUserIDRequired
	}

	tenantID, err := e.resolveTenant(ctx)
	if err != nil {
		return nil, err
	}

	devices, corrupt, err := e.deviceStore.List(ctx, tenantID, userID)
	if err != nil {
		return nil, mapDeviceStoreError(err)
	}
	if corrupt {
		e.metricInc(MetricDeviceRegistryCorrupt)
		e.emitAudit(ctx, auditEventDeviceRegistryReset, false, userID, tenantID, "", nil, nil)
	}

	return devices, nil
}

// TrustDevice adds the fingerprinted device to the user's registry.
// Idempotent on device ID: re-trusting an existing device refreshes its
// LastUsed stamp in place instead of appending a duplicate. When a device
// cap is configured, the oldest entry is evicted to make room.
func (e *Engine) TrustDevice(ctx context.Context, userID string, info DeviceInfo) (TrustedDevice, error) {
	if e == nil || e.deviceStore == nil {
		return TrustedDevice{}, ErrEngineNotReady
	}
	if userID == "" {
		return TrustedDevice{}, ErrUserIDRequired
	}

	tenantID, err := e.resolveTenant(ctx)
	if err != nil {
		return TrustedDevice{}, err
	}

	devices, corrupt, err := e.deviceStore.List(ctx, tenantID, userID)
	if err != nil {
		return TrustedDevice{}, mapDeviceStoreError(err)
	}
	if corrupt {
		e.metricInc(MetricDeviceRegistryCorrupt)
	}

	record := TrustedDevice{
		ID:       info.DeviceID,
		Name:     fmt.Sprintf("%s on %s", info.Browser, info.OS),
		Browser:  info.Browser,
		OS:       info.OS,
		Location: e.config.DeviceTrust.DefaultLocation,
		LastUsed: time.Now().UTC().Format(time.RFC3339),
		Trusted:  true,
	}

	replaced := false
	for i := range devices {
		if devices[i].ID == record.ID {
			devices[i].LastUsed = record.LastUsed
			devices[i].Trusted = true
			record = devices[i]
			replaced = true
			break
		}
	}
	if !replaced {
		devices = append(devices, record)
		if max := e.config.DeviceTrust.MaxDevices; max > 0 && len(devices) > max {
			devices = devices[len(devices)-max:]
		}
	}

	if err := e.deviceStore.Replace(ctx, tenantID, userID, devices); err != nil {
		return TrustedDevice{}, mapDeviceStoreError(err)
	}

	e.metricInc(MetricDeviceTrusted)
	e.emitAudit(ctx, auditEventDeviceTrusted, true, userID, tenantID, record.ID, nil, nil)

	return record, nil
}

// RevokeDevice removes the device from the user's registry. Revoking an
// absent device is a no-op, not an error.
func (e *Engine) RevokeDevice(ctx context.Context, userID, deviceID string) error {
	if e == nil || e.deviceStore == nil {
		return ErrEngineNotReady
	}
	if userID == "" {
		return ErrUserIDRequired
	}

	tenantID, err := e.resolveTenant(ctx)
	if err != nil {
		return err
	}

	devices, corrupt, err := e.deviceStore.List(ctx, tenantID, userID)
	if err != nil {
		return mapDeviceStoreError(err)
	}
	if corrupt {
		e.metricInc(MetricDeviceRegistryCorrupt)
	}

	kept := devices[:0]
	removed := false
	for _, device := range devices {
		if device.ID == deviceID {
			removed = true
			continue
		}
		kept = append(kept, device)
	}
	if !removed {
		return nil
	}

	if err := e.deviceStore.Replace(ctx, tenantID, userID, kept); err != nil {
		return mapDeviceStoreError(err)
	}

	e.metricInc(MetricDeviceRevoked)
	e.emitAudit(ctx, auditEventDeviceRevoked, true, userID, tenantID, deviceID, nil, nil)

	return nil
}

// IsDeviceTrusted reports whether the device is present in the user's
// registry with its trust bit set.
func (e *Engine) IsDeviceTrusted(ctx context.Context, userID, deviceID string) (bool, error) {
	devices, err := e.TrustedDevices(ctx, userID)
	if err != nil {
		return false, err
	}

	for _, device := range devices {
		if device.ID == deviceID {
			return device.Trusted, nil
		}
	}

	return false, nil
}

func mapDeviceStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errDeviceRedisUnavailable):
		return ErrDeviceTrustUnavailable
	default:
		return err
	}
}
