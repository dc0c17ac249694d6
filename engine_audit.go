package trustkit

import (
	"context"
	"errors"
	"time"
)

const (
	auditEventBreachHit            = "breach_hit"
	auditEventBreachClear          = "breach_clear"
	auditEventBreachUnavailable    = "breach_unavailable"
	auditEventDeviceTrusted        = "device_trusted"
	auditEventDeviceRevoked        = "device_revoked"
	auditEventDeviceRegistryReset  = "device_registry_reset"
	auditEventVerificationStarted  = "verification_started"
	auditEventVerificationSuccess  = "verification_success"
	auditEventVerificationFailure  = "verification_failure"
	auditEventVerificationReplay   = "verification_replay"
	auditEventVerificationExpired  = "verification_expired"
	auditEventVerificationThrottle = "verification_throttled"
	auditEventTicketIssued         = "ticket_issued"
)

// AuditErrorCode defines a public type used by trustkit APIs.
//
// AuditErrorCode instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditErrorCode string

const (
	auditErrOTPFormat         AuditErrorCode = "otp_format"
	auditErrOTPInvalid        AuditErrorCode = "otp_invalid"
	auditErrOTPExpired        AuditErrorCode = "otp_expired"
	auditErrOTPReplay         AuditErrorCode = "otp_replay"
	auditErrAttemptsExceeded  AuditErrorCode = "attempts_exceeded"
	auditErrThrottled         AuditErrorCode = "throttled"
	auditErrBreachUnavailable AuditErrorCode = "breach_unavailable"
	auditErrUserIDRequired    AuditErrorCode = "user_id_required"
	auditErrTicketDisabled    AuditErrorCode = "ticket_disabled"
	auditErrUnavailable       AuditErrorCode = "backend_unavailable"
	auditErrInternal          AuditErrorCode = "internal_error"
)

func (e *Engine) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	userID string,
	tenantID string,
	deviceID string,
	err error,
	metadataBuilder func() map[string]string,
) {
	if e == nil || e.audit == nil {
		return
	}
	if tenantID == "" {
		tenantID = tenantIDFromContext(ctx)
	}

	e.audit.Record(ctx, auditRecord{
		at:        time.Now().UTC(),
		eventType: eventType,
		userID:    userID,
		tenantID:  tenantID,
		deviceID:  deviceID,
		ip:        clientIPFromContext(ctx),
		success:   success,
		errCode:   auditErrorCode(err),
		metadata:  metadataBuilder,
	})
}

func auditErrorCode(err error) AuditErrorCode {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrOTPFormat):
		return auditErrOTPFormat
	case errors.Is(err, ErrOTPInvalid):
		return auditErrOTPInvalid
	case errors.Is(err, ErrOTPExpired):
		return auditErrOTPExpired
	case errors.Is(err, ErrOTPReplay):
		return auditErrOTPReplay
	case errors.Is(err, ErrOTPAttemptsExceeded):
		return auditErrAttemptsExceeded
	case errors.Is(err, ErrOTPThrottled):
		return auditErrThrottled
	case errors.Is(err, ErrBreachUnavailable),
		errors.Is(err, ErrBreachTimeout):
		return auditErrBreachUnavailable
	case errors.Is(err, ErrUserIDRequired):
		return auditErrUserIDRequired
	case errors.Is(err, ErrTicketDisabled):
		return auditErrTicketDisabled
	case errors.Is(err, ErrOTPUnavailable),
		errors.Is(err, ErrDeviceTrustUnavailable),
		errors.Is(err, ErrEngineNotReady):
		return auditErrUnavailable
	default:
		return auditErrInternal
	}
}
