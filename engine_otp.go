package trustkit

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/vigilops/trustkit/internal"
	"github.com/vigilops/trustkit/internal/rate"
)

// StartVerification creates an OTP challenge for the user and persists it
// with the configured TTL. The returned challenge ID is the handle for
// [Engine.ConfirmVerification].
func (e *Engine) StartVerification(ctx context.Context, userID string) (*VerificationChallenge, error) {
	if e == nil || e.otpStore == nil {
		return nil, ErrEngineNotReady
	}
	if userID == "" {
		return nil, ErrUserIDRequired
	}

	tenantID, err := e.resolveTenant(ctx)
	if err != nil {
		return nil, err
	}

	challengeID, err := e.newChallengeID()
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(e.config.OTP.ChallengeTTL)
	record := &otpChallengeRecord{
		UserID:    userID,
		ExpiresAt: expiresAt.Unix(),
	}

	if err := e.otpStore.Save(ctx, tenantID, challengeID, record, e.config.OTP.ChallengeTTL); err != nil {
		err = mapOTPStoreError(err)
		e.emitAudit(ctx, auditEventVerificationStarted, false, userID, tenantID, "", err, nil)
		return nil, err
	}

	challenge := &VerificationChallenge{
		ChallengeID: challengeID,
		ExpiresAt:   expiresAt,
	}

	if issuer, ok := e.codeVerifier.(CodeIssuer); ok {
		code, err := issuer.Issue(challengeID)
		if err != nil {
			if _, derr := e.otpStore.Delete(ctx, tenantID, challengeID); derr != nil {
				log.Print("trustkit: challenge cleanup after issue failure failed")
			}
			return nil, ErrOTPUnavailable
		}
		challenge.Code = code
	}

	e.metricInc(MetricOTPStarted)
	e.emitAudit(ctx, auditEventVerificationStarted, true, userID, tenantID, "", nil, func() map[string]string {
		return map[string]string{"challenge_id": challengeID}
	})

	return challenge, nil
}

// ConfirmVerification validates and consumes a challenge. The code must
// match the configured digit length (six by default); wrong codes record
// an attempt and return
// [ErrOTPInvalid] without consuming the challenge. On acceptance the
// challenge is deleted exactly once — a second confirmation of the same
// challenge surfaces as [ErrOTPReplay]. When opts.RememberDevice is set and
// signals are supplied, the caller's device is fingerprinted and trusted;
// when ticket issuance is enabled, the result carries a signed proof of
// completion.
func (e *Engine) ConfirmVerification(ctx context.Context, challengeID, code string, opts ConfirmOptions) (*VerificationResult, error) {
	if e == nil || e.otpStore == nil || e.codeVerifier == nil {
		return nil, ErrEngineNotReady
	}

	start := time.Now()
	defer func() {
		if e.metrics.LatencyEnabled() {
			e.metrics.Observe(MetricConfirmLatency, time.Since(start))
		}
	}()

	tenantID, err := e.resolveTenant(ctx)
	if err != nil {
		return nil, err
	}

	if v := e.ValidateOTP(code); !v.Valid {
		e.metricInc(MetricOTPFailure)
		e.emitAudit(ctx, auditEventVerificationFailure, false, "", tenantID, "", ErrOTPFormat, nil)
		return nil, ErrOTPFormat
	}

	// A challenge ID that cannot have been minted by this engine is dead on
	// arrival; skip the store round-trip.
	if e.config.OTP.ChallengeStrategy == ChallengeRandom {
		if _, err := internal.ParseChallengeID(challengeID); err != nil {
			e.metricInc(MetricOTPExpired)
			e.emitAudit(ctx, auditEventVerificationExpired, false, "", tenantID, "", ErrOTPExpired, nil)
			return nil, ErrOTPExpired
		}
	}

	record, err := e.otpStore.Get(ctx, tenantID, challengeID)
	if err != nil {
		err = mapOTPStoreError(err)
		if errors.Is(err, ErrOTPExpired) {
			e.metricInc(MetricOTPExpired)
			e.emitAudit(ctx, auditEventVerificationExpired, false, "", tenantID, "", err, nil)
		}
		return nil, err
	}

	if err := e.checkThrottle(ctx, tenantID, record.UserID); err != nil {
		return nil, err
	}

	accepted, err := e.verifyCode(ctx, challengeID, code)
	if err != nil {
		e.emitAudit(ctx, auditEventVerificationFailure, false, record.UserID, tenantID, "", err, nil)
		return nil, err
	}

	if !accepted {
		return nil, e.recordFailure(ctx, tenantID, challengeID, record.UserID)
	}

	deleted, err := e.otpStore.Delete(ctx, tenantID, challengeID)
	if err != nil {
		return nil, mapOTPStoreError(err)
	}
	if !deleted {
		e.metricInc(MetricOTPReplay)
		e.emitAudit(ctx, auditEventVerificationReplay, false, record.UserID, tenantID, "", ErrOTPReplay, nil)
		return nil, ErrOTPReplay
	}

	if e.verifyLimiter.Enabled() {
		if err := e.verifyLimiter.ResetVerify(ctx, tenantID, record.UserID); err != nil {
			log.Print("trustkit: verification throttle reset failed")
		}
	}

	result := &VerificationResult{
		UserID:      record.UserID,
		TenantID:    tenantID,
		ChallengeID: challengeID,
		VerifiedAt:  time.Now().UTC(),
	}

	if opts.RememberDevice && opts.Signals != nil {
		info := e.Fingerprint(ctx, *opts.Signals, opts.Surface)
		if _, err := e.TrustDevice(ctx, record.UserID, info); err != nil {
			log.Print("trustkit: device trust after verification failed")
		} else {
			result.DeviceID = info.DeviceID
		}
	}

	if e.ticketManager != nil {
		token, err := e.ticketManager.Issue(record.UserID, tenantID, challengeID, result.DeviceID)
		if err != nil {
			return nil, err
		}
		result.Ticket = token
		e.metricInc(MetricTicketIssued)
		e.emitAudit(ctx, auditEventTicketIssued, true, record.UserID, tenantID, result.DeviceID, nil, nil)
	}

	e.metricInc(MetricOTPSuccess)
	e.emitAudit(ctx, auditEventVerificationSuccess, true, record.UserID, tenantID, result.DeviceID, nil, nil)

	return result, nil
}

// VerifyTicket checks a previously issued verification ticket and returns
// its claims. Returns [ErrTicketDisabled] when ticket issuance is not
// configured.
func (e *Engine) VerifyTicket(tokenStr string) (*VerificationResult, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}
	if e.ticketManager == nil {
		return nil, ErrTicketDisabled
	}

	claims, err := e.ticketManager.Verify(tokenStr)
	if err != nil {
		return nil, err
	}

	var verifiedAt time.Time
	if claims.IssuedAt != nil {
		verifiedAt = claims.IssuedAt.Time
	}

	return &VerificationResult{
		UserID:      claims.UserID,
		TenantID:    claims.TenantID,
		ChallengeID: claims.ChallengeID,
		DeviceID:    claims.DeviceID,
		Ticket:      tokenStr,
		VerifiedAt:  verifiedAt,
	}, nil
}

func (e *Engine) newChallengeID() (string, error) {
	if e.config.OTP.ChallengeStrategy == ChallengeUUID {
		return uuid.NewString(), nil
	}

	id, err := internal.NewChallengeID()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (e *Engine) checkThrottle(ctx context.Context, tenantID, userID string) error {
	if !e.verifyLimiter.Enabled() {
		return nil
	}

	err := e.verifyLimiter.CheckVerify(ctx, tenantID, userID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, rate.ErrThrottled):
		e.metricInc(MetricOTPThrottled)
		e.emitAudit(ctx, auditEventVerificationThrottle, false, userID, tenantID, "", ErrOTPThrottled, nil)
		return ErrOTPThrottled
	default:
		return ErrOTPUnavailable
	}
}

func (e *Engine) verifyCode(ctx context.Context, challengeID, code string) (bool, error) {
	verifyCtx, cancel := context.WithTimeout(ctx, e.config.OTP.ConfirmTimeout)
	defer cancel()

	accepted, err := e.codeVerifier.Verify(verifyCtx, challengeID, code)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return false, ErrOTPUnavailable
		}
		if errors.Is(err, context.Canceled) {
			return false, err
		}
		return false, ErrOTPUnavailable
	}

	return accepted, nil
}

func (e *Engine) recordFailure(ctx context.Context, tenantID, challengeID, userID string) error {
	e.metricInc(MetricOTPFailure)

	if e.verifyLimiter.Enabled() {
		if err := e.verifyLimiter.IncrementVerify(ctx, tenantID, userID); err != nil {
			log.Print("trustkit: verification throttle increment failed")
		}
	}

	if err := e.otpStore.RecordFailure(ctx, tenantID, challengeID, e.config.OTP.MaxAttempts); err != nil {
		err = mapOTPStoreError(err)
		if errors.Is(err, ErrOTPAttemptsExceeded) {
			e.emitAudit(ctx, auditEventVerificationFailure, false, userID, tenantID, "", err, nil)
			return err
		}
		if errors.Is(err, ErrOTPExpired) {
			e.metricInc(MetricOTPExpired)
			e.emitAudit(ctx, auditEventVerificationExpired, false, userID, tenantID, "", err, nil)
			return err
		}
		return err
	}

	e.emitAudit(ctx, auditEventVerificationFailure, false, userID, tenantID, "", ErrOTPInvalid, nil)
	return ErrOTPInvalid
}

func mapOTPStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errOTPChallengeNotFound):
		return ErrOTPExpired
	case errors.Is(err, errOTPAttemptsExceeded):
		return ErrOTPAttemptsExceeded
	case errors.Is(err, errOTPRecordMalformed):
		return ErrOTPUnavailable
	case errors.Is(err, errOTPRedisUnavailable):
		return ErrOTPUnavailable
	default:
		return err
	}
}
