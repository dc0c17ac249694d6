package trustkit

import (
	"errors"
	"time"
)

// Config defines a public type used by trustkit APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Strength    StrengthConfig
	Breach      BreachConfig
	Fingerprint FingerprintConfig
	DeviceTrust DeviceTrustConfig
	OTP         OTPConfig
	Ticket      TicketConfig
	Hashing     HashingConfig
	Audit       AuditConfig
	Metrics     MetricsConfig
	MultiTenant MultiTenantConfig
}

/*
====================================
STRENGTH CONFIG
====================================
*/

// StrengthConfig defines a public type used by trustkit APIs.
//
// StrengthConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type StrengthConfig struct {
	MinLength int
}

/*
====================================
BREACH CONFIG
====================================
*/

// BreachConfig defines a public type used by trustkit APIs.
//
// BreachConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type BreachConfig struct {
	Enabled          bool
	CheckTimeout     time.Duration
	DebounceDelay    time.Duration
	MinQueryLength   int
	SimulatedLatency time.Duration
}

/*
====================================
FINGERPRINT CONFIG
====================================
*/

// FingerprintConfig defines a public type used by trustkit APIs.
//
// FingerprintConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type FingerprintConfig struct {
	DefaultLanguage string
	DefaultTimezone string
}

/*
====================================
DEVICE TRUST CONFIG
====================================
*/

// DeviceTrustConfig defines a public type used by trustkit APIs.
//
// DeviceTrustConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type DeviceTrustConfig struct {
	RedisPrefix     string
	MaxDevices      int
	DefaultLocation string
}

/*
====================================
OTP CONFIG
====================================
*/

// ChallengeStrategyType defines a public type used by trustkit APIs.
//
// ChallengeStrategyType instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ChallengeStrategyType int

const (
	// ChallengeRandom is an exported constant or variable used by the sign-up security engine.
	ChallengeRandom ChallengeStrategyType = iota
	// ChallengeUUID is an exported constant or variable used by the sign-up security engine.
	ChallengeUUID
)

// ThrottleConfig defines a public type used by trustkit APIs.
//
// ThrottleConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ThrottleConfig struct {
	MaxAttempts int
	Cooldown    time.Duration
}

// OTPConfig defines a public type used by trustkit APIs.
//
// OTPConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type OTPConfig struct {
	RedisPrefix       string
	Digits            int
	ChallengeTTL      time.Duration
	ChallengeStrategy ChallengeStrategyType
	ConfirmTimeout    time.Duration
	MaxAttempts       int
	ThrottlePerUser   ThrottleConfig
}

/*
====================================
TICKET CONFIG
====================================
*/

// TicketConfig defines a public type used by trustkit APIs.
//
// TicketConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type TicketConfig struct {
	Enabled       bool
	TTL           time.Duration
	SigningMethod string // "hs256" (default) or "ed25519"
	PrivateKey    []byte
	PublicKey     []byte
	Issuer        string
	Leeway        time.Duration
}

/*
====================================
HASHING CONFIG
====================================
*/

// HashingConfig defines a public type used by trustkit APIs.
//
// HashingConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HashingConfig struct {
	Memory      uint32 // in KB
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// AuditConfig defines a public type used by trustkit APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig defines a public type used by trustkit APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

/*
====================================
MULTI TENANT CONFIG
====================================
*/

// MultiTenantConfig defines a public type used by trustkit APIs.
//
// MultiTenantConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MultiTenantConfig struct {
	Enabled          bool
	EnforceIsolation bool
}

/*
====================================
DEFAULT CONFIG
====================================
*/

// DefaultConfig returns the baseline configuration: breach checks enabled
// against the static roster, no attempt cap, no throttle, tickets and
// observability off. It validates as-is.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Strength: StrengthConfig{
			MinLength: 8,
		},
		Breach: BreachConfig{
			Enabled:          true,
			CheckTimeout:     10 * time.Second,
			DebounceDelay:    500 * time.Millisecond,
			MinQueryLength:   8,
			SimulatedLatency: 500 * time.Millisecond,
		},
		Fingerprint: FingerprintConfig{
			DefaultLanguage: "en-US",
			DefaultTimezone: "UTC",
		},
		DeviceTrust: DeviceTrustConfig{
			RedisPrefix:     "tdr",
			MaxDevices:      0,
			DefaultLocation: "Unknown",
		},
		OTP: OTPConfig{
			RedisPrefix:       "ovc",
			Digits:            6,
			ChallengeTTL:      3 * time.Minute,
			ChallengeStrategy: ChallengeRandom,
			ConfirmTimeout:    10 * time.Second,
			MaxAttempts:       0,
			ThrottlePerUser: ThrottleConfig{
				MaxAttempts: 0,
				Cooldown:    10 * time.Minute,
			},
		},
		Ticket: TicketConfig{
			Enabled:       false,
			TTL:           5 * time.Minute,
			SigningMethod: "hs256",
		},
		Hashing: HashingConfig{
			Memory:      65536,
			Time:        3,
			Parallelism: 2,
			SaltLength:  16,
			KeyLength:   32,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
		MultiTenant: MultiTenantConfig{
			Enabled:          false,
			EnforceIsolation: true,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Ticket.PrivateKey = cloneBytes(cfg.Ticket.PrivateKey)
	out.Ticket.PublicKey = cloneBytes(cfg.Ticket.PublicKey)
	return out
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

/*
====================================
VALIDATION
====================================
*/

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	// Strength
	if c.Strength.MinLength < 1 {
		return errors.New("Strength MinLength must be >= 1")
	}

	// Breach
	if c.Breach.Enabled {
		if c.Breach.CheckTimeout <= 0 {
			return errors.New("Breach CheckTimeout must be > 0 when breach checks are enabled")
		}
		if c.Breach.DebounceDelay < 0 {
			return errors.New("Breach DebounceDelay must be >= 0")
		}
		if c.Breach.MinQueryLength < 1 {
			return errors.New("Breach MinQueryLength must be >= 1")
		}
		if c.Breach.SimulatedLatency < 0 {
			return errors.New("Breach SimulatedLatency must be >= 0")
		}
	}

	// Device Trust
	if c.DeviceTrust.RedisPrefix == "" {
		return errors.New("DeviceTrust RedisPrefix must not be empty")
	}
	if c.DeviceTrust.MaxDevices < 0 {
		return errors.New("DeviceTrust MaxDevices must be >= 0")
	}

	// OTP
	if c.OTP.RedisPrefix == "" {
		return errors.New("OTP RedisPrefix must not be empty")
	}
	if c.OTP.Digits < 6 || c.OTP.Digits > 10 {
		return errors.New("OTP Digits must be between 6 and 10")
	}
	if c.OTP.ChallengeTTL <= 0 {
		return errors.New("OTP ChallengeTTL must be > 0")
	}
	switch c.OTP.ChallengeStrategy {
	case ChallengeRandom, ChallengeUUID:
		// valid
	default:
		return errors.New("OTP ChallengeStrategy is invalid")
	}
	if c.OTP.ConfirmTimeout <= 0 {
		return errors.New("OTP ConfirmTimeout must be > 0")
	}
	if c.OTP.ThrottlePerUser.MaxAttempts > 0 && c.OTP.ThrottlePerUser.Cooldown <= 0 {
		return errors.New("OTP ThrottlePerUser Cooldown must be > 0 when the throttle is enabled")
	}

	// Ticket
	if c.Ticket.Enabled {
		if c.Ticket.TTL <= 0 {
			return errors.New("Ticket TTL must be > 0 when tickets are enabled")
		}
		if c.Ticket.SigningMethod != "hs256" && c.Ticket.SigningMethod != "ed25519" {
			return errors.New("unsupported Ticket signing method")
		}
		if c.Ticket.SigningMethod == "hs256" && len(c.Ticket.PrivateKey) == 0 {
			return errors.New("hs256 requires Ticket PrivateKey")
		}
		if c.Ticket.SigningMethod == "ed25519" && len(c.Ticket.PrivateKey) == 0 {
			return errors.New("ed25519 requires Ticket PrivateKey")
		}
		if c.Ticket.SigningMethod == "ed25519" && len(c.Ticket.PublicKey) == 0 {
			return errors.New("ed25519 requires Ticket PublicKey")
		}
		if c.Ticket.Leeway < 0 {
			return errors.New("Ticket Leeway must be >= 0")
		}
	}

	// Hashing
	if c.Hashing.Memory < 8*1024 {
		return errors.New("Hashing Memory must be >= 8192 KB")
	}
	if c.Hashing.Time < 1 {
		return errors.New("Hashing Time must be >= 1")
	}
	if c.Hashing.Parallelism < 1 {
		return errors.New("Hashing Parallelism must be >= 1")
	}
	if c.Hashing.SaltLength < 16 {
		return errors.New("Hashing SaltLength must be >= 16")
	}
	if c.Hashing.KeyLength < 16 {
		return errors.New("Hashing KeyLength must be >= 16")
	}

	// Audit
	if c.Audit.Enabled {
		if c.Audit.BufferSize <= 0 {
			return errors.New("Audit BufferSize must be > 0 when audit is enabled")
		}
	}

	return nil
}
