package trustkit

import (
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/vigilops/trustkit/internal/rate"
	"github.com/vigilops/trustkit/password"
	"github.com/vigilops/trustkit/ticket"
)

// Builder defines a public type used by trustkit APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config
	redis  *redis.Client

	breachProvider BreachProvider
	codeVerifier   CodeVerifier
	auditSink      AuditSink
	generatedCodes bool

	built bool
}

// New describes the new operation and its observable behavior.
//
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis describes the withredis operation and its observable behavior.
//
// WithRedis does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithBreachProvider describes the withbreachprovider operation and its observable behavior.
//
// WithBreachProvider does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithBreachProvider(p BreachProvider) *Builder {
	b.breachProvider = p
	return b
}

// WithCodeVerifier describes the withcodeverifier operation and its observable behavior.
//
// WithCodeVerifier does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithCodeVerifier(v CodeVerifier) *Builder {
	b.codeVerifier = v
	return b
}

// WithGeneratedCodes describes the withgeneratedcodes operation and its observable behavior.
//
// WithGeneratedCodes does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithGeneratedCodes() *Builder {
	b.generatedCodes = true
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
//
// WithAuditSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
//
// WithLatencyHistograms does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if b.redis == nil {
		return nil, errors.New("redis client required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	engine := &Engine{
		config: cloneConfig(cfg),
	}

	engine.deviceStore = newTrustedDeviceStore(b.redis, cfg.DeviceTrust)
	engine.otpStore = newOTPChallengeStore(b.redis, cfg.OTP)
	engine.verifyLimiter = rate.New(b.redis, rate.Config{
		MaxVerifyAttempts: cfg.OTP.ThrottlePerUser.MaxAttempts,
		VerifyCooldown:    cfg.OTP.ThrottlePerUser.Cooldown,
	})
	engine.audit = newAuditDispatcher(cfg.Audit, b.auditSink)
	engine.metrics = NewMetrics(cfg.Metrics)

	engine.breachProvider = b.breachProvider
	if engine.breachProvider == nil {
		engine.breachProvider = NewStaticBreachList(cfg.Breach.SimulatedLatency)
	}

	engine.codeVerifier = b.codeVerifier
	if engine.codeVerifier == nil {
		if b.generatedCodes {
			engine.codeVerifier = NewGeneratedCodeVerifier(cfg.OTP.Digits)
		} else {
			engine.codeVerifier = NewStaticCodeVerifier()
		}
	}

	ph, err := password.NewArgon2(password.Config{
		Memory:      cfg.Hashing.Memory,
		Time:        cfg.Hashing.Time,
		Parallelism: cfg.Hashing.Parallelism,
		SaltLength:  cfg.Hashing.SaltLength,
		KeyLength:   cfg.Hashing.KeyLength,
	})
	if err != nil {
		return nil, err
	}
	engine.passwordHash = ph

	if cfg.Ticket.Enabled {
		tm, err := ticket.NewManager(ticket.Config{
			TTL:           cfg.Ticket.TTL,
			SigningMethod: ticket.SigningMethod(cfg.Ticket.SigningMethod),
			PrivateKey:    cloneBytes(cfg.Ticket.PrivateKey),
			PublicKey:     cloneBytes(cfg.Ticket.PublicKey),
			Issuer:        cfg.Ticket.Issuer,
			Leeway:        cfg.Ticket.Leeway,
		})
		if err != nil {
			return nil, err
		}
		engine.ticketManager = tm
	}

	b.built = true

	return engine, nil
}
