package config

import (
	"os"
	"strconv"
	"time"
)

// Config captures process-level configuration. Secrets are read here once and
// injected into constructors; nothing else in the tree touches the
// environment.
type Config struct {
	Addr      string
	PublicURL string
	// HomeDomain is the domain assumed for bare identifiers ("alice" means
	// "alice@<HomeDomain>").
	HomeDomain string

	// ResolutionSecrets is the ordered keyring material, newest version
	// first, as "version:hex" entries joined by commas. See keyring.Parse
	// for the rotation procedure.
	ResolutionSecrets string
	StrictIntegrity   bool
	FetchTimeout      time.Duration

	// NodeKey is the hex-encoded secp256k1 secret key used to sign
	// synthesized invoices.
	NodeKey        string
	CurrencyPrefix string
	MinSendable    int64
	MaxSendable    int64
	CommentAllowed int
	InvoiceExpiry  time.Duration

	MembershipTimeout time.Duration

	JWTSigningKey string

	PostgresURL string
	RedisURL    string

	KafkaBrokers string
	KafkaTopic   string
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	cfg := Config{
		Addr:              envOr("SATNAM_ADDR", ":8080"),
		PublicURL:         envOr("SATNAM_PUBLIC_URL", "http://localhost:8080"),
		HomeDomain:        envOr("SATNAM_DOMAIN", "satnam.pub"),
		ResolutionSecrets: os.Getenv("SATNAM_RESOLUTION_SECRETS"),
		StrictIntegrity:   os.Getenv("SATNAM_STRICT_INTEGRITY") == "true",
		FetchTimeout:      envDuration("SATNAM_FETCH_TIMEOUT", 2*time.Second),
		NodeKey:           os.Getenv("SATNAM_NODE_KEY"),
		CurrencyPrefix:    envOr("SATNAM_CURRENCY_PREFIX", "bc"),
		MinSendable:       envInt64("SATNAM_MIN_SENDABLE_MSAT", 1_000),
		MaxSendable:       envInt64("SATNAM_MAX_SENDABLE_MSAT", 100_000_000),
		CommentAllowed:    int(envInt64("SATNAM_COMMENT_ALLOWED", 120)),
		InvoiceExpiry:     envDuration("SATNAM_INVOICE_EXPIRY", time.Hour),
		MembershipTimeout: envDuration("SATNAM_MEMBERSHIP_TIMEOUT", 2*time.Second),
		JWTSigningKey:     os.Getenv("SATNAM_JWT_SIGNING_KEY"),
		PostgresURL:       os.Getenv("SATNAM_POSTGRES_URL"),
		RedisURL:          os.Getenv("SATNAM_REDIS_URL"),
		KafkaBrokers:      os.Getenv("SATNAM_KAFKA_BROKERS"),
		KafkaTopic:        envOr("SATNAM_KAFKA_TOPIC", "satnam.ops.audit"),
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
