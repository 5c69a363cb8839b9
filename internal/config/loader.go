package config

import (
	"fmt"
	"net/netip"
	"net/url"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// LookupFunc resolves one environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// Load reads configuration from the process environment, applies defaults
// for unset values and validates the result.
func Load() (*Config, error) {
	return LoadFrom(os.LookupEnv)
}

// LoadFrom is Load with a custom variable source.
func LoadFrom(lookup LookupFunc) (*Config, error) {
	cfg := &Config{}

	if err := populate(reflect.ValueOf(cfg).Elem(), lookup); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// populate fills the tagged fields of the struct v, descending into
// nested section structs.
//
// Tags: env (primary name), envAlt (fallback name), default, required.
func populate(v reflect.Value, lookup LookupFunc) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		dst := v.Field(i)
		if !dst.CanSet() {
			continue
		}

		if field.Type.Kind() == reflect.Struct {
			if err := populate(dst, lookup); err != nil {
				return err
			}
			continue
		}

		name := field.Tag.Get("env")
		if name == "" {
			continue
		}

		raw := firstSet(lookup, name, field.Tag.Get("envAlt"))
		if raw == "" {
			if field.Tag.Get("required") == "true" {
				return fmt.Errorf("required environment variable %s is not set", name)
			}
			raw = field.Tag.Get("default")
		}
		if raw == "" {
			continue
		}

		if err := decode(dst, raw); err != nil {
			return fmt.Errorf("invalid value for %s=%q: %w", name, raw, err)
		}
	}

	return nil
}

// firstSet returns the first non-empty value among keys.
func firstSet(lookup LookupFunc, keys ...string) string {
	for _, k := range keys {
		if k == "" {
			continue
		}
		if v, ok := lookup(k); ok && v != "" {
			return v
		}
	}
	return ""
}

var durationType = reflect.TypeOf(time.Duration(0))

// decode parses raw into dst according to dst's type.
func decode(dst reflect.Value, raw string) error {
	if dst.Type() == durationType {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid duration: %w", err)
		}
		dst.SetInt(int64(d))
		return nil
	}

	switch dst.Kind() {
	case reflect.String:
		dst.SetString(raw)
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer: %w", err)
		}
		dst.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		dst.SetBool(b)
	case reflect.Slice:
		if dst.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type: %s", dst.Type().Elem().Kind())
		}
		dst.Set(reflect.ValueOf(splitList(raw)))
	default:
		return fmt.Errorf("unsupported field type: %s", dst.Kind())
	}
	return nil
}

// splitList splits a comma-separated list, dropping blank entries.
func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// problems collects validation messages.
type problems []string

func (p *problems) addf(format string, args ...any) {
	*p = append(*p, fmt.Sprintf(format, args...))
}

// Validate checks every section and reports all failures at once.
func (c *Config) Validate() error {
	var p problems

	c.Source.validate(&p, c.Database)
	c.Database.validate(&p)
	c.Server.validate(&p)
	c.Import.validate(&p)
	c.Rate.validate(&p)
	c.Security.validate(&p)
	c.Logging.validate(&p)
	c.Metrics.validate(&p)

	if len(p) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(p, "\n  - "))
	}
	return nil
}

func (s SourceConfig) validate(p *problems, db DatabaseConfig) {
	switch strings.ToLower(s.Kind) {
	case SourceSeed:
	case SourceHTTP:
		if s.URL == "" {
			p.addf("SOURCE_URL is required when SOURCE_KIND=http")
		} else if u, err := url.Parse(s.URL); err != nil || u.Scheme == "" || u.Host == "" {
			p.addf("SOURCE_URL (%q) must be an absolute URL", s.URL)
		}
	case SourcePostgres:
		if db.URL == "" {
			p.addf("DATABASE_URL is required when SOURCE_KIND=postgres")
		}
	default:
		p.addf("SOURCE_KIND (%q) must be one of: seed, http, postgres", s.Kind)
	}
	if s.Timeout <= 0 {
		p.addf("SOURCE_TIMEOUT must be positive")
	}
}

func (d DatabaseConfig) validate(p *problems) {
	if d.MaxConns <= 0 {
		p.addf("DB_MAX_CONNS must be positive")
	}
	if d.MinConns < 0 {
		p.addf("DB_MIN_CONNS must be non-negative")
	}
	if d.MaxConns < d.MinConns {
		p.addf("DB_MAX_CONNS (%d) must be >= DB_MIN_CONNS (%d)", d.MaxConns, d.MinConns)
	}
}

func (s ServerConfig) validate(p *problems) {
	if s.Port <= 0 || s.Port > 65535 {
		p.addf("SERVER_PORT (%d) must be 1-65535", s.Port)
	}
	if s.ReadTimeout < 0 {
		p.addf("SERVER_READ_TIMEOUT must be non-negative")
	}
	if s.ShutdownTimeout <= 0 {
		p.addf("SERVER_SHUTDOWN_TIMEOUT must be positive")
	}
}

func (i ImportConfig) validate(p *problems) {
	if i.MaxFileSize <= 0 {
		p.addf("IMPORT_MAX_FILE_SIZE must be positive")
	}
	if i.MaxConcurrent <= 0 {
		p.addf("IMPORT_MAX_CONCURRENT must be positive")
	}
	if i.MaxWaitTime <= 0 {
		p.addf("IMPORT_MAX_WAIT_TIME must be positive")
	}
	if i.HistorySize <= 0 {
		p.addf("IMPORT_HISTORY_SIZE must be positive")
	}
}

func (r RateLimitConfig) validate(p *problems) {
	if !r.Enabled {
		return
	}
	if r.RequestsPerMinute <= 0 {
		p.addf("RATE_LIMIT_REQUESTS_PER_MINUTE must be positive when rate limiting is enabled")
	}
	if r.ImportLimit <= 0 {
		p.addf("RATE_LIMIT_IMPORT must be positive when rate limiting is enabled")
	}
}

func (s SecurityConfig) validate(p *problems) {
	if s.RequireAPIKey && len(s.APIKeys) == 0 {
		p.addf("REQUIRE_API_KEY is true but API_KEYS is empty; configure at least one API key or disable auth")
	}
	// Bare addresses are single-host prefixes, matching the realip middleware.
	for _, cidr := range s.TrustedProxies {
		if _, err := netip.ParsePrefix(cidr); err == nil {
			continue
		}
		if _, err := netip.ParseAddr(cidr); err == nil {
			continue
		}
		p.addf("TRUSTED_PROXIES entry %q is not a valid CIDR or address", cidr)
	}
}

func (l LoggingConfig) validate(p *problems) {
	switch strings.ToLower(l.Level) {
	case "debug", "info", "warn", "error":
	default:
		p.addf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", l.Level)
	}
	switch strings.ToLower(l.Format) {
	case "text", "json":
	default:
		p.addf("LOG_FORMAT (%q) must be one of: text, json", l.Format)
	}
}

func (m MetricsConfig) validate(p *problems) {
	if m.Enabled && m.Namespace == "" {
		p.addf("METRICS_NAMESPACE must be set when metrics are enabled")
	}
}

// String renders the config for startup logs with secrets masked.
func (c *Config) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Config{Server: {Host: %q, Port: %d}, ", c.Server.Host, c.Server.Port)
	fmt.Fprintf(&b, "Source: {Kind: %q, URL: %q, Timeout: %s}, ",
		c.Source.Kind, redactURL(c.Source.URL), c.Source.Timeout)
	fmt.Fprintf(&b, "Database: {URL: [MASKED], MaxConns: %d, MinConns: %d}, ",
		c.Database.MaxConns, c.Database.MinConns)
	fmt.Fprintf(&b, "Import: {MaxFileSize: %d, MaxConcurrent: %d, MaxWaitTime: %s, HistorySize: %d}, ",
		c.Import.MaxFileSize, c.Import.MaxConcurrent, c.Import.MaxWaitTime, c.Import.HistorySize)
	fmt.Fprintf(&b, "Rate: {Enabled: %v, RequestsPerMinute: %d}, ", c.Rate.Enabled, c.Rate.RequestsPerMinute)
	fmt.Fprintf(&b, "Security: {RequireAPIKey: %v, APIKeys: %d configured}, ",
		c.Security.RequireAPIKey, len(c.Security.APIKeys))
	fmt.Fprintf(&b, "Logging: {Level: %q, Format: %q}}", c.Logging.Level, c.Logging.Format)
	return b.String()
}

// redactURL hides any password embedded in raw.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "[INVALID]"
	}
	return u.Redacted()
}
