// Package ratelimit throttles booking submissions per client IP.
package ratelimit

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Clock interface for testing time-dependent behavior.
type Clock interface {
	Now() time.Time
}

// realClock implements Clock using the system time.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Config holds rate limit configuration.
type Config struct {
	SubmitCooldown   time.Duration // Minimum time between dispatches from one IP (default: 10s)
	SubmitMaxPerHour int           // Max dispatches per IP per hour (default: 20)

	// Clock for testing (nil uses real time)
	Clock Clock
}

// DefaultConfig returns production-ready defaults.
func DefaultConfig() *Config {
	return &Config{
		SubmitCooldown:   10 * time.Second,
		SubmitMaxPerHour: 20,
	}
}

// LimitResult contains the result of a rate limit check.
type LimitResult struct {
	Allowed    bool
	RetryAfter time.Duration
	Reason     string // For logging
}

// entry tracks request counts and timestamps.
type entry struct {
	count   int
	firstAt time.Time // First request in window
	lastAt  time.Time // Most recent request (for cooldown)
}

// Limiter enforces a cooldown and an hourly cap on dispatches per IP.
// Expired entries are dropped by Cleanup, which the scheduler runs.
type Limiter struct {
	config *Config
	clock  Clock
	mu     sync.RWMutex
	// Keyed by hash of IP
	byIP map[string]*entry
}

// New creates a new rate limiter with the given config.
func New(cfg *Config) *Limiter {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = realClock{}
	}
	return &Limiter{
		config: cfg,
		clock:  clock,
		byIP:   make(map[string]*entry),
	}
}

// Reservation is a dispatch slot taken by ReserveSubmit. Cancel gives it
// back when the dispatch does not happen.
type Reservation struct {
	limiter *Limiter
	key     string
	at      time.Time
	prev    *entry // entry state before the reservation, nil if untracked
	once    sync.Once
}

// ReserveSubmit checks whether ip may dispatch and, if so, records the
// attempt in the same critical section. Concurrent submits from one IP
// cannot all pass the cooldown. The returned Reservation is nil when the
// request is not allowed.
func (l *Limiter) ReserveSubmit(ip string) (LimitResult, *Reservation) {
	now := l.clock.Now()
	key := l.hashKey("submit:ip:", ip)

	l.mu.Lock()
	defer l.mu.Unlock()

	e := l.byIP[key]
	if e != nil {
		if result := l.check(e, now); !result.Allowed {
			return result, nil
		}
	}

	res := &Reservation{limiter: l, key: key, at: now}
	if e != nil {
		prev := *e
		res.prev = &prev
	}

	if e == nil || now.Sub(e.firstAt) >= time.Hour {
		l.byIP[key] = &entry{count: 1, firstAt: now, lastAt: now}
	} else {
		e.count++
		e.lastAt = now
	}
	return LimitResult{Allowed: true}, res
}

func (l *Limiter) check(e *entry, now time.Time) LimitResult {
	if elapsed := now.Sub(e.lastAt); elapsed < l.config.SubmitCooldown {
		return LimitResult{
			Allowed:    false,
			RetryAfter: l.config.SubmitCooldown - elapsed,
			Reason:     "cooldown",
		}
	}

	if now.Sub(e.firstAt) < time.Hour && e.count >= l.config.SubmitMaxPerHour {
		return LimitResult{
			Allowed:    false,
			RetryAfter: time.Hour - now.Sub(e.firstAt),
			Reason:     "hourly_limit",
		}
	}

	return LimitResult{Allowed: true}
}

// Cancel releases the slot, so a rejected form never costs the visitor a
// dispatch. Reservations taken later by the same IP are kept. Safe on nil
// and idempotent.
func (r *Reservation) Cancel() {
	if r == nil {
		return
	}
	r.once.Do(func() {
		l := r.limiter
		l.mu.Lock()
		defer l.mu.Unlock()

		e := l.byIP[r.key]
		if e == nil {
			return
		}
		if e.count <= 1 {
			if r.prev == nil {
				delete(l.byIP, r.key)
			} else {
				*e = *r.prev
			}
			return
		}
		e.count--
		if e.lastAt.Equal(r.at) && r.prev != nil {
			e.lastAt = r.prev.lastAt
		}
	})
}

// Cleanup drops entries idle for more than an hour.
func (l *Limiter) Cleanup() {
	now := l.clock.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for k, e := range l.byIP {
		if now.Sub(e.lastAt) > time.Hour {
			delete(l.byIP, k)
			removed++
		}
	}
	if removed > 0 {
		log.Debug().Int("removed", removed).Int("remaining", len(l.byIP)).Msg("Rate limit entries cleaned up")
	}
}

// Len returns the number of tracked IPs.
func (l *Limiter) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.byIP)
}

func (l *Limiter) hashKey(prefix, value string) string {
	hash := sha256.Sum256([]byte(strings.TrimSpace(value)))
	return prefix + hex.EncodeToString(hash[:8])
}

// GetClientIP extracts the client IP from a request.
// When trustProxy is true, uses the rightmost IP from X-Forwarded-For (added by your proxy).
// When trustProxy is false, ignores X-Forwarded-For entirely (prevents spoofing).
func GetClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			// Use RIGHTMOST IP - this is the one your proxy added, not user-supplied
			parts := strings.Split(xff, ",")
			for i := len(parts) - 1; i >= 0; i-- {
				ip := strings.TrimSpace(parts[i])
				if ip != "" && !isPrivateIP(ip) {
					return ip
				}
			}
			// All IPs are private, use the last one
			return strings.TrimSpace(parts[len(parts)-1])
		}

		// Check X-Real-IP (set by nginx)
		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			return strings.TrimSpace(xri)
		}
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr might not have a port (e.g., Unix socket or malformed)
		if parsed := net.ParseIP(r.RemoteAddr); parsed != nil {
			return r.RemoteAddr
		}
		if idx := strings.LastIndex(r.RemoteAddr, ":"); idx != -1 {
			candidate := r.RemoteAddr[:idx]
			if net.ParseIP(candidate) != nil {
				return candidate
			}
		}
		return r.RemoteAddr
	}
	return ip
}

// privateNetworks holds parsed CIDR ranges for private/reserved IPs.
var privateNetworks []*net.IPNet

func init() {
	privateRanges := []string{
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		"127.0.0.0/8",
		"::1/128",
		"fc00::/7",
		"fe80::/10", // Link-local
	}
	for _, cidr := range privateRanges {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			panic("invalid private CIDR: " + cidr)
		}
		privateNetworks = append(privateNetworks, network)
	}
}

// isPrivateIP checks if an IP is in a private/reserved range.
// Handles both IPv4 and IPv4-mapped IPv6 addresses (e.g., ::ffff:192.168.1.1).
func isPrivateIP(ipStr string) bool {
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return false
	}
	if ipv4 := ip.To4(); ipv4 != nil {
		ip = ipv4
	}
	for _, network := range privateNetworks {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// LogRateLimitExceeded logs a rate limit event.
func LogRateLimitExceeded(ip, reason string, retryAfter time.Duration) {
	log.Warn().
		Str("event", "rate_limit_exceeded").
		Str("ip", ip).
		Str("reason", reason).
		Dur("retry_after", retryAfter).
		Msg("Booking rate limit exceeded")
}
