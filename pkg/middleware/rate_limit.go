package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"nuffjamz/pkg/logger"
)

type IPExtractor func(r *http.Request) string

type IPRateLimiter struct {
	mu          sync.RWMutex
	requests    map[string][]time.Time
	limit       int
	window      time.Duration
	ipExtractor IPExtractor
	log         *logger.Logger
	stopCh      chan struct{}
}

func NewIPRateLimiter(limit int, window time.Duration, extractor IPExtractor, log *logger.Logger) *IPRateLimiter {
	limiter := &IPRateLimiter{
		requests:    make(map[string][]time.Time),
		limit:       limit,
		window:      window,
		ipExtractor: extractor,
		log:         log,
		stopCh:      make(chan struct{}),
	}

	go limiter.cleanup()

	return limiter
}

func (rl *IPRateLimiter) cleanup() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			for ip, timestamps := range rl.requests {
				if len(timestamps) == 0 || time.Since(timestamps[len(timestamps)-1]) > rl.window {
					delete(rl.requests, ip)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *IPRateLimiter) Stop() {
	close(rl.stopCh)
}

func (rl *IPRateLimiter) Allow(ip string) bool {
	if ip == "" {
		return true
	}

	now := time.Now()

	rl.mu.RLock()
	timestamps := rl.requests[ip]
	rl.mu.RUnlock()

	validTimestamps := make([]time.Time, 0)
	for _, ts := range timestamps {
		if now.Sub(ts) < rl.window {
			validTimestamps = append(validTimestamps, ts)
		}
	}

	if len(validTimestamps) >= rl.limit {
		return false
	}

	validTimestamps = append(validTimestamps, now)

	rl.mu.Lock()
	rl.requests[ip] = validTimestamps
	rl.mu.Unlock()

	return true
}

func IPRateLimit(limiter *IPRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := extractClientIP(r, limiter.ipExtractor)

			if !limiter.Allow(ip) {
				rejectRateLimited(w, limiter.log, r, ip)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func extractClientIP(r *http.Request, extractor IPExtractor) string {
	if extractor == nil {
		return DefaultIPExtractor(r)
	}
	return extractor(r)
}

func rejectRateLimited(w http.ResponseWriter, log *logger.Logger, r *http.Request, ip string) {
	log.Warn("Rate limit exceeded",
		"request_id", requestIDFrom(r),
		"ip", ip,
		"path", r.URL.Path,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_, _ = w.Write([]byte(`{"success":false,"message":"Too many requests, please try again later"}`))
}

// DefaultIPExtractor trusts the first X-Forwarded-For hop when present,
// falling back to the connection address.
func DefaultIPExtractor(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
