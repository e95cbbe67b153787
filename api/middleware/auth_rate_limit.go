package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/only4u/only4u-backend/api/responses"
	pkgerrors "github.com/only4u/only4u-backend/pkg/errors"
	"github.com/only4u/only4u-backend/pkg/logger"
)

type rateLimiterStore interface {
	IncrWithTTL(context.Context, string, time.Duration) (int64, error)
}

// AuthRateLimitPolicy throttles one auth surface (login or signup) with a
// fixed window per client IP and per account email.
type AuthRateLimitPolicy struct {
	surface    string
	window     time.Duration
	ipLimit    int
	emailLimit int
}

// NewAuthRateLimitPolicy builds a policy. A zero window or all-zero limits
// disable the middleware for that surface.
func NewAuthRateLimitPolicy(name string, window time.Duration, ipLimit, emailLimit int) AuthRateLimitPolicy {
	surface := strings.ToLower(strings.TrimSpace(name))
	if surface == "" {
		surface = "auth"
	}
	return AuthRateLimitPolicy{
		surface:    surface,
		window:     window,
		ipLimit:    ipLimit,
		emailLimit: emailLimit,
	}
}

func (p AuthRateLimitPolicy) enabled() bool {
	return p.window > 0 && (p.ipLimit > 0 || p.emailLimit > 0)
}

// Keys scope counters per surface so a login storm never throttles signups.
func (p AuthRateLimitPolicy) ipKey(ip string) string {
	return fmt.Sprintf("throttle:%s:ip:%s", p.surface, ip)
}

func (p AuthRateLimitPolicy) accountKey(emailHash string) string {
	return fmt.Sprintf("throttle:%s:acct:%s", p.surface, emailHash)
}

// AuthRateLimit guards credential endpoints. The IP window runs first; the
// email window additionally requires peeking at the JSON body, which is
// restored for the handler.
func AuthRateLimit(policy AuthRateLimitPolicy, store rateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			ip := clientIP(r)
			if policy.ipLimit > 0 && ip != "" {
				blocked, err := overLimit(ctx, store, policy.ipKey(ip), policy.window, policy.ipLimit)
				if err != nil {
					responses.WriteError(ctx, nil, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
					return
				}
				if blocked {
					logThrottled(ctx, logg, policy, "ip", ip)
					responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded"))
					return
				}
			}

			if policy.emailLimit > 0 {
				body, err := io.ReadAll(r.Body)
				if err != nil {
					responses.WriteError(ctx, nil, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read request"))
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(body))

				if hash := hashedEmail(body); hash != "" {
					blocked, err := overLimit(ctx, store, policy.accountKey(hash), policy.window, policy.emailLimit)
					if err != nil {
						responses.WriteError(ctx, nil, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
						return
					}
					if blocked {
						logThrottled(ctx, logg, policy, "account", hash)
						responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded"))
						return
					}
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func overLimit(ctx context.Context, store rateLimiterStore, key string, window time.Duration, limit int) (bool, error) {
	count, err := store.IncrWithTTL(ctx, key, window)
	if err != nil {
		return false, err
	}
	return count > int64(limit), nil
}

func logThrottled(ctx context.Context, logg *logger.Logger, policy AuthRateLimitPolicy, scope, subject string) {
	if logg == nil {
		return
	}
	logCtx := logg.WithFields(ctx, map[string]any{
		"surface":        policy.surface,
		"scope":          scope,
		"subject":        subject,
		"window_seconds": int(policy.window.Seconds()),
	})
	logg.Warn(logCtx, "auth.throttled")
}

func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

// hashedEmail pulls the email out of a JSON credential body and hashes it so
// raw addresses never land in Redis keys. Multipart bodies (signup) decode to
// nothing here, leaving only the IP window for that surface.
func hashedEmail(payload []byte) string {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	email := strings.ToLower(strings.TrimSpace(body.Email))
	if email == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(email))
	return hex.EncodeToString(sum[:])
}
