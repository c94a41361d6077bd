package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/angelmondragon/storefront-pricing/api/responses"
	pkgerrors "github.com/angelmondragon/storefront-pricing/pkg/errors"
	"github.com/angelmondragon/storefront-pricing/pkg/logger"
	"golang.org/x/time/rate"
)

const (
	visitorIdleTTL       = 3 * time.Minute
	visitorSweepInterval = time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ShopperThrottle keeps an in-process token bucket per shopper session, or per IP
// for anonymous requests. Storefront reads are too frequent to count in Redis.
type ShopperThrottle struct {
	limit rate.Limit
	burst int
	now   func() time.Time

	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
}

// NewShopperThrottle returns a throttle allowing rps requests per second with the given burst.
// A non-positive rps disables throttling.
func NewShopperThrottle(rps float64, burst int) *ShopperThrottle {
	if burst <= 0 {
		burst = 1
	}
	return &ShopperThrottle{
		limit:     rate.Limit(rps),
		burst:     burst,
		now:       time.Now,
		visitors:  make(map[string]*visitor),
		lastSweep: time.Now(),
	}
}

func (t *ShopperThrottle) enabled() bool {
	return t != nil && t.limit > 0
}

func (t *ShopperThrottle) limiterFor(key string) *rate.Limiter {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if now.Sub(t.lastSweep) >= visitorSweepInterval {
		t.sweep(now)
	}

	v, ok := t.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(t.limit, t.burst)}
		t.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter
}

// sweep drops idle visitors. Callers hold t.mu.
func (t *ShopperThrottle) sweep(now time.Time) {
	for k, v := range t.visitors {
		if now.Sub(v.lastSeen) > visitorIdleTTL {
			delete(t.visitors, k)
		}
	}
	t.lastSweep = now
}

// Middleware applies the throttle. It must run after ShopperSession.
func (t *ShopperThrottle) Middleware(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !t.enabled() {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "ip:" + clientIP(r)
			if session := SessionIDFromContext(r.Context()); session != "" {
				key = "session:" + session
			}
			if !t.limiterFor(key).AllowN(t.now(), 1) {
				if logg != nil {
					logg.Warn(logg.WithField(r.Context(), "throttle_key", key), "shopper.throttled")
				}
				responses.WriteError(r.Context(), nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "too many requests"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
