package middlewares

import (
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cafe-eden/pos-app/models"
	"github.com/cafe-eden/pos-app/utils"
)

// OrderLimiter is the anti-spam guard on order creation for low-trust roles
// (customer, table kiosk): a sliding window of attempts followed by a
// cooldown. State is in-memory and resets on restart; this is abuse
// mitigation, not a correctness guarantee.
type OrderLimiter struct {
	maxAttempts int
	window      time.Duration
	cooldown    time.Duration

	mu        sync.Mutex
	attempts  map[string][]time.Time
	cooldowns map[string]time.Time
}

func NewOrderLimiter(maxAttempts, windowSec, cooldownSec int) *OrderLimiter {
	return &OrderLimiter{
		maxAttempts: maxAttempts,
		window:      time.Duration(windowSec) * time.Second,
		cooldown:    time.Duration(cooldownSec) * time.Second,
		attempts:    make(map[string][]time.Time),
		cooldowns:   make(map[string]time.Time),
	}
}

func (ol *OrderLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get("role")
		roleName, _ := role.(string)
		if !models.IsLowTrustRole(roleName) {
			c.Next()
			return
		}

		key := c.ClientIP()
		if userID, ok := c.Get("user_id"); ok {
			key = fmt.Sprintf("user:%v", userID)
		}

		if wait, limited := ol.hit(key, time.Now()); limited {
			mins := int(math.Ceil(wait.Seconds() / 60))
			utils.RespondError(c, http.StatusTooManyRequests,
				fmt.Sprintf("too many orders. Please wait %d minute(s) and try again", mins))
			c.Abort()
			return
		}
		c.Next()
	}
}

// hit records an attempt and reports whether the actor is limited and for
// how long.
func (ol *OrderLimiter) hit(key string, now time.Time) (time.Duration, bool) {
	ol.mu.Lock()
	defer ol.mu.Unlock()

	if until, ok := ol.cooldowns[key]; ok {
		if now.Before(until) {
			return until.Sub(now), true
		}
		delete(ol.cooldowns, key)
	}

	cutoff := now.Add(-ol.window)
	valid := make([]time.Time, 0)
	for _, t := range ol.attempts[key] {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}

	if len(valid) >= ol.maxAttempts {
		ol.cooldowns[key] = now.Add(ol.cooldown)
		delete(ol.attempts, key)
		return ol.cooldown, true
	}

	ol.attempts[key] = append(valid, now)
	return 0, false
}
