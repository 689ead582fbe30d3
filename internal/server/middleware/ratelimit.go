package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/iudanet/shareall/internal/server/handlers"
)

// MsgRateLimited сообщение при превышении лимита запросов
const MsgRateLimited = "Too many requests, please try again later"

// RateLimiter представляет rate limiter на основе токен-бакета (token bucket)
type RateLimiter struct {
	buckets  map[string]*bucket
	logger   *slog.Logger
	cleanupC chan struct{}
	rate     int
	window   time.Duration
	mu       sync.RWMutex
	stopOnce sync.Once
}

// bucket представляет bucket для конкретного IP/ключа
type bucket struct {
	lastRefill time.Time
	tokens     int
	mu         sync.Mutex
}

// NewRateLimiter создает новый rate limiter
// rate - максимальное количество запросов в единицу времени
// window - временное окно (например, 1 минута)
func NewRateLimiter(rate int, window time.Duration, logger *slog.Logger) *RateLimiter {
	rl := &RateLimiter{
		buckets:  make(map[string]*bucket),
		rate:     rate,
		window:   window,
		logger:   logger,
		cleanupC: make(chan struct{}),
	}

	// Запускаем периодическую очистку старых buckets
	go rl.cleanup()

	return rl
}

// cleanup периодически удаляет неактивные buckets для экономии памяти
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window * 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupOldBuckets()
		case <-rl.cleanupC:
			return
		}
	}
}

// cleanupOldBuckets удаляет buckets, которые не использовались дольше window
func (rl *RateLimiter) cleanupOldBuckets() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for key, b := range rl.buckets {
		b.mu.Lock()
		if now.Sub(b.lastRefill) > rl.window*2 {
			delete(rl.buckets, key)
		}
		b.mu.Unlock()
	}
}

// Stop останавливает cleanup goroutine, повторный вызов безопасен
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() {
		close(rl.cleanupC)
	})
}

// Allow проверяет, разрешен ли запрос для данного ключа (обычно IP адрес)
// и расходует токен
func (rl *RateLimiter) Allow(key string) bool {
	b := rl.bucketFor(key)

	b.mu.Lock()
	defer b.mu.Unlock()

	rl.refill(b)

	// Проверяем, есть ли доступные токены
	if b.tokens > 0 {
		b.tokens--
		return true
	}

	return false
}

// Exhausted сообщает, что токены ключа закончились, не расходуя их
func (rl *RateLimiter) Exhausted(key string) bool {
	b := rl.bucketFor(key)

	b.mu.Lock()
	defer b.mu.Unlock()

	rl.refill(b)
	return b.tokens <= 0
}

// Charge расходует токен ключа, если он есть
func (rl *RateLimiter) Charge(key string) {
	b := rl.bucketFor(key)

	b.mu.Lock()
	defer b.mu.Unlock()

	rl.refill(b)
	if b.tokens > 0 {
		b.tokens--
	}
}

// bucketFor возвращает bucket ключа, создавая его при необходимости
func (rl *RateLimiter) bucketFor(key string) *bucket {
	rl.mu.RLock()
	b, exists := rl.buckets[key]
	rl.mu.RUnlock()

	if exists {
		return b
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	// Повторная проверка: bucket мог создать параллельный запрос
	if b, exists = rl.buckets[key]; !exists {
		b = &bucket{
			tokens:     rl.rate,
			lastRefill: time.Now(),
		}
		rl.buckets[key] = b
	}
	return b
}

// refill пополняет токены на основе прошедшего времени; вызывается под b.mu
func (rl *RateLimiter) refill(b *bucket) {
	now := time.Now()
	if now.Sub(b.lastRefill) >= rl.window {
		b.tokens = rl.rate
		b.lastRefill = now
	}
}

// RateLimitMiddleware создает middleware для ограничения частоты запросов
// Один limiter можно разделить между несколькими маршрутами
func RateLimitMiddleware(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Используем IP адрес как ключ
			key := getClientIP(r)

			if !limiter.Allow(key) {
				rateLimited(limiter.logger, w, r, key)
				return
			}

			// Запрос уже оплачен токеном, BasicAuth не списывает второй
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), chargedKey{}, true)))
		})
	}
}

// chargedKey помечает запрос, за который limiter уже списал токен
type chargedKey struct{}

func charged(r *http.Request) bool {
	v, _ := r.Context().Value(chargedKey{}).(bool)
	return v
}

func rateLimited(logger *slog.Logger, w http.ResponseWriter, r *http.Request, key string) {
	logger.WarnContext(r.Context(), "rate limit exceeded",
		slog.String("ip", key),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	handlers.WriteError(w, r, http.StatusTooManyRequests, MsgRateLimited, nil)
}

// RateLimitRoutes применяет limiter только к перечисленным маршрутам вида "POST /path"
// Остальные запросы проходят без ограничений
func RateLimitRoutes(limiter *RateLimiter, routes ...string) func(http.Handler) http.Handler {
	limited := make(map[string]bool, len(routes))
	for _, route := range routes {
		limited[route] = true
	}

	return func(next http.Handler) http.Handler {
		limit := RateLimitMiddleware(limiter)(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limited[r.Method+" "+r.URL.Path] {
				limit.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// getClientIP извлекает IP адрес клиента из запроса
// Проверяет заголовки X-Forwarded-For и X-Real-IP для прокси
func getClientIP(r *http.Request) string {
	// Берем первый IP из списка (реальный клиент)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	// RemoteAddr содержит порт, который меняется между соединениями
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
