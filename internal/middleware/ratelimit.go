package middleware

import (
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"tasktracker/pkg/respond"
)

// RateLimiter ограничивает частоту запросов по IP клиента.
func RateLimiter(r rate.Limit, b int) func(http.Handler) http.Handler {
	var mu sync.Mutex
	visitors := make(map[string]*rate.Limiter)

	getVisitor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		limiter, exists := visitors[ip]
		if !exists {
			limiter = rate.NewLimiter(r, b)
			visitors[ip] = limiter
		}
		return limiter
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ip := clientIP(req)
			if !getVisitor(ip).Allow() {
				respond.Error(w, req, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}

func clientIP(r *http.Request) string {
	// RealIP middleware уже переписал RemoteAddr, если были заголовки прокси
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
