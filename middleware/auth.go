package middleware

import (
	"log"
	"net"
	"net/http"
	"strings"
)

// ServiceAuthMiddleware validates that requests come from trusted callers.
// Localhost traffic passes straight through; anything else must carry an
// X-Service-Name header identifying the calling service.
func ServiceAuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientIP := getClientIP(r)
		if clientIP == "" {
			log.Printf("AUTH DENIED: Could not determine client IP from %s", r.RemoteAddr)
			http.Error(w, "Forbidden: Could not determine client IP", http.StatusForbidden)
			return
		}

		// Fast path: Localhost
		if isLocalhost(clientIP) {
			next(w, r)
			return
		}

		serviceName := r.Header.Get("X-Service-Name")
		if serviceName == "" {
			log.Printf("AUTH DENIED: Missing X-Service-Name header from %s", r.RemoteAddr)
			http.Error(w, "Forbidden: X-Service-Name header required", http.StatusForbidden)
			return
		}

		log.Printf("AUTH OK: Service '%s' from IP '%s'", serviceName, clientIP)
		next(w, r)
	}
}

func getClientIP(r *http.Request) string {
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		ips := strings.Split(forwarded, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}
	realIP := r.Header.Get("X-Real-IP")
	if realIP != "" {
		return realIP
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func normalizeIP(ip string) string {
	ip = strings.TrimSpace(ip)
	if ip == "localhost" {
		return "127.0.0.1"
	}
	if ip == "::1" || ip == "[::1]" {
		return "::1"
	}
	return strings.Trim(ip, "[]")
}

func isLocalhost(ip string) bool {
	normalized := normalizeIP(ip)
	localhostIPs := []string{"127.0.0.1", "::1", "0.0.0.0", "localhost"}
	for _, item := range localhostIPs {
		if item == normalized {
			return true
		}
	}
	return false
}
