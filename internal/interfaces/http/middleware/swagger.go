package middleware

import (
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/abstratium/partner/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// SwaggerConfig controls access to the API documentation
type SwaggerConfig struct {
	Enabled    bool
	AllowedIPs []string // addresses or CIDR prefixes; empty allows everyone
}

// allowlist is a set of prefixes; single addresses are stored as full-length prefixes
type allowlist []netip.Prefix

// parseAllowlist skips entries that are neither an address nor a prefix
func parseAllowlist(entries []string) allowlist {
	var list allowlist
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if p, err := netip.ParsePrefix(entry); err == nil {
			list = append(list, p.Masked())
			continue
		}
		if a, err := netip.ParseAddr(entry); err == nil {
			a = a.Unmap()
			list = append(list, netip.PrefixFrom(a, a.BitLen()))
		}
	}
	return list
}

func (l allowlist) allows(addr netip.Addr) bool {
	if !addr.IsValid() {
		return false
	}
	addr = addr.Unmap()
	for _, p := range l {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// SwaggerProtection answers 404 while the docs are disabled and 403 to
// clients outside AllowedIPs
func SwaggerProtection(cfg SwaggerConfig) gin.HandlerFunc {
	allowed := parseAllowlist(cfg.AllowedIPs)
	restricted := len(cfg.AllowedIPs) > 0

	return func(c *gin.Context) {
		switch {
		case !cfg.Enabled:
			c.AbortWithStatusJSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeNotFound, "API documentation is not available", GetRequestID(c)))
		case restricted && !allowed.allows(clientAddr(c)):
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeForbidden, "Access to API documentation is restricted", GetRequestID(c)))
		default:
			c.Next()
		}
	}
}

// clientAddr uses gin's proxy-aware ClientIP, falling back to RemoteAddr
func clientAddr(c *gin.Context) netip.Addr {
	if a, err := netip.ParseAddr(c.ClientIP()); err == nil {
		return a
	}
	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		host = c.Request.RemoteAddr
	}
	a, _ := netip.ParseAddr(host)
	return a
}
