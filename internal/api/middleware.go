package api

import (
	"fmt"
	"net"
	"net/http"

	"github.com/labstack/echo/v4"
)

// fallbackAddr stands in when the peer address cannot be determined. It is
// stripped from the allow-list at construction time, so it can never match.
const fallbackAddr = "0.0.0.0"

// GuardMiddleware rejects every request whose literal TCP peer address is
// not on the allow-list. Forwarding headers are deliberately ignored: they
// are spoofable, and the allow-list is meant to be literal. On deny the
// request ends here; no database or filesystem access happens.
func (s *Server) GuardMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		addr := clientAddr(c.Request().RemoteAddr)
		if _, ok := s.allowed[addr]; !ok {
			s.logger.WithField("remote_addr", addr).Warn("request denied by allow-list")
			return c.String(http.StatusForbidden, fmt.Sprintf(MsgAccessDenied, addr))
		}
		return next(c)
	}
}

// clientAddr extracts the peer IP from a RemoteAddr value, failing closed to
// fallbackAddr when the address cannot be parsed.
func clientAddr(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return fallbackAddr
	}
	return ip.String()
}
