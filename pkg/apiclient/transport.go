package apiclient

import (
	"context"
	"net"
	"net/http"
	"time"

	log "github.com/Goden-Gun/httpcall-lib/pkg/logger"
)

// newTransport maps connect/read/write timeouts onto an http.Transport: the
// dialer bounds connection setup and every socket read or write carries its
// own deadline, so a body that stalls after the headers still times out.
func newTransport(connect, read, write time.Duration) *http.Transport {
	dialer := &net.Dialer{Timeout: connect, KeepAlive: 30 * time.Second}
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			conn, err := dialer.DialContext(ctx, network, addr)
			if err != nil || (read <= 0 && write <= 0) {
				return conn, err
			}
			return &deadlineConn{Conn: conn, read: read, write: write}, nil
		},
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   connect,
		ResponseHeaderTimeout: read,
		ExpectContinueTimeout: time.Second,
	}
}

// deadlineConn bounds each Read and Write; zero disables the bound.
type deadlineConn struct {
	net.Conn
	read  time.Duration
	write time.Duration
}

func (c *deadlineConn) Read(b []byte) (int, error) {
	if c.read > 0 {
		if err := c.Conn.SetReadDeadline(time.Now().Add(c.read)); err != nil {
			return 0, err
		}
	}
	return c.Conn.Read(b)
}

// Write also pushes back the read deadline: the read timeout runs from the
// last byte sent, not from when the connection went idle.
func (c *deadlineConn) Write(b []byte) (int, error) {
	now := time.Now()
	if c.write > 0 {
		if err := c.Conn.SetWriteDeadline(now.Add(c.write)); err != nil {
			return 0, err
		}
	}
	if c.read > 0 {
		if err := c.Conn.SetReadDeadline(now.Add(c.read)); err != nil {
			return 0, err
		}
	}
	return c.Conn.Write(b)
}

// restyLogger routes resty's own diagnostics to the shared logger.
type restyLogger struct{}

func (restyLogger) Errorf(format string, v ...any) { log.Errorf("resty: "+format, v...) }
func (restyLogger) Warnf(format string, v ...any)  { log.Warnf("resty: "+format, v...) }
func (restyLogger) Debugf(format string, v ...any) { log.Debugf("resty: "+format, v...) }
