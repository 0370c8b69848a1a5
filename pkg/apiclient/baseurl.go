package apiclient

import (
	"strings"

	"github.com/go-resty/resty/v2"

	log "github.com/Goden-Gun/httpcall-lib/pkg/logger"
)

// HeaderBaseURLName selects a named base URL for one request. It is removed
// before the request is sent.
const HeaderBaseURLName = "X-Base-Url-Name"

// baseURLMiddleware rewrites relative request URLs against the base URL named
// by HeaderBaseURLName. With routing disabled the header is only stripped.
func baseURLMiddleware(enabled bool, bases map[string]string) resty.RequestMiddleware {
	return func(_ *resty.Client, r *resty.Request) error {
		name := strings.TrimSpace(r.Header.Get(HeaderBaseURLName))
		if name == "" {
			return nil
		}
		r.Header.Del(HeaderBaseURLName)
		if !enabled || isAbsoluteURL(r.URL) {
			return nil
		}
		base, ok := bases[name]
		if !ok {
			log.WithTrace(r.Context()).WithField("base_url_name", name).Warn("unknown base url name, using default")
			return nil
		}
		r.URL = joinURL(base, r.URL)
		return nil
	}
}

func isAbsoluteURL(u string) bool {
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
}

func joinURL(base, path string) string {
	if path == "" {
		return base
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
