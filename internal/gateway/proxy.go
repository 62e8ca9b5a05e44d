package gateway

import (
	"fmt"
	"log/slog"
	"net/http"
	nethttputil "net/http/httputil"
	"net/url"
	"sort"

	dErrors "coursecloud/pkg/domain-errors"
	"coursecloud/pkg/platform/httputil"
	"coursecloud/pkg/requestcontext"
)

// Route forwards every path under Prefix to Upstream.
type Route struct {
	Prefix   string
	Upstream string
}

type route struct {
	prefix string
	proxy  *nethttputil.ReverseProxy
}

// Proxy dispatches requests to upstream services by longest matching prefix.
type Proxy struct {
	routes []route
	logger *slog.Logger
}

// NewProxy builds a reverse proxy per route. Upstreams must be absolute URLs.
func NewProxy(routes []Route, transport http.RoundTripper, logger *slog.Logger) (*Proxy, error) {
	p := &Proxy{logger: logger}
	for _, rt := range routes {
		target, err := url.Parse(rt.Upstream)
		if err != nil || target.Scheme == "" || target.Host == "" {
			return nil, fmt.Errorf("invalid upstream %q for %s", rt.Upstream, rt.Prefix)
		}
		rp := &nethttputil.ReverseProxy{
			Rewrite: func(pr *nethttputil.ProxyRequest) {
				pr.SetURL(target)
				pr.SetXForwarded()
			},
			Transport:    transport,
			ErrorHandler: p.upstreamError(rt.Prefix),
		}
		p.routes = append(p.routes, route{prefix: rt.Prefix, proxy: rp})
	}
	sort.SliceStable(p.routes, func(i, j int) bool {
		return len(p.routes[i].prefix) > len(p.routes[j].prefix)
	})
	return p, nil
}

func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	for _, rt := range p.routes {
		if hasPathPrefix(r.URL.Path, rt.prefix) {
			rt.proxy.ServeHTTP(w, r)
			return
		}
	}
	httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "no route for "+r.URL.Path))
}

func (p *Proxy) upstreamError(prefix string) func(http.ResponseWriter, *http.Request, error) {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		ctx := r.Context()
		p.logger.ErrorContext(ctx, "upstream request failed",
			"request_id", requestcontext.RequestID(ctx),
			"route", prefix,
			"path", r.URL.Path,
			"error", err,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadGateway, "upstream service unavailable"))
	}
}
