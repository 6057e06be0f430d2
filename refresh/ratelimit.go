package refresh

import (
	"context"
	"net/url"
	"sync"

	"github.com/fwojciec/modwiki"
	"golang.org/x/time/rate"
)

var _ modwiki.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces out requests to each wiki host with a token bucket
// per host. A limiter with a non-positive rate never blocks.
type DomainLimiter struct {
	mu    sync.Mutex
	hosts map[string]*rate.Limiter
	limit rate.Limit
	burst int
}

// NewDomainLimiter allows rps requests per second to each host, with a
// burst of 1.
func NewDomainLimiter(rps float64) *DomainLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &DomainLimiter{
		hosts: make(map[string]*rate.Limiter),
		limit: limit,
		burst: 1,
	}
}

// Wait blocks until a request to domain is allowed or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if d.limit == rate.Inf {
		return ctx.Err()
	}
	return d.limiter(domain).Wait(ctx)
}

func (d *DomainLimiter) limiter(domain string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()
	l, ok := d.hosts[domain]
	if !ok {
		l = rate.NewLimiter(d.limit, d.burst)
		d.hosts[domain] = l
	}
	return l
}

// hostOf returns the host of rawURL, or rawURL itself if it does not parse.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}
