// Lightweight reachability check against the SEACE portal, used as a
// preflight before paying the cost of a full browser session.

package portal

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

type Probe struct {
	client *resty.Client
	url    string
}

func NewProbe(url string) *Probe {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetHeader("User-Agent", "go-seace-automation")
	return &Probe{client: client, url: url}
}

// Check performs one GET against the portal. Anything below 500 counts
// as reachable: the search page itself answers 200, but intermediaries
// occasionally answer 4xx to non-browser clients.
func (p *Probe) Check(ctx context.Context) error {
	resp, err := p.client.R().SetContext(ctx).Get(p.url)
	if err != nil {
		return fmt.Errorf("portal SEACE inaccesible: %w", err)
	}
	if resp.StatusCode() >= 500 {
		return fmt.Errorf("portal SEACE respondió %d", resp.StatusCode())
	}
	return nil
}
