package servicenow

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/phuslu/log"
)

const incidentPath = "/api/now/table/incident"

// FetchTickets fetches the incident records matching filter from the Table
// API. One GET per call: no retry, no pagination follow-up, no caching. If
// the instance truncates the result set, the truncated set is what you get.
func (c *Client) FetchTickets(ctx context.Context, filter *Filter) ([]Record, error) {
	u, err := url.Parse(strings.TrimRight(c.BaseURL, "/") + incidentPath)
	if err != nil {
		return nil, fmt.Errorf("servicenow: invalid base URL %q: %w", c.BaseURL, err)
	}
	u.RawQuery = filter.Query()

	log.Debug().Str("url", u.String()).Msg("fetching incidents")
	body, err := c.get(ctx, u.String())
	if err != nil {
		return nil, err
	}

	tickets, err := ParseTickets(body)
	if err != nil {
		return nil, fmt.Errorf("servicenow: parse incident response: %w", err)
	}
	log.Debug().Int("count", len(tickets)).Str("query", filter.String()).Msg("fetched incidents")
	return tickets, nil
}
