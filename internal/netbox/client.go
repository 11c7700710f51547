// Package netbox fetches inventory snapshots from the source-of-truth API.
//
// The engine only sees the fully materialized Snapshot; pagination, token
// authentication and transport retries live here.
package netbox

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// API endpoints per record type.
const (
	pathDevices           = "/api/dcim/devices/"
	pathInterfaces        = "/api/dcim/interfaces/"
	pathFrontPorts        = "/api/dcim/front-ports/"
	pathRearPorts         = "/api/dcim/rear-ports/"
	pathCables            = "/api/dcim/cables/"
	pathVLANs             = "/api/ipam/vlans/"
	pathVLANGroups        = "/api/ipam/vlan-groups/"
	pathL2VPNs            = "/api/vpn/l2vpns/"
	pathWirelessLANs      = "/api/wireless/wireless-lans/"
	pathWirelessLANGroups = "/api/wireless/wireless-lan-groups/"
	pathTenants           = "/api/tenancy/tenants/"
	pathIPAddresses       = "/api/ipam/ip-addresses/"
	pathPrefixes          = "/api/ipam/prefixes/"
	pathIPRanges          = "/api/ipam/ip-ranges/"
)

// Client talks to the inventory API.
type Client struct {
	baseURL  string
	token    string
	pageSize int
	http     *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithPageSize overrides the pagination limit.
func WithPageSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// NewClient creates a client for the given API base URL and token.
func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL:  baseURL,
		token:    token,
		pageSize: 500,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// page is the envelope the API wraps every list response in.
type page[T any] struct {
	Count   int     `json:"count"`
	Next    *string `json:"next"`
	Results []T     `json:"results"`
}

func (c *Client) get(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("call %s: unexpected status %s", rawURL, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", rawURL, err)
	}
	return nil
}

// fetchList walks the paginated list endpoint until the last page.
func fetchList[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	next := base.JoinPath(path)
	q := next.Query()
	q.Set("limit", strconv.Itoa(c.pageSize))
	next.RawQuery = q.Encode()

	var all []T
	for nextURL := next.String(); nextURL != ""; {
		var p page[T]
		if err := c.get(ctx, nextURL, &p); err != nil {
			return nil, err
		}
		all = append(all, p.Results...)
		if p.Next == nil {
			break
		}
		nextURL = *p.Next
	}
	return all, nil
}
