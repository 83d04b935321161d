package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// EtherscanGenericResp is the envelope every Etherscan-compatible API call
// answers with. Result carries a payload whose shape depends on the action.
type EtherscanGenericResp struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Result  string `json:"result"`
}

// EtherscanClient talks to an Etherscan-compatible block explorer API. All
// calls go through a shared rate limiter, free API tiers throttle hard.
type EtherscanClient struct {
	apiKey  string
	baseURL string
	limiter *rate.Limiter
	client  *http.Client
}

func NewEtherscanClient(apiKey, baseURL string, limiter *rate.Limiter) *EtherscanClient {
	return &EtherscanClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		limiter: limiter,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// IsVerified reports whether the explorer already holds source code for the
// contract, checked through the getabi action.
func (c *EtherscanClient) IsVerified(ctx context.Context, address string) (bool, error) {
	resp, err := c.get(ctx, url.Values{
		"module":  {"contract"},
		"action":  {"getabi"},
		"address": {address},
	})
	if err != nil {
		return false, err
	}

	return resp.Status == "1", nil
}

// MarkProxy submits a proxy verification request and returns the GUID the
// explorer tracks it under.
func (c *EtherscanClient) MarkProxy(ctx context.Context, address string) (string, error) {
	resp, err := c.post(ctx, url.Values{
		"module":  {"contract"},
		"action":  {"verifyproxycontract"},
		"address": {address},
	})
	if err != nil {
		return "", err
	}
	if resp.Status != "1" {
		return "", fmt.Errorf("proxy verification submission for %s rejected: %s", address, resp.Result)
	}

	return resp.Result, nil
}

// CheckProxy polls the outcome of an earlier MarkProxy submission.
func (c *EtherscanClient) CheckProxy(ctx context.Context, guid string) (VerificationStatus, error) {
	resp, err := c.get(ctx, url.Values{
		"module": {"contract"},
		"action": {"checkproxyverification"},
		"guid":   {guid},
	})
	if err != nil {
		return StatusFailed, err
	}

	switch {
	case strings.Contains(resp.Result, "Pending"):
		return StatusPending, nil
	case resp.Status == "1":
		return StatusVerified, nil
	default:
		return StatusFailed, fmt.Errorf("verification failed: %s", resp.Result)
	}
}

func (c *EtherscanClient) get(ctx context.Context, params url.Values) (*EtherscanGenericResp, error) {
	params.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	return c.do(ctx, req)
}

func (c *EtherscanClient) post(ctx context.Context, params url.Values) (*EtherscanGenericResp, error) {
	params.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(params.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.do(ctx, req)
}

func (c *EtherscanClient) do(ctx context.Context, req *http.Request) (*EtherscanGenericResp, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	httpResp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("explorer request failed: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading explorer response: %w", err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("explorer answered %d: %s", httpResp.StatusCode, string(body))
	}

	var resp EtherscanGenericResp
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding explorer response: %w", err)
	}

	return &resp, nil
}
