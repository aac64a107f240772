// Package faucet is the client for the test-token dispenser. Fire and
// forget: nothing beyond success or failure is inspected.
package faucet

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(faucetURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(faucetURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// FundAccount requests amount test tokens for address.
func (c *Client) FundAccount(ctx context.Context, address string, amount uint64) error {
	q := url.Values{}
	q.Set("address", address)
	q.Set("amount", fmt.Sprintf("%d", amount))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/mint?"+q.Encode(), nil)
	if err != nil {
		return errors.Wrap(err, "build faucet request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "call faucet")
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Errorf("faucet responded %d", resp.StatusCode)
	}
	return nil
}
