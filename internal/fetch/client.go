package fetch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrFetch wraps network and HTTP status failures reaching the species
// database or an image host.
var ErrFetch = errors.New("fetch failed")

const randomSpeciesPath = "/summary/RandomSpecies.php"

type Client struct {
	http      *resty.Client
	randomURL string
}

// NewClient creates a client for the FishBase site at baseURL. A zero
// timeout leaves requests unbounded.
func NewClient(baseURL string, timeout time.Duration) *Client {
	c := resty.New().
		SetHeader("User-Agent", "fotdbot/1.0 (+https://www.fishbase.se)")
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &Client{
		http:      c,
		randomURL: strings.TrimRight(baseURL, "/") + randomSpeciesPath,
	}
}

// FetchPage returns the HTML of a randomly picked species summary page.
func (c *Client) FetchPage(ctx context.Context) ([]byte, error) {
	return c.get(ctx, c.randomURL)
}

// FetchImage downloads the image at url so it can be attached to a message.
func (c *Client) FetchImage(ctx context.Context, url string) ([]byte, error) {
	return c.get(ctx, url)
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", ErrFetch, url, err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("%w: GET %s: status %d", ErrFetch, url, res.StatusCode())
	}
	return res.Body(), nil
}
