// Package fetcher resolves URLs into parsed goquery documents, enforcing a
// politeness delay before every outbound request.
package fetcher

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Client performs throttled page fetches. The pipeline is strictly
// sequential with exactly one fetch in flight, so the politeness delay is a
// plain sleep at the top of every call.
type Client struct {
	client *http.Client
	delay  time.Duration
}

// New returns a Client that sleeps delay before each request.
func New(delay time.Duration) *Client {
	return &Client{
		client: &http.Client{Timeout: 30 * time.Second},
		delay:  delay,
	}
}

// GetBytes sleeps the politeness delay, then fetches the URL body.
func (c *Client) GetBytes(url string) ([]byte, error) {
	time.Sleep(c.delay)

	resp, err := c.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s, status code: %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// Document fetches the URL and parses the body into a goquery document.
func (c *Client) Document(url string) (*goquery.Document, error) {
	body, err := c.GetBytes(url)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}
