// Package mail sends transactional email through the Mailgun HTTP API.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.mailgun.net/v3"

type Client struct {
	baseURL string
	domain  string
	apiKey  string
	from    string
	http    *http.Client
}

func NewClient(domain, apiKey, fromEmail string) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		domain:  domain,
		apiKey:  apiKey,
		from:    fromEmail,
		http: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// WithBaseURL points the client at another Mailgun-compatible endpoint.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = u
	return c
}

type Message struct {
	To       string
	Subject  string
	Template string
	Vars     map[string]string
}

func (c *Client) Send(ctx context.Context, m Message) error {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	fields := [][2]string{
		{"from", fmt.Sprintf("Eats <mailgun@%s>", c.domain)},
		{"to", m.To},
		{"subject", m.Subject},
		{"template", m.Template},
	}
	if c.from != "" {
		fields[0][1] = c.from
	}
	for k, v := range m.Vars {
		fields = append(fields, [2]string{"v:" + k, v})
	}
	for _, f := range fields {
		if err := form.WriteField(f[0], f[1]); err != nil {
			return fmt.Errorf("write form field %s: %w", f[0], err)
		}
	}
	if err := form.Close(); err != nil {
		return fmt.Errorf("close form: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.baseURL, c.domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return fmt.Errorf("create http request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.SetBasicAuth("api", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("mailgun request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("mailgun non-2xx (%d): %s", resp.StatusCode, string(b))
	}
	return nil
}
