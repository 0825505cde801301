// Package transport performs the booking pipeline's network calls against
// the live site. One Client is one session: the cookie jar carries the
// wicket jsessionid between stages, so concurrent attempts need separate
// clients.
package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/transit-helpers/thsr-helper/booking"
)

const (
	requestTimeout = 5 * time.Second
	maxRetries     = 3

	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/117.0.0.0 Safari/537.36"
	acceptHTML     = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"
	acceptImg      = "image/webp,*/*"
	acceptLanguage = "zh-TW,zh;q=0.8,en-US;q=0.5,en;q=0.3"
)

// NetworkError reports a transport-level failure (timeout, connection,
// unexpected status). Retrying means re-running the whole attempt.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("network: %s: %v", e.Op, e.Err) }

func (e *NetworkError) Unwrap() error { return e.Err }

// Client implements booking.Client over net/http with a per-session
// cookie jar and a small connection-level retry budget.
type Client struct {
	httpClient *http.Client
}

var _ booking.Client = (*Client)(nil)

// NewClient creates a fresh booking session.
func NewClient() (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: requestTimeout,
			Jar:     jar,
		},
	}, nil
}

func (c *Client) do(ctx context.Context, op string, build func() (*http.Request, error)) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		req, err := build()
		if err != nil {
			return nil, &NetworkError{Op: op, Err: err}
		}
		req = req.WithContext(ctx)
		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			continue
		}
		body, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode != http.StatusOK {
			return nil, &NetworkError{Op: op, Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
		}
		return body, nil
	}
	return nil, &NetworkError{Op: op, Err: lastErr}
}

func commonHeaders(req *http.Request, accept string) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", accept)
	req.Header.Set("Accept-Language", acceptLanguage)
}

// BookingPage fetches the first booking page, establishing the session.
func (c *Client) BookingPage(ctx context.Context) ([]byte, error) {
	return c.do(ctx, "booking page", func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodGet, booking.BookingPageURL, nil)
		if err != nil {
			return nil, err
		}
		commonHeaders(req, acceptHTML)
		return req, nil
	})
}

// Image fetches raw image bytes (the captcha) within the session.
func (c *Client) Image(ctx context.Context, imgURL string) ([]byte, error) {
	return c.do(ctx, "image", func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodGet, imgURL, nil)
		if err != nil {
			return nil, err
		}
		commonHeaders(req, acceptImg)
		return req, nil
	})
}

// Submit posts a named form's field map and returns the response page.
func (c *Client) Submit(ctx context.Context, form booking.Form, fields map[string]string) ([]byte, error) {
	target, err := c.formURL(form)
	if err != nil {
		return nil, err
	}
	values := url.Values{}
	for k, v := range fields {
		values.Set(k, v)
	}
	encoded := values.Encode()
	return c.do(ctx, "submit "+form.String(), func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodPost, target, strings.NewReader(encoded))
		if err != nil {
			return nil, err
		}
		commonHeaders(req, acceptHTML)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	})
}

func (c *Client) formURL(form booking.Form) (string, error) {
	switch form {
	case booking.BookingForm:
		sid := c.sessionID()
		if sid == "" {
			return "", &NetworkError{Op: "submit " + form.String(), Err: fmt.Errorf("no session cookie; fetch the booking page first")}
		}
		return fmt.Sprintf(booking.SubmitFormURL, sid), nil
	case booking.TrainForm:
		return booking.ConfirmTrainURL, nil
	case booking.TicketForm:
		return booking.ConfirmTicketURL, nil
	}
	return "", fmt.Errorf("unknown form %d", form)
}

func (c *Client) sessionID() string {
	// The jar must be queried with the booking-page URL: wicket scopes the
	// session cookie to the /IMINT servlet path, so a lookup against the
	// site root never path-matches it.
	page, err := url.Parse(booking.BookingPageURL)
	if err != nil {
		return ""
	}
	for _, ck := range c.httpClient.Jar.Cookies(page) {
		if ck.Name == "JSESSIONID" {
			return ck.Value
		}
	}
	return ""
}
