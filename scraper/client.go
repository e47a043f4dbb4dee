package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"tracker/config"

	"github.com/go-resty/resty/v2"
)

// ErrFetchFailed covers bad credentials and upstream/network failures. The
// two are not distinguishable to the end user, so they share one sentinel.
var ErrFetchFailed = errors.New("failed to fetch the training site hub page")

// Fetcher retrieves the raw "expand all" hub page for a user's credentials.
type Fetcher interface {
	FetchHubPage(ctx context.Context, username, password string) (string, error)
}

// Client authenticates against the training site and retrieves the hub page.
type Client struct {
	http *resty.Client
}

func NewClient() Client {
	c := resty.New().
		SetBaseURL(config.OracBaseURL).
		SetTimeout(config.OracFetchTimeout).
		SetRedirectPolicy(resty.NoRedirectPolicy())
	return Client{http: c}
}

// FetchHubPage logs in with the site's form endpoint and fetches the
// authenticated "expand all" problem view. A successful login answers 302
// with the session cookies; anything else is a fetch failure.
func (c Client) FetchHubPage(ctx context.Context, username, password string) (string, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"login_username": username,
			"login_password": password,
			"login_submit":   "Log in",
		}).
		Post("/cgi-bin/train/index.pl")
	if err != nil && !errors.Is(err, resty.ErrAutoRedirectDisabled) {
		return "", fmt.Errorf("%w: login request: %v", ErrFetchFailed, err)
	}
	if res.StatusCode() != http.StatusFound {
		return "", fmt.Errorf("%w: login returned status %d", ErrFetchFailed, res.StatusCode())
	}

	var cookies []*http.Cookie
	for _, cookie := range res.Cookies() {
		if strings.HasPrefix(cookie.Name, "aioc_") {
			cookies = append(cookies, cookie)
		}
	}

	page, err := c.http.R().
		SetContext(ctx).
		SetCookies(cookies).
		SetQueryParam("expand", "all").
		Get("/cgi-bin/train/hub.pl")
	if err != nil {
		return "", fmt.Errorf("%w: hub request: %v", ErrFetchFailed, err)
	}
	if page.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("%w: hub returned status %d", ErrFetchFailed, page.StatusCode())
	}
	return page.String(), nil
}
