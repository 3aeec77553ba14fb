// Package eschool is the HTTP client for the eSchool portal API.
package eschool

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/reschool/internal/domain"
)

// SessionCookie is the cookie the portal authenticates requests with.
const SessionCookie = "JSESSIONID"

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// API is the subset of the portal used by the services.
type API interface {
	Login(ctx context.Context, username, passwordHash string, device domain.DevicePayload) error
	State(ctx context.Context) (*domain.State, error)

	Threads(ctx context.Context, newOnly bool, row, count int) ([]domain.Thread, error)
	Messages(ctx context.Context, threadID int64, rowStart, count int) ([]domain.Message, error)
	SendMessage(ctx context.Context, threadID int64, text string) error
	SaveThread(ctx context.Context, interlocutorID int64) (int64, error)

	GroupsTree(ctx context.Context) ([]byte, error)
	ClassByUser(ctx context.Context, userID int64) ([]domain.Group, error)
	Periods(ctx context.Context, groupID int64) (*domain.PeriodContainer, error)

	DiaryUnits(ctx context.Context, userID, periodID int64) ([]domain.DiaryUnit, error)
	DiaryPeriod(ctx context.Context, userID, periodID int64) ([]domain.DiaryPeriodLesson, error)
	PrsDiary(ctx context.Context, prsID int64, from, to domain.Millis) (*domain.PrsDiary, error)

	PupilUnits(ctx context.Context, prsID, yearID int64) ([]domain.PupilUnit, error)
	UserListSearch(ctx context.Context, yearID int64) ([]domain.UserSearchItem, error)
	LPartListPupil(ctx context.Context, query TaskQuery) ([]domain.PupilTask, error)
	ProfileNew(ctx context.Context, prsID int64) (*domain.ExtendedProfile, error)

	SetSession(id string)
	SessionID() string
}

// Client implements API over net/http. Each call makes exactly one
// attempt bounded by Config.Timeout.
type Client struct {
	cfg      Config
	base     *url.URL
	http     *http.Client
	jar      *sessionJar
	observer Observer
}

// NewClient creates a Client for cfg.BaseURL.
func NewClient(cfg Config, observer Observer) (*Client, error) {
	if observer == nil {
		observer = NoopObserver{}
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", cfg.BaseURL)
	}
	jar, err := newSessionJar()
	if err != nil {
		return nil, err
	}
	return &Client{
		cfg:  cfg,
		base: base,
		jar:  jar,
		http: &http.Client{
			Jar: jar,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}, nil
}

// SetSession installs a session id obtained earlier, so a stored session
// can be reused without logging in. An empty id forgets every cookie,
// whatever path the portal set it on.
func (c *Client) SetSession(id string) {
	c.jar.reset()
	if id == "" {
		return
	}
	c.jar.SetCookies(c.base, []*http.Cookie{{Name: SessionCookie, Value: id, Path: "/"}})
}

// SessionID returns the current session id, or "" when not logged in.
func (c *Client) SessionID() string {
	for _, ck := range c.jar.Cookies(c.base) {
		if ck.Name == SessionCookie {
			return ck.Value
		}
	}
	return ""
}

// request describes one portal call.
type request struct {
	method      string
	path        string
	query       url.Values
	body        []byte
	contentType string
	anonymous   bool // no session required
}

// response is the raw outcome of a successful call.
type response struct {
	status int
	body   []byte
}

func (c *Client) do(ctx context.Context, req request) (*response, error) {
	start := time.Now()
	event := CallEvent{Endpoint: req.path, Method: req.method}

	resp, err := c.send(ctx, req)
	event.LatencyMs = time.Since(start).Milliseconds()
	if resp != nil {
		event.Status = resp.status
	}
	if err != nil {
		event.ErrorCode = errorCode(err)
		c.observer.OnCallComplete(event)
		return nil, err
	}
	event.Success = true
	c.observer.OnCallComplete(event)
	return resp, nil
}

func (c *Client) send(ctx context.Context, req request) (*response, error) {
	if !req.anonymous && c.SessionID() == "" {
		return nil, fmt.Errorf("%w: no session", ErrNotAuthenticated)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout())
	defer cancel()

	u := *c.base
	u.Path = c.base.Path + req.path
	if len(req.query) > 0 {
		u.RawQuery = req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		body = bytes.NewReader(req.body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(httpReq)
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if isConnectionError(err) {
			return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
		}
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return &response{status: httpResp.StatusCode}, ErrTimeout
		}
		return &response{status: httpResp.StatusCode}, fmt.Errorf("reading response: %w", err)
	}
	out := &response{status: httpResp.StatusCode, body: respBody}

	switch {
	case httpResp.StatusCode == http.StatusUnauthorized, httpResp.StatusCode == http.StatusForbidden:
		return out, fmt.Errorf("%w: status %d", ErrNotAuthenticated, httpResp.StatusCode)
	case httpResp.StatusCode == http.StatusServiceUnavailable:
		return out, fmt.Errorf("%w: status 503", ErrServiceUnavailable)
	case httpResp.StatusCode < 200 || httpResp.StatusCode > 299:
		return out, fmt.Errorf("%w: %s returned %d", ErrUnexpectedStatus, req.path, httpResp.StatusCode)
	}
	return out, nil
}

func (c *Client) setHeaders(r *http.Request) {
	origin := c.base.Scheme + "://" + c.base.Host
	r.Header.Set("User-Agent", userAgent)
	r.Header.Set("Accept", "application/json, text/plain, */*")
	r.Header.Set("Accept-Language", "ru-RU,ru;q=0.9")
	r.Header.Set("Origin", origin)
	r.Header.Set("Referer", origin+"/")
}

// getJSON issues a GET and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	resp, err := c.do(ctx, request{method: http.MethodGet, path: path, query: query})
	if err != nil {
		return err
	}
	return decode(path, resp.body, out)
}

func decode(path string, body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidResponse, path, err)
	}
	return nil
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrServiceUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrNotAuthenticated):
		return "NOT_AUTHENTICATED"
	case errors.Is(err, ErrInvalidCredentials):
		return "INVALID_CREDENTIALS"
	case errors.Is(err, ErrUnexpectedStatus):
		return "UNEXPECTED_STATUS"
	case errors.Is(err, ErrInvalidResponse):
		return "INVALID_RESPONSE"
	default:
		return "UNKNOWN"
	}
}

// sessionJar is a cookie jar that can be emptied. cookiejar.Jar has no
// delete and does not report cookie paths, so a cookie set at a sub-path
// cannot be expired from outside.
type sessionJar struct {
	mu    sync.Mutex
	inner *cookiejar.Jar
}

func newSessionJar() (*sessionJar, error) {
	inner, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}
	return &sessionJar{inner: inner}, nil
}

func (j *sessionJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.inner.SetCookies(u, cookies)
}

func (j *sessionJar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.inner.Cookies(u)
}

func (j *sessionJar) reset() {
	// cookiejar.New(nil) cannot fail.
	inner, _ := cookiejar.New(nil)
	j.mu.Lock()
	j.inner = inner
	j.mu.Unlock()
}
