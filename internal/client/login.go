package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/corvidae/roombot/internal/text"
)

const loginTimeout = 15 * time.Second

// login answers the server's challenge by posting credentials to the login
// endpoint and replying with the returned assertion. Runs off the read
// loop; failures are logged, not fatal, since the server will keep the
// connection open as a guest.
func (c *Client) login(ctx context.Context, challstr string) {
	form := url.Values{}
	if c.cfg.Password == "" {
		form.Set("act", "getassertion")
		form.Set("userid", text.ToID(c.cfg.Username))
	} else {
		form.Set("act", "login")
		form.Set("name", c.cfg.Username)
		form.Set("pass", c.cfg.Password)
	}
	form.Set("challstr", challstr)

	ctx, cancel := context.WithTimeout(ctx, loginTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.LoginURL, strings.NewReader(form.Encode()))
	if err != nil {
		c.log.Error().Err(err).Msg("build login request")
		return
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		c.log.Error().Err(err).Msg("login request failed")
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Error().Err(err).Msg("read login response")
		return
	}

	assertion := parseAssertion(body)
	if assertion == "" || strings.HasPrefix(assertion, ";") {
		c.log.Error().Str("response", string(body)).Msg("login rejected")
		return
	}
	c.Send("|/trn " + c.cfg.Username + ",0," + assertion)
}

// parseAssertion extracts the assertion token from a login response. The
// password flow returns "]" followed by a JSON object; the assertion-only
// flow returns the bare token.
func parseAssertion(body []byte) string {
	s := strings.TrimSpace(string(body))
	if !strings.HasPrefix(s, "]") {
		return s
	}
	var payload struct {
		ActionSuccess bool   `json:"actionsuccess"`
		Assertion     string `json:"assertion"`
	}
	if err := json.Unmarshal([]byte(s[1:]), &payload); err != nil {
		return ""
	}
	if !payload.ActionSuccess {
		return ""
	}
	return payload.Assertion
}
