//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"
)

// BaseSuite runs scenarios against an already running server instance,
// reachable at SERVER_ADDR. It owns an HTTP client and knows how to open
// authenticated websocket connections.
type BaseSuite struct {
	suite.Suite
	Config Config
	client *http.Client
}

// SetupSuite loads the environment configuration before running tests
func (s *BaseSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	s.client = &http.Client{Timeout: 10 * time.Second}
}

func (s *BaseSuite) StepHeader(t *testing.T, name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	t.Log(header)
}

// PostJSON sends a JSON body and decodes the JSON response into out (when
// out is non-nil). The returned status lets scenarios assert on error paths.
func (s *BaseSuite) PostJSON(t *testing.T, token, path string, body, out any) int {
	payload, err := json.Marshal(body)
	s.Require().NoError(err)

	req, err := http.NewRequest(http.MethodPost, s.baseURL()+path, bytes.NewReader(payload))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return s.do(t, req, out)
}

func (s *BaseSuite) GetJSON(t *testing.T, token, path string, out any) int {
	req, err := http.NewRequest(http.MethodGet, s.baseURL()+path, nil)
	s.Require().NoError(err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return s.do(t, req, out)
}

func (s *BaseSuite) do(t *testing.T, req *http.Request, out any) int {
	start := time.Now()
	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	logBuilder := strings.Builder{}
	fmt.Fprintf(&logBuilder, "HTTP %s %s [%d] in %v",
		req.Method, req.URL.Path, resp.StatusCode, time.Since(start))
	if s.Config.DebugJSON {
		fmt.Fprintln(&logBuilder, "\nRESPONSE:")
		fmt.Fprintln(&logBuilder, string(raw))
	}
	t.Log(logBuilder.String())

	if out != nil && len(raw) > 0 {
		s.Require().NoError(json.Unmarshal(raw, out))
	}
	return resp.StatusCode
}

// DialWS opens an authenticated websocket connection for the given token.
func (s *BaseSuite) DialWS(t *testing.T, token string) *websocket.Conn {
	wsURL := url.URL{
		Scheme:   "ws",
		Host:     s.Config.ServerAddr,
		Path:     "/ws",
		RawQuery: "token=" + url.QueryEscape(token),
	}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL.String(), nil)
	s.Require().NoError(err, "Failed to connect to websocket at "+wsURL.String())
	return conn
}

// RegisterAndLogin creates a fresh user with a unique email and returns its
// token and user ID. Each scenario run gets its own users so the suite can
// be replayed against the same database.
func (s *BaseSuite) RegisterAndLogin(t *testing.T, name string) (token, userID string) {
	email := fmt.Sprintf("%s-%s@e2e.test", name, uuid.NewString()[:8])
	password := "E2ePassword1!"

	status := s.PostJSON(t, "", "/auth/register", map[string]string{
		"email":    email,
		"username": name,
		"password": password,
	}, nil)
	s.Require().Equal(http.StatusCreated, status)

	var login struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	status = s.PostJSON(t, "", "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &login)
	s.Require().Equal(http.StatusOK, status)
	s.Require().NotEmpty(login.Token)

	return login.Token, login.User.ID
}

func (s *BaseSuite) baseURL() string {
	return "http://" + s.Config.ServerAddr
}
