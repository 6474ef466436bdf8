package chatbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/nanami9426/officerchat/internal/models"
	"github.com/nanami9426/officerchat/internal/push"
	"github.com/nanami9426/officerchat/internal/response"
)

// APIError is a failed envelope. Key is the translation key from the server.
type APIError struct {
	Status int
	Key    string
	Param  string
}

func (e *APIError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s (%s, status %d)", e.Key, e.Param, e.Status)
	}
	return fmt.Sprintf("%s (status %d)", e.Key, e.Status)
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *response.Error `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%s %s: decode response (status %d): %w", method, path, resp.StatusCode, err)
	}
	if !env.Success {
		apiErr := &APIError{Status: resp.StatusCode, Key: "unknown"}
		if env.Error != nil {
			apiErr.Key = env.Error.Message
			apiErr.Param = env.Error.Param
		}
		return apiErr
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}

// ActiveOfficer returns the caller's on-duty unit, nil when off duty.
func (c *Client) ActiveOfficer(ctx context.Context) (*models.Unit, error) {
	var u *models.Unit
	if err := c.do(ctx, http.MethodGet, "/leo/active-officer", nil, &u); err != nil {
		return nil, err
	}
	return u, nil
}

func (c *Client) ListMessages(ctx context.Context) ([]*models.OfficerChatView, error) {
	var list []*models.OfficerChatView
	if err := c.do(ctx, http.MethodGet, "/leo/officer-chat", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) CreateMessage(ctx context.Context, text string) (*models.OfficerChatView, error) {
	var view models.OfficerChatView
	body := map[string]string{"message": text}
	if err := c.do(ctx, http.MethodPost, "/leo/officer-chat", body, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *Client) DeleteMessage(ctx context.Context, id int64) (bool, error) {
	var ok bool
	path := "/leo/officer-chat/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, http.MethodDelete, path, nil, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (c *Client) wsURL() (string, error) {
	u, err := url.Parse(c.baseURL + "/ws")
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	return u.String(), nil
}

// Subscribe reads push events until ctx is done or the connection drops.
func (c *Client) Subscribe(ctx context.Context, handle func(*push.Event)) error {
	target, err := c.wsURL()
	if err != nil {
		return err
	}
	header := http.Header{}
	if c.token != "" {
		header.Set("Authorization", "Bearer "+c.token)
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, target, header)
	if err != nil {
		return fmt.Errorf("dial %s: %w", target, err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	for {
		var e push.Event
		if err := conn.ReadJSON(&e); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read push event: %w", err)
		}
		handle(&e)
	}
}
