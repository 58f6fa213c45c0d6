package messenger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is the chat transport capability consumed by the draw engine:
// send a text message to a recipient and query membership of the roster
// group. Implementations must report "unknown user" as a plain false, not
// as an error, so that one missing member never aborts a batch.
type Client interface {
	SendText(ctx context.Context, chatID, text string) error
	IsGroupMember(ctx context.Context, groupID, chatID string) (bool, error)
	ListGroupAdmins(ctx context.Context, groupID string) ([]string, error)
}

// BotClient talks to a Telegram-style bot HTTP API
type BotClient struct {
	BaseURL string
	Token   string
	client  *http.Client
}

// NewBotClient creates a new BotClient
func NewBotClient(baseURL, token string) *BotClient {
	return &BotClient{
		BaseURL: baseURL,
		Token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	Description string          `json:"description"`
}

func (c *BotClient) call(ctx context.Context, method string, payload interface{}) (*apiResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.BaseURL, c.Token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var apiResp apiResponse
	if err := json.Unmarshal(raw, &apiResp); err != nil {
		return nil, fmt.Errorf("messenger: invalid response for %s: %w", method, err)
	}
	return &apiResp, nil
}

// SendText sends a plain text message to the given chat
func (c *BotClient) SendText(ctx context.Context, chatID, text string) error {
	resp, err := c.call(ctx, "sendMessage", map[string]string{
		"chat_id": chatID,
		"text":    text,
	})
	if err != nil {
		return err
	}
	if !resp.OK {
		return fmt.Errorf("messenger: sendMessage to %s failed: %s", chatID, resp.Description)
	}
	return nil
}

// IsGroupMember reports whether the user currently belongs to the group.
// Users the API does not know about count as non-members.
func (c *BotClient) IsGroupMember(ctx context.Context, groupID, chatID string) (bool, error) {
	resp, err := c.call(ctx, "getChatMember", map[string]string{
		"chat_id": groupID,
		"user_id": chatID,
	})
	if err != nil {
		return false, err
	}
	if !resp.OK {
		if strings.Contains(strings.ToLower(resp.Description), "not found") {
			return false, nil
		}
		return false, fmt.Errorf("messenger: getChatMember failed: %s", resp.Description)
	}

	var member struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(resp.Result, &member); err != nil {
		return false, err
	}
	switch member.Status {
	case "left", "kicked", "":
		return false, nil
	}
	return true, nil
}

// ListGroupAdmins returns the chat ids of the group moderators
func (c *BotClient) ListGroupAdmins(ctx context.Context, groupID string) ([]string, error) {
	resp, err := c.call(ctx, "getChatAdministrators", map[string]string{
		"chat_id": groupID,
	})
	if err != nil {
		return nil, err
	}
	if !resp.OK {
		return nil, fmt.Errorf("messenger: getChatAdministrators failed: %s", resp.Description)
	}

	var admins []struct {
		User struct {
			ID int64 `json:"id"`
		} `json:"user"`
	}
	if err := json.Unmarshal(resp.Result, &admins); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(admins))
	for _, a := range admins {
		ids = append(ids, fmt.Sprintf("%d", a.User.ID))
	}
	return ids, nil
}
