package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

const (
	chatRoomID   = 0
	pullRepeats  = 50
	tokenTTL     = time.Minute
	chatEndpoint = "%s/api/chat/messages/%d"
)

type HTTPPoster interface {
	Post(ctx context.Context, url string, headers http.Header, body []byte) (statusCode int, respBody []byte, err error)
}

type TokenIssuer interface {
	GenerateJWT(userID string, expirationTime time.Time) (string, error)
}

type chatMessageRequest struct {
	Content string `json:"content"`
	Nonce   string `json:"nonce"`
}

// ChatClient posts the pull announcement into the global chat room on behalf
// of the user who pulled the item.
type ChatClient struct {
	baseURL string
	client  HTTPPoster
	tokens  TokenIssuer
}

func NewChatClient(baseURL string, client HTTPPoster, tokens TokenIssuer) *ChatClient {
	return &ChatClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		tokens:  tokens,
	}
}

func PullMessage(itemName string) string {
	return strings.Repeat(fmt.Sprintf("I JUST PULLED A %s!!!\n", strings.ToUpper(itemName)), pullRepeats)
}

func (c *ChatClient) Broadcast(ctx context.Context, userID, itemName string) error {
	body, err := json.Marshal(chatMessageRequest{
		Content: PullMessage(itemName),
		Nonce:   uuid.NewString(),
	})
	if err != nil {
		return errors.Wrap(err, "failed to encode chat message")
	}

	token, err := c.tokens.GenerateJWT(userID, time.Now().Add(tokenTTL))
	if err != nil {
		return errors.Wrap(err, "failed to issue chat token")
	}
	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+token)

	statusCode, _, err := c.client.Post(ctx, fmt.Sprintf(chatEndpoint, c.baseURL, chatRoomID), headers, body)
	if err != nil {
		return errors.Wrap(err, "failed to post chat message")
	}
	if statusCode < 200 || statusCode >= 300 {
		return errors.Newf("chat service responded with status %d", statusCode)
	}
	return nil
}
