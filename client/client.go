// Package client connects to a battle server's live feed.
package client

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
)

// DefaultFeedURL is the live feed of a locally running server.
const DefaultFeedURL = "ws://localhost:8000/battle/live"

// ErrServer reports an |error| line sent by the feed.
var ErrServer = errors.New("feed server error")

type FeedClient struct {
	Conn *websocket.Conn
}

// Dial connects to the feed at rawURL.
func Dial(ctx context.Context, rawURL string) (*FeedClient, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse feed url: %w", err)
	}

	log.Printf("[live] connecting to %s", u.String())
	c, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial feed: %w", err)
	}
	return &FeedClient{Conn: c}, nil
}

func (fc *FeedClient) Send(message string) error {
	if err := fc.Conn.WriteMessage(websocket.TextMessage, []byte(message)); err != nil {
		return fmt.Errorf("send: %w", err)
	}
	return nil
}

// StartBattle asks the server to play out a battle between p1 and p2.
func (fc *FeedClient) StartBattle(p1, p2 string) error {
	return fc.Send(fmt.Sprintf("|/battle %s %s", p1, p2))
}

// ReadLines calls fn for every feed line until the battle ends with a |win|
// line, the server closes the connection or ctx is done. Messages may carry
// several lines separated by newlines.
func (fc *FeedClient) ReadLines(ctx context.Context, fn func(line string)) error {
	stop := context.AfterFunc(ctx, func() { fc.Conn.Close() })
	defer stop()

	for {
		_, message, err := fc.Conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			return fmt.Errorf("read feed: %w", err)
		}
		for _, line := range strings.Split(string(message), "\n") {
			if line == "" {
				continue
			}
			fn(line)
			if strings.HasPrefix(line, "|win|") {
				return nil
			}
			if msg, ok := strings.CutPrefix(line, "|error|"); ok {
				return fmt.Errorf("%w: %s", ErrServer, msg)
			}
		}
	}
}

func (fc *FeedClient) Close() error {
	_ = fc.Conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return fc.Conn.Close()
}
