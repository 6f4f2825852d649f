package api

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"pokebattle/animation"
	"pokebattle/battle"
	"pokebattle/parser"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const liveUsage = "usage: |/battle <pokemon1> <pokemon2>"

// parseBattleCommand reads "|/battle <p1> <p2>".
func parseBattleCommand(msg string) (string, string, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(msg), "|/battle ")
	if !ok {
		return "", "", false
	}
	f := strings.Fields(rest)
	if len(f) != 2 {
		return "", "", false
	}
	return f[0], f[1], true
}

// turns groups feed lines into messages: the preamble, then one message per
// |turn| with everything up to the next one.
func turns(lines []string) []string {
	var out []string
	var cur []string
	for _, l := range lines {
		if strings.HasPrefix(l, "|turn|") && len(cur) > 0 {
			out = append(out, strings.Join(cur, "\n"))
			cur = nil
		}
		cur = append(cur, l)
	}
	if len(cur) > 0 {
		out = append(out, strings.Join(cur, "\n"))
	}
	return out
}

// live plays out one battle over a websocket, a turn every LiveTick.
func (h *Handler) live(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer ws.Close()
	log.Println("[live] client connected")

	send := func(msg string) bool {
		if err := ws.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
			log.Printf("[live] write: %v", err)
			return false
		}
		return true
	}
	fail := func(format string, args ...any) {
		send("|error|" + fmt.Sprintf(format, args...))
		ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	}

	_, msg, err := ws.ReadMessage()
	if err != nil {
		return
	}
	p1, p2, ok := parseBattleCommand(string(msg))
	if !ok {
		fail(liveUsage)
		return
	}

	ctx := c.Request.Context()
	a, err := h.Source.Pokemon(ctx, p1)
	if err != nil {
		fail("%s: %v", p1, err)
		return
	}
	b, err := h.Source.Pokemon(ctx, p2)
	if err != nil {
		fail("%s: %v", p2, err)
		return
	}

	script := animation.Plan(h.rng(), a, b, battle.Evaluate(a, b))
	chunks := turns(parser.Encode(script))
	log.Printf("[live] %s vs %s: %d turns", a.Name, b.Name, len(script.Ticks))

	var tick <-chan time.Time
	if h.LiveTick > 0 {
		t := time.NewTicker(h.LiveTick)
		defer t.Stop()
		tick = t.C
	}
	for i, chunk := range chunks {
		if i > 0 && tick != nil {
			select {
			case <-ctx.Done():
				return
			case <-tick:
			}
		}
		if !send(chunk) {
			return
		}
	}
	ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	log.Println("[live] battle finished")
}
