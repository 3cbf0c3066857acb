package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/glog"

	"ringstore/internal/ringcore"
)

// PeerResolver maps a ring address to the base URL of the process hosting
// it, so HTTP can reach a peer that Core only knows as an Address.
type PeerResolver interface {
	BaseURL(addr ringcore.Address) (string, bool)
}

type frameEnvelope struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Frame string `json:"frame"`
}

// HTTP is a real network ringcore.Transport: Send posts the frame to the
// target's /internal/frame endpoint with a few backoff retries, done in a
// background goroutine so the caller is never blocked; Recv drains frames a
// gin handler has appended to this node's own inbox.
type HTTP struct {
	self     ringcore.Address
	resolver PeerResolver
	client   *http.Client

	mu     sync.Mutex
	inbox  []string
}

// NewHTTP builds an HTTP transport for self, resolving peers through r.
func NewHTTP(self ringcore.Address, r PeerResolver) *HTTP {
	return &HTTP{
		self:     self,
		resolver: r,
		client:   &http.Client{Timeout: 3 * time.Second},
	}
}

// Register mounts the frame-receiving endpoint on a gin router.
func (t *HTTP) Register(r *gin.Engine) {
	r.POST("/internal/frame", func(c *gin.Context) {
		var env frameEnvelope
		if err := c.ShouldBindJSON(&env); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		t.mu.Lock()
		t.inbox = append(t.inbox, env.Frame)
		t.mu.Unlock()
		c.Status(http.StatusNoContent)
	})
}

// Send delivers frame to "to" over HTTP, retrying with exponential backoff
// in the background. A peer that never resolves, or never answers, simply
// never gets the frame — which surfaces to the sender only as a missing
// reply, same as the in-process emulator.
func (t *HTTP) Send(from, to ringcore.Address, frame string) {
	base, ok := t.resolver.BaseURL(to)
	if !ok {
		return
	}

	env := frameEnvelope{From: from.String(), To: to.String(), Frame: frame}
	body, err := json.Marshal(env)
	if err != nil {
		return
	}

	go t.deliverWithRetry(base, body)
}

func (t *HTTP) deliverWithRetry(base string, body []byte) {
	backoff := 100 * time.Millisecond
	const maxAttempts = 3

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(backoff)
			backoff *= 2
		}

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/internal/frame", bytes.NewReader(body))
		if err != nil {
			cancel()
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := t.client.Do(req)
		cancel()
		if err != nil {
			glog.V(2).Infof("transport: attempt %d to %s failed: %v", attempt+1, base, err)
			continue
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		if resp.StatusCode < 300 {
			return
		}
	}
}

// Recv drains every frame received for self since the last call.
func (t *HTTP) Recv(self ringcore.Address) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	if self != t.self {
		return nil
	}
	frames := t.inbox
	t.inbox = nil
	return frames
}
