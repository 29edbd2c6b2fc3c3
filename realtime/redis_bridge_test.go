package realtime

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
	last   interface{}
}

func (p *recordingPublisher) Publish(room, event string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, room+"/"+event)
	p.last = payload
}

func (p *recordingPublisher) snapshot() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

func TestRedisBridge_Relay(t *testing.T) {
	local := &recordingPublisher{}
	bridge := NewRedisBridge("127.0.0.1:1", "", 0, "test", local)
	defer bridge.Close()

	own, err := json.Marshal(bridgeMessage{Origin: bridge.origin, Room: "admin", Event: "order-placed", Payload: json.RawMessage(`{}`)})
	require.NoError(t, err)
	bridge.relay(string(own))
	assert.Empty(t, local.snapshot(), "own events are already delivered locally")

	bridge.relay("not json")
	assert.Empty(t, local.snapshot())

	remote, err := json.Marshal(bridgeMessage{Origin: "other", Room: "vendor:2", Event: "payment-completed", Payload: json.RawMessage(`{"order_id":3}`)})
	require.NoError(t, err)
	bridge.relay(string(remote))
	assert.Equal(t, []string{"vendor:2/payment-completed"}, local.snapshot())

	raw, ok := local.last.(json.RawMessage)
	require.True(t, ok)
	assert.JSONEq(t, `{"order_id":3}`, string(raw))
}

func TestRedisBridge_PublishDeliversLocallyWithoutRedis(t *testing.T) {
	local := &recordingPublisher{}
	bridge := NewRedisBridge("127.0.0.1:1", "", 0, "test", local)
	defer bridge.Close()
	bridge.timeout = 50 * time.Millisecond

	bridge.Publish("admin", "order-placed", map[string]int{"order_id": 1})
	assert.Equal(t, []string{"admin/order-placed"}, local.snapshot())
}

// TestRedisBridge_Integration requires a running Redis.
// We skip if connection fails.
func TestRedisBridge_Integration(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	channel := "cocomart-test-" + time.Now().Format("150405.000000")

	localA, localB := &recordingPublisher{}, &recordingPublisher{}
	a := NewRedisBridge(addr, "", 0, channel, localA)
	b := NewRedisBridge(addr, "", 0, channel, localB)
	defer a.Close()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := a.Ping(ctx); err != nil {
		t.Skip("Skipping Redis integration test: redis not available")
	}

	go a.Run(ctx)
	go b.Run(ctx)
	require.Eventually(t, func() bool {
		subs, err := a.client.PubSubNumSub(ctx, channel).Result()
		return err == nil && subs[channel] == 2
	}, 2*time.Second, 20*time.Millisecond)

	a.Publish("admin", "order-placed", map[string]int{"order_id": 1})

	require.Eventually(t, func() bool {
		return len(localB.snapshot()) == 1
	}, 2*time.Second, 20*time.Millisecond)
	assert.Equal(t, []string{"admin/order-placed"}, localB.snapshot())

	// give a stray self-relay time to show up
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, []string{"admin/order-placed"}, localA.snapshot())
}
