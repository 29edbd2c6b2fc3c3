package realtime

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Govind-619/CocoMart/utils"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Publisher delivers an event to a room
type Publisher interface {
	Publish(room, event string, payload interface{})
}

// bridgeMessage is what instances exchange over Redis
type bridgeMessage struct {
	Origin  string          `json:"origin"`
	Room    string          `json:"room"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// RedisBridge fans events out to the hubs of every instance sharing a Redis
// channel. Events are delivered to the local hub directly and to the other
// instances through Redis.
type RedisBridge struct {
	client  *redis.Client
	channel string
	local   Publisher
	origin  string
	timeout time.Duration
}

func NewRedisBridge(addr, password string, db int, channel string, local Publisher) *RedisBridge {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisBridge{
		client:  rdb,
		channel: channel,
		local:   local,
		origin:  uuid.New().String(),
		timeout: 2 * time.Second,
	}
}

// Ping checks the Redis connection
func (b *RedisBridge) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

// Publish never blocks the caller; a Redis failure only costs the remote
// instances the event.
func (b *RedisBridge) Publish(room, event string, payload interface{}) {
	b.local.Publish(room, event, payload)

	raw, err := json.Marshal(payload)
	if err != nil {
		utils.LogError("Failed to encode %s for redis: %v", event, err)
		return
	}
	msg, err := json.Marshal(bridgeMessage{Origin: b.origin, Room: room, Event: event, Payload: raw})
	if err != nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
		defer cancel()
		if err := b.client.Publish(ctx, b.channel, msg).Err(); err != nil {
			utils.LogError("Failed to publish %s to redis: %v", event, err)
		}
	}()
}

// Run relays events published by other instances to the local hub until ctx
// is cancelled.
func (b *RedisBridge) Run(ctx context.Context) error {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}
	utils.LogInfo("Relaying notifications over redis channel %s", b.channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			b.relay(m.Payload)
		}
	}
}

func (b *RedisBridge) relay(data string) {
	var msg bridgeMessage
	if err := json.Unmarshal([]byte(data), &msg); err != nil {
		utils.LogError("Dropping malformed redis notification: %v", err)
		return
	}
	if msg.Origin == b.origin {
		return
	}
	b.local.Publish(msg.Room, msg.Event, msg.Payload)
}

// Close releases the Redis connection
func (b *RedisBridge) Close() error {
	return b.client.Close()
}
