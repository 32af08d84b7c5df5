package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"overcooked-tables/floor-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the claim only while it is still held by the caller.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisClaims holds short-lived table claims shared by every replica while an
// assignment is in flight.
type RedisClaims struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisClaims(client *redis.Client, ttl time.Duration) *RedisClaims {
	return &RedisClaims{Client: client, TTL: ttl}
}

func (c *RedisClaims) TableClaimKey(tableID string) string {
	return "claim:table:" + tableID
}

// Claim takes the table for orderID. Claiming a table already held by the same
// order succeeds.
func (c *RedisClaims) Claim(ctx context.Context, tableID, orderID string) (bool, error) {
	key := c.TableClaimKey(tableID)
	ok, err := c.Client.SetNX(ctx, key, orderID, c.TTL).Result()
	if err != nil {
		return false, err
	}
	if ok {
		return true, nil
	}

	holder, err := c.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return c.Client.SetNX(ctx, key, orderID, c.TTL).Result()
	}
	if err != nil {
		return false, err
	}
	return holder == orderID, nil
}

func (c *RedisClaims) Release(ctx context.Context, tableID, orderID string) error {
	return releaseScript.Run(ctx, c.Client, []string{c.TableClaimKey(tableID)}, orderID).Err()
}

// RedisPubSub fans full order snapshots out to every subscribed replica.
type RedisPubSub struct {
	Client  *redis.Client
	Channel string
}

func NewRedisPubSub(client *redis.Client, channel string) *RedisPubSub {
	return &RedisPubSub{Client: client, Channel: channel}
}

func (p *RedisPubSub) BroadcastOrder(ctx context.Context, order domain.Order) error {
	payload, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return p.Client.Publish(ctx, p.Channel, payload).Err()
}

// Subscribe calls onOrderChanged for every snapshot published on the channel
// until the returned unsubscribe func is called or ctx ends.
func (p *RedisPubSub) Subscribe(ctx context.Context, onOrderChanged func(domain.Order)) (func() error, error) {
	sub := p.Client.Subscribe(ctx, p.Channel)
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, err
	}

	go func() {
		for msg := range sub.Channel() {
			var order domain.Order
			if err := json.Unmarshal([]byte(msg.Payload), &order); err != nil {
				log.Printf("Error unmarshaling order snapshot: %v", err)
				continue
			}
			onOrderChanged(order)
		}
	}()

	go func() {
		<-ctx.Done()
		sub.Close()
	}()

	return sub.Close, nil
}
