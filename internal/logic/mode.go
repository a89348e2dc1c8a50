package logic

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// ModeCell holds the normalization mode shared by every stat display.
// It has one writer (Cycle) and any number of readers; reads are atomic
// snapshots and subscribers are notified synchronously after each cycle.
type ModeCell struct {
	mode atomic.Int32

	mu     sync.Mutex
	nextID int
	subs   map[int]func(Mode)
	order  []int
}

// NewModeCell returns a cell in ModeTotal.
func NewModeCell() *ModeCell {
	return &ModeCell{subs: make(map[int]func(Mode))}
}

// Mode returns the current mode.
func (c *ModeCell) Mode() Mode {
	return Mode(c.mode.Load())
}

// Cycle advances total -> perMatch -> perMinute -> total.
func (c *ModeCell) Cycle() {
	c.cycle()
}

// cycle advances the mode and returns the mode this call produced.
func (c *ModeCell) cycle() Mode {
	c.mu.Lock()
	next := c.Mode().Next()
	c.mode.Store(int32(next))
	subs := make([]func(Mode), 0, len(c.order))
	for _, id := range c.order {
		subs = append(subs, c.subs[id])
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return next
}

// Subscribe registers fn to be called with the new mode after every cycle.
// The returned func removes the subscription.
func (c *ModeCell) Subscribe(fn func(Mode)) (unsubscribe func()) {
	c.mu.Lock()
	if c.subs == nil {
		c.subs = make(map[int]func(Mode))
	}
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.order = append(c.order, id)
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if _, ok := c.subs[id]; !ok {
			return
		}
		delete(c.subs, id)
		for i, v := range c.order {
			if v == id {
				c.order = append(c.order[:i], c.order[i+1:]...)
				break
			}
		}
	}
}

// LocalModeSource serves the mode from an in-process cell.
type LocalModeSource struct {
	cell *ModeCell
}

func NewLocalModeSource(cell *ModeCell) *LocalModeSource {
	if cell == nil {
		cell = NewModeCell()
	}
	return &LocalModeSource{cell: cell}
}

func (s *LocalModeSource) Current(ctx context.Context) (Mode, error) {
	return s.cell.Mode(), nil
}

func (s *LocalModeSource) Cycle(ctx context.Context) (Mode, error) {
	return s.cell.cycle(), nil
}

// DefaultModeKey is the redis key of the shared mode counter.
const DefaultModeKey = "brady:stat_mode"

// RedisModeSource shares one mode cell across replicas. The key holds a
// counter; the mode is the counter modulo the number of modes, so INCR is the
// atomic cycle. The key expires after ttl so the mode decays back to total.
type RedisModeSource struct {
	client ModeStoreClient
	key    string
	ttl    time.Duration
}

func NewRedisModeSource(client ModeStoreClient, key string, ttl time.Duration) *RedisModeSource {
	if key == "" {
		key = DefaultModeKey
	}
	return &RedisModeSource{client: client, key: key, ttl: ttl}
}

func (s *RedisModeSource) Current(ctx context.Context) (Mode, error) {
	val, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return ModeTotal, nil
	}
	if err != nil {
		return ModeTotal, fmt.Errorf("read mode: %w", err)
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return ModeTotal, nil
	}
	return modeFromCounter(n), nil
}

func (s *RedisModeSource) Cycle(ctx context.Context) (Mode, error) {
	n, err := s.client.Incr(ctx, s.key).Result()
	if err != nil {
		return ModeTotal, fmt.Errorf("cycle mode: %w", err)
	}
	if s.ttl > 0 {
		if err := s.client.Expire(ctx, s.key, s.ttl).Err(); err != nil {
			return modeFromCounter(n), fmt.Errorf("expire mode: %w", err)
		}
	}
	return modeFromCounter(n), nil
}

func modeFromCounter(n int64) Mode {
	m := n % modeCount
	if m < 0 {
		m += modeCount
	}
	return Mode(m)
}
