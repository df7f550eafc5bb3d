// Package entropy supplies the randomness board generation runs on: seeded
// math/rand sources, seeds drawn from random.org or crypto/rand, and the
// random-removal Queue.
package entropy

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	mrand "math/rand"
	"net/http"
	"sync"
	"time"
)

const defaultEndpoint = "https://api.random.org/json-rpc/4/invoke"

// Client draws seed material from random.org and keeps a small local pool.
type Client struct {
	apiKey   string
	endpoint string
	client   *http.Client

	mu   sync.Mutex
	pool []uint32
}

// NewClient creates a random.org client. Returns nil if apiKey is empty.
func NewClient(apiKey string) *Client {
	if apiKey == "" {
		return nil
	}
	return &Client{
		apiKey:   apiKey,
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// WithEndpoint points the client at another JSON-RPC endpoint.
func (c *Client) WithEndpoint(url string) *Client {
	if c != nil {
		c.endpoint = url
	}
	return c
}

// Enabled returns true if the client has a valid API key.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// Seed returns a seed built from two pooled 31-bit random.org integers,
// refilling the pool when it runs low.
func (c *Client) Seed(ctx context.Context) (int64, error) {
	if !c.Enabled() {
		return 0, fmt.Errorf("random.org client disabled")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.pool) < 2 {
		if err := c.refill(ctx); err != nil {
			return 0, err
		}
	}
	if len(c.pool) < 2 {
		return 0, fmt.Errorf("random.org returned too few integers")
	}
	hi, lo := c.pool[0], c.pool[1]
	c.pool = c.pool[2:]
	return int64(hi&math.MaxInt32)<<31 | int64(lo&math.MaxInt32), nil
}

func (c *Client) refill(ctx context.Context) error {
	req := map[string]any{
		"jsonrpc": "2.0",
		"method":  "generateIntegers",
		"params": map[string]any{
			"apiKey":      c.apiKey,
			"n":           32,
			"min":         0,
			"max":         1<<31 - 1,
			"replacement": true,
		},
		"id": 1,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal random.org request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build random.org request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("random.org fetch: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("random.org read: %w", err)
	}

	var result struct {
		Result struct {
			Random struct {
				Data []uint32 `json:"data"`
			} `json:"random"`
		} `json:"result"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return fmt.Errorf("random.org parse: %w", err)
	}
	if result.Error != nil {
		return fmt.Errorf("random.org API error: %s", result.Error.Message)
	}

	c.pool = append(c.pool, result.Result.Random.Data...)
	slog.Debug("random.org pool refilled", "count", len(result.Result.Random.Data))
	return nil
}

// CryptoSeed returns a non-negative seed from crypto/rand.
func CryptoSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return time.Now().UnixNano() & math.MaxInt64
	}
	return int64(binary.LittleEndian.Uint64(buf[:]) & math.MaxInt64)
}

// SeedFromSource returns a seed from the client if available, or crypto/rand.
func SeedFromSource(ctx context.Context, c *Client) int64 {
	if c.Enabled() {
		seed, err := c.Seed(ctx)
		if err == nil {
			return seed
		}
		slog.Debug("random.org seed failed, using crypto/rand", "error", err)
	}
	return CryptoSeed()
}

// NewRand returns a math/rand generator for seed. Seed 0 draws a fresh seed
// from crypto/rand.
func NewRand(seed int64) *mrand.Rand {
	if seed == 0 {
		seed = CryptoSeed()
	}
	return mrand.New(mrand.NewSource(seed))
}
