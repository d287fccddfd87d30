package collect

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"jobinsight-engine/internal/config"
)

var (
	ErrSnapshotNotReady = errors.New("snapshot is not ready yet")
	ErrNoSnapshots      = errors.New("no snapshot ids configured")
	ErrNoToken          = errors.New("dataset api token is empty")
)

type Client struct {
	apiURL    string
	format    string
	snapshots []string
	token     string

	hc      *http.Client
	limiter *HostLimiter
	log     zerolog.Logger
}

func New(cfg config.Config, token string, log zerolog.Logger) *Client {
	timeout := time.Duration(cfg.Collect.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	format := cfg.Collect.Format
	if format == "" {
		format = "json"
	}
	return &Client{
		apiURL:    cfg.Collect.APIURL,
		format:    format,
		snapshots: append([]string(nil), cfg.Collect.SnapshotIDs...),
		token:     token,
		hc:        &http.Client{Timeout: timeout},
		limiter:   NewHostLimiter(cfg.Collect.ReqPerSec, cfg.Collect.Burst),
		log:       log,
	}
}

func (c *Client) snapshotURL(id string) string {
	q := url.Values{}
	q.Set("format", c.format)
	return fmt.Sprintf("%s/%s?%s", c.apiURL, url.PathEscape(id), q.Encode())
}

// Fetch downloads every configured snapshot and returns their records merged
// in configured order. Any failed snapshot fails the whole run so a partial
// dataset never replaces a complete one.
func (c *Client) Fetch(ctx context.Context) ([]json.RawMessage, error) {
	if len(c.snapshots) == 0 {
		return nil, ErrNoSnapshots
	}
	if c.token == "" {
		return nil, ErrNoToken
	}

	parts := make([][]json.RawMessage, len(c.snapshots))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range c.snapshots {
		i, id := i, id
		g.Go(func() error {
			recs, err := c.fetchSnapshot(gctx, id)
			if err != nil {
				return fmt.Errorf("snapshot %s: %w", id, err)
			}
			c.log.Info().Str("snapshot", id).Int("records", len(recs)).Msg("snapshot downloaded")
			parts[i] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []json.RawMessage
	for _, p := range parts {
		out = append(out, p...)
	}
	return out, nil
}

func (c *Client) fetchSnapshot(ctx context.Context, id string) ([]json.RawMessage, error) {
	u := c.snapshotURL(id)
	if err := c.limiter.WaitURL(ctx, u); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "JobInsight/1.0 (+local)")

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusAccepted {
		return nil, ErrSnapshotNotReady
	}
	if res.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("snapshot status %d: %s", res.StatusCode, bytes.TrimSpace(msg))
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return splitRecords(body)
}

// splitRecords accepts either an array of records or a single object.
func splitRecords(body []byte) ([]json.RawMessage, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, errors.New("empty snapshot body")
	}
	switch body[0] {
	case '[':
		var recs []json.RawMessage
		if err := json.Unmarshal(body, &recs); err != nil {
			return nil, fmt.Errorf("decode snapshot: %w", err)
		}
		return recs, nil
	case '{':
		if !json.Valid(body) {
			return nil, errors.New("decode snapshot: invalid json object")
		}
		return []json.RawMessage{json.RawMessage(body)}, nil
	default:
		return nil, fmt.Errorf("decode snapshot: unexpected body starting with %q", body[0])
	}
}

// Run fetches all snapshots and writes them to path. It returns the number of
// records written.
func (c *Client) Run(ctx context.Context, path string) (int, error) {
	start := time.Now()
	recs, err := c.Fetch(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("collect failed")
		return 0, err
	}
	n, err := WriteDataset(ctx, path, recs)
	if err != nil {
		c.log.Error().Err(err).Str("path", path).Msg("write dataset failed")
		return 0, err
	}
	c.log.Info().
		Str("path", path).
		Int("records", len(recs)).
		Str("size", humanize.Bytes(uint64(n))).
		Dur("took", time.Since(start)).
		Msg("data successfully collected")
	return len(recs), nil
}

// EnsureData collects only when path does not exist yet.
func (c *Client) EnsureData(ctx context.Context, path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, err
	}
	c.log.Info().Str("path", path).Msg("data file missing; collecting")
	if _, err := c.Run(ctx, path); err != nil {
		return false, err
	}
	return true, nil
}
