// Package publish pushes a finished ranking to a Socket.IO server so that
// dashboards can pick it up without reading the console report.
package publish

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/vk/mentionrank/internal/ctxlog"
	"github.com/vk/mentionrank/internal/rank"
)

// Defaults applied by NewPublisher.
const (
	DefaultEvent     = "ranking"
	DefaultNamespace = "/"
	DefaultTimeout   = 15 * time.Second
	// linger gives the transport time to flush the emitted packet when no
	// acknowledgement event is configured.
	linger = 500 * time.Millisecond
)

// ErrNoURL is returned when a publisher is created without a target URL.
var ErrNoURL = errors.New("publish: url is required")

// Config describes where and how to publish.
type Config struct {
	URL                string
	Namespace          string
	Event              string
	AckEvent           string // optional; when set, wait for this event after emitting
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// Publisher emits rankings to a Socket.IO endpoint. Each Publish call opens
// and closes its own connection.
type Publisher struct {
	cfg    Config
	target *url.URL
}

// NewPublisher validates cfg, applies defaults and returns a publisher.
func NewPublisher(cfg Config) (*Publisher, error) {
	if cfg.URL == "" {
		return nil, ErrNoURL
	}
	target, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse publish URL: %w", err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("publish URL %q must be absolute", cfg.URL)
	}
	if cfg.Namespace == "" {
		cfg.Namespace = DefaultNamespace
	}
	if cfg.Event == "" {
		cfg.Event = DefaultEvent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Publisher{cfg: cfg, target: target}, nil
}

// Config returns the effective configuration.
func (p *Publisher) Config() Config {
	return p.cfg
}

// Payload converts a result into the document emitted to the server.
func Payload(res *rank.Result, top int) map[string]any {
	entries := res.Top(top)
	ranking := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		ranking = append(ranking, map[string]any{
			"handle": e.Handle,
			"score":  e.Score,
		})
	}
	return map[string]any{
		"rounds":    res.Rounds,
		"converged": res.Converged,
		"ranking":   ranking,
	}
}

// Publish connects, emits the ranking and disconnects.
func (p *Publisher) Publish(ctx context.Context, res *rank.Result, top int) error {
	logger := ctxlog.FromContext(ctx).With("url", p.cfg.URL, "namespace", p.cfg.Namespace)

	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	io, err := p.connect(ctx)
	if err != nil {
		return err
	}
	defer func() {
		logger.Debug("Disconnecting socket.io client.", "sid", io.Id())
		io.Disconnect()
	}()

	acked := make(chan struct{}, 1)
	if p.cfg.AckEvent != "" {
		io.Once(types.EventName(p.cfg.AckEvent), func(...any) {
			logger.Debug("EVENT HANDLER: acknowledgement received", "event", p.cfg.AckEvent)
			acked <- struct{}{}
		})
	}

	payload := Payload(res, top)
	logger.Info("📡 Publishing ranking", "event", p.cfg.Event, "entries", len(payload["ranking"].([]map[string]any)))
	io.Emit(p.cfg.Event, payload)

	if p.cfg.AckEvent == "" {
		select {
		case <-time.After(linger):
		case <-ctx.Done():
		}
		return nil
	}

	select {
	case <-acked:
		logger.Info("Ranking acknowledged by server", "event", p.cfg.AckEvent)
		return nil
	case <-ctx.Done():
		return fmt.Errorf("timed out after %v waiting for event '%s'", p.cfg.Timeout, p.cfg.AckEvent)
	}
}

// connect opens a WebSocket-only socket.io connection and waits for the
// server to accept it.
func (p *Publisher) connect(ctx context.Context) (*socket.Socket, error) {
	logger := ctxlog.FromContext(ctx)

	opts := socket.DefaultOptions()
	opts.SetPath(p.target.Path)
	if p.cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", p.target.Scheme, p.target.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(p.cfg.Namespace, opts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Debug("Connected to socket.io server", "sid", io.Id())
		select {
		case connectChan <- nil:
		default:
		}
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		select {
		case connectChan <- err:
		default:
		}
	})

	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return io, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("gave up waiting for socket.io connection: %w", ctx.Err())
	}
}
