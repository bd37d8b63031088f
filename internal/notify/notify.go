// Package notify fans user-facing notices out to whoever else needs them:
// the application log, websocket subscribers and the activity log.
package notify

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/c14220110/poliklinik-admin/pkg/listctl"
	"github.com/c14220110/poliklinik-admin/pkg/storage/mariadb"
)

// Notice is one message shown to the admin.
type Notice struct {
	Entity string       `json:"entity"`
	Kind   listctl.Kind `json:"kind"`
	Title  string       `json:"title"`
	Text   string       `json:"text"`
	At     time.Time    `json:"at"`
}

// Observer receives a copy of every notice after it has been shown.
type Observer interface {
	Observe(ctx context.Context, n Notice)
}

type ObserverFunc func(ctx context.Context, n Notice)

func (f ObserverFunc) Observe(ctx context.Context, n Notice) { f(ctx, n) }

type tee struct {
	primary   listctl.Notifier
	observers []Observer
	now       func() time.Time
}

// Tee returns a notifier that lets primary answer confirmations and show
// notices, then passes each notice to the observers in order.
func Tee(primary listctl.Notifier, observers ...Observer) listctl.Notifier {
	return &tee{primary: primary, observers: observers, now: time.Now}
}

func (t *tee) Confirm(ctx context.Context, title, text string) bool {
	return t.primary.Confirm(ctx, title, text)
}

func (t *tee) Notify(ctx context.Context, kind listctl.Kind, title, text string) {
	t.primary.Notify(ctx, kind, title, text)
	n := Notice{
		Entity: listctl.EntityFromContext(ctx),
		Kind:   kind,
		Title:  title,
		Text:   text,
		At:     t.now(),
	}
	for _, o := range t.observers {
		o.Observe(ctx, n)
	}
}

type scopeKey struct{}

// WithNotifier attaches a notifier to ctx for the duration of one request.
func WithNotifier(ctx context.Context, n listctl.Notifier) context.Context {
	return context.WithValue(ctx, scopeKey{}, n)
}

// Scoped routes each call to the notifier attached by WithNotifier, or to
// Fallback when there is none. Long-lived controllers shared between
// requests use it to answer each caller separately.
type Scoped struct {
	Fallback listctl.Notifier
}

func (s Scoped) target(ctx context.Context) listctl.Notifier {
	if n, ok := ctx.Value(scopeKey{}).(listctl.Notifier); ok && n != nil {
		return n
	}
	if s.Fallback != nil {
		return s.Fallback
	}
	return NewCollector(false)
}

func (s Scoped) Confirm(ctx context.Context, title, text string) bool {
	return s.target(ctx).Confirm(ctx, title, text)
}

func (s Scoped) Notify(ctx context.Context, kind listctl.Kind, title, text string) {
	s.target(ctx).Notify(ctx, kind, title, text)
}

// Collector answers confirmations with a fixed decision and keeps the
// notices it was given. It is used once per HTTP request.
type Collector struct {
	confirmed bool

	mu      sync.Mutex
	notices []Notice
}

func NewCollector(confirmed bool) *Collector {
	return &Collector{confirmed: confirmed, notices: []Notice{}}
}

func (c *Collector) Confirm(context.Context, string, string) bool {
	return c.confirmed
}

func (c *Collector) Notify(ctx context.Context, kind listctl.Kind, title, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notices = append(c.notices, Notice{
		Entity: listctl.EntityFromContext(ctx),
		Kind:   kind,
		Title:  title,
		Text:   text,
		At:     time.Now(),
	})
}

// Notices returns what has been collected so far.
func (c *Collector) Notices() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notice, len(c.notices))
	copy(out, c.notices)
	return out
}

// Log writes every notice to logger; errors at warn level.
func Log(logger zerolog.Logger) Observer {
	return ObserverFunc(func(_ context.Context, n Notice) {
		evt := logger.Info()
		if n.Kind == listctl.KindError {
			evt = logger.Warn()
		}
		evt.Str("entity", n.Entity).Str("kind", string(n.Kind)).Str("title", n.Title).Msg(n.Text)
	})
}

// Publisher is implemented by ws.Hub.
type Publisher interface {
	Publish(topic string, payload []byte) bool
}

// Broadcast publishes every notice as JSON under its entity topic.
func Broadcast(p Publisher, logger zerolog.Logger) Observer {
	return ObserverFunc(func(_ context.Context, n Notice) {
		payload, err := json.Marshal(n)
		if err != nil {
			logger.Error().Err(err).Msg("encode notice")
			return
		}
		p.Publish(n.Entity, payload)
	})
}

// ActivityRecorder is implemented by mariadb.ActivityStore.
type ActivityRecorder interface {
	Record(ctx context.Context, a mariadb.Activity) error
}

// Record persists every notice. Failures are logged and never reach the
// user.
func Record(store ActivityRecorder, logger zerolog.Logger) Observer {
	return ObserverFunc(func(ctx context.Context, n Notice) {
		err := store.Record(context.WithoutCancel(ctx), mariadb.Activity{
			Entity:    n.Entity,
			Kind:      string(n.Kind),
			Title:     n.Title,
			Text:      n.Text,
			CreatedAt: n.At,
		})
		if err != nil {
			logger.Error().Err(err).Str("entity", n.Entity).Msg("record activity")
		}
	})
}
