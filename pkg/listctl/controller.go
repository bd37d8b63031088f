// Package listctl keeps a local copy of one remote REST collection and
// mediates every read, search, edit and delete against it.
//
// A Controller is safe for concurrent use. Its lock is never held across a
// network call, so reads and searches stay available while a fetch or a
// mutation is outstanding. In-flight requests are never cancelled or
// sequenced: a slow refresh that completes after a newer one still replaces
// the collection with what it received.
package listctl

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/mohae/deepcopy"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Option customizes a Controller.
type Option func(*options)

type options struct {
	logger zerolog.Logger
}

// WithLogger sets the logger used for remote failures and state changes.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Controller owns the local view of one entity collection.
type Controller[T any] struct {
	cfg      Config[T]
	remote   Remote[T]
	notifier Notifier
	logger   zerolog.Logger

	mu       sync.RWMutex
	state    State
	items    []T
	counts   map[string]int
	draft    *T
	inflight int
}

// New builds a Controller in the Idle state. A nil notifier declines every
// confirmation and drops notices.
func New[T any](cfg Config[T], remote Remote[T], notifier Notifier, opts ...Option) (*Controller[T], error) {
	if err := cfg.check(); err != nil {
		return nil, err
	}
	if remote == nil {
		return nil, fmt.Errorf("listctl: remote is required for %q", cfg.Entity)
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if cfg.Noun == "" {
		cfg.Noun = cfg.Entity
	}
	cfg.Messages = cfg.Messages.withDefaults(cfg.Noun)

	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	counts := make(map[string]int, len(cfg.Counters))
	for _, counter := range cfg.Counters {
		counts[counter.Name] = 0
	}

	return &Controller[T]{
		cfg:      cfg,
		remote:   remote,
		notifier: notifier,
		logger:   o.logger.With().Str("entity", cfg.Entity).Logger(),
		state:    StateIdle,
		items:    []T{},
		counts:   counts,
	}, nil
}

// Entity returns the collection name.
func (c *Controller[T]) Entity() string {
	return c.cfg.Entity
}

// Editable reports whether the entity type supports drafts.
func (c *Controller[T]) Editable() bool {
	return c.cfg.editable()
}

// Mount performs the initial refresh. It does nothing once the controller
// has left the Idle state.
func (c *Controller[T]) Mount(ctx context.Context) error {
	c.mu.RLock()
	idle := c.state == StateIdle
	c.mu.RUnlock()
	if !idle {
		return nil
	}
	return c.Refresh(ctx)
}

// Refresh fetches the collection and every remote counter concurrently and
// replaces the local state only when all of them succeed. On failure the
// previous collection and counts are kept and an error notice is shown.
func (c *Controller[T]) Refresh(ctx context.Context) error {
	ctx = WithEntity(ctx, c.cfg.Entity)

	c.mu.Lock()
	c.inflight++
	c.state = StateLoading
	c.mu.Unlock()

	items, counts, err := c.fetch(ctx)

	c.mu.Lock()
	c.inflight--
	if err != nil {
		c.state = c.settled(StateError)
		c.mu.Unlock()

		c.logger.Error().Err(err).Msg("refresh failed")
		c.notifier.Notify(ctx, KindError, c.cfg.Messages.ErrorTitle, c.cfg.Messages.LoadFailed)
		return fmt.Errorf("refresh %s: %w", c.cfg.Entity, err)
	}
	c.items = items
	c.counts = counts
	c.state = c.settled(StateReady)
	c.mu.Unlock()

	c.logger.Debug().Int("items", len(items)).Msg("collection refreshed")
	return nil
}

// settled picks the state to enter once a refresh completes. Callers hold mu.
func (c *Controller[T]) settled(outcome State) State {
	switch {
	case c.inflight > 0:
		return StateLoading
	case c.draft != nil:
		return StateEditing
	default:
		return outcome
	}
}

func (c *Controller[T]) fetch(ctx context.Context) ([]T, map[string]int, error) {
	g, gctx := errgroup.WithContext(ctx)

	var items []T
	g.Go(func() error {
		list, err := c.remote.List(gctx)
		if err != nil {
			return fmt.Errorf("list: %w", err)
		}
		items = list
		return nil
	})

	fetched := make([]int, len(c.cfg.Counters))
	for i, counter := range c.cfg.Counters {
		if counter.Fetch == nil {
			continue
		}
		i, counter := i, counter
		g.Go(func() error {
			n, err := counter.Fetch(gctx)
			if err != nil {
				return fmt.Errorf("count %s: %w", counter.Name, err)
			}
			fetched[i] = n
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	if items == nil {
		items = []T{}
	}
	c.warnDuplicates(items)

	counts := make(map[string]int, len(c.cfg.Counters))
	for i, counter := range c.cfg.Counters {
		if counter.Fetch == nil {
			counts[counter.Name] = len(items)
			continue
		}
		counts[counter.Name] = fetched[i]
	}
	return items, counts, nil
}

func (c *Controller[T]) warnDuplicates(items []T) {
	seen := make(map[int64]struct{}, len(items))
	for _, item := range items {
		id := c.cfg.ID(item)
		if _, dup := seen[id]; dup {
			c.logger.Warn().Int64("id", id).Msg("duplicate identifier in collection")
			return
		}
		seen[id] = struct{}{}
	}
}

// Search returns the entities whose designated text fields contain term,
// ignoring case, in collection order.
func (c *Controller[T]) Search(term string) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Filter(c.items, term, c.cfg.SearchText)
}

// BeginEdit opens a draft holding a deep copy of entity. An open draft is
// replaced.
func (c *Controller[T]) BeginEdit(entity T) error {
	if !c.cfg.editable() {
		return ErrReadOnly
	}
	draft, err := copyEntity(entity)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateIdle {
		return ErrInvalidState
	}
	c.draft = &draft
	if c.state != StateLoading {
		c.state = StateEditing
	}
	return nil
}

// BeginEditByID opens a draft for the entity with the given identifier.
func (c *Controller[T]) BeginEditByID(id int64) error {
	entity, ok := c.find(id)
	if !ok {
		return fmt.Errorf("%w: %s %d", ErrNotFound, c.cfg.Noun, id)
	}
	return c.BeginEdit(entity)
}

func (c *Controller[T]) find(id int64) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if c.cfg.ID(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// DraftID returns the identifier of the entity being edited.
func (c *Controller[T]) DraftID() (int64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.draft == nil {
		return 0, false
	}
	return c.cfg.ID(*c.draft), true
}

// openDraft checks that a draft is open and, when want is set, that it
// belongs to that entity. Callers hold mu.
func (c *Controller[T]) openDraft(want *int64) error {
	if c.draft == nil {
		return ErrNotEditing
	}
	if want != nil {
		if id := c.cfg.ID(*c.draft); id != *want {
			return fmt.Errorf("%w: %s %d is open, not %d", ErrDraftMismatch, c.cfg.Noun, id, *want)
		}
	}
	return nil
}

// UpdateDraftField changes one field of the open draft. Values are not
// validated until CommitEdit.
func (c *Controller[T]) UpdateDraftField(field, value string) error {
	return c.updateDraftField(nil, field, value)
}

// UpdateDraftFieldByID is UpdateDraftField for callers that know which
// entity they opened. It fails with ErrDraftMismatch when the open draft
// belongs to another entity.
func (c *Controller[T]) UpdateDraftFieldByID(id int64, field, value string) error {
	return c.updateDraftField(&id, field, value)
}

func (c *Controller[T]) updateDraftField(want *int64, field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.openDraft(want); err != nil {
		return err
	}
	return c.cfg.SetField(c.draft, field, value)
}

// CancelEdit discards the open draft.
func (c *Controller[T]) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeDraft()
}

// CancelEditByID discards the draft of entity id. Cancelling with no draft
// open is a no-op; a draft for another entity is left alone.
func (c *Controller[T]) CancelEditByID(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.draft == nil {
		return nil
	}
	if err := c.openDraft(&id); err != nil {
		return err
	}
	c.closeDraft()
	return nil
}

// closeDraft leaves edit mode. Callers hold mu.
func (c *Controller[T]) closeDraft() {
	c.draft = nil
	if c.state == StateEditing {
		c.state = StateReady
	}
}

// CommitEdit validates the draft and sends it to the remote service. On
// success the entity with the same identifier is replaced by the draft and
// edit mode closes. On any failure the draft stays open and the collection
// is untouched.
func (c *Controller[T]) CommitEdit(ctx context.Context) error {
	return c.commit(ctx, nil)
}

// CommitEditByID commits the open draft only if it belongs to entity id,
// otherwise it returns ErrDraftMismatch without contacting the service.
func (c *Controller[T]) CommitEditByID(ctx context.Context, id int64) error {
	return c.commit(ctx, &id)
}

func (c *Controller[T]) commit(ctx context.Context, want *int64) error {
	ctx = WithEntity(ctx, c.cfg.Entity)
	msgs := c.cfg.Messages

	c.mu.RLock()
	open := c.draft
	err := c.openDraft(want)
	var draft T
	if err == nil {
		draft, err = copyEntity(*open)
	}
	c.mu.RUnlock()
	if err != nil {
		return err
	}

	if err := c.cfg.Validate(draft); err != nil {
		verr := asValidationError(err)
		c.notifier.Notify(ctx, KindError, msgs.ErrorTitle, verr.Message)
		return verr
	}

	id := c.cfg.ID(draft)
	if err := c.remote.Update(ctx, id, c.cfg.Payload(draft)); err != nil {
		c.logger.Warn().Err(err).Int64("id", id).Msg("update rejected")
		c.notifier.Notify(ctx, KindError, msgs.ErrorTitle, userMessage(err, msgs.SaveFailed))
		return fmt.Errorf("update %s %d: %w", c.cfg.Noun, id, err)
	}

	c.mu.Lock()
	for i := range c.items {
		if c.cfg.ID(c.items[i]) == id {
			c.items[i] = draft
		}
	}
	if c.draft == open {
		c.closeDraft()
	}
	c.mu.Unlock()

	c.logger.Info().Int64("id", id).Msg("entity updated")
	c.notifier.Notify(ctx, KindSuccess, msgs.SuccessTitle, msgs.SaveSucceeded)
	return nil
}

// DeleteEntity asks the user for confirmation and deletes the entity
// remotely. It reports whether the entity was deleted; a declined
// confirmation returns false and a nil error. Derived counters follow the
// collection length. Fetched counters with TrackDeletes are decremented by
// one, so they drop even when id was not in the local collection.
func (c *Controller[T]) DeleteEntity(ctx context.Context, id int64) (bool, error) {
	ctx = WithEntity(ctx, c.cfg.Entity)
	msgs := c.cfg.Messages

	if c.State() == StateLoading {
		return false, ErrBusy
	}
	if !c.notifier.Confirm(ctx, msgs.DeleteConfirmTitle, msgs.DeleteConfirmText) {
		return false, nil
	}

	if err := c.remote.Delete(ctx, id); err != nil {
		c.logger.Warn().Err(err).Int64("id", id).Msg("delete rejected")
		c.notifier.Notify(ctx, KindError, msgs.ErrorTitle, userMessage(err, msgs.DeleteFailed))
		return false, fmt.Errorf("delete %s %d: %w", c.cfg.Noun, id, err)
	}

	c.mu.Lock()
	c.items = slices.DeleteFunc(c.items, func(item T) bool {
		return c.cfg.ID(item) == id
	})
	for _, counter := range c.cfg.Counters {
		switch {
		case counter.Fetch == nil:
			c.counts[counter.Name] = len(c.items)
		case counter.TrackDeletes:
			c.counts[counter.Name]--
		}
	}
	c.mu.Unlock()

	c.logger.Info().Int64("id", id).Msg("entity deleted")
	c.notifier.Notify(ctx, KindSuccess, msgs.DeleteSuccessTitle, msgs.DeleteSucceeded)
	return true, nil
}

// State returns the current lifecycle state.
func (c *Controller[T]) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Loading reports whether a refresh is in flight.
func (c *Controller[T]) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.inflight > 0
}

// Items returns a copy of the collection.
func (c *Controller[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

// Count returns the named counter.
func (c *Controller[T]) Count(name string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.counts[name]
}

// Counts returns a copy of every counter.
func (c *Controller[T]) Counts() map[string]int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneCounts(c.counts)
}

// Draft returns a copy of the open draft.
func (c *Controller[T]) Draft() (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.draft == nil {
		var zero T
		return zero, false
	}
	return c.draftCopy(), true
}

// draftCopy deep-copies the open draft. Callers hold mu and check draft.
func (c *Controller[T]) draftCopy() T {
	draft, err := copyEntity(*c.draft)
	if err != nil {
		return *c.draft
	}
	return draft
}

// Snapshot is a consistent view of a Controller for rendering one page.
type Snapshot[T any] struct {
	Entity  string         `json:"entity"`
	State   State          `json:"state"`
	Loading bool           `json:"loading"`
	Search  string         `json:"search"`
	Total   int            `json:"total"`
	Items   []T            `json:"items"`
	Counts  map[string]int `json:"counts"`
	Draft   *T             `json:"draft"`
}

// Snapshot captures the controller state with the collection filtered by term.
func (c *Controller[T]) Snapshot(term string) Snapshot[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := Snapshot[T]{
		Entity:  c.cfg.Entity,
		State:   c.state,
		Loading: c.inflight > 0,
		Search:  term,
		Total:   len(c.items),
		Items:   Filter(c.items, term, c.cfg.SearchText),
		Counts:  cloneCounts(c.counts),
	}
	if c.draft != nil {
		draft := c.draftCopy()
		snap.Draft = &draft
	}
	return snap
}

func cloneCounts(counts map[string]int) map[string]int {
	out := make(map[string]int, len(counts))
	for k, v := range counts {
		out[k] = v
	}
	return out
}

func copyEntity[T any](v T) (T, error) {
	copied, ok := deepcopy.Copy(v).(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("listctl: cannot copy %T", v)
	}
	return copied, nil
}
