package listctl

import "context"

// Kind classifies a user-facing notice.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notifier shows confirmations and notices to the user. Confirm blocks until
// the user has decided.
type Notifier interface {
	Confirm(ctx context.Context, title, text string) bool
	Notify(ctx context.Context, kind Kind, title, text string)
}

type entityKey struct{}

// WithEntity tags ctx with the collection name an operation works on, so
// notifiers can tell which page a notice belongs to.
func WithEntity(ctx context.Context, entity string) context.Context {
	return context.WithValue(ctx, entityKey{}, entity)
}

// EntityFromContext returns the collection name set by WithEntity.
func EntityFromContext(ctx context.Context) string {
	entity, _ := ctx.Value(entityKey{}).(string)
	return entity
}

// nopNotifier declines every confirmation and drops notices.
type nopNotifier struct{}

func (nopNotifier) Confirm(context.Context, string, string) bool { return false }

func (nopNotifier) Notify(context.Context, Kind, string, string) {}
