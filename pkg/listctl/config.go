package listctl

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Remote is the REST collection a Controller mirrors.
type Remote[T any] interface {
	List(ctx context.Context) ([]T, error)
	Update(ctx context.Context, id int64, payload any) error
	Delete(ctx context.Context, id int64) error
}

// CountFunc fetches a count that the service computes independently of the
// collection.
type CountFunc func(ctx context.Context) (int, error)

// Counter is a named count shown next to the collection. A counter without
// Fetch is derived from the collection length after every refresh and
// delete. TrackDeletes decrements a fetched counter by one after each
// successful delete.
type Counter struct {
	Name         string
	Fetch        CountFunc
	TrackDeletes bool
}

// Messages holds the user-facing texts of one entity type. Empty fields are
// filled by defaults derived from the entity noun.
type Messages struct {
	ErrorTitle         string
	SuccessTitle       string
	LoadFailed         string
	SaveSucceeded      string
	SaveFailed         string
	DeleteConfirmTitle string
	DeleteConfirmText  string
	DeleteSuccessTitle string
	DeleteSucceeded    string
	DeleteFailed       string
}

func (m Messages) withDefaults(noun string) Messages {
	def := func(v *string, fallback string) {
		if *v == "" {
			*v = fallback
		}
	}
	def(&m.ErrorTitle, "Error")
	def(&m.SuccessTitle, "Success")
	def(&m.LoadFailed, fmt.Sprintf("Unable to load %s data", noun))
	def(&m.SaveSucceeded, "Changes saved")
	def(&m.SaveFailed, "Unable to save changes")
	def(&m.DeleteConfirmTitle, "Are you sure?")
	def(&m.DeleteConfirmText, fmt.Sprintf("Do you want to delete this %s?", noun))
	def(&m.DeleteSuccessTitle, "Deleted")
	def(&m.DeleteSucceeded, fmt.Sprintf("The %s has been deleted", noun))
	def(&m.DeleteFailed, "Unable to delete")
	return m
}

// Config describes one entity type. Entity, ID and SearchText are required.
// SetField, Validate and Payload enable editing and must be set together.
type Config[T any] struct {
	// Entity is the collection name, e.g. "doctors".
	Entity string
	// Noun names one entity in messages, e.g. "doctor". Defaults to Entity.
	Noun string

	ID         func(T) int64
	SearchText func(T) []string

	SetField func(draft *T, field, value string) error
	Validate func(draft T) error
	Payload  func(draft T) any

	Counters []Counter
	Messages Messages
}

func (c Config[T]) check() error {
	var errs []error
	if strings.TrimSpace(c.Entity) == "" {
		errs = append(errs, errors.New("entity name is required"))
	}
	if c.ID == nil {
		errs = append(errs, errors.New("ID accessor is required"))
	}
	if c.SearchText == nil {
		errs = append(errs, errors.New("SearchText accessor is required"))
	}
	hooks := 0
	for _, set := range []bool{c.SetField != nil, c.Validate != nil, c.Payload != nil} {
		if set {
			hooks++
		}
	}
	if hooks != 0 && hooks != 3 {
		errs = append(errs, errors.New("SetField, Validate and Payload must be set together"))
	}
	seen := make(map[string]bool, len(c.Counters))
	for _, counter := range c.Counters {
		if counter.Name == "" {
			errs = append(errs, errors.New("counter name is required"))
			continue
		}
		if seen[counter.Name] {
			errs = append(errs, fmt.Errorf("duplicate counter %q", counter.Name))
		}
		seen[counter.Name] = true
	}
	if len(errs) > 0 {
		return fmt.Errorf("listctl: invalid config for %q: %w", c.Entity, errors.Join(errs...))
	}
	return nil
}

func (c Config[T]) editable() bool {
	return c.SetField != nil
}
