package listctl

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c14220110/poliklinik-admin/pkg/utils"
)

type person struct {
	ID         int64
	Name       string
	Email      string
	Phone      string
	Department string
	Tags       []string
}

type personUpdate struct {
	Name  string
	Email string
	Phone string
}

func ids(items []person) []int64 {
	out := make([]int64, 0, len(items))
	for _, p := range items {
		out = append(out, p.ID)
	}
	return out
}

type fakeRemote struct {
	mu        sync.Mutex
	items     []person
	listErr   error
	updateErr error
	deleteErr error
	gate      chan struct{}

	listCalls int
	updates   map[int64]any
	deletes   []int64
}

func newFakeRemote(items ...person) *fakeRemote {
	return &fakeRemote{items: items, updates: map[int64]any{}}
}

func (f *fakeRemote) List(ctx context.Context) ([]person, error) {
	f.mu.Lock()
	gate := f.gate
	f.listCalls++
	f.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]person, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeRemote) Update(_ context.Context, id int64, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates[id] = payload
	return nil
}

func (f *fakeRemote) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletes = append(f.deletes, id)
	return nil
}

type notice struct {
	Entity string
	Kind   Kind
	Title  string
	Text   string
}

type recordingNotifier struct {
	mu      sync.Mutex
	confirm bool
	asked   int
	notices []notice
}

func (n *recordingNotifier) Confirm(context.Context, string, string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.asked++
	return n.confirm
}

func (n *recordingNotifier) Notify(ctx context.Context, kind Kind, title, text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice{Entity: EntityFromContext(ctx), Kind: kind, Title: title, Text: text})
}

func (n *recordingNotifier) last() notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.notices) == 0 {
		return notice{}
	}
	return n.notices[len(n.notices)-1]
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.notices)
}

type userError struct{ msg string }

func (e userError) Error() string       { return "remote: " + e.msg }
func (e userError) UserMessage() string { return e.msg }

func personConfig(counters ...Counter) Config[person] {
	return Config[person]{
		Entity:     "people",
		Noun:       "person",
		ID:         func(p person) int64 { return p.ID },
		SearchText: func(p person) []string { return []string{p.Name} },
		SetField: func(p *person, field, value string) error {
			switch field {
			case "name":
				p.Name = value
			case "email":
				p.Email = value
			case "phone":
				p.Phone = value
			case "department":
				p.Department = value
			case "tag":
				p.Tags = append(p.Tags, value)
			default:
				return errors.New("unknown field " + field)
			}
			return nil
		},
		Validate: func(p person) error {
			return utils.ValidateContact(utils.ContactFields{
				Name:          p.Name,
				Email:         p.Email,
				ContactNumber: p.Phone,
				Department:    p.Department,
			})
		},
		Payload: func(p person) any {
			return personUpdate{
				Name:  strings.TrimSpace(p.Name),
				Email: strings.TrimSpace(p.Email),
				Phone: strings.TrimSpace(p.Phone),
			}
		},
		Counters: counters,
	}
}

func samplePeople() []person {
	return []person{
		{ID: 1, Name: "Anan Srisuk", Email: "anan@hospital.com", Phone: "0811111111", Department: "Cardiology"},
		{ID: 2, Name: "Malee Wong", Email: "malee@hospital.com", Phone: "0822222222", Department: "Pediatrics"},
		{ID: 3, Name: "Ananda Chai", Email: "ananda@hospital.com", Phone: "0833333333", Department: "Radiology"},
	}
}

func newTestController(t *testing.T, remote *fakeRemote, counters ...Counter) (*Controller[person], *recordingNotifier) {
	t.Helper()
	n := &recordingNotifier{confirm: true}
	c, err := New(personConfig(counters...), remote, n)
	require.NoError(t, err)
	return c, n
}

func TestNew(t *testing.T) {
	t.Run("Should start idle with zeroed counters", func(t *testing.T) {
		c, _ := newTestController(t, newFakeRemote(), Counter{Name: "total"})
		assert.Equal(t, StateIdle, c.State())
		assert.Empty(t, c.Items())
		assert.Equal(t, map[string]int{"total": 0}, c.Counts())
		assert.True(t, c.Editable())
		assert.Equal(t, "people", c.Entity())
	})

	t.Run("Should reject incomplete configurations", func(t *testing.T) {
		cfg := personConfig(Counter{Name: "n"}, Counter{Name: "n"})
		cfg.Entity = ""
		cfg.Payload = nil
		_, err := New(cfg, newFakeRemote(), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "entity name is required")
		assert.Contains(t, err.Error(), "must be set together")
		assert.Contains(t, err.Error(), `duplicate counter "n"`)
	})

	t.Run("Should require a remote", func(t *testing.T) {
		_, err := New[person](personConfig(), nil, nil)
		assert.Error(t, err)
	})
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("Should replace the collection and derive counters", func(t *testing.T) {
		remote := newFakeRemote(samplePeople()...)
		c, _ := newTestController(t, remote, Counter{Name: "total"})

		require.NoError(t, c.Refresh(ctx))
		assert.Equal(t, StateReady, c.State())
		assert.False(t, c.Loading())
		assert.Equal(t, []int64{1, 2, 3}, ids(c.Items()))
		assert.Equal(t, 3, c.Count("total"))
	})

	t.Run("Should use fetched counters as reported", func(t *testing.T) {
		remote := newFakeRemote(samplePeople()...)
		c, _ := newTestController(t, remote, Counter{
			Name:  "remote",
			Fetch: func(context.Context) (int, error) { return 42, nil },
		})

		require.NoError(t, c.Refresh(ctx))
		assert.Equal(t, 42, c.Count("remote"))
	})

	t.Run("Should be idempotent when the service is unchanged", func(t *testing.T) {
		remote := newFakeRemote(samplePeople()...)
		c, _ := newTestController(t, remote, Counter{Name: "total"})

		require.NoError(t, c.Refresh(ctx))
		first := c.Snapshot("")
		require.NoError(t, c.Refresh(ctx))
		second := c.Snapshot("")
		assert.Equal(t, first, second)
	})

	t.Run("Should keep previous state when the list fails", func(t *testing.T) {
		remote := newFakeRemote(samplePeople()...)
		c, n := newTestController(t, remote, Counter{Name: "total"})
		require.NoError(t, c.Refresh(ctx))

		remote.mu.Lock()
		remote.items = remote.items[:1]
		remote.listErr = errors.New("connection refused")
		remote.mu.Unlock()

		err := c.Refresh(ctx)
		require.Error(t, err)
		assert.Equal(t, StateError, c.State())
		assert.Equal(t, []int64{1, 2, 3}, ids(c.Items()))
		assert.Equal(t, 3, c.Count("total"))
		assert.Equal(t, notice{Entity: "people", Kind: KindError, Title: "Error", Text: "Unable to load person data"}, n.last())
	})

	t.Run("Should keep previous state when a counter fails", func(t *testing.T) {
		remote := newFakeRemote(samplePeople()...)
		fail := false
		c, _ := newTestController(t, remote, Counter{
			Name: "remote",
			Fetch: func(context.Context) (int, error) {
				if fail {
					return 0, errors.New("timeout")
				}
				return 7, nil
			},
		})
		require.NoError(t, c.Refresh(ctx))

		remote.mu.Lock()
		remote.items = nil
		remote.mu.Unlock()
		fail = true

		require.Error(t, c.Refresh(ctx))
		assert.Equal(t, []int64{1, 2, 3}, ids(c.Items()))
		assert.Equal(t, 7, c.Count("remote"))
	})

	t.Run("Should recover from the error state", func(t *testing.T) {
		remote := newFakeRemote(samplePeople()...)
		remote.listErr = errors.New("down")
		c, _ := newTestController(t, remote)

		require.Error(t, c.Refresh(ctx))
		assert.Equal(t, StateError, c.State())

		remote.mu.Lock()
		remote.listErr = nil
		remote.mu.Unlock()
		require.NoError(t, c.Refresh(ctx))
		assert.Equal(t, StateReady, c.State())
	})

	t.Run("Should keep an open draft across a refresh", func(t *testing.T) {
		remote := newFakeRemote(samplePeople()...)
		c, _ := newTestController(t, remote)
		require.NoError(t, c.Refresh(ctx))
		require.NoError(t, c.BeginEditByID(2))
		require.NoError(t, c.UpdateDraftField("name", "Malee W."))

		require.NoError(t, c.Refresh(ctx))
		assert.Equal(t, StateEditing, c.State())
		draft, ok := c.Draft()
		require.True(t, ok)
		assert.Equal(t, "Malee W.", draft.Name)
	})
}

func TestMount(t *testing.T) {
	remote := newFakeRemote(samplePeople()...)
	c, _ := newTestController(t, remote)

	require.NoError(t, c.Mount(context.Background()))
	require.NoError(t, c.Mount(context.Background()))
	assert.Equal(t, 1, remote.listCalls)
	assert.Equal(t, StateReady, c.State())
}

func TestLoadingWhileRefreshInFlight(t *testing.T) {
	remote := newFakeRemote(samplePeople()...)
	remote.gate = make(chan struct{})
	c, n := newTestController(t, remote, Counter{Name: "total"})

	done := make(chan error, 1)
	go func() { done <- c.Refresh(context.Background()) }()

	require.Eventually(t, c.Loading, time.Second, time.Millisecond)
	assert.Equal(t, StateLoading, c.State())
	assert.Empty(t, c.Search(""))

	deleted, err := c.DeleteEntity(context.Background(), 1)
	assert.ErrorIs(t, err, ErrBusy)
	assert.False(t, deleted)
	assert.Zero(t, n.asked)

	close(remote.gate)
	require.NoError(t, <-done)
	assert.False(t, c.Loading())
	assert.Equal(t, 3, c.Count("total"))
}

func TestSearch(t *testing.T) {
	remote := newFakeRemote(samplePeople()...)
	c, _ := newTestController(t, remote)
	require.NoError(t, c.Refresh(context.Background()))

	assert.Equal(t, []int64{1, 3}, ids(c.Search("ANAN")))
	assert.Equal(t, []int64{1, 2, 3}, ids(c.Search("")))
	assert.Empty(t, c.Search("nobody"))

	snap := c.Snapshot("malee")
	assert.Equal(t, 3, snap.Total)
	assert.Equal(t, []int64{2}, ids(snap.Items))
	assert.Equal(t, "malee", snap.Search)
}

func TestBeginEdit(t *testing.T) {
	ctx := context.Background()

	t.Run("Should refuse before the first load", func(t *testing.T) {
		c, _ := newTestController(t, newFakeRemote(samplePeople()...))
		assert.ErrorIs(t, c.BeginEdit(samplePeople()[0]), ErrInvalidState)
	})

	t.Run("Should report unknown identifiers", func(t *testing.T) {
		c, _ := newTestController(t, newFakeRemote(samplePeople()...))
		require.NoError(t, c.Refresh(ctx))
		assert.ErrorIs(t, c.BeginEditByID(99), ErrNotFound)
	})

	t.Run("Should isolate the draft from the collection", func(t *testing.T) {
		people := samplePeople()
		people[0].Tags = []string{"senior"}
		c, _ := newTestController(t, newFakeRemote(people...))
		require.NoError(t, c.Refresh(ctx))

		require.NoError(t, c.BeginEditByID(1))
		assert.Equal(t, StateEditing, c.State())
		require.NoError(t, c.UpdateDraftField("name", "Changed"))
		require.NoError(t, c.UpdateDraftField("tag", "on-call"))

		item := c.Items()[0]
		assert.Equal(t, "Anan Srisuk", item.Name)
		assert.Equal(t, []string{"senior"}, item.Tags)

		draft, ok := c.Draft()
		require.True(t, ok)
		assert.Equal(t, "Changed", draft.Name)
		assert.Equal(t, []string{"senior", "on-call"}, draft.Tags)

		draft.Tags[0] = "mutated"
		again, _ := c.Draft()
		assert.Equal(t, "senior", again.Tags[0])
	})

	t.Run("Should discard the draft on cancel", func(t *testing.T) {
		c, _ := newTestController(t, newFakeRemote(samplePeople()...))
		require.NoError(t, c.Refresh(ctx))
		require.NoError(t, c.BeginEditByID(1))
		require.NoError(t, c.UpdateDraftField("name", "Changed"))

		c.CancelEdit()
		_, ok := c.Draft()
		assert.False(t, ok)
		assert.Equal(t, StateReady, c.State())
		assert.Equal(t, "Anan Srisuk", c.Items()[0].Name)
		assert.ErrorIs(t, c.UpdateDraftField("name", "x"), ErrNotEditing)
	})

	t.Run("Should refuse drafts for read-only entities", func(t *testing.T) {
		cfg := personConfig()
		cfg.SetField, cfg.Validate, cfg.Payload = nil, nil, nil
		c, err := New(cfg, newFakeRemote(samplePeople()...), nil)
		require.NoError(t, err)
		require.NoError(t, c.Refresh(ctx))
		assert.False(t, c.Editable())
		assert.ErrorIs(t, c.BeginEditByID(1), ErrReadOnly)
	})
}

func TestCommitEdit(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*Controller[person], *fakeRemote, *recordingNotifier) {
		remote := newFakeRemote(samplePeople()...)
		c, n := newTestController(t, remote)
		require.NoError(t, c.Refresh(ctx))
		require.NoError(t, c.BeginEditByID(2))
		return c, remote, n
	}

	t.Run("Should replace the entity and close the draft", func(t *testing.T) {
		c, remote, n := setup(t)
		require.NoError(t, c.UpdateDraftField("name", "  Malee Wongsa "))
		require.NoError(t, c.UpdateDraftField("phone", "0899999999"))

		require.NoError(t, c.CommitEdit(ctx))
		assert.Equal(t, StateReady, c.State())
		_, ok := c.Draft()
		assert.False(t, ok)

		items := c.Items()
		assert.Equal(t, []int64{1, 2, 3}, ids(items))
		assert.Equal(t, "  Malee Wongsa ", items[1].Name)
		assert.Equal(t, "0899999999", items[1].Phone)
		assert.Equal(t, personUpdate{Name: "Malee Wongsa", Email: "malee@hospital.com", Phone: "0899999999"}, remote.updates[2])
		assert.Equal(t, notice{Entity: "people", Kind: KindSuccess, Title: "Success", Text: "Changes saved"}, n.last())
	})

	cases := []struct {
		name   string
		fields map[string]string
		want   error
	}{
		{"Should reject an incomplete draft", map[string]string{"department": "  "}, utils.ErrIncomplete},
		{"Should reject a malformed email", map[string]string{"email": "a@b"}, utils.ErrInvalidEmail},
		{"Should reject a malformed phone", map[string]string{"phone": "081-234-5678"}, utils.ErrInvalidPhone},
		{"Should report completeness first", map[string]string{"name": "", "email": "bad", "phone": "1"}, utils.ErrIncomplete},
		{"Should report email before phone", map[string]string{"email": "bad", "phone": "1"}, utils.ErrInvalidEmail},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, remote, n := setup(t)
			before := c.Items()
			for field, value := range tc.fields {
				require.NoError(t, c.UpdateDraftField(field, value))
			}

			err := c.CommitEdit(ctx)
			require.ErrorIs(t, err, tc.want)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, utils.MessageOf(tc.want), verr.Message)

			assert.Empty(t, remote.updates)
			assert.Equal(t, before, c.Items())
			assert.Equal(t, StateEditing, c.State())
			assert.Equal(t, notice{Entity: "people", Kind: KindError, Title: "Error", Text: tc.want.Error()}, n.last())
		})
	}

	t.Run("Should keep collection and draft when the service rejects the update", func(t *testing.T) {
		c, remote, n := setup(t)
		remote.updateErr = userError{msg: "Email already used"}
		require.NoError(t, c.UpdateDraftField("email", "taken@hospital.com"))
		before := c.Items()

		err := c.CommitEdit(ctx)
		require.Error(t, err)
		assert.Equal(t, before, c.Items())
		assert.Equal(t, StateEditing, c.State())
		draft, ok := c.Draft()
		require.True(t, ok)
		assert.Equal(t, "taken@hospital.com", draft.Email)
		assert.Equal(t, "Email already used", n.last().Text)
	})

	t.Run("Should fall back to the generic failure message", func(t *testing.T) {
		c, remote, n := setup(t)
		remote.updateErr = errors.New("dial tcp: connection refused")

		require.Error(t, c.CommitEdit(ctx))
		assert.Equal(t, "Unable to save changes", n.last().Text)
	})

	t.Run("Should refuse without a draft", func(t *testing.T) {
		c, _, n := setup(t)
		c.CancelEdit()
		before := n.count()
		assert.ErrorIs(t, c.CommitEdit(ctx), ErrNotEditing)
		assert.Equal(t, before, n.count())
	})
}

func TestDraftByID(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*Controller[person], *fakeRemote, *recordingNotifier) {
		remote := newFakeRemote(samplePeople()...)
		c, n := newTestController(t, remote)
		require.NoError(t, c.Refresh(ctx))
		require.NoError(t, c.BeginEditByID(1))
		require.NoError(t, c.BeginEditByID(2))
		return c, remote, n
	}

	t.Run("Should report the entity being edited", func(t *testing.T) {
		c, _, _ := setup(t)
		id, ok := c.DraftID()
		require.True(t, ok)
		assert.Equal(t, int64(2), id)

		c.CancelEdit()
		_, ok = c.DraftID()
		assert.False(t, ok)
	})

	t.Run("Should refuse changes for a replaced draft", func(t *testing.T) {
		c, remote, n := setup(t)

		assert.ErrorIs(t, c.UpdateDraftFieldByID(1, "name", "Anan Renamed"), ErrDraftMismatch)
		assert.ErrorIs(t, c.CommitEditByID(ctx, 1), ErrDraftMismatch)
		assert.ErrorIs(t, c.CancelEditByID(1), ErrDraftMismatch)

		draft, ok := c.Draft()
		require.True(t, ok)
		assert.Equal(t, "Malee Wong", draft.Name)
		assert.Empty(t, remote.updates)
		assert.Zero(t, n.count())
		assert.Equal(t, StateEditing, c.State())
	})

	t.Run("Should commit the draft of the matching entity", func(t *testing.T) {
		c, remote, _ := setup(t)

		require.NoError(t, c.UpdateDraftFieldByID(2, "name", "Malee Wongsa"))
		require.NoError(t, c.CommitEditByID(ctx, 2))
		assert.Equal(t, personUpdate{Name: "Malee Wongsa", Email: "malee@hospital.com", Phone: "0822222222"}, remote.updates[2])
		assert.Len(t, remote.updates, 1)
		assert.Equal(t, StateReady, c.State())
	})

	t.Run("Should cancel only the matching draft", func(t *testing.T) {
		c, _, _ := setup(t)
		require.NoError(t, c.CancelEditByID(2))
		_, ok := c.Draft()
		assert.False(t, ok)
		require.NoError(t, c.CancelEditByID(2))
		assert.ErrorIs(t, c.CommitEditByID(ctx, 2), ErrNotEditing)
	})
}

func TestDeleteEntity(t *testing.T) {
	ctx := context.Background()

	t.Run("Should remove the entity and decrement tracked counters", func(t *testing.T) {
		remote := newFakeRemote(samplePeople()...)
		c, n := newTestController(t, remote,
			Counter{Name: "total"},
			Counter{Name: "fetched", Fetch: func(context.Context) (int, error) { return 10, nil }},
		)
		require.NoError(t, c.Refresh(ctx))

		deleted, err := c.DeleteEntity(ctx, 2)
		require.NoError(t, err)
		assert.True(t, deleted)
		assert.Equal(t, []int64{1, 3}, ids(c.Items()))
		assert.Equal(t, 2, c.Count("total"))
		assert.Equal(t, 10, c.Count("fetched"))
		assert.Equal(t, []int64{2}, remote.deletes)
		assert.Equal(t, notice{Entity: "people", Kind: KindSuccess, Title: "Deleted", Text: "The person has been deleted"}, n.last())
	})

	t.Run("Should do nothing when the user declines", func(t *testing.T) {
		remote := newFakeRemote(samplePeople()...)
		c, n := newTestController(t, remote, Counter{Name: "total"})
		require.NoError(t, c.Refresh(ctx))
		n.confirm = false

		deleted, err := c.DeleteEntity(ctx, 2)
		require.NoError(t, err)
		assert.False(t, deleted)
		assert.Equal(t, 1, n.asked)
		assert.Empty(t, remote.deletes)
		assert.Equal(t, []int64{1, 2, 3}, ids(c.Items()))
		assert.Equal(t, 3, c.Count("total"))
		assert.Zero(t, n.count())
	})

	t.Run("Should keep the collection when the service fails", func(t *testing.T) {
		remote := newFakeRemote(samplePeople()...)
		remote.deleteErr = userError{msg: "Doctor has active schedules"}
		c, n := newTestController(t, remote, Counter{Name: "total"})
		require.NoError(t, c.Refresh(ctx))

		deleted, err := c.DeleteEntity(ctx, 2)
		require.Error(t, err)
		assert.False(t, deleted)
		assert.Equal(t, []int64{1, 2, 3}, ids(c.Items()))
		assert.Equal(t, 3, c.Count("total"))
		assert.Equal(t, notice{Entity: "people", Kind: KindError, Title: "Error", Text: "Doctor has active schedules"}, n.last())
	})

	t.Run("Should keep derived counters at the collection length for unknown identifiers", func(t *testing.T) {
		remote := newFakeRemote(samplePeople()...)
		c, _ := newTestController(t, remote,
			Counter{Name: "total"},
			Counter{Name: "fetched", Fetch: func(context.Context) (int, error) { return 10, nil }, TrackDeletes: true},
		)
		require.NoError(t, c.Refresh(ctx))

		deleted, err := c.DeleteEntity(ctx, 99)
		require.NoError(t, err)
		assert.True(t, deleted)
		assert.Len(t, c.Items(), 3)
		assert.Equal(t, 3, c.Count("total"))
		assert.Equal(t, 9, c.Count("fetched"))
	})

	t.Run("Should decline through a nil notifier", func(t *testing.T) {
		remote := newFakeRemote(samplePeople()...)
		c, err := New(personConfig(), remote, nil)
		require.NoError(t, err)
		require.NoError(t, c.Refresh(ctx))

		deleted, err := c.DeleteEntity(ctx, 1)
		require.NoError(t, err)
		assert.False(t, deleted)
		assert.Empty(t, remote.deletes)
	})
}

func TestConcurrentReadsDuringMutations(t *testing.T) {
	ctx := context.Background()
	people := make([]person, 0, 50)
	for i := 1; i <= 50; i++ {
		people = append(people, person{
			ID:         int64(i),
			Name:       "Staff " + strconv.Itoa(i),
			Email:      "staff@hospital.com",
			Phone:      "0800000000",
			Department: "General",
		})
	}
	remote := newFakeRemote(people...)
	c, _ := newTestController(t, remote, Counter{Name: "total"})
	require.NoError(t, c.Refresh(ctx))

	var wg sync.WaitGroup
	for i := 1; i <= 10; i++ {
		wg.Add(2)
		go func(id int64) {
			defer wg.Done()
			_, _ = c.DeleteEntity(ctx, id)
		}(int64(i))
		go func() {
			defer wg.Done()
			_ = c.Search("staff")
			_ = c.Snapshot("1")
		}()
	}
	wg.Wait()

	assert.Len(t, c.Items(), 40)
	assert.Equal(t, 40, c.Count("total"))
}
