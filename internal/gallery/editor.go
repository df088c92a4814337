package gallery

import (
	"context"
	"fmt"
	"sync"
	"time"

	"imagechart/internal/entity"
)

// RowState is the lifecycle of one gallery row with respect to inline
// editing. Only one transition happens per user event.
type RowState int

const (
	StateReadOnly RowState = iota
	StateEditing
	StateSaving
	StateError
)

func (s RowState) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateSaving:
		return "saving"
	case StateError:
		return "error"
	default:
		return "read-only"
	}
}

// RowValues are the three editable fields of a row, captured together so
// save and revert are always atomic across all of them.
type RowValues struct {
	Description string
	Theme       string
	CategoryID  string
}

type editSession struct {
	state    RowState
	snapshot RowValues
	draft    RowValues
	timer    *time.Timer
}

// EditPolicy configures row affordances. When DeleteRequiresEditMode is
// set, a row's delete action is only available once the row has been
// explicitly placed into edit mode.
type EditPolicy struct {
	DeleteRequiresEditMode bool
}

const defaultErrorWindow = 3 * time.Second

// RowEditController owns the edit sessions of all rows. A session exists
// only between EnterEdit and the return to read-only; its snapshot is
// the values at entry, used to revert on cancel or save failure.
type RowEditController struct {
	mu          sync.Mutex
	api         API
	sessions    map[string]*editSession
	errorWindow time.Duration
	policy      EditPolicy
	onMessage   func(string)
}

type EditorOption func(*RowEditController)

func WithErrorWindow(d time.Duration) EditorOption {
	return func(c *RowEditController) { c.errorWindow = d }
}

func WithEditPolicy(p EditPolicy) EditorOption {
	return func(c *RowEditController) { c.policy = p }
}

func WithEditMessages(fn func(string)) EditorOption {
	return func(c *RowEditController) { c.onMessage = fn }
}

func NewRowEditController(api API, opts ...EditorOption) *RowEditController {
	c := &RowEditController{
		api:         api,
		sessions:    make(map[string]*editSession),
		errorWindow: defaultErrorWindow,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State reports the current state of a row; rows without a session are
// read-only.
func (c *RowEditController) State(id string) RowState {
	c.mu.Lock()
	defer c.mu.Unlock()
	if sess, ok := c.sessions[id]; ok {
		return sess.state
	}
	return StateReadOnly
}

// EnterEdit starts an edit session for a row, snapshotting its current
// values. A row still showing an error is cleared immediately and
// re-entered fresh; a row that is editing or saving refuses.
func (c *RowEditController) EnterEdit(id string, current RowValues) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if sess, ok := c.sessions[id]; ok {
		if sess.state != StateError {
			return entity.ErrRowBusy
		}
		c.endSessionLocked(id, sess)
	}

	c.sessions[id] = &editSession{
		state:    StateEditing,
		snapshot: current,
		draft:    current,
	}
	return nil
}

// SetDraft replaces the in-progress values of an editing row.
func (c *RowEditController) SetDraft(id string, values RowValues) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	sess, ok := c.sessions[id]
	if !ok || sess.state != StateEditing {
		return entity.ErrRowNotEditing
	}
	sess.draft = values
	return nil
}

// Draft returns the current draft of a row in edit mode.
func (c *RowEditController) Draft(id string) (RowValues, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	sess, ok := c.sessions[id]
	if !ok {
		return RowValues{}, false
	}
	return sess.draft, true
}

// Cancel discards the draft and restores the snapshot without any
// network traffic. The returned values are what the row should display.
func (c *RowEditController) Cancel(id string) (RowValues, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	sess, ok := c.sessions[id]
	if !ok || sess.state != StateEditing {
		return RowValues{}, entity.ErrRowNotEditing
	}
	snapshot := sess.snapshot
	c.endSessionLocked(id, sess)
	return snapshot, nil
}

// Save persists the draft as one atomic update of all three fields. On
// success the row returns to read-only showing the saved values. On
// failure the row reverts to its snapshot, shows an error state for the
// configured window and then clears on its own.
func (c *RowEditController) Save(ctx context.Context, id string) (RowValues, error) {
	c.mu.Lock()
	sess, ok := c.sessions[id]
	if !ok || sess.state != StateEditing {
		c.mu.Unlock()
		return RowValues{}, entity.ErrRowNotEditing
	}
	sess.state = StateSaving
	draft := sess.draft
	c.mu.Unlock()

	upd := entity.ImageUpdate{
		Description: &draft.Description,
		Theme:       &draft.Theme,
		CategoryID:  &draft.CategoryID,
	}
	err := c.api.UpdateImage(ctx, id, upd)

	c.mu.Lock()
	defer c.mu.Unlock()

	// The session may have been torn down by a reload while the request
	// was in flight.
	if c.sessions[id] != sess {
		if err != nil {
			return RowValues{}, fmt.Errorf("save image %s: %w", id, err)
		}
		return draft, nil
	}

	if err != nil {
		sess.state = StateError
		sess.draft = sess.snapshot
		c.armErrorTimerLocked(id, sess)
		if c.onMessage != nil {
			c.onMessage(fmt.Sprintf("failed to save changes, values reverted: %v", err))
		}
		return sess.snapshot, fmt.Errorf("save image %s: %w", id, err)
	}

	c.endSessionLocked(id, sess)
	return draft, nil
}

// CanDelete reports whether the delete action is available for a row
// under the configured policy.
func (c *RowEditController) CanDelete(id string) bool {
	if !c.policy.DeleteRequiresEditMode {
		return true
	}
	return c.State(id) == StateEditing
}

// ResetAll tears down every session, e.g. after the grid data has been
// replaced by a reload.
func (c *RowEditController) ResetAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, sess := range c.sessions {
		c.endSessionLocked(id, sess)
	}
}

func (c *RowEditController) armErrorTimerLocked(id string, sess *editSession) {
	sess.timer = time.AfterFunc(c.errorWindow, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		// Only clear if this exact session is still the error holder.
		if cur, ok := c.sessions[id]; ok && cur == sess && cur.state == StateError {
			delete(c.sessions, id)
		}
	})
}

func (c *RowEditController) endSessionLocked(id string, sess *editSession) {
	if sess.timer != nil {
		sess.timer.Stop()
	}
	delete(c.sessions, id)
}
