package table

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/ryanbastic/classtrak/internal/record"
	"github.com/ryanbastic/classtrak/internal/tabular"
)

// API is the server surface the controller needs. *client.Client satisfies it.
type API interface {
	StartUp(ctx context.Context) (tabular.Result, error)
	Retrieve(ctx context.Context, studentID int) (tabular.Result, error)
	Delete(ctx context.Context, studentID int) (*record.DeleteResponse, error)
	Update(ctx context.Context, req record.UpdateRequest) (int, error)
}

// FailureFunc is called once for every failed action. op names the action.
type FailureFunc func(op string, err error)

// Snapshot is everything a Renderer needs to draw the screen.
type Snapshot struct {
	Students []record.Student
	States   map[int]RowState
	Drafts   map[int]Draft

	// ShowClasses is set once a retrieve succeeded; ClassesFor is the
	// student whose classes are shown.
	ShowClasses bool
	ClassesFor  int
	Classes     []record.Class

	TableStatus string
	DataStatus  string
	// Diagnostics holds the opaque message and status of the last delete.
	Diagnostics string
	// Failure is the last failed action, cleared by the next success.
	Failure string
}

// Renderer draws a Snapshot.
type Renderer interface {
	Render(s Snapshot) error
}

// Controller drives the student table. Each row is in View or Edit; any
// number of rows may be in Edit at once. Every action re-renders.
type Controller struct {
	mu        sync.Mutex
	api       API
	cache     *Cache
	renderer  Renderer
	logger    *slog.Logger
	onFailure FailureFunc

	states map[int]RowState
	drafts map[int]*Draft

	showClasses bool
	classesFor  int
	classes     []record.Class
	tableStatus string
	dataStatus  string
	diagnostics string
	failure     string
}

// NewController wires a controller. onFailure may be nil; failures are
// always logged and shown on the status line.
func NewController(api API, cache *Cache, renderer Renderer, logger *slog.Logger, onFailure FailureFunc) *Controller {
	return &Controller{
		api:       api,
		cache:     cache,
		renderer:  renderer,
		logger:    logger,
		onFailure: onFailure,
		states:    make(map[int]RowState),
		drafts:    make(map[int]*Draft),
	}
}

// Load fetches the student table, replaces the cache and puts every row
// in View.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(ctx); err != nil {
		return c.fail("load", err)
	}
	return c.render()
}

// Retrieve shows the classes of one student in the class panel. Row states
// do not change.
func (c *Controller) Retrieve(ctx context.Context, id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.requireState(id, View); err != nil {
		return c.fail("retrieve", err)
	}

	t, err := c.api.Retrieve(ctx, id)
	if err != nil {
		return c.fail("retrieve", err)
	}
	classes, err := record.DecodeClasses(t)
	if err != nil {
		return c.fail("retrieve", err)
	}

	c.showClasses = true
	c.classesFor = id
	c.classes = classes
	c.dataStatus = fmt.Sprintf("Retrieved %d Records", len(classes))
	c.failure = ""
	return c.render()
}

// Edit moves a row from View to Edit, seeding the draft from the cache.
func (c *Controller) Edit(id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.requireState(id, View); err != nil {
		return c.fail("edit", err)
	}

	s, _ := c.cache.Lookup(id)
	c.states[id] = Edit
	c.drafts[id] = &Draft{
		FirstName: s.FirstName,
		LastName:  s.LastName,
		SchoolID:  strconv.Itoa(s.SchoolID),
	}
	c.failure = ""
	return c.render()
}

// SetField changes one field of an editing row's draft.
func (c *Controller) SetField(id int, f Field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.requireState(id, Edit); err != nil {
		return c.fail("set", err)
	}

	c.drafts[id].set(f, value)
	c.failure = ""
	return c.render()
}

// Cancel discards every draft and reloads the whole table.
func (c *Controller) Cancel(ctx context.Context, id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.requireState(id, Edit); err != nil {
		return c.fail("cancel", err)
	}
	if err := c.load(ctx); err != nil {
		return c.fail("cancel", err)
	}
	return c.render()
}

// Update submits an editing row's draft, then reloads the whole table.
// A non-numeric school id is rejected locally and the row stays in Edit.
func (c *Controller) Update(ctx context.Context, id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.requireState(id, Edit); err != nil {
		return c.fail("update", err)
	}

	d := c.drafts[id]
	school, err := strconv.Atoi(strings.TrimSpace(d.SchoolID))
	if err != nil {
		return c.fail("update", fmt.Errorf("school id %q is not a number", d.SchoolID))
	}

	rows, err := c.api.Update(ctx, record.UpdateRequest{
		ID:       record.FlexInt(id),
		FName:    d.FirstName,
		LName:    d.LastName,
		SchoolID: record.FlexInt(school),
	})
	if err != nil {
		return c.fail("update", err)
	}
	c.dataStatus = fmt.Sprintf("updated %d rows", rows)

	if err := c.load(ctx); err != nil {
		return c.fail("update", fmt.Errorf("reload after update: %w", err))
	}
	return c.render()
}

// Delete removes a student and replaces the cache with the student table
// bundled in the response.
func (c *Controller) Delete(ctx context.Context, id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.requireState(id, View); err != nil {
		return c.fail("delete", err)
	}

	resp, err := c.api.Delete(ctx, id)
	if err != nil {
		return c.fail("delete", err)
	}
	c.logger.Debug("delete outcome", "student_id", id, "rows", resp.Rows, "message", resp.Message, "status", resp.Status)

	if err := c.replace(resp.Students); err != nil {
		return c.fail("delete", err)
	}
	c.diagnostics = fmt.Sprintf("message:%s status:%s", resp.Message, resp.Status)
	c.dataStatus = fmt.Sprintf("Deleted %d rows", resp.Rows)
	return c.render()
}

// State reports the state of one row.
func (c *Controller) State(id int) (RowState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.cache.Lookup(id); !ok {
		return View, fmt.Errorf("student %d: %w", id, ErrUnknownRow)
	}
	return c.states[id], nil
}

// Snapshot returns the current screen contents.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Render redraws the current screen.
func (c *Controller) Render() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.render()
}

func (c *Controller) load(ctx context.Context) error {
	t, err := c.api.StartUp(ctx)
	if err != nil {
		return err
	}
	return c.replace(t)
}

// replace swaps in a new student table and resets every row to View.
func (c *Controller) replace(t tabular.Result) error {
	if err := c.cache.Replace(t); err != nil {
		return err
	}
	c.states = make(map[int]RowState)
	c.drafts = make(map[int]*Draft)
	c.tableStatus = fmt.Sprintf("Retrieved %d Records", t.Len())
	c.failure = ""
	return nil
}

func (c *Controller) requireState(id int, want RowState) error {
	if _, ok := c.cache.Lookup(id); !ok {
		return fmt.Errorf("student %d: %w", id, ErrUnknownRow)
	}
	switch got := c.states[id]; {
	case got == want:
		return nil
	case got == Edit:
		return fmt.Errorf("student %d: %w", id, ErrEditing)
	default:
		return fmt.Errorf("student %d: %w", id, ErrNotEditing)
	}
}

// fail reports err and redraws; the table itself is left as it was.
func (c *Controller) fail(op string, err error) error {
	c.logger.Error("action failed", "op", op, "error", err)
	if c.onFailure != nil {
		c.onFailure(op, err)
	}
	c.failure = fmt.Sprintf("%s failed: %v", op, err)
	if rerr := c.render(); rerr != nil {
		c.logger.Error("render failed", "error", rerr)
	}
	return err
}

func (c *Controller) render() error {
	if c.renderer == nil {
		return nil
	}
	return c.renderer.Render(c.snapshot())
}

func (c *Controller) snapshot() Snapshot {
	s := Snapshot{
		Students:    c.cache.Students(),
		States:      make(map[int]RowState, len(c.states)),
		Drafts:      make(map[int]Draft, len(c.drafts)),
		ShowClasses: c.showClasses,
		ClassesFor:  c.classesFor,
		Classes:     append([]record.Class(nil), c.classes...),
		TableStatus: c.tableStatus,
		DataStatus:  c.dataStatus,
		Diagnostics: c.diagnostics,
		Failure:     c.failure,
	}
	for id, st := range c.states {
		s.States[id] = st
	}
	for id, d := range c.drafts {
		s.Drafts[id] = *d
	}
	return s
}
