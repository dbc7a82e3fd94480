// internal/form/controller.go
//
// Shopadmin – Product form: dialog controller.
//
// Context
//   The controller owns everything the dialog shows: open/closed visibility,
//   the raw draft being edited, the captured image, field errors from the
//   last submit, and the in-flight flag.  It is the single state machine
//   gating the submit lifecycle:
//
//       Idle → Editing → Submitting → Idle      (success)
//                      ↘ Submitting → Editing   (failure, draft preserved)
//
//   One controller serves one dialog session.  Handlers drive it from their
//   own goroutines, so a mutex serializes transitions; the Submitting state
//   is the gate that keeps a second submit from firing while one is pending.
//
// Workflow
//   •  Open resets the draft and moves to Editing.  Close discards all edits
//      without confirmation and returns to Idle.
//   •  SetField mutates one field; nothing re-validates until Submit.
//   •  SelectImage reads the picked file into a data URI.  The read happens
//      outside the lock; last write wins on the image field, and a result
//      arriving after Close is dropped.
//   •  Submit validates, and only on success issues the single network
//      request.  The resolution is applied only if the dialog generation is
//      unchanged; closing mid-flight makes the resolution a no-op.
//
//------------------------------------------------------------------------------

package form

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/yanizio/shopadmin/internal/metrics"
	"github.com/yanizio/shopadmin/internal/notify"
	"github.com/yanizio/shopadmin/internal/product"
)

// State is the dialog lifecycle position.
type State string

const (
	// StateIdle means the dialog is closed and holds no draft.
	StateIdle State = "idle"
	// StateEditing means the dialog is open and fields are mutable.
	StateEditing State = "editing"
	// StateSubmitting means a request is in flight and inputs are disabled.
	StateSubmitting State = "submitting"
)

var (
	// ErrDialogClosed is returned by operations that need an open dialog.
	ErrDialogClosed = errors.New("form: dialog is not open")
	// ErrSubmitInFlight is returned when an operation races a pending submit.
	ErrSubmitInFlight = errors.New("form: submission already in flight")
	// ErrUnknownField is returned by SetField for names outside the draft.
	ErrUnknownField = errors.New("form: unknown field")
)

// Submitter issues the single create request for a validated draft.  The
// production implementation is Client in submit.go; tests substitute fakes.
type Submitter interface {
	Create(ctx context.Context, p product.Payload) error
}

// Controller drives one product dialog session.  Safe for concurrent use.
type Controller struct {
	mu    sync.Mutex
	state State
	gen   uint64 // bumped on Open and Close; stale resolutions compare against it
	draft RawDraft
	errs  []ErrorField

	submitter Submitter
	sink      notify.Sink
	log       *zap.SugaredLogger
}

// NewController returns an Idle controller.  sink and log may be nil; a nil
// sink falls back to the log sink.
func NewController(s Submitter, sink notify.Sink, log *zap.SugaredLogger) *Controller {
	if log == nil {
		log = zap.S()
	}
	if sink == nil {
		sink = notify.LogSink{Log: log}
	}
	return &Controller{state: StateIdle, submitter: s, sink: sink, log: log}
}

// State returns the current lifecycle position.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Draft returns a copy of the raw field values, preserved across failed
// submits so the user can correct and retry.
func (c *Controller) Draft() RawDraft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Errors returns the field errors recorded by the last Submit.
func (c *Controller) Errors() []ErrorField {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ErrorField, len(c.errs))
	copy(out, c.errs)
	return out
}

// -----------------------------------------------------------------------------
// Dialog visibility
// -----------------------------------------------------------------------------

// Open transitions Idle → Editing with an empty draft.  Opening an already
// open dialog is a no-op so a double-click cannot wipe edits.
func (c *Controller) Open() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateIdle {
		return
	}
	c.gen++
	c.state = StateEditing
	c.draft = RawDraft{}
	c.errs = nil
	metrics.DialogsOpen.Inc()
}

// Close discards all in-progress edits without confirmation and returns to
// Idle.  An in-flight submission is not aborted; bumping the generation makes
// its eventual resolution a safe no-op.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateIdle {
		return
	}
	c.gen++
	c.state = StateIdle
	c.draft = RawDraft{}
	c.errs = nil
	metrics.DialogsOpen.Dec()
}

// -----------------------------------------------------------------------------
// Field edits
// -----------------------------------------------------------------------------

// SetField mutates one draft field.  No validation runs until Submit.  Field
// names match the submission payload keys.
func (c *Controller) SetField(name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case StateIdle:
		return ErrDialogClosed
	case StateSubmitting:
		return ErrSubmitInFlight // inputs are disabled while pending
	}

	switch name {
	case "name":
		c.draft.Name = value
	case "description":
		c.draft.Description = value
	case "price":
		c.draft.Price = value
	case "type":
		c.draft.Type = value
	case "color":
		c.draft.Color = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

// SelectImage reads the picked file and stores it as the draft image.  A nil
// reader means no file was selected and is a no-op.  The read runs without
// holding the lock, so other edits interleave freely; on the image field the
// last completed read wins, and a read finishing after Close is dropped.
func (c *Controller) SelectImage(filename string, r io.Reader) error {
	if r == nil {
		return nil
	}

	c.mu.Lock()
	if c.state == StateIdle {
		c.mu.Unlock()
		return ErrDialogClosed
	}
	gen := c.gen
	c.mu.Unlock()

	uri, err := ReadDataURI(filename, r)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen || c.state == StateIdle {
		return nil // dialog closed while reading
	}
	c.draft.Image = uri
	return nil
}

// ClearImage resets the image selection, so the payload falls back to the
// placeholder at submit time.
func (c *Controller) ClearImage() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateIdle {
		return ErrDialogClosed
	}
	c.draft.Image = ""
	return nil
}

// -----------------------------------------------------------------------------
// Submit
// -----------------------------------------------------------------------------

// Submit runs validation and, on success, issues the one create request.
//
// Validation failure populates the field errors and aborts before any network
// effect; the caller receives a validation error (check IsValidationError).
// On endpoint failure the draft is preserved, an error toast is emitted, and
// the state returns to Editing for a manual retry.  On success the draft is
// reset, the dialog closes, and a success toast is emitted.  There is no
// retry and no idempotency key; a resubmit after an ambiguous failure may
// create a duplicate product.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	switch c.state {
	case StateIdle:
		c.mu.Unlock()
		return ErrDialogClosed
	case StateSubmitting:
		c.mu.Unlock()
		return ErrSubmitInFlight
	}

	draft, errs := Validate(c.draft)
	if len(errs) > 0 {
		c.errs = errs
		c.mu.Unlock()
		metrics.ValidationFailTotal.Inc()
		return validationError{Fields: errs}
	}

	c.errs = nil
	c.state = StateSubmitting
	gen := c.gen
	payload := draft.Payload()
	c.mu.Unlock()

	metrics.SubmitTotal.Inc()
	err := c.submitter.Create(ctx, payload)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gen != gen {
		// Dialog was closed (or reopened) while the request was in flight.
		// The resolution must not mutate the new session, and nobody is
		// looking at the dialog anymore, so no toast either.
		metrics.StaleResolutionTotal.Inc()
		c.log.Debugw("stale submission resolution discarded", "err", err)
		return nil
	}

	if err != nil {
		c.state = StateEditing // draft untouched, user may retry
		metrics.SubmitErrorsTotal.Inc()
		c.sink.Notify(notify.Notification{Kind: notify.Error, Message: "Something went wrong."})
		c.log.Errorw("product submission failed", "err", err)
		return fmt.Errorf("submit product: %w", err)
	}

	c.state = StateIdle
	c.draft = RawDraft{}
	metrics.DialogsOpen.Dec()
	c.sink.Notify(notify.Notification{Kind: notify.Success, Message: "Product created successfully."})
	c.log.Infow("product created", "name", payload.Name, "type", payload.Type, "color", payload.Color)
	return nil
}
