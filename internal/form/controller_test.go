// internal/form/controller_test.go
//
// Unit-tests for the dialog controller state machine.
//
// Context
// -------
// The controller is driven directly, without any HTTP layer, which is the
// point of modeling dialog visibility explicitly.  A fake Submitter records
// payloads and can block on a channel so tests can hold a submission in
// flight while poking at the state machine.
//
// Run: go test ./internal/form -v

package form

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/yanizio/shopadmin/internal/notify"
	"github.com/yanizio/shopadmin/internal/product"
)

// fakeSubmitter records Create calls.  When release is non-nil, Create
// signals started and then blocks until release is closed.
type fakeSubmitter struct {
	mu      sync.Mutex
	calls   []product.Payload
	err     error
	started chan struct{}
	release chan struct{}
}

func (f *fakeSubmitter) Create(_ context.Context, p product.Payload) error {
	f.mu.Lock()
	f.calls = append(f.calls, p)
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	return f.err
}

func (f *fakeSubmitter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newTestController(fs *fakeSubmitter) (*Controller, *notify.Buffer) {
	buf := notify.NewBuffer(zap.NewNop().Sugar())
	return NewController(fs, buf, zap.NewNop().Sugar()), buf
}

// fillValid enters the §8 "Classic Tee" draft.
func fillValid(t *testing.T, c *Controller) {
	t.Helper()
	for name, val := range map[string]string{
		"name":        "Classic Tee",
		"description": "",
		"price":       "499",
		"type":        "TSHIRT",
		"color":       "BLUE",
	} {
		if err := c.SetField(name, val); err != nil {
			t.Fatalf("SetField(%q): %v", name, err)
		}
	}
}

func TestSubmit_EmptyName_NoRequest(t *testing.T) {
	fs := &fakeSubmitter{}
	c, _ := newTestController(fs)

	c.Open()
	fillValid(t, c)
	if err := c.SetField("name", ""); err != nil {
		t.Fatal(err)
	}

	err := c.Submit(context.Background())
	if !IsValidationError(err) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if fields := ValidationFields(err); len(fields) != 1 || fields[0].Name != "name" {
		t.Fatalf("fields = %+v, want single name error", fields)
	}
	if fs.callCount() != 0 {
		t.Fatal("validation failure must not issue a request")
	}
	if got := c.State(); got != StateEditing {
		t.Fatalf("state = %q, want editing", got)
	}
}

func TestSubmit_PriceZero(t *testing.T) {
	fs := &fakeSubmitter{}
	c, _ := newTestController(fs)

	c.Open()
	fillValid(t, c)
	_ = c.SetField("name", "Cap")
	_ = c.SetField("price", "0")
	_ = c.SetField("type", "OTHER")
	_ = c.SetField("color", "BROWN")

	err := c.Submit(context.Background())
	fields := ValidationFields(err)
	if len(fields) != 1 || fields[0].Name != "price" {
		t.Fatalf("fields = %+v, want single price error", fields)
	}
	if fs.callCount() != 0 {
		t.Fatal("no request expected")
	}
}

func TestSubmit_MissingSelections(t *testing.T) {
	fs := &fakeSubmitter{}
	c, _ := newTestController(fs)

	c.Open()
	_ = c.SetField("name", "Tee")
	_ = c.SetField("price", "10")

	err := c.Submit(context.Background())
	fields := ValidationFields(err)
	if fieldError(fields, "type") == nil || fieldError(fields, "color") == nil {
		t.Fatalf("fields = %+v, want type and color errors", fields)
	}
	if fs.callCount() != 0 {
		t.Fatal("no request expected")
	}
}

func TestSubmit_Success_PlaceholderImage(t *testing.T) {
	fs := &fakeSubmitter{}
	c, buf := newTestController(fs)

	c.Open()
	fillValid(t, c)

	if err := c.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if fs.callCount() != 1 {
		t.Fatalf("calls = %d, want exactly one", fs.callCount())
	}
	got := fs.calls[0]
	want := product.Payload{
		Name:  "Classic Tee",
		Price: 499,
		Type:  product.TypeTShirt,
		Color: product.ColorBlue,
		Image: product.PlaceholderImage,
	}
	if got != want {
		t.Fatalf("payload = %+v, want %+v", got, want)
	}

	// Success resets the draft, closes the dialog, and emits a toast.
	if st := c.State(); st != StateIdle {
		t.Fatalf("state = %q, want idle", st)
	}
	if d := c.Draft(); d != (RawDraft{}) {
		t.Fatalf("draft not reset: %+v", d)
	}
	toasts := buf.Drain()
	if len(toasts) != 1 || toasts[0].Kind != notify.Success {
		t.Fatalf("toasts = %+v, want one success", toasts)
	}
}

func TestSubmit_Success_UploadedImage(t *testing.T) {
	fs := &fakeSubmitter{}
	c, _ := newTestController(fs)

	c.Open()
	fillValid(t, c)
	if err := c.SelectImage("tee.png", strings.NewReader("\x89PNG fake bytes")); err != nil {
		t.Fatalf("SelectImage: %v", err)
	}

	if err := c.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	img := fs.calls[0].Image
	if !strings.HasPrefix(img, "data:image/png;base64,") {
		t.Fatalf("image = %q, want png data URI", img)
	}
	if img == product.PlaceholderImage {
		t.Fatal("placeholder used despite uploaded image")
	}
}

func TestClearImage_FallsBackToPlaceholder(t *testing.T) {
	fs := &fakeSubmitter{}
	c, _ := newTestController(fs)

	c.Open()
	fillValid(t, c)
	_ = c.SelectImage("tee.png", strings.NewReader("bytes"))
	if err := c.ClearImage(); err != nil {
		t.Fatalf("ClearImage: %v", err)
	}

	if err := c.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if got := fs.calls[0].Image; got != product.PlaceholderImage {
		t.Fatalf("image = %q, want placeholder", got)
	}
}

func TestSubmit_Failure_PreservesDraft(t *testing.T) {
	fs := &fakeSubmitter{err: &SubmissionError{StatusCode: 500}}
	c, buf := newTestController(fs)

	c.Open()
	fillValid(t, c)

	err := c.Submit(context.Background())
	if err == nil || !IsSubmissionError(err) {
		t.Fatalf("err = %v, want submission error", err)
	}

	if st := c.State(); st != StateEditing {
		t.Fatalf("state = %q, want editing for retry", st)
	}
	if d := c.Draft(); d.Name != "Classic Tee" || d.Price != "499" {
		t.Fatalf("draft not preserved: %+v", d)
	}
	toasts := buf.Drain()
	if len(toasts) != 1 || toasts[0].Kind != notify.Error {
		t.Fatalf("toasts = %+v, want one error", toasts)
	}

	// Manual retry is a brand-new request.
	fs.err = nil
	if err := c.Submit(context.Background()); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if fs.callCount() != 2 {
		t.Fatalf("calls = %d, want 2", fs.callCount())
	}
}

func TestSubmit_GateWhileInFlight(t *testing.T) {
	fs := &fakeSubmitter{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	c, _ := newTestController(fs)

	c.Open()
	fillValid(t, c)

	done := make(chan error, 1)
	go func() { done <- c.Submit(context.Background()) }()
	<-fs.started

	if err := c.Submit(context.Background()); !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("second submit err = %v, want ErrSubmitInFlight", err)
	}
	if err := c.SetField("name", "sneaky edit"); !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("edit during flight err = %v, want ErrSubmitInFlight", err)
	}

	close(fs.release)
	if err := <-done; err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if fs.callCount() != 1 {
		t.Fatalf("calls = %d, want 1", fs.callCount())
	}
}

func TestClose_DiscardsStaleResolution(t *testing.T) {
	fs := &fakeSubmitter{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	c, buf := newTestController(fs)

	c.Open()
	fillValid(t, c)

	done := make(chan error, 1)
	go func() { done <- c.Submit(context.Background()) }()
	<-fs.started

	// Closing mid-flight does not abort the request; its resolution must be
	// ignored without mutating the controller or emitting a toast.
	c.Close()
	close(fs.release)

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("stale submit err = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("submit never resolved")
	}

	if st := c.State(); st != StateIdle {
		t.Fatalf("state = %q, want idle", st)
	}
	if toasts := buf.Drain(); len(toasts) != 0 {
		t.Fatalf("toasts = %+v, want none after close", toasts)
	}
}

func TestLifecycleGuards(t *testing.T) {
	fs := &fakeSubmitter{}
	c, _ := newTestController(fs)

	if err := c.SetField("name", "x"); !errors.Is(err, ErrDialogClosed) {
		t.Fatalf("SetField on closed dialog err = %v", err)
	}
	if err := c.Submit(context.Background()); !errors.Is(err, ErrDialogClosed) {
		t.Fatalf("Submit on closed dialog err = %v", err)
	}

	c.Open()
	if err := c.SetField("sku", "x"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("unknown field err = %v", err)
	}

	// No file selected is a no-op, not an error.
	if err := c.SelectImage("", nil); err != nil {
		t.Fatalf("nil reader err = %v", err)
	}

	// Reopening an open dialog must not wipe edits.
	_ = c.SetField("name", "Keep me")
	c.Open()
	if d := c.Draft(); d.Name != "Keep me" {
		t.Fatalf("reopen wiped draft: %+v", d)
	}
}
