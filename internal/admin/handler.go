// internal/admin/handler.go
//
// Shopadmin – Dialog HTTP surface.
//
// Context
//   The browser drives its form controller through these endpoints.  Every
//   request resolves the caller's session (cookie), so each admin holds an
//   isolated draft.  The handlers translate controller results into status
//   codes and leave all form semantics inside internal/form:
//
//     POST   /admin/product/open     – open the dialog
//     GET    /admin/product/state    – state, draft, field errors, CSRF token
//     POST   /admin/product/field    – set one field {name, value}
//     POST   /admin/product/image    – multipart upload, field "image"
//     DELETE /admin/product/image    – clear the selection
//     POST   /admin/product/submit   – validate and create (echo csrf_token)
//     POST   /admin/product/close    – discard edits and close
//     GET    /admin/product/toasts   – drain pending notifications
//
// Failure mapping
//   Validation failures are 422 with field errors; lifecycle conflicts
//   (closed dialog, submit already pending) are 409; an endpoint failure
//   surfaces as 502 with the draft preserved server-side for retry.
//
//------------------------------------------------------------------------------

package admin

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yanizio/shopadmin/internal/form"
	"github.com/yanizio/shopadmin/internal/session"
)

// Handler serves the dialog endpoints.
type Handler struct {
	sessions *session.Manager
	log      *zap.SugaredLogger
}

// NewHandler returns a Handler over the session registry.
func NewHandler(sessions *session.Manager, log *zap.SugaredLogger) *Handler {
	if log == nil {
		log = zap.S()
	}
	return &Handler{sessions: sessions, log: log}
}

// Routes mounts the dialog endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/admin/product", func(r chi.Router) {
		r.Post("/open", h.open)
		r.Get("/state", h.state)
		r.Post("/field", h.field)
		r.Post("/image", h.image)
		r.Delete("/image", h.clearImage)
		r.Post("/submit", h.submit)
		r.Post("/close", h.close)
		r.Get("/toasts", h.toasts)
	})
}

// stateBody is the dialog snapshot returned by open, state, and submit.
type stateBody struct {
	State  form.State        `json:"state"`
	Draft  form.RawDraft     `json:"draft"`
	Errors []form.ErrorField `json:"errors,omitempty"`
	CSRF   string            `json:"csrf_token,omitempty"`
}

func (h *Handler) snapshot(sess *session.Session) stateBody {
	body := stateBody{
		State:  sess.Controller.State(),
		Draft:  sess.Controller.Draft(),
		Errors: sess.Controller.Errors(),
	}
	if body.State != form.StateIdle {
		if tok, err := generateToken(); err == nil {
			body.CSRF = tok
		}
	}
	return body
}

func (h *Handler) open(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	sess.Controller.Open()
	writeJSON(w, http.StatusOK, h.snapshot(sess))
}

func (h *Handler) state(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	writeJSON(w, http.StatusOK, h.snapshot(sess))
}

func (h *Handler) field(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)

	var req struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errBody("malformed JSON body"))
		return
	}

	if err := sess.Controller.SetField(req.Name, req.Value); err != nil {
		h.writeControllerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.snapshot(sess))
}

func (h *Handler) image(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)

	// The 2 MB note next to the picker is advisory copy; the limit here only
	// bounds the multipart parse buffer, not the file.
	file, header, err := r.FormFile("image")
	if err != nil {
		// No file selected is a no-op, matching the picker being dismissed.
		writeJSON(w, http.StatusOK, h.snapshot(sess))
		return
	}
	defer file.Close()

	if err := sess.Controller.SelectImage(header.Filename, file); err != nil {
		h.writeControllerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.snapshot(sess))
}

func (h *Handler) clearImage(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	if err := sess.Controller.ClearImage(); err != nil {
		h.writeControllerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.snapshot(sess))
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)

	var req struct {
		CSRF string `json:"csrf_token"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	if !verifyToken(req.CSRF) {
		writeJSON(w, http.StatusForbidden, errBody("security token invalid, refresh and try again"))
		return
	}

	err := sess.Controller.Submit(r.Context())
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, h.snapshot(sess))
	case form.IsValidationError(err):
		writeJSON(w, http.StatusUnprocessableEntity, h.snapshot(sess))
	case form.IsSubmissionError(err):
		writeJSON(w, http.StatusBadGateway, h.snapshot(sess))
	default:
		h.writeControllerError(w, err)
	}
}

func (h *Handler) close(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	sess.Controller.Close()
	writeJSON(w, http.StatusOK, h.snapshot(sess))
}

func (h *Handler) toasts(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(w, r)
	writeJSON(w, http.StatusOK, map[string]any{"toasts": sess.Toasts.Drain()})
}

// writeControllerError maps lifecycle errors to conflict responses.
func (h *Handler) writeControllerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, form.ErrDialogClosed), errors.Is(err, form.ErrSubmitInFlight):
		writeJSON(w, http.StatusConflict, errBody(err.Error()))
	case errors.Is(err, form.ErrUnknownField):
		writeJSON(w, http.StatusBadRequest, errBody(err.Error()))
	default:
		h.log.Errorw("dialog endpoint failure", "err", err)
		writeJSON(w, http.StatusInternalServerError, errBody("internal error"))
	}
}

func errBody(msg string) map[string]string { return map[string]string{"error": msg} }

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
