// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the Theme Gate gateway.
// Handlers receive their dependencies through the handler struct; the audit
// store and the in-flight guard may be absent and the gateway degrades to
// stateless operation.
package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"themegate/internal/cache"
	"themegate/internal/middleware"
	"themegate/internal/models"
	"themegate/internal/pipeline"
	"themegate/internal/slug"
	"themegate/internal/store"
	"themegate/internal/theme"
)

// maxSubmitBody caps the accepted request size. Image descriptors carry URLs,
// not file contents, so real payloads stay far below this.
const maxSubmitBody = 1 << 20

// qrSize is the pixel width of generated QR code images.
const qrSize = 256

// SubmissionRunner executes the repository pipeline for one submission.
// Satisfied by *pipeline.Runner.
type SubmissionRunner interface {
	Run(ctx context.Context, sub *models.ThemeSubmission) (*pipeline.Result, error)
}

// Submissions groups the gateway HTTP handlers. store and guard may be nil
// when Postgres or Valkey is not configured.
type Submissions struct {
	runner SubmissionRunner
	store  *store.SubmissionStore
	guard  *cache.SubmitGuard
}

// NewSubmissions creates a new Submissions handler group.
func NewSubmissions(runner SubmissionRunner, st *store.SubmissionStore, guard *cache.SubmitGuard) *Submissions {
	return &Submissions{runner: runner, store: st, guard: guard}
}

// event is the envelope the form provider wraps around the raw request body.
type event struct {
	Body            string `json:"body"`
	IsBase64Encoded bool   `json:"isBase64Encoded"`
}

// submitRequest is the decoded envelope body.
type submitRequest struct {
	Data *models.ThemeSubmission `json:"data"`
}

// submitResponse is returned on a successful run.
type submitResponse struct {
	ID       string `json:"id,omitempty"`
	PRURL    string `json:"prUrl"`
	Branch   string `json:"branch"`
	FileName string `json:"file"`
}

// Submit handles POST /api/submit. It unwraps the event envelope, validates
// the submission, takes the per-slug in-flight lease, records an audit row,
// and runs the pipeline.
func (h *Submissions) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.RequestIDFrom(ctx)

	sub, err := decodeSubmission(r)
	if err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := theme.Validate(sub); err != nil {
		var verr *theme.ValidationError
		if errors.As(err, &verr) {
			slog.Info("submission rejected", "request_id", requestID, "field", verr.Field, "reason", verr.Reason)
			errorJSON(w, http.StatusUnprocessableEntity, verr.Error())
			return
		}
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	themeSlug := slug.Generate(sub.ThemeName)
	if h.guard != nil {
		if !h.guard.Acquire(ctx, themeSlug) {
			errorJSON(w, http.StatusConflict, "a submission for this theme is already in progress")
			return
		}
		defer h.guard.Release(ctx, themeSlug)
	}

	row := h.recordPending(sub, themeSlug)

	result, err := h.runner.Run(ctx, sub)
	if err != nil {
		h.recordFailed(row, err)
		var verr *theme.ValidationError
		if errors.As(err, &verr) {
			errorJSON(w, http.StatusUnprocessableEntity, verr.Error())
			return
		}
		slog.Error("pipeline failed", "request_id", requestID, "theme", sub.ThemeName, "error", err)
		errorJSON(w, http.StatusBadGateway, "submission pipeline failed")
		return
	}

	h.recordCompleted(row, result)
	slog.Info("submission completed",
		"request_id", requestID,
		"theme", sub.ThemeName,
		"branch", result.Branch,
		"pr_url", result.PRURL,
	)

	resp := submitResponse{PRURL: result.PRURL, Branch: result.Branch, FileName: result.FileName}
	if row != nil {
		resp.ID = row.ID.String()
	}
	writeJSON(w, http.StatusCreated, resp)
}

// List handles GET /api/submissions and returns the most recent audit rows.
func (h *Submissions) List(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		errorJSON(w, http.StatusServiceUnavailable, "submission store is not configured")
		return
	}
	subs, err := h.store.ListRecent(0)
	if err != nil {
		slog.Error("list submissions failed", "error", err)
		errorJSON(w, http.StatusInternalServerError, "failed to list submissions")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"submissions": subs})
}

// Get handles GET /api/submissions/{id}.
func (h *Submissions) Get(w http.ResponseWriter, r *http.Request) {
	sub, ok := h.findByParam(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

// QRCode handles GET /api/submissions/{id}/qr.png. It renders the opened
// pull request URL as a PNG QR code for phone handoff during review.
func (h *Submissions) QRCode(w http.ResponseWriter, r *http.Request) {
	sub, ok := h.findByParam(w, r)
	if !ok {
		return
	}
	if sub.PRURL == "" {
		errorJSON(w, http.StatusNotFound, "submission has no pull request")
		return
	}
	png, err := qrcode.Encode(sub.PRURL, qrcode.Medium, qrSize)
	if err != nil {
		slog.Error("qr encode failed", "id", sub.ID, "error", err)
		errorJSON(w, http.StatusInternalServerError, "failed to render QR code")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// findByParam resolves the {id} URL parameter to a stored submission,
// writing the error response itself when it cannot.
func (h *Submissions) findByParam(w http.ResponseWriter, r *http.Request) (*models.Submission, bool) {
	if h.store == nil {
		errorJSON(w, http.StatusServiceUnavailable, "submission store is not configured")
		return nil, false
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid submission id")
		return nil, false
	}
	sub, err := h.store.FindByID(id)
	if err != nil {
		slog.Error("find submission failed", "id", id, "error", err)
		errorJSON(w, http.StatusInternalServerError, "failed to load submission")
		return nil, false
	}
	if sub == nil {
		errorJSON(w, http.StatusNotFound, "submission not found")
		return nil, false
	}
	return sub, true
}

// decodeSubmission unwraps the event envelope and parses the submission
// payload out of its body.
func decodeSubmission(r *http.Request) (*models.ThemeSubmission, error) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxSubmitBody))
	if err != nil {
		return nil, errors.New("failed to read request body")
	}
	if len(raw) == 0 {
		return nil, errors.New("missing request body")
	}

	var ev event
	if err := json.Unmarshal(raw, &ev); err != nil {
		return nil, errors.New("malformed event envelope")
	}
	if ev.Body == "" {
		return nil, errors.New("event has no body")
	}

	body := []byte(ev.Body)
	if ev.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(ev.Body)
		if err != nil {
			return nil, errors.New("body is not valid base64")
		}
		body = decoded
	}

	var req submitRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, errors.New("malformed submission payload")
	}
	if req.Data == nil {
		return nil, errors.New("payload has no data field")
	}
	return req.Data, nil
}

// recordPending inserts the audit row for an accepted submission. Returns
// nil when the store is absent or the insert fails; the pipeline runs anyway.
func (h *Submissions) recordPending(sub *models.ThemeSubmission, themeSlug string) *models.Submission {
	if h.store == nil {
		return nil
	}
	payload, err := json.Marshal(sub)
	if err != nil {
		payload = nil
	}
	row, err := h.store.Create(&models.Submission{
		ThemeName:   sub.ThemeName,
		ThemeSlug:   themeSlug,
		AuthorName:  sub.AuthorName,
		AuthorEmail: sub.AuthorEmail,
		PaidStatus:  sub.PaidStatus,
		Status:      models.SubmissionStatusPending,
		Payload:     payload,
	})
	if err != nil {
		slog.Error("record submission failed", "theme", sub.ThemeName, "error", err)
		return nil
	}
	return row
}

func (h *Submissions) recordCompleted(row *models.Submission, result *pipeline.Result) {
	if h.store == nil || row == nil {
		return
	}
	if err := h.store.MarkCompleted(row.ID, result.Branch, result.FileName, result.PRURL); err != nil {
		slog.Error("mark submission completed failed", "id", row.ID, "error", err)
	}
}

func (h *Submissions) recordFailed(row *models.Submission, runErr error) {
	if h.store == nil || row == nil {
		return
	}
	if err := h.store.MarkFailed(row.ID, runErr.Error()); err != nil {
		slog.Error("mark submission failed failed", "id", row.ID, "error", err)
	}
}

// Health handles GET /health.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// errorJSON writes a JSON error body with the given status code.
func errorJSON(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
