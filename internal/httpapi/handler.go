package httpapi

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Quantiphi-INC/Counties-trasform-scripts/internal/metrics"
	"github.com/Quantiphi-INC/Counties-trasform-scripts/pkg/deeds"
	"github.com/Quantiphi-INC/Counties-trasform-scripts/pkg/deeds/internalerr"
	"github.com/Quantiphi-INC/Counties-trasform-scripts/pkg/deeds/owners"
)

// Handler is the thin HTTP layer over a Ledger. It delegates to the
// facade without embedding parsing logic so transport stays isolated.
type Handler struct {
	ledger  *deeds.Ledger
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New creates a new API Handler
func New(ledger *deeds.Ledger, logger *slog.Logger, m *metrics.Metrics) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{ledger: ledger, logger: logger, metrics: m}
}

// Router assembles a chi router with request logging and panic recovery
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(h.logRequests)
	r.Use(chimiddleware.Recoverer)
	h.Register(r)
	return r
}

// Register registers the ownership routes with the chi router
func (h *Handler) Register(r chi.Router) {
	r.Get("/healthz", h.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/owners/parse", h.handleParse)
		r.Post("/records", h.handleIngest)
		r.Route("/properties/{parcelID}", func(r chi.Router) {
			r.Get("/owners", h.handleOwners)
			r.Get("/history", h.handleHistory)
		})
		r.Get("/invalids", h.handleInvalids)
		r.Get("/stats", h.handleStats)
	})
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.logger.InfoContext(r.Context(), "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", chimiddleware.GetReqID(r.Context()),
		)
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

type parseRequest struct {
	Text string `json:"text"`
}

// handleParse classifies a raw owner-name field without persisting it
func (h *Handler) handleParse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid parse request", "error", err.Error())
		h.respondErr(w, r, fmt.Errorf("invalid request body: %w", internalerr.ErrInvalidInput))
		return
	}

	res := h.ledger.ParseOwners(req.Text)

	if h.metrics != nil {
		h.metrics.ParseRequests.Inc()
		persons, companies := 0, 0
		for _, o := range res.Owners {
			if o.Kind == owners.KindCompany {
				companies++
			} else {
				persons++
			}
		}
		h.metrics.ObserveParse(persons, companies, len(res.Invalids))
	}

	respond(w, http.StatusOK, res)
}

type ingestRequest struct {
	ParcelID     string `json:"parcel_id"`
	Situs        string `json:"situs"`
	County       string `json:"county"`
	OwnerName    string `json:"owner_name"`
	Transactions []struct {
		Date    string `json:"date"`
		DocType string `json:"doc_type"`
		Amount  string `json:"amount"`
		Grantee string `json:"grantee"`
	} `json:"transactions"`
	SourcePath string `json:"source_path"`
}

// handleIngest parses and persists one property record, replacing any
// rows previously stored for the parcel.
func (h *Handler) handleIngest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid ingest request", "error", err.Error())
		h.respondErr(w, r, fmt.Errorf("invalid request body: %w", internalerr.ErrInvalidInput))
		return
	}

	rec := deeds.Record{
		ParcelID:   req.ParcelID,
		Situs:      req.Situs,
		County:     req.County,
		OwnerName:  req.OwnerName,
		SourcePath: req.SourcePath,
	}
	for _, tx := range req.Transactions {
		rec.Transactions = append(rec.Transactions, deeds.Transaction{
			Date:    tx.Date,
			DocType: tx.DocType,
			Amount:  tx.Amount,
			Grantee: tx.Grantee,
		})
	}

	sum, err := h.ledger.IngestRecord(ctx, rec)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordsIngested.Inc()
		h.metrics.ObserveParse(sum.Persons, sum.Companies, sum.Invalids)
	}

	respond(w, http.StatusOK, summaryResponse{
		ParcelID:     sum.ParcelID,
		Owners:       sum.Owners(),
		Persons:      sum.Persons,
		Companies:    sum.Companies,
		Invalids:     sum.Invalids,
		Transactions: sum.Transactions,
	})
}

func (h *Handler) handleOwners(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	parcelID := chi.URLParam(r, "parcelID")

	prop, err := h.ledger.Property(ctx, parcelID)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	rows, err := h.ledger.OwnersOf(ctx, parcelID)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	respond(w, http.StatusOK, ownersResponse{
		ParcelID: prop.ParcelID,
		Situs:    prop.Situs,
		County:   prop.County,
		Owners:   toOwnerJSON(rows),
	})
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	parcelID := chi.URLParam(r, "parcelID")

	if _, err := h.ledger.Property(ctx, parcelID); err != nil {
		h.respondErr(w, r, err)
		return
	}
	rows, err := h.ledger.History(ctx, parcelID)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	respond(w, http.StatusOK, historyResponse{ParcelID: parcelID, Transfers: toOwnerJSON(rows)})
}

func (h *Handler) handleInvalids(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.respondErr(w, r, fmt.Errorf("limit must be a non-negative integer: %w", internalerr.ErrInvalidInput))
			return
		}
		limit = n
	}

	rows, err := h.ledger.Invalids(ctx, limit)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	respond(w, http.StatusOK, invalidsResponse{Invalids: toInvalidJSON(rows)})
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.ledger.Stats(r.Context())
	if err != nil {
		h.respondErr(w, r, err)
		return
	}

	respond(w, http.StatusOK, statsResponse{
		Properties:      stats.Properties,
		Owners:          stats.Owners,
		Persons:         stats.Persons,
		Companies:       stats.Companies,
		Invalids:        stats.Invalids,
		OrphanedParcels: stats.OrphanedParcels,
	})
}
