package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Quantiphi-INC/Counties-trasform-scripts/pkg/deeds/internalerr"
	"github.com/Quantiphi-INC/Counties-trasform-scripts/pkg/deeds/store"
)

func respond(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// respondErr centralizes sentinel error translation to HTTP responses so
// every handler produces the same JSON error envelope.
func (h *Handler) respondErr(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, internalerr.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, internalerr.ErrInvalidInput), errors.Is(err, internalerr.ErrInvalidConfig):
		status = http.StatusBadRequest
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", msg,
		)
		msg = "internal error"
	}
	respond(w, status, map[string]string{"error": msg})
}

type ownerJSON struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	FirstName   string `json:"first_name,omitempty"`
	MiddleName  string `json:"middle_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	RecordDate  string `json:"record_date,omitempty"`
	Role        string `json:"role"`
}

type ownersResponse struct {
	ParcelID string      `json:"parcel_id"`
	Situs    string      `json:"situs,omitempty"`
	County   string      `json:"county,omitempty"`
	Owners   []ownerJSON `json:"owners"`
}

type historyResponse struct {
	ParcelID  string      `json:"parcel_id"`
	Transfers []ownerJSON `json:"transfers"`
}

type invalidJSON struct {
	ID         string `json:"id"`
	ParcelID   string `json:"parcel_id"`
	Raw        string `json:"raw"`
	Reason     string `json:"reason"`
	RecordDate string `json:"record_date,omitempty"`
}

type invalidsResponse struct {
	Invalids []invalidJSON `json:"invalids"`
}

type summaryResponse struct {
	ParcelID     string `json:"parcel_id"`
	Owners       int    `json:"owners"`
	Persons      int    `json:"persons"`
	Companies    int    `json:"companies"`
	Invalids     int    `json:"invalids"`
	Transactions int    `json:"transactions"`
}

type statsResponse struct {
	Properties      int64 `json:"properties"`
	Owners          int64 `json:"owners"`
	Persons         int64 `json:"persons"`
	Companies       int64 `json:"companies"`
	Invalids        int64 `json:"invalids"`
	OrphanedParcels int64 `json:"orphaned_parcels"`
}

func toOwnerJSON(rows []store.OwnerRow) []ownerJSON {
	out := make([]ownerJSON, 0, len(rows))
	for _, r := range rows {
		out = append(out, ownerJSON{
			ID:          r.ID,
			Kind:        r.Kind,
			FirstName:   r.FirstName,
			MiddleName:  r.MiddleName,
			LastName:    r.LastName,
			CompanyName: r.CompanyName,
			RecordDate:  r.RecordDate,
			Role:        r.Role,
		})
	}
	return out
}

func toInvalidJSON(rows []store.InvalidRow) []invalidJSON {
	out := make([]invalidJSON, 0, len(rows))
	for _, r := range rows {
		out = append(out, invalidJSON{
			ID:         r.ID,
			ParcelID:   r.ParcelID,
			Raw:        r.Raw,
			Reason:     r.Reason,
			RecordDate: r.RecordDate,
		})
	}
	return out
}
