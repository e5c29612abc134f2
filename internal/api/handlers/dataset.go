package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/wonny/trendlens/internal/dashboard"
	"github.com/wonny/trendlens/internal/datastore"
	"github.com/wonny/trendlens/internal/loader"
	"github.com/wonny/trendlens/internal/table"
	"github.com/wonny/trendlens/pkg/logger"
)

// DatasetHandler handles dataset upload and lifecycle endpoints.
type DatasetHandler struct {
	store    *datastore.Store
	builder  *dashboard.Builder
	maxBytes int64
	logger   *logger.Logger
}

// NewDatasetHandler creates a new dataset handler.
func NewDatasetHandler(store *datastore.Store, builder *dashboard.Builder, maxBytes int64, log *logger.Logger) *DatasetHandler {
	return &DatasetHandler{
		store:    store,
		builder:  builder,
		maxBytes: maxBytes,
		logger:   log,
	}
}

// DatasetResponse describes a stored dataset.
type DatasetResponse struct {
	ID        string             `json:"id"`
	CreatedAt string             `json:"created_at"`
	Overview  dashboard.Overview `json:"overview"`
}

// Upload ingests a Google Trends interest CSV plus optional region and
// related-query files. Plain and gzip-compressed files are both accepted.
// POST /api/datasets  (multipart fields: interest, regions, related)
func (h *DatasetHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		respondError(w, http.StatusBadRequest, "upload too large or not a valid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	part, name, err := formFile(r, "interest")
	if err != nil {
		respondError(w, http.StatusBadRequest, "malformed multipart form")
		return
	}
	if part == nil {
		respondError(w, http.StatusBadRequest, "an 'interest' CSV file is required")
		return
	}
	defer part.Close()

	obs, err := readObservationsPart(part)
	if err != nil {
		h.logger.WithError(err).Info("Rejected interest upload")
		respondError(w, http.StatusBadRequest, "interest file: "+err.Error())
		return
	}

	bundle := &loader.Bundle{Observations: obs, Sources: []string{name}}

	if part, name, err := formFile(r, "regions"); err != nil {
		respondError(w, http.StatusBadRequest, "malformed multipart form")
		return
	} else if part != nil {
		defer part.Close()

		src, err := loader.MaybeGzip(part)
		if err == nil {
			bundle.Regions, err = loader.ReadRegions(src)
		}
		if err != nil {
			h.logger.WithError(err).Info("Rejected regions upload")
			respondError(w, http.StatusBadRequest, "regions file: "+err.Error())
			return
		}
		bundle.Sources = append(bundle.Sources, name)
	}

	if part, name, err := formFile(r, "related"); err != nil {
		respondError(w, http.StatusBadRequest, "malformed multipart form")
		return
	} else if part != nil {
		defer part.Close()

		src, err := loader.MaybeGzip(part)
		if err == nil {
			bundle.Related, err = loader.ReadRelated(src)
		}
		if err != nil {
			h.logger.WithError(err).Info("Rejected related upload")
			respondError(w, http.StatusBadRequest, "related file: "+err.Error())
			return
		}
		bundle.Sources = append(bundle.Sources, name)
	}

	d := h.store.Put(bundle)

	h.logger.WithFields(map[string]interface{}{
		"dataset_id": d.ID,
		"rows":       obs.Len(),
		"keywords":   len(obs.Columns()),
	}).Info("Dataset uploaded")

	respondJSON(w, http.StatusCreated, DatasetResponse{
		ID:        d.ID,
		CreatedAt: d.CreatedAt.Format(time.RFC3339),
		Overview:  h.builder.BuildOverview(bundle),
	})
}

// Get returns the overview of a stored dataset.
// GET /api/datasets/{id}
func (h *DatasetHandler) Get(w http.ResponseWriter, r *http.Request) {
	d, err := h.store.Get(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusNotFound, "dataset not found")
		return
	}

	respondJSON(w, http.StatusOK, DatasetResponse{
		ID:        d.ID,
		CreatedAt: d.CreatedAt.Format(time.RFC3339),
		Overview:  h.builder.BuildOverview(d.Bundle),
	})
}

// Delete evicts a stored dataset.
// DELETE /api/datasets/{id}
func (h *DatasetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(mux.Vars(r)["id"]); err != nil {
		respondError(w, http.StatusNotFound, "dataset not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// formFile returns the named multipart file, or nil when the part is absent.
func formFile(r *http.Request, field string) (io.ReadCloser, string, error) {
	f, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, "", nil
		}
		return nil, "", err
	}
	return f, header.Filename, nil
}

func readObservationsPart(part io.Reader) (*table.Table, error) {
	src, err := loader.MaybeGzip(part)
	if err != nil {
		return nil, err
	}
	return loader.ReadObservations(src)
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
