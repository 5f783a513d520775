package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"sparsefields/internal/logger"
	"sparsefields/internal/resolver"
	"sparsefields/internal/sparse"
)

const columnsEndpoint = "/api/columns"

// ColumnsHandler resolves a sparse fieldset for a model.
// POST takes a JSON body, GET takes fields/relations query parameters.
func ColumnsHandler(w http.ResponseWriter, r *http.Request) {
	var (
		modelName string
		req       sparse.Accessor
	)

	switch r.Method {
	case http.MethodGet:
		params := sparse.ParseQuery(r.URL.RawQuery)
		modelName, _ = params["model"].(string)
		req = params

	case http.MethodPost:
		body, err := io.ReadAll(r.Body)
		if err != nil {
			logger.Warn("read_body_failed", map[string]any{
				"endpoint": columnsEndpoint,
				"error":    err.Error(),
			})
			http.Error(w, "Failed to read body: "+err.Error(), http.StatusBadRequest)
			return
		}
		var parsed resolver.ColumnsRequest
		if err := json.Unmarshal(body, &parsed); err != nil {
			logger.Warn("invalid_json", map[string]any{
				"endpoint": columnsEndpoint,
				"error":    err.Error(),
			})
			http.Error(w, "Invalid JSON body: "+err.Error(), http.StatusBadRequest)
			return
		}
		logger.Info("request", map[string]any{
			"endpoint": columnsEndpoint,
			"payload":  json.RawMessage(body),
		})
		modelName, req = parsed.Model, parsed

	default:
		logger.Warn("method_not_allowed", map[string]any{
			"endpoint": columnsEndpoint,
			"method":   r.Method,
		})
		http.Error(w, "Only GET and POST allowed", http.StatusMethodNotAllowed)
		return
	}

	if modelName == "" {
		http.Error(w, "model is required", http.StatusBadRequest)
		return
	}

	result, err := resolver.Resolve(r.Context(), modelName, req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, resolver.ErrModelNotFound) {
			status = http.StatusNotFound
		}
		logger.Error("resolver_error", map[string]any{
			"endpoint": columnsEndpoint,
			"model":    modelName,
			"error":    err.Error(),
		})
		http.Error(w, "Failed to resolve columns: "+err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		logger.Error("write_response_failed", map[string]any{
			"endpoint": columnsEndpoint,
			"error":    err.Error(),
		})
	}
}
