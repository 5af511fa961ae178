package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/taxregimes/taxregimes/internal/compare"
	"github.com/taxregimes/taxregimes/internal/config"
	"github.com/taxregimes/taxregimes/internal/domain"
	"github.com/taxregimes/taxregimes/internal/metrics"
	"github.com/taxregimes/taxregimes/internal/output"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	in, ok := s.readInput(w, r, "calculate")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RequestTimeout)
	defer cancel()

	summary, err := s.engine.RunContext(ctx, in)
	if err != nil {
		s.calculationFailed(w, r, "calculate", err)
		return
	}
	metrics.Calculations.WithLabelValues("calculate", "success").Inc()
	metrics.ObserveSummary(summary)
	if best, ok := summary.Best(); ok {
		trace.SpanFromContext(ctx).SetAttributes(attribute.String("best_regime", string(best.ID)))
	}

	format := r.URL.Query().Get("format")
	if format == "" || output.NormalizeFormatName(format) == "json" {
		s.writeJSON(w, http.StatusOK, summary)
		return
	}
	if output.GetFormatterByName(format) == nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("unsupported format: %s", format))
		return
	}

	var buf bytes.Buffer
	if err := output.GenerateReport(&buf, summary, format, &s.rules); err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", contentType(output.NormalizeFormatName(format)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := compare.CompareOptions{}
	if base := q.Get("base"); base != "" {
		id, err := domain.ParseRegimeID(base)
		if err != nil {
			s.writeError(w, r, http.StatusBadRequest, err)
			return
		}
		opts.BaseRegime = id
	}
	if v := q.Get("include_unavailable"); v != "" {
		include, err := strconv.ParseBool(v)
		if err != nil {
			s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("include_unavailable: %w", err))
			return
		}
		opts.IncludeUnavailable = include
	}

	in, ok := s.readInput(w, r, "compare")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RequestTimeout)
	defer cancel()

	compSet, err := s.compare.Compare(ctx, in, opts)
	if errors.Is(err, compare.ErrNoBaseRegime) {
		metrics.CalculationErrors.WithLabelValues("compare", "validation").Inc()
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		s.calculationFailed(w, r, "compare", err)
		return
	}
	metrics.Calculations.WithLabelValues("compare", "success").Inc()

	switch strings.ToLower(q.Get("format")) {
	case "", "json":
		s.writeJSON(w, http.StatusOK, compSet)
	case "table":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, (&compare.TableFormatter{}).Format(compSet))
	case "csv":
		out, err := (&compare.CSVFormatter{}).Format(compSet)
		if err != nil {
			s.writeError(w, r, http.StatusInternalServerError, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		_, _ = io.WriteString(w, out)
	default:
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("unsupported format: %s", q.Get("format")))
	}
}

func (s *Server) handleRegimes(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, domain.Regimes())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// readInput decodes the request body. JSON is parsed strictly; a YAML content type
// selects the YAML parser used for input files.
func (s *Server) readInput(w http.ResponseWriter, r *http.Request, operation string) (domain.CalcInput, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, r, http.StatusRequestEntityTooLarge, fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit))
		} else {
			s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("failed to read body: %w", err))
		}
		return domain.CalcInput{}, false
	}

	var in domain.CalcInput
	if strings.Contains(r.Header.Get("Content-Type"), "yaml") {
		in, err = s.parser.ParseInput(body)
	} else {
		in, err = s.parser.ParseJSON(body)
	}
	if err != nil {
		errorType := "parse"
		if errors.Is(err, config.ErrInvalidInput) {
			errorType = "validation"
		}
		metrics.CalculationErrors.WithLabelValues(operation, errorType).Inc()
		s.writeError(w, r, http.StatusBadRequest, err)
		return domain.CalcInput{}, false
	}
	return in, true
}

func (s *Server) calculationFailed(w http.ResponseWriter, r *http.Request, operation string, err error) {
	metrics.Calculations.WithLabelValues(operation, "error").Inc()
	status := http.StatusInternalServerError
	errorType := "internal"
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		status, errorType = http.StatusGatewayTimeout, "timeout"
	case errors.Is(err, context.Canceled):
		status, errorType = 499, "cancelled"
	}
	metrics.CalculationErrors.WithLabelValues(operation, errorType).Inc()
	s.writeError(w, r, status, err)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	id := RequestID(r.Context())
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("request_id", id), zap.Error(err))
	} else {
		s.logger.Debug("request rejected", zap.String("request_id", id), zap.Error(err))
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error(), RequestID: id})
}

func contentType(format string) string {
	switch format {
	case "csv", "monthly-csv":
		return "text/csv; charset=utf-8"
	case "html":
		return "text/html; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}
