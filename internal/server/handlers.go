package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/njchilds90/polylead"
)

// Handlers contains the HTTP handlers for the analyzer.
type Handlers struct {
	svc          *Service
	logger       *slog.Logger
	maxBodyBytes int64
}

// NewHandlers creates handlers for the given service. Per-request records
// go to logger; a nil logger means slog.Default().
func NewHandlers(svc *Service, logger *slog.Logger, maxBodyBytes int64) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = 1 << 20
	}
	return &Handlers{svc: svc, logger: logger, maxBodyBytes: maxBodyBytes}
}

// HandleValidate handles POST /v1/validate.
//
// Description:
//
//	Runs the pre-flight checks. The answer is 200 either way; an invalid
//	expression carries the failing rule's code and position.
//
// Response:
//
//	200 OK: ValidateResponse
//	400 Bad Request: malformed body
func (h *Handlers) HandleValidate(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := h.logger.With("request_id", requestID, "handler", "HandleValidate")

	req, ok := bindExpression(c, logger)
	if !ok {
		return
	}

	err := h.svc.Check(c.Request.Context(), req.Expression)
	if err == nil {
		c.JSON(http.StatusOK, ValidateResponse{Valid: true})
		return
	}
	var ve *polylead.ValidationError
	if !errors.As(err, &ve) {
		logger.Error("Validation failed unexpectedly", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error", Code: codeInternal})
		return
	}
	logger.Debug("Expression invalid", "code", ve.Kind.Code())
	c.JSON(http.StatusOK, ValidateResponse{
		Valid:    false,
		Code:     ve.Kind.Code(),
		Message:  ve.Error(),
		Position: position(ve),
	})
}

// HandleNormalize handles POST /v1/normalize.
//
// Response:
//
//	200 OK: NormalizeResponse
//	400 Bad Request: malformed body
//	422 Unprocessable Entity: the expression was rejected
func (h *Handlers) HandleNormalize(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := h.logger.With("request_id", requestID, "handler", "HandleNormalize")

	req, ok := bindExpression(c, logger)
	if !ok {
		return
	}
	normalized, err := h.svc.Normalize(c.Request.Context(), req.Expression)
	if err != nil {
		writeAnalyzerError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, NormalizeResponse{Expression: req.Expression, Normalized: normalized})
}

// HandleAnalyze handles POST /v1/analyze.
//
// Description:
//
//	Validates, normalizes and aggregates the expression and returns the
//	leading term with its coefficient and degree.
//
// Response:
//
//	200 OK: AnalyzeResponse
//	400 Bad Request: malformed body
//	422 Unprocessable Entity: the expression was rejected
func (h *Handlers) HandleAnalyze(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := h.logger.With("request_id", requestID, "handler", "HandleAnalyze")

	req, ok := bindExpression(c, logger)
	if !ok {
		return
	}
	res, err := h.svc.Analyze(c.Request.Context(), req.Expression)
	if err != nil {
		writeAnalyzerError(c, logger, err)
		return
	}
	logger.Info("Analyzed expression", "leading_term", res.LeadingTerm.String(), "degree", res.Degree())
	c.JSON(http.StatusOK, AnalyzeResponse{RequestID: requestID, Analysis: res})
}

// HandleTool handles POST /tool.
//
// Description:
//
//	Executes one tool call. The body must be a single ToolRequest object
//	with no unknown fields and no trailing data. Tool failures are reported
//	inside the 200 response, as agent frameworks expect.
//
// Response:
//
//	200 OK: polylead.ToolResponse
//	400 Bad Request: malformed body
func (h *Handlers) HandleTool(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := h.logger.With("request_id", requestID, "handler", "HandleTool")

	body := http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)
	defer body.Close()

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	var req polylead.ToolRequest
	if err := dec.Decode(&req); err != nil {
		logger.Warn("Invalid tool request", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: codeInvalidRequest})
		return
	}
	if dec.More() {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid JSON: trailing data", Code: codeInvalidRequest})
		return
	}

	resp := h.svc.Tool(c.Request.Context(), req)
	if resp.Error != "" {
		logger.Info("Tool call failed", "tool", req.Tool, "error", resp.Error)
	}
	c.JSON(http.StatusOK, resp)
}

// HandleSchema handles GET /schema.
func (h *Handlers) HandleSchema(c *gin.Context) {
	c.Data(http.StatusOK, "application/json", []byte(polylead.MCPToolSpec()))
}

// HandleHealth handles GET /health.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

func bindExpression(c *gin.Context, logger *slog.Logger) (ExpressionRequest, bool) {
	var req ExpressionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  codeInvalidRequest,
		})
		return req, false
	}
	return req, true
}

// writeAnalyzerError maps rejections to 422 with the kind's code and
// everything else to 500.
func writeAnalyzerError(c *gin.Context, logger *slog.Logger, err error) {
	var ve *polylead.ValidationError
	if errors.As(err, &ve) {
		logger.Warn("Expression rejected", "code", ve.Kind.Code(), "error", err)
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:    ve.Error(),
			Code:     ve.Kind.Code(),
			Position: position(ve),
		})
		return
	}
	logger.Error("Analyzer failed", "error", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error", Code: codeInternal})
}

func position(ve *polylead.ValidationError) *int {
	if ve.Pos < 0 {
		return nil
	}
	p := ve.Pos
	return &p
}

// getOrCreateRequestID returns the caller's X-Request-ID or a new UUID and
// echoes it on the response.
func getOrCreateRequestID(c *gin.Context) string {
	if id := c.GetString(requestIDKey); id != "" {
		return id
	}
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header("X-Request-ID", requestID)
	c.Set(requestIDKey, requestID)
	return requestID
}
