package server

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/njchilds90/polylead"
)

var tracer = otel.Tracer("polylead.server")

// Service runs analyzer operations with tracing and metrics around them.
//
// Description:
//
//	Each method opens one span named after the operation, records its
//	latency and outcome, and counts rejections by error kind. A rejection
//	is an expression the analyzer refused (*polylead.ValidationError); any
//	other failure is an internal error.
//
// Thread Safety: Safe for concurrent use.
type Service struct {
	analyzer *polylead.Analyzer
}

// NewService wraps an analyzer. A nil analyzer uses the default limits.
func NewService(a *polylead.Analyzer) *Service {
	if a == nil {
		a = polylead.New()
	}
	return &Service{analyzer: a}
}

// Analyzer returns the wrapped analyzer.
func (s *Service) Analyzer() *polylead.Analyzer { return s.analyzer }

// observe runs fn inside a span and records its metrics.
func (s *Service) observe(ctx context.Context, op, expr string, fn func(ctx context.Context, span trace.Span) error) error {
	ctx, span := tracer.Start(ctx, "polylead."+op, trace.WithAttributes(
		attribute.String("polylead.operation", op),
		attribute.Int("polylead.expression_length", len(expr)),
	))
	defer span.End()

	start := time.Now()
	err := fn(ctx, span)
	operationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	outcome := outcomeOK
	var ve *polylead.ValidationError
	switch {
	case err == nil:
		span.SetStatus(codes.Ok, "")
	case errors.As(err, &ve):
		outcome = outcomeRejected
		rejectionsTotal.WithLabelValues(ve.Kind.Code()).Inc()
		span.SetAttributes(attribute.String("polylead.error_kind", ve.Kind.Code()))
		span.SetStatus(codes.Error, ve.Kind.Code())
	default:
		outcome = outcomeError
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	operationsTotal.WithLabelValues(op, outcome).Inc()
	return err
}

// Check validates expr and returns the first failing rule, or nil.
func (s *Service) Check(ctx context.Context, expr string) error {
	return s.observe(ctx, "validate", expr, func(context.Context, trace.Span) error {
		return polylead.Check(expr)
	})
}

// Normalize flattens expr into a sum of monomials.
func (s *Service) Normalize(ctx context.Context, expr string) (string, error) {
	var out string
	err := s.observe(ctx, "normalize", expr, func(_ context.Context, span trace.Span) error {
		if err := polylead.Check(expr); err != nil {
			return err
		}
		n, err := s.analyzer.Normalize(expr)
		if err != nil {
			return asValidation(err)
		}
		out = n
		span.SetAttributes(attribute.Int("polylead.normalized_length", len(n)))
		return nil
	})
	return out, err
}

// Analyze runs the full pipeline on expr.
func (s *Service) Analyze(ctx context.Context, expr string) (*polylead.Analysis, error) {
	var res *polylead.Analysis
	err := s.observe(ctx, "analyze", expr, func(_ context.Context, span trace.Span) error {
		a, err := s.analyzer.Analyze(expr)
		if err != nil {
			return err
		}
		res = a
		leadingDegree.Observe(float64(a.Degree()))
		span.SetAttributes(
			attribute.Int("polylead.degree", a.Degree()),
			attribute.Int("polylead.groups", len(a.Groups)),
			attribute.String("polylead.leading_term", a.LeadingTerm.String()),
		)
		return nil
	})
	return res, err
}

// Tool dispatches a tool call. Tool errors are reported in the response,
// so the operation itself is counted by the error code it carries.
func (s *Service) Tool(ctx context.Context, req polylead.ToolRequest) polylead.ToolResponse {
	var resp polylead.ToolResponse
	expr, _ := req.Params["expr"].(string)
	_ = s.observe(ctx, "tool", expr, func(_ context.Context, span trace.Span) error {
		span.SetAttributes(attribute.String("polylead.tool", req.Tool))
		resp = s.analyzer.HandleToolCall(req)
		if resp.Code != "" {
			span.SetAttributes(attribute.String("polylead.error_kind", resp.Code))
		}
		return nil
	})
	return resp
}

// asValidation reports syntax errors from Normalize the way Analyze does.
func asValidation(err error) error {
	var ve *polylead.ValidationError
	if errors.As(err, &ve) {
		return err
	}
	pos := -1
	var se *polylead.SyntaxError
	if errors.As(err, &se) {
		pos = se.Pos
	}
	return &polylead.ValidationError{Kind: polylead.KindNoParsableTermsAfterNormalization, Pos: pos, Err: err}
}
