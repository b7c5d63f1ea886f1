package polylead_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/njchilds90/polylead"
)

// ============================================================
// MCP tool tests
// ============================================================

func call(tool string, params map[string]interface{}) polylead.ToolResponse {
	return polylead.HandleToolCall(polylead.ToolRequest{Tool: tool, Params: params})
}

func TestHandleToolCall_Analyze(t *testing.T) {
	resp := call("analyze", map[string]interface{}{"expr": "3x^2 + 2x - 5"})
	if resp.Error != "" {
		t.Fatalf("unexpected error: %s", resp.Error)
	}
	if resp.String != "3x^2" {
		t.Errorf("want 3x^2, got %s", resp.String)
	}
	if resp.LaTeX != "3x^{2}" {
		t.Errorf("want 3x^{2}, got %s", resp.LaTeX)
	}
	b, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"leading_coefficient":"3"`) {
		t.Errorf("result should carry the analysis, got %s", b)
	}
}

func TestHandleToolCall_Tools(t *testing.T) {
	cases := []struct {
		tool, expr, want string
	}{
		{"validate", "3 x", "false"},
		{"validate", "x/y", "true"},
		{"check", "x + 1", "valid"},
		{"tokenize", "3x^2", "3 x ^ 2"},
		{"normalize", "(x+1)^2", "x^2 + 2x + 1"},
		{"parse_monomial", "4x/y^2", "4x/y^2"},
		{"aggregate", "2x + 3x - y", "5x, -y"},
		{"render", "x - x + 5", "5"},
	}
	for _, c := range cases {
		resp := call(c.tool, map[string]interface{}{"expr": c.expr})
		if resp.Error != "" {
			t.Errorf("%s(%q): unexpected error %s", c.tool, c.expr, resp.Error)
			continue
		}
		if resp.String != c.want {
			t.Errorf("%s(%q): want %q, got %q", c.tool, c.expr, c.want, resp.String)
		}
	}
}

func TestHandleToolCall_ErrorCodes(t *testing.T) {
	cases := []struct {
		tool, expr, code string
	}{
		{"check", "x^", "DANGLING_EXPONENT"},
		{"analyze", "", "EMPTY_INPUT"},
		{"normalize", "x/(x+1)", "NON_MONOMIAL_DIVISOR"},
		{"analyze", "2 3x", "NO_PARSABLE_TERMS"},
	}
	for _, c := range cases {
		resp := call(c.tool, map[string]interface{}{"expr": c.expr})
		if resp.Error == "" || resp.Code != c.code {
			t.Errorf("%s(%q): want code %s, got %q (%s)", c.tool, c.expr, c.code, resp.Code, resp.Error)
		}
	}
}

func TestHandleToolCall_AnalyzerLimits(t *testing.T) {
	short := polylead.New(polylead.WithMaxLength(5))
	for _, tool := range []string{"parse_monomial", "aggregate", "normalize", "analyze"} {
		resp := short.HandleToolCall(polylead.ToolRequest{Tool: tool, Params: map[string]interface{}{"expr": "x+y+z+w"}})
		if resp.Code != "EXPRESSION_TOO_LONG" {
			t.Errorf("%s: want EXPRESSION_TOO_LONG, got %q (%s)", tool, resp.Code, resp.Error)
		}
	}

	narrow := polylead.New(polylead.WithMaxTerms(2))
	cases := []struct {
		tool, expr string
	}{
		{"parse_monomial", "x(y+z+w)/(y+z+w)"},
		{"aggregate", "x(a+b+c) + y"},
	}
	for _, c := range cases {
		resp := narrow.HandleToolCall(polylead.ToolRequest{Tool: c.tool, Params: map[string]interface{}{"expr": c.expr}})
		if resp.Code != "EXPANSION_LIMIT_EXCEEDED" {
			t.Errorf("%s(%q): want EXPANSION_LIMIT_EXCEEDED, got %q (%s)", c.tool, c.expr, resp.Code, resp.Error)
		}
		if resp := call(c.tool, map[string]interface{}{"expr": c.expr}); resp.Code == "EXPANSION_LIMIT_EXCEEDED" {
			t.Errorf("%s(%q): default analyzer should allow it", c.tool, c.expr)
		}
	}
}

func TestAnalyzer_ParseMonomialAndAggregate(t *testing.T) {
	a := polylead.New(polylead.WithMaxLength(4))
	if _, err := a.ParseMonomial("3x^2y"); !errors.Is(err, polylead.ErrExpressionTooLong) {
		t.Errorf("ParseMonomial: want too long, got %v", err)
	}
	if _, err := a.Aggregate("x + y"); !errors.Is(err, polylead.ErrExpressionTooLong) {
		t.Errorf("Aggregate: want too long, got %v", err)
	}
	m, err := a.ParseMonomial("3x^2")
	if err != nil || m.String() != "3x^2" {
		t.Errorf("ParseMonomial(3x^2): got %s, %v", m, err)
	}

	// Expanded text may be longer than the input and still analyzes.
	res, err := a.Analyze("(x+1)^3")
	if err == nil {
		t.Errorf("want too long for 7 bytes, got %s", res.NormalizedExpression)
	}
	b := polylead.New(polylead.WithMaxLength(8))
	if res, err = b.Analyze("(x+1)^3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Degree() != 3 || len(res.NormalizedExpression) <= 8 {
		t.Errorf("want degree 3 from %q, got %d", res.NormalizedExpression, res.Degree())
	}
}

func TestHandleToolCall_BadRequests(t *testing.T) {
	resp := call("analyze", map[string]interface{}{})
	if resp.Error != "missing param: expr" {
		t.Errorf("want missing param error, got %q", resp.Error)
	}
	resp = call("analyze", map[string]interface{}{"expr": 3})
	if !strings.Contains(resp.Error, "must be a string") {
		t.Errorf("want type error, got %q", resp.Error)
	}
	resp = call("factor", map[string]interface{}{"expr": "x"})
	if !strings.Contains(resp.Error, "unknown tool") {
		t.Errorf("want unknown tool error, got %q", resp.Error)
	}
}

func TestMCPToolSpec(t *testing.T) {
	spec := polylead.MCPToolSpec()
	if !json.Valid([]byte(spec)) {
		t.Fatal("tool spec must be valid JSON")
	}
	var parsed struct {
		Tools []struct {
			Name string `json:"name"`
		} `json:"tools"`
	}
	if err := json.Unmarshal([]byte(spec), &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	names := map[string]bool{}
	for _, tool := range parsed.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{"validate", "analyze", "normalize", "render", "mcp_spec"} {
		if !names[want] {
			t.Errorf("tool spec should list %s", want)
		}
	}
	resp := call("mcp_spec", nil)
	if resp.Result != spec {
		t.Error("mcp_spec should return the tool spec")
	}
}
