package polylead

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ============================================================
// MCP Tool Interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
	// Code is the machine-readable error kind, set with Error for
	// expression failures.
	Code string `json:"code,omitempty"`
}

// HandleToolCall dispatches a tool request with the default analyzer.
func HandleToolCall(req ToolRequest) ToolResponse { return defaultAnalyzer.HandleToolCall(req) }

// HandleToolCall dispatches a tool request. Every tool except mcp_spec takes
// the expression text in the "expr" param.
func (a *Analyzer) HandleToolCall(req ToolRequest) ToolResponse {
	getString := func(key string) (string, error) {
		v, ok := req.Params[key]
		if !ok {
			return "", fmt.Errorf("missing param: %s", key)
		}
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("param %s must be a string", key)
		}
		return s, nil
	}
	fail := func(err error) ToolResponse {
		resp := ToolResponse{Error: err.Error()}
		switch err.(type) {
		case *ValidationError, *SyntaxError:
			resp.Code = KindOf(err).Code()
		}
		return resp
	}
	respondTerm := func(g TermGroup, vars []string) ToolResponse {
		d := Render(g, vars)
		return ToolResponse{Result: g, LaTeX: d.LaTeX, String: d.Text}
	}

	if req.Tool == "mcp_spec" {
		return ToolResponse{Result: MCPToolSpec(), String: "MCP tool specification"}
	}
	expr, err := getString("expr")
	if err != nil {
		return ToolResponse{Error: err.Error()}
	}

	switch req.Tool {
	case "validate":
		ok := Validate(expr)
		return ToolResponse{Result: ok, String: fmt.Sprintf("%t", ok)}

	case "check":
		if err := Check(expr); err != nil {
			return fail(err)
		}
		return ToolResponse{Result: true, String: "valid"}

	case "tokenize":
		toks, err := Tokenize(expr)
		if err != nil {
			return fail(err)
		}
		texts := make([]string, 0, len(toks))
		for _, t := range toks {
			if t.Kind != TokenEOF {
				texts = append(texts, t.Text)
			}
		}
		return ToolResponse{Result: toks, String: strings.Join(texts, " ")}

	case "normalize":
		s, err := a.Normalize(expr)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: s, String: s}

	case "parse_monomial":
		m, err := a.ParseMonomial(expr)
		if err != nil {
			return fail(err)
		}
		g := TermGroup{Signature: m.Signature(), Coefficient: m.Coefficient, Degree: m.Degree()}
		return respondTerm(g, Variables(expr))

	case "aggregate":
		groups, err := a.Aggregate(expr)
		if err != nil {
			return fail(err)
		}
		strs := make([]string, len(groups))
		for i, g := range groups {
			strs[i] = g.String()
		}
		return ToolResponse{Result: groups, String: strings.Join(strs, ", ")}

	case "analyze":
		res, err := a.Analyze(expr)
		if err != nil {
			return fail(err)
		}
		d := res.Render()
		return ToolResponse{Result: res, LaTeX: d.LaTeX, String: d.Text}

	case "render":
		res, err := a.Analyze(expr)
		if err != nil {
			return fail(err)
		}
		return respondTerm(res.LeadingTerm, res.AllVariables)
	}

	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

func MCPToolSpec() string {
	expr := map[string]string{"expr": "string"}
	req := []string{"expr"}
	tools := []map[string]interface{}{
		ts("validate", "Report whether a polynomial expression passes the syntax checks", req, expr),
		ts("check", "Validate and return the first failing rule as an error code", req, expr),
		ts("tokenize", "Split an expression into tokens", req, expr),
		ts("normalize", "Expand parentheses and products into a flat sum of monomials", req, expr),
		ts("parse_monomial", "Parse a single term into coefficient and exponents", req, expr),
		ts("aggregate", "Group the terms of a normalized expression by signature", req, expr),
		ts("analyze", "Find the leading term, its coefficient and degree", req, expr),
		ts("render", "Render the leading term as text and LaTeX", req, expr),
		ts("mcp_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
