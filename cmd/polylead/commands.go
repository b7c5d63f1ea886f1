package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/njchilds90/polylead"
	"github.com/njchilds90/polylead/internal/config"
	"github.com/njchilds90/polylead/internal/tui"
	"github.com/njchilds90/polylead/internal/ux"
)

// errRejected marks an expression the analyzer refused. The report has
// already been printed, so main only sets the exit status.
var errRejected = errors.New("expression rejected")

// app carries what every subcommand needs once flags are parsed.
type app struct {
	in       io.Reader
	out      io.Writer
	errOut   io.Writer
	cfgPath  string
	logLevel string

	logger   *slog.Logger
	analyzer *polylead.Analyzer
}

// newRootCmd builds the command tree reading from in and printing to out,
// with logs and error reports on errOut.
func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: in, out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "polylead",
		Short: "Find the leading term of a polynomial expression",
		Long: `polylead validates a polynomial typed as text, expands it into
monomials, combines like terms and reports the term of highest total degree.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return a.setup() },
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "path to a YAML config file (default $"+config.EnvConfigPath+")")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")

	root.AddCommand(
		a.validateCmd(),
		a.normalizeCmd(),
		a.analyzeCmd(),
		a.toolCmd(),
		a.interactiveCmd(),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		if _, err := config.ParseLevel(a.logLevel); err != nil {
			return err
		}
		cfg.Logging.Level = a.logLevel
	}
	a.logger = cfg.Logging.NewLogger(a.errOut)
	a.analyzer = polylead.New(
		polylead.WithMaxTerms(cfg.Analyzer.MaxTerms),
		polylead.WithMaxLength(cfg.Analyzer.MaxExpressionLength),
	)
	a.logger.Debug("analyzer ready",
		"max_terms", a.analyzer.MaxTerms(),
		"max_length", a.analyzer.MaxLength())
	return nil
}

// expressions returns the single argument, or every non-blank stdin line
// when no argument is given.
func (a *app) expressions(args []string) ([]string, error) {
	if len(args) == 1 {
		return args, nil
	}
	var exprs []string
	sc := bufio.NewScanner(a.in)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			exprs = append(exprs, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	if len(exprs) == 0 {
		return nil, errors.New("no expression given")
	}
	return exprs, nil
}

// =============================================================================
// validate
// =============================================================================

func (a *app) validateCmd() *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "validate [expression]",
		Short: "Run the pre-flight syntax checks",
		Long: `Checks an expression without analyzing it. Reads one expression per
line from stdin when no argument is given. Exits 1 if any is invalid.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exprs, err := a.expressions(args)
			if err != nil {
				return err
			}
			rejected := 0
			for _, expr := range exprs {
				if err := polylead.Check(expr); err != nil {
					rejected++
					a.logger.Debug("expression invalid", "expression", expr, "code", polylead.KindOf(err).Code())
					if !quiet {
						fmt.Fprintln(a.out, ux.FormatError(expr, err))
					}
					continue
				}
				if !quiet {
					fmt.Fprintln(a.out, ux.FormatValid(expr))
				}
			}
			if rejected > 0 {
				return errRejected
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print nothing, report through the exit status only")
	return cmd
}

// =============================================================================
// normalize
// =============================================================================

func (a *app) normalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize [expression]",
		Short: "Expand an expression into a flat sum of monomials",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exprs, err := a.expressions(args)
			if err != nil {
				return err
			}
			failed := false
			for _, expr := range exprs {
				if err := polylead.Check(expr); err != nil {
					fmt.Fprintln(a.errOut, ux.FormatError(expr, err))
					failed = true
					continue
				}
				normalized, err := a.analyzer.Normalize(expr)
				if err != nil {
					fmt.Fprintln(a.errOut, ux.FormatError(expr, err))
					failed = true
					continue
				}
				fmt.Fprintln(a.out, normalized)
			}
			if failed {
				return errRejected
			}
			return nil
		},
	}
}

// =============================================================================
// analyze
// =============================================================================

func (a *app) analyzeCmd() *cobra.Command {
	var asJSON, asLaTeX, plain bool
	cmd := &cobra.Command{
		Use:   "analyze [expression]",
		Short: "Report the leading term, its coefficient and degree",
		Long: `Analyzes an expression and prints a report of its leading term.
Reads one expression per line from stdin when no argument is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON && asLaTeX {
				return errors.New("--json and --latex are mutually exclusive")
			}
			exprs, err := a.expressions(args)
			if err != nil {
				return err
			}
			failed := false
			for _, expr := range exprs {
				res, err := a.analyzer.Analyze(expr)
				if err != nil {
					a.logger.Debug("analysis rejected", "expression", expr, "error", err)
					if asJSON {
						if err := a.writeJSON(map[string]string{
							"expression": expr,
							"error":      err.Error(),
							"code":       polylead.KindOf(err).Code(),
						}); err != nil {
							return err
						}
					} else {
						fmt.Fprintln(a.errOut, ux.FormatError(expr, err))
					}
					failed = true
					continue
				}
				a.logger.Debug("analysis complete", "expression", expr, "degree", res.Degree())
				switch {
				case asJSON:
					if err := a.writeJSON(res); err != nil {
						return err
					}
				case asLaTeX:
					fmt.Fprintln(a.out, res.Render().LaTeX)
				case plain:
					fmt.Fprintln(a.out, res.Render().Text)
				default:
					fmt.Fprintln(a.out, ux.FormatAnalysis(res))
				}
			}
			if failed {
				return errRejected
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full analysis as JSON")
	cmd.Flags().BoolVar(&asLaTeX, "latex", false, "print only the leading term as LaTeX")
	cmd.Flags().BoolVar(&plain, "plain", false, "print only the leading term as caret text")
	return cmd
}

func (a *app) writeJSON(v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = fmt.Fprintln(a.out, string(b))
	return err
}

// =============================================================================
// tool
// =============================================================================

func (a *app) toolCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tool <name> [expression]",
		Short: "Run one agent tool call and print its JSON response",
		Long: `Dispatches a tool call exactly as the HTTP /tool endpoint would.
Tools: validate, check, tokenize, normalize, parse_monomial, aggregate,
analyze, render, mcp_spec.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := polylead.ToolRequest{Tool: args[0], Params: map[string]interface{}{}}
			if len(args) == 2 {
				req.Params["expr"] = args[1]
			}
			resp := a.analyzer.HandleToolCall(req)
			if err := a.writeJSON(resp); err != nil {
				return err
			}
			if resp.Error != "" {
				return errRejected
			}
			return nil
		},
	}
}

// =============================================================================
// interactive
// =============================================================================

func (a *app) interactiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"i"},
		Short:   "Type expressions and see them validated and analyzed live",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f, ok := a.in.(*os.File); ok && isTerminal(f) {
				return tui.Run(a.analyzer, f, a.out)
			}
			return a.lineMode()
		},
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// lineMode drives a session one stdin line at a time, for pipes and CI.
func (a *app) lineMode() error {
	session := polylead.NewSession(a.analyzer)
	sc := bufio.NewScanner(a.in)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch session.Input(line) {
		case polylead.StateIdle:
			continue
		case polylead.StateInvalid:
			fmt.Fprintln(a.out, ux.FormatError(line, session.Err()))
			continue
		}
		if _, err := session.Analyze(); err != nil {
			fmt.Fprintln(a.out, ux.FormatError(line, err))
			continue
		}
		fmt.Fprintln(a.out, ux.FormatAnalysis(session.Result()))
	}
	return sc.Err()
}
