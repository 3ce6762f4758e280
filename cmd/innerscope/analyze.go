package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mgomes/innerscope/innerscope"
	"github.com/spf13/cobra"
)

var functionStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#F59E0B")).
	Bold(true)

type lintWarning struct {
	Function string
	Pos      innerscope.Position
	Message  string
}

func newAnalyzeCommand(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <script>",
		Short: "Classify the names of every function and report issues",
		Long: `Print each top-level function's parameters, assigned names and
borrowed closure and global names, plus the names the configured policy
cannot supply. Unreachable statements and unsupplied names are reported as
issues and make the command exit non-zero.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := app.engine(cmd)
			if err != nil {
				return err
			}
			script, scriptPath, err := compileFile(engine, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			issues := 0
			for _, fn := range script.Functions() {
				desc, err := engine.Analyze(fn)
				if err != nil {
					return err
				}
				sf, err := innerscope.NewScopedFunction(fn, app.settings.options()...)
				if err != nil {
					return err
				}
				writeDescriptor(out, fn, desc, sf.Missing())
				if missing := sf.Missing(); len(missing) > 0 {
					issues++
					fmt.Fprintf(out, "%s:%d:%d: undefined names %s (%s)\n",
						scriptPath, fn.Pos.Line, fn.Pos.Column, strings.Join(missing, ", "), fn.Name)
				}
			}

			warnings := analyzeScriptWarnings(script)
			for _, warning := range warnings {
				line := max(warning.Pos.Line, 1)
				column := max(warning.Pos.Column, 1)
				fmt.Fprintf(out, "%s:%d:%d: %s (%s)\n", scriptPath, line, column, warning.Message, warning.Function)
			}
			issues += len(warnings)

			if issues == 0 {
				fmt.Fprintln(out, "No issues found")
				return nil
			}
			return fmt.Errorf("analysis found %d issue(s)", issues)
		},
	}
}

func writeDescriptor(w io.Writer, fn *innerscope.ScriptFunction, desc *innerscope.Descriptor, missing []string) {
	fmt.Fprintln(w, functionStyle.Render(fn.Signature()))
	rows := []struct {
		label string
		names []string
	}{
		{"params", desc.Params},
		{"assigned", desc.Assigned},
		{"closure", desc.Closure},
		{"global", desc.Global},
		{"missing", missing},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "  %-9s %s\n", row.label+":", nameList(row.names))
	}
	if desc.Yields {
		fmt.Fprintln(w, "  yields:   true")
	}
}

func nameList(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ", ")
}

func analyzeScriptWarnings(script *innerscope.Script) []lintWarning {
	warnings := make([]lintWarning, 0)
	for _, fn := range script.Functions() {
		lintStatements(fn.Name, fn.Body, &warnings)
	}

	sort.SliceStable(warnings, func(i, j int) bool {
		if warnings[i].Pos.Line != warnings[j].Pos.Line {
			return warnings[i].Pos.Line < warnings[j].Pos.Line
		}
		if warnings[i].Pos.Column != warnings[j].Pos.Column {
			return warnings[i].Pos.Column < warnings[j].Pos.Column
		}
		return warnings[i].Function < warnings[j].Function
	})

	return warnings
}

func lintStatements(function string, statements []innerscope.Statement, warnings *[]lintWarning) bool {
	terminated := false
	for _, stmt := range statements {
		if terminated {
			*warnings = append(*warnings, lintWarning{
				Function: function,
				Pos:      stmt.Pos(),
				Message:  "unreachable statement",
			})
			continue
		}
		if statementTerminates(function, stmt, warnings) {
			terminated = true
		}
	}
	return terminated
}

func statementTerminates(function string, stmt innerscope.Statement, warnings *[]lintWarning) bool {
	switch typed := stmt.(type) {
	case *innerscope.ReturnStmt, *innerscope.RaiseStmt:
		return true
	case *innerscope.IfStmt:
		return ifStatementTerminates(function, typed, warnings)
	case *innerscope.ForStmt:
		lintStatements(function, typed.Body, warnings)
		return false
	case *innerscope.WhileStmt:
		lintStatements(function, typed.Body, warnings)
		return false
	case *innerscope.FunctionStmt:
		lintStatements(function+"."+typed.Name, typed.Body, warnings)
		return false
	default:
		return false
	}
}

func ifStatementTerminates(function string, stmt *innerscope.IfStmt, warnings *[]lintWarning) bool {
	consequentTerminated := lintStatements(function, stmt.Consequent, warnings)
	elseIfAllTerminated := true
	for _, elseIf := range stmt.ElseIf {
		if !ifStatementTerminates(function, elseIf, warnings) {
			elseIfAllTerminated = false
		}
	}
	if len(stmt.Alternate) == 0 {
		return false
	}
	alternateTerminated := lintStatements(function, stmt.Alternate, warnings)
	return consequentTerminated && elseIfAllTerminated && alternateTerminated
}
