package main

import (
	"fmt"
	"os"

	"github.com/mgomes/innerscope/innerscope"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

func newRunCommand(app *app) *cobra.Command {
	var (
		function   string
		bindFiles  []string
		noClosures bool
		noGlobals  bool
		checkOnly  bool
	)
	cmd := &cobra.Command{
		Use:   "run <script> [args...]",
		Short: "Call a function and print its scope",
		Long: `Call a function from a script and print the scope it left behind.

Positional arguments after the script path are passed to the function as
strings. Names the function borrows can be supplied with --bind files,
which are TOML tables of name = value pairs; later files win.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := app.engine(cmd)
			if err != nil {
				return err
			}
			script, _, err := compileFile(engine, args[0])
			if err != nil {
				return err
			}
			if checkOnly {
				return nil
			}

			fn, ok := script.Function(function)
			if !ok {
				return fmt.Errorf("function %s not found", function)
			}
			mappings := make([]innerscope.Mapping, 0, len(bindFiles))
			for _, path := range bindFiles {
				vars, err := loadBindings(path)
				if err != nil {
					return err
				}
				mappings = append(mappings, vars)
			}

			s := app.settings
			s.UseClosures = s.UseClosures && !noClosures
			s.UseGlobals = s.UseGlobals && !noGlobals
			opts := append(s.options(), innerscope.WithMappings(mappings...))
			sf, err := innerscope.NewScopedFunction(fn, opts...)
			if err != nil {
				return err
			}

			positional := make([]innerscope.Value, len(args)-1)
			for i, raw := range args[1:] {
				positional[i] = innerscope.NewString(raw)
			}
			scope, err := sf.Invoke(cmd.Context(), innerscope.Args{Positional: positional})
			if err != nil {
				return fmt.Errorf("execution failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), scope.String())
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&function, "function", "run", "function to invoke after compilation")
	flags.StringArrayVar(&bindFiles, "bind", nil, "TOML file of outer names to bind (repeatable)")
	flags.BoolVar(&noClosures, "no-closures", false, "do not fill closure names from enclosing functions")
	flags.BoolVar(&noGlobals, "no-globals", false, "do not fill global names from the script")
	flags.BoolVar(&checkOnly, "check", false, "only compile the script without executing")
	return cmd
}

// loadBindings decodes a TOML file of name = value pairs.
func loadBindings(path string) (innerscope.Vars, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bindings: %w", err)
	}
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing bindings TOML %s: %w", path, err)
	}
	vars, err := innerscope.VarsOf(raw)
	if err != nil {
		return nil, fmt.Errorf("bindings %s: %w", path, err)
	}
	return vars, nil
}
