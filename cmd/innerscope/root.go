package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/mgomes/innerscope/innerscope"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))
)

// app carries the state shared by every subcommand of one invocation.
type app struct {
	viper      *viper.Viper
	configFile string
	settings   settings
}

func newApp() *app {
	return &app{viper: newViper(), settings: defaultSettings()}
}

func newRootCommand(app *app) *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Run script functions and inspect their inner scope",
		Long: titleStyle.Render(appName) + subtitleStyle.Render(" - capture the local variables of a function call") + `

innerscope runs a function from a script and returns every name the
function bound, together with the outer names it borrowed and its return
value.

Configuration is read from innerscope.toml in the current directory or in
$XDG_CONFIG_HOME/innerscope, and from INNERSCOPE_* environment variables.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(app.viper, app.configFile)
			if err != nil {
				return err
			}
			app.settings = s
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&app.configFile, "config", "", "config file (default is ./innerscope.toml or $XDG_CONFIG_HOME/innerscope/innerscope.toml)")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	flags.String("strategy", innerscope.StrategyAuto.String(), "capture strategy: auto, redirect or observe")
	flags.Int("step-quota", 50000, "maximum interpreter steps per call")
	flags.Int("recursion-limit", 64, "maximum call depth")
	for key, flag := range map[string]string{
		"verbose":         "verbose",
		"strategy":        "strategy",
		"step_quota":      "step-quota",
		"recursion_limit": "recursion-limit",
	} {
		if err := app.viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	root.AddCommand(newRunCommand(app))
	root.AddCommand(newAnalyzeCommand(app))
	root.AddCommand(newREPLCommand(app))
	root.AddCommand(newFmtCommand(app))
	return root
}

func (a *app) engine(cmd *cobra.Command) (*innerscope.Engine, error) {
	return a.settings.newEngine(cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// compileFile reads and compiles the script at path.
func compileFile(engine *innerscope.Engine, path string) (*innerscope.Script, string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, "", fmt.Errorf("resolve script path: %w", err)
	}
	input, err := os.ReadFile(abs)
	if err != nil {
		return nil, "", fmt.Errorf("read script: %w", err)
	}
	script, err := engine.Compile(string(input))
	if err != nil {
		return nil, "", fmt.Errorf("compile failed: %w", err)
	}
	return script, abs, nil
}
