package cli

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/lathbar/lath/internal/version"
	"github.com/lathbar/lath/pkg/bar"
	"github.com/lathbar/lath/pkg/config"
	"github.com/lathbar/lath/pkg/logging"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		verbosity  int
		configPath string
	)

	rootCmd := &cobra.Command{
		Use:   "lath",
		Short: "A lightweight X11 status bar",
		Long: `lath is a lightweight X11 status bar. It reads lines of Pango markup
from standard input and renders them onto a docked bar window. Inline
alignment markers split a line into groups: ^l (left), ^c (center) and
^r (right).

Example:
  while true; do echo "^l$(hostname)^c$(date)^r$(cat /proc/loadavg)"; sleep 1; done | lath --height 24`,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd, configPath)
			if err != nil {
				return err
			}

			if isatty.IsTerminal(os.Stdin.Fd()) {
				fmt.Fprintln(os.Stderr, "Warning: stdin is a terminal.")
				fmt.Fprintln(os.Stderr, "lath renders lines piped into it, e.g.:")
				fmt.Fprintln(os.Stderr, "  some-status-generator | lath --height 24")
			}

			b, err := bar.New(cfg)
			if err != nil {
				return err
			}
			defer b.Close()

			return b.Run(os.Stdin)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath(), "Path to the TOML config file")

	// Bar flags; anything not given falls back to the config file, then
	// to built-in defaults.
	rootCmd.Flags().Int("height", 0, "Bar height in pixels (required unless set in the config file)")
	rootCmd.Flags().String("foreground", "", "Text color as #RGB or #RRGGBB")
	rootCmd.Flags().String("background", "", "Bar color as #RGB or #RRGGBB")
	rootCmd.Flags().BoolP("bottom", "b", false, "Dock the bar at the bottom of the screen")
	rootCmd.Flags().Float64P("opacity", "o", 1.0, "Window opacity from 0 to 1 (needs a compositor)")
	rootCmd.Flags().StringP("font", "f", "", "Pango font description, e.g. \"Iosevka\"")
	rootCmd.Flags().String("font-size", "", "Pango font size, e.g. \"12\"")
	rootCmd.Flags().StringP("separator", "s", "", "String drawn between sections of one alignment group")

	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// buildConfig assembles the bar configuration: defaults, then the config
// file, then any flag the user actually set.
func buildConfig(cmd *cobra.Command, configPath string) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("height") {
		cfg.Height, _ = flags.GetInt("height")
	}
	if flags.Changed("foreground") {
		cfg.Foreground, _ = flags.GetString("foreground")
	}
	if flags.Changed("background") {
		cfg.Background, _ = flags.GetString("background")
	}
	if flags.Changed("bottom") {
		cfg.Bottom, _ = flags.GetBool("bottom")
	}
	if flags.Changed("opacity") {
		cfg.Opacity, _ = flags.GetFloat64("opacity")
	}
	if flags.Changed("font") {
		cfg.Font, _ = flags.GetString("font")
	}
	if flags.Changed("font-size") {
		cfg.FontSize, _ = flags.GetString("font-size")
	}
	if flags.Changed("separator") {
		cfg.Separator, _ = flags.GetString("separator")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including commit hash and build date`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("lath version %s\n", version.Version)
			if version.Commit != "" {
				fmt.Printf("Commit: %s\n", version.Commit)
			}
			if version.Date != "" {
				fmt.Printf("Built:  %s\n", version.Date)
			}
		},
	}
}
