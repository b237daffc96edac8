package cmd

import (
	"errors"
	"fmt"

	"github.com/bnema/protocheck/internal/config"
	"github.com/bnema/protocheck/internal/headers"
	"github.com/bnema/protocheck/internal/logger"
	"github.com/bnema/protocheck/internal/scanner"
	"github.com/bnema/protocheck/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version is set during build
	Version = "0.1.0-dev"

	configFile string
	regenerate bool

	rootCmd = &cobra.Command{
		Use:   "protocheck",
		Short: "Protocheck - Wayland protocol header checker",
		Long: `Protocheck verifies that the generated Wayland protocol headers checked
into the include directory still match what wayland-scanner produces from
the protocol XML documents. With --generate it regenerates them in place.`,
		SilenceUsage:      true,
		PersistentPreRunE: initConfig,
		RunE:              runRoot,
	}
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file path")
	rootCmd.PersistentFlags().String("wayland-dir", "", "wayland-protocols data directory (default: queried from pkgconf)")
	rootCmd.PersistentFlags().String("wlroots-dir", "", "wlroots source directory")
	rootCmd.PersistentFlags().String("include-dir", "", "Directory of checked-in headers")
	rootCmd.Flags().BoolVar(&regenerate, "generate", false, "Regenerate the headers instead of checking them")

	// Bind flags to viper
	viper.BindPFlag("wayland_dir", rootCmd.PersistentFlags().Lookup("wayland-dir"))
	viper.BindPFlag("wlroots_dir", rootCmd.PersistentFlags().Lookup("wlroots-dir"))
	viper.BindPFlag("include_dir", rootCmd.PersistentFlags().Lookup("include-dir"))
}

func initConfig(cmd *cobra.Command, args []string) error {
	if configFile != "" {
		config.SetConfigPath(configFile)
	}
	if err := config.Init(); err != nil {
		return err
	}
	if level := config.Get().Logging.LogLevel; level != "" {
		logger.SetLevel(level)
	}
	return nil
}

// resolveDocuments fills in the wayland-protocols default from pkgconf,
// validates both base directories and resolves the configured protocol
// document set in declared order.
func resolveDocuments() ([]headers.Document, error) {
	cfg := config.Get()
	if cfg.WaylandDir == "" {
		cfg.WaylandDir = scanner.WaylandProtocolsDir()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return headers.ResolveSet(cfg.WaylandDir, cfg.WlrootsDir)
}

func runRoot(cmd *cobra.Command, args []string) error {
	docs, err := resolveDocuments()
	if err != nil {
		return err
	}

	cfg := config.Get()
	scan, err := scanner.New(cfg.Scanner)
	if err != nil {
		return err
	}
	checker := &headers.Checker{Generator: scan, IncludeDir: cfg.IncludeDir}

	if regenerate {
		if err := checker.Generate(docs); err != nil {
			return err
		}
		fmt.Printf("%s Regenerated %d protocol headers into %s\n",
			ui.SuccessStyle.Render("✓"), len(docs), cfg.IncludeDir)
		return nil
	}

	if err := checker.Check(docs); err != nil {
		var lineErr *headers.LineMismatchError
		if errors.As(err, &lineErr) {
			fmt.Println(ui.ExpectedStyle.Render("Expected: " + lineErr.Expected))
			fmt.Println(ui.GotStyle.Render("Got:      " + lineErr.Got))
		}
		return err
	}
	fmt.Printf("%s %d protocol headers up to date\n",
		ui.SuccessStyle.Render("✓"), len(docs))
	return nil
}
