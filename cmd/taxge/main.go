package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nkharadze/taxge/internal/calculation"
	"github.com/nkharadze/taxge/internal/config"
	"github.com/nkharadze/taxge/internal/domain"
	"github.com/nkharadze/taxge/internal/importer"
	"github.com/nkharadze/taxge/internal/output"
	"github.com/nkharadze/taxge/internal/server"
	"github.com/nkharadze/taxge/internal/store"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "taxge %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(os.Stdout, info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "taxge",
	Short: "Georgian Personal Income Tax Calculator CLI",
	Long:  "Computes personal income tax under Georgian tax law across salary, business, rental, investment and property regimes, with a full calculation trace",
}

// newEngine builds the engine from the optional --rules flag.
func newEngine(cmd *cobra.Command) (*calculation.Engine, error) {
	rulesFile, _ := cmd.Flags().GetString("rules")
	if rulesFile == "" {
		return calculation.NewEngine()
	}
	parser := config.NewInputParser()
	rules, err := parser.LoadRules(rulesFile)
	if err != nil {
		return nil, err
	}
	return calculation.NewEngineWithRules(*rules)
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "data/profiles"
	}
	return filepath.Join(home, ".taxge", "profiles")
}

func openStore(cmd *cobra.Command) (*store.ProfileStore, error) {
	dir, _ := cmd.Flags().GetString("data-dir")
	if dir == "" {
		dir = defaultDataDir()
	}
	return store.NewProfileStore(dir)
}

// loadProfile resolves the calculate argument: a file path, or a stored
// profile name via --profile.
func loadProfile(cmd *cobra.Command, args []string) (*domain.Profile, error) {
	storedName, _ := cmd.Flags().GetString("profile")
	if storedName != "" {
		ps, err := openStore(cmd)
		if err != nil {
			return nil, err
		}
		return ps.Load(storedName)
	}
	if len(args) != 1 {
		return nil, fmt.Errorf("provide a profile file argument or --profile <name>")
	}
	parser := config.NewInputParser()
	return parser.LoadProfile(args[0])
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [profile-file]",
	Short: "Calculate tax liability for a profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := loadProfile(cmd, args)
		if err != nil {
			return err
		}

		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		verbose, _ := cmd.Flags().GetBool("verbose")
		if verbose {
			engine.SetLogger(simpleCLILogger{})
		}

		result, err := engine.Calculate(profile)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		return output.NewReportGenerator().GenerateReport(os.Stdout, result, format)
	},
}

var importCmd = &cobra.Command{
	Use:   "import [csv-file]",
	Short: "Import income rows from a CSV export and calculate",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer f.Close()

		year, _ := cmd.Flags().GetInt("year")
		profile, notes, err := importer.NewCSVImporter().Import(f, year)
		if err != nil {
			return err
		}
		for _, note := range notes {
			fmt.Fprintf(os.Stderr, "import: %s\n", note)
		}

		saveAs, _ := cmd.Flags().GetString("save-as")
		if saveAs != "" {
			profile.Name = saveAs
			ps, err := openStore(cmd)
			if err != nil {
				return err
			}
			if err := ps.Save(profile); err != nil {
				return err
			}
			fmt.Printf("Saved profile %q\n", saveAs)
		}

		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		result, err := engine.Calculate(profile)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		return output.NewReportGenerator().GenerateReport(os.Stdout, result, format)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculation engine over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		engine.SetLogger(simpleCLILogger{})

		addr, _ := cmd.Flags().GetString("addr")
		srv := server.New(engine)
		srv.Logger = simpleCLILogger{}
		log.Printf("taxge serving on %s", addr)
		return srv.ListenAndServe(addr)
	},
}

func profilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "Manage saved profiles",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			ps, err := openStore(cmd)
			if err != nil {
				return err
			}
			names, err := ps.List()
			if err != nil {
				return err
			}
			if len(names) == 0 {
				fmt.Println("No saved profiles")
				return nil
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show [name]",
		Short: "Print a saved profile as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ps, err := openStore(cmd)
			if err != nil {
				return err
			}
			profile, err := ps.Load(args[0])
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(profile)
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		},
	}

	save := &cobra.Command{
		Use:   "save [name] [profile-file]",
		Short: "Save a profile file under a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			profile, err := parser.LoadProfile(args[1])
			if err != nil {
				return err
			}
			profile.Name = args[0]
			ps, err := openStore(cmd)
			if err != nil {
				return err
			}
			if err := ps.Save(profile); err != nil {
				return err
			}
			fmt.Printf("Saved profile %q\n", args[0])
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a saved profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ps, err := openStore(cmd)
			if err != nil {
				return err
			}
			if err := ps.Delete(args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted profile %q\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, show, save, del)
	return cmd
}

func exampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example [name]",
		Short: "Print a built-in example profile as YAML (no name lists the examples)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, name := range store.ExampleNames() {
					info, _ := store.ExampleDescription(name)
					fmt.Printf("%-26s %s\n", name, info.Description)
				}
				return nil
			}
			profile, err := store.ExampleProfile(args[0])
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(profile)
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		},
	}
}

func main() {
	calculateCmd.Flags().String("format", "console", "Output format: console, json, csv")
	calculateCmd.Flags().String("rules", "", "Tax rules YAML file (defaults to the built-in 2025 rule set)")
	calculateCmd.Flags().String("profile", "", "Calculate a saved profile by name instead of a file")
	calculateCmd.Flags().String("data-dir", "", "Profile store directory")
	calculateCmd.Flags().Bool("verbose", false, "Log engine diagnostics")

	importCmd.Flags().String("format", "console", "Output format: console, json, csv")
	importCmd.Flags().String("rules", "", "Tax rules YAML file")
	importCmd.Flags().Int("year", 2025, "Tax year for the imported profile")
	importCmd.Flags().String("save-as", "", "Also save the imported profile under this name")
	importCmd.Flags().String("data-dir", "", "Profile store directory")

	serveCmd.Flags().String("addr", ":8080", "Listen address")
	serveCmd.Flags().String("rules", "", "Tax rules YAML file")

	profiles := profilesCmd()
	for _, sub := range profiles.Commands() {
		sub.Flags().String("data-dir", "", "Profile store directory")
	}

	rootCmd.AddCommand(calculateCmd, importCmd, serveCmd, profiles, exampleCmd(), versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
