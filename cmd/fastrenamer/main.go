package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dadebr/FastRenamer/internal/config"
	"github.com/dadebr/FastRenamer/internal/extractor"
	"github.com/dadebr/FastRenamer/internal/renamer"
	"github.com/dadebr/FastRenamer/internal/sanitize"
)

// Exit codes for granular error handling
const (
	ExitSuccess      = 0
	ExitRenameError  = 1
	ExitPlanError    = 2
	ExitInvalidInput = 3
	ExitConfigError  = 4
	ExitFileIOError  = 5
	ExitPartialError = 6 // some files failed, some succeeded
)

var (
	cfgFile        string
	dir            string
	mode           string
	baseName       string
	prefix         string
	suffix         string
	find           string
	replaceWith    string
	pattern        string
	maxPages       int
	dateFormat     string
	maxLength      int
	caseStyle      string
	replaceSpaces  bool
	noFold         bool
	noConflicts    bool
	suffixFormat   string
	dryRun         bool
	yes            bool
	listExtensions bool
	verbose        bool
	quiet          bool
)

const version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "fastrenamer [files...]",
	Short: "Batch-rename files safely",
	Long: `fastrenamer proposes new names for files from their content or a rule,
then sanitizes every name for the filesystem and resolves collisions.
Without --yes the plan is printed but nothing is renamed.`,
	Version:       version,
	RunE:          run,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if exitErr, ok := err.(*exitErr); ok {
			os.Exit(exitErr.code)
		}
		os.Exit(ExitInvalidInput)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/fastrenamer/config.toml)")

	// Input flags
	rootCmd.Flags().StringVarP(&dir, "dir", "d", ".", "directory containing the files to rename")
	rootCmd.Flags().StringVarP(&mode, "mode", "m", "content", "rename mode (content|sequential|prefix-suffix|replace|folder-sequential)")

	// Rule flags
	rootCmd.Flags().StringVar(&baseName, "base-name", "file_", "base name for sequential mode")
	rootCmd.Flags().StringVar(&prefix, "prefix", "", "prefix for prefix-suffix mode")
	rootCmd.Flags().StringVar(&suffix, "suffix", "", "suffix for prefix-suffix mode (inserted before the extension)")
	rootCmd.Flags().StringVar(&find, "find", "", "text to find for replace mode")
	rootCmd.Flags().StringVar(&replaceWith, "replace-with", "", "replacement text for replace mode")

	// Extraction flags
	rootCmd.Flags().StringVarP(&pattern, "pattern", "p", "", "regex applied to extracted text (first capture group wins)")
	rootCmd.Flags().IntVar(&maxPages, "max-pages", 3, "pages scanned when naming from PDF content")
	rootCmd.Flags().StringVar(&dateFormat, "date-format", "", "Go layout for image capture timestamps")

	// Sanitization flags
	rootCmd.Flags().IntVar(&maxLength, "max-length", 255, "maximum filename length")
	rootCmd.Flags().StringVar(&caseStyle, "case", "", "case normalization (lower|upper|title|sentence)")
	rootCmd.Flags().BoolVar(&replaceSpaces, "replace-spaces", false, "replace spaces with underscores")
	rootCmd.Flags().BoolVar(&noFold, "no-fold", false, "keep accented characters as-is")
	rootCmd.Flags().BoolVar(&noConflicts, "no-conflicts", false, "skip conflict resolution against the target directory")
	rootCmd.Flags().StringVar(&suffixFormat, "suffix-format", "", "fmt template for collision suffixes (default \"(%d)\")")

	// Execution flags
	rootCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print the plan without renaming")
	rootCmd.Flags().BoolVarP(&yes, "yes", "y", false, "apply the plan without confirmation")
	rootCmd.Flags().BoolVar(&listExtensions, "list-extensions", false, "print the extensions content mode can handle and exit")

	// System flags
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress all non-plan output")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		configHome := os.Getenv("XDG_CONFIG_HOME")
		if configHome == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				if !quiet {
					fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
				}
				return
			}
			configHome = filepath.Join(home, ".config")
		}

		configDir := filepath.Join(configHome, "fastrenamer")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("toml")
		viper.SetConfigName("config")

		if mkdirErr := os.MkdirAll(configDir, 0755); mkdirErr != nil && !os.IsExist(mkdirErr) {
			if !quiet {
				fmt.Fprintf(os.Stderr, "Error creating config directory: %v\n", mkdirErr)
			}
		}
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("FASTRENAMER")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Auto-create config on first run
			configPath := getDefaultConfigPath()
			if configPath != "" {
				cfg := config.Default()
				if createErr := cfg.CreateExampleConfig(configPath); createErr == nil {
					if !quiet {
						fmt.Fprintf(os.Stderr, "Created config file: %s\n", configPath)
					}
					viper.ReadInConfig()
				}
			}
		} else if verbose && !quiet {
			fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
		}
	} else if verbose && !quiet {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

func getDefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "fastrenamer", "config.toml")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return exitError(ExitConfigError, "failed to load config: %v", err)
	}

	// Apply config defaults if CLI flags not explicitly set
	if !cmd.Flags().Changed("max-pages") && cfg.Extraction.MaxPages > 0 {
		maxPages = cfg.Extraction.MaxPages
	}
	if !cmd.Flags().Changed("date-format") && cfg.Extraction.DateFormat != "" {
		dateFormat = cfg.Extraction.DateFormat
	}
	if !cmd.Flags().Changed("max-length") && cfg.Sanitize.MaxLength > 0 {
		maxLength = cfg.Sanitize.MaxLength
	}
	if !cmd.Flags().Changed("case") && cfg.Sanitize.CaseStyle != "" {
		caseStyle = cfg.Sanitize.CaseStyle
	}
	if !cmd.Flags().Changed("replace-spaces") {
		replaceSpaces = cfg.Sanitize.ReplaceSpaces
	}
	if !cmd.Flags().Changed("no-fold") {
		noFold = !cfg.Sanitize.NormalizeUnicode
	}
	if !cmd.Flags().Changed("no-conflicts") {
		noConflicts = !cfg.Sanitize.ConflictResolution
	}
	if !cmd.Flags().Changed("suffix-format") && cfg.Sanitize.ConflictSuffixFormat != "" {
		suffixFormat = cfg.Sanitize.ConflictSuffixFormat
	}
	if !cmd.Flags().Changed("dry-run") {
		dryRun = cfg.Rename.DryRun
	}
	if !cmd.Flags().Changed("quiet") {
		quiet = cfg.Logging.Quiet
	}
	if !cmd.Flags().Changed("verbose") {
		verbose = cfg.Logging.Verbose
	}

	registry := extractor.NewRegistry()

	if listExtensions {
		fmt.Println(strings.Join(registry.SupportedExtensions(), " "))
		return nil
	}

	rule, err := buildRule()
	if err != nil {
		return exitError(ExitInvalidInput, "%v", err)
	}

	switch sanitize.CaseStyle(caseStyle) {
	case sanitize.CaseNone, sanitize.CaseLower, sanitize.CaseUpper, sanitize.CaseTitle, sanitize.CaseSentence:
	default:
		return exitError(ExitInvalidInput, "unknown case style: %s (available: lower, upper, title, sentence)", caseStyle)
	}

	files, err := collectFiles(args)
	if err != nil {
		return exitError(ExitFileIOError, "%v", err)
	}
	if len(files) == 0 {
		return exitError(ExitInvalidInput, "no files to rename in %s", dir)
	}

	if verbose && !quiet {
		fmt.Fprintf(os.Stderr, "Planning %d files in %s (mode: %s)\n", len(files), dir, mode)
	}

	sanitizer := sanitize.New(sanitize.Config{
		NormalizeUnicode:     !noFold,
		ReplaceSpaces:        replaceSpaces,
		MaxLength:            maxLength,
		CaseStyle:            sanitize.CaseStyle(caseStyle),
		ResolveConflicts:     !noConflicts,
		ConflictSuffixFormat: suffixFormat,
	})

	planner := renamer.NewPlanner(registry, sanitizer)
	plan, err := planner.Plan(dir, files, rule)
	if err != nil {
		return exitError(ExitPlanError, "failed to plan renames: %v", err)
	}
	if len(plan) == 0 {
		if !quiet {
			fmt.Fprintln(os.Stderr, "Nothing to rename: all names are already final")
		}
		return nil
	}

	for _, r := range plan {
		fmt.Printf("%s -> %s\n", r.Source, r.Target)
	}

	if dryRun || !yes {
		if !quiet && !dryRun {
			fmt.Fprintf(os.Stderr, "Plan only (%d files); re-run with --yes to apply\n", len(plan))
		}
		return nil
	}

	failed := 0
	for _, result := range renamer.Apply(dir, plan) {
		if result.Err != nil {
			failed++
			if !quiet {
				fmt.Fprintf(os.Stderr, "Error renaming %s: %v\n", result.Source, result.Err)
			}
		} else if verbose && !quiet {
			fmt.Fprintf(os.Stderr, "Renamed: %s -> %s\n", result.Source, result.Target)
		}
	}

	if failed == len(plan) {
		return &exitErr{code: ExitRenameError}
	}
	if failed > 0 {
		return &exitErr{code: ExitPartialError}
	}
	if !quiet {
		fmt.Fprintf(os.Stderr, "Renamed %d files\n", len(plan))
	}
	return nil
}

func buildRule() (renamer.Rule, error) {
	rule := renamer.Rule{
		Mode:        renamer.Mode(mode),
		BaseName:    baseName,
		Prefix:      prefix,
		Suffix:      suffix,
		Find:        find,
		ReplaceWith: replaceWith,
		Extraction: extractor.Options{
			MaxPages:   maxPages,
			DateFormat: dateFormat,
		},
	}

	switch rule.Mode {
	case renamer.ModeContent, renamer.ModeSequential, renamer.ModePrefixSuffix,
		renamer.ModeReplace, renamer.ModeFolderSequential:
	default:
		return rule, fmt.Errorf("unknown mode: %s (available: content, sequential, prefix-suffix, replace, folder-sequential)", mode)
	}

	if rule.Mode == renamer.ModeReplace && find == "" {
		return rule, fmt.Errorf("replace mode requires --find")
	}

	if pattern != "" {
		re, err := regexp.Compile("(?m)" + pattern)
		if err != nil {
			return rule, fmt.Errorf("invalid --pattern: %v", err)
		}
		rule.Extraction.Pattern = re
	}

	return rule, nil
}

// collectFiles resolves the working file list: explicit names from the
// command line, or every regular file in the directory.
func collectFiles(args []string) ([]string, error) {
	if len(args) == 0 {
		return renamer.ListFiles(dir)
	}

	var files []string
	for _, arg := range args {
		name := filepath.Base(arg)
		info, err := os.Lstat(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", name, err)
		}
		if !info.Mode().IsRegular() {
			return nil, fmt.Errorf("not a regular file: %s", name)
		}
		files = append(files, name)
	}
	return files, nil
}

type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string {
	return e.msg
}

func exitError(code int, format string, args ...interface{}) *exitErr {
	msg := fmt.Sprintf(format, args...)
	if msg != "" && !quiet {
		fmt.Fprintf(os.Stderr, "%s\n", msg)
	}
	return &exitErr{code: code, msg: msg}
}
