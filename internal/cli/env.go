package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mvp-joe/layerlint/internal/config"
	"github.com/mvp-joe/layerlint/internal/naming"
	"github.com/mvp-joe/layerlint/internal/rename"
	"github.com/mvp-joe/layerlint/internal/styles"
)

// env is the resolved settings a command runs with.
type env struct {
	root    string
	cfg     *config.Config
	out     io.Writer
	verbose bool
	quiet   bool
}

// namingFlags are the flags shared by every command that generates names.
type namingFlags struct {
	convention  string
	casing      string
	selection   []string
	skipLocked  bool
	skipHidden  bool
	onlyDefault bool
	ignore      []string
	textContent bool
	quiet       bool
}

func (f *namingFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.convention, "convention", "", "naming convention: atomic, component, semantic or handoff")
	fl.StringVar(&f.casing, "casing", "", "casing: kebab or pascal")
	fl.StringSliceVarP(&f.selection, "select", "s", nil, "node IDs to rename (default: every top-level layer)")
	fl.BoolVar(&f.skipLocked, "skip-locked", false, "leave locked layers and their children alone")
	fl.BoolVar(&f.skipHidden, "skip-hidden", false, "leave hidden layers and their children alone")
	fl.BoolVar(&f.onlyDefault, "only-default", false, "only rename layers still carrying a tool default name")
	fl.StringSliceVar(&f.ignore, "ignore", nil, "glob patterns over layer paths to leave alone (e.g. 'Header/**')")
	fl.BoolVar(&f.textContent, "text-content", false, "name text layers after their content even when a style is linked")
	fl.BoolVarP(&f.quiet, "quiet", "q", false, "disable progress bars and non-error output")
}

// apply copies explicitly set flags over the loaded configuration.
func (f *namingFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("convention") {
		cfg.Naming.Convention = f.convention
	}
	if changed("casing") {
		cfg.Naming.Casing = f.casing
	}
	if changed("skip-locked") {
		cfg.Filters.SkipLocked = f.skipLocked
	}
	if changed("skip-hidden") {
		cfg.Filters.SkipHidden = f.skipHidden
	}
	if changed("only-default") {
		cfg.Filters.OnlyDefaultNames = f.onlyDefault
	}
	if changed("ignore") {
		cfg.Filters.Ignore = f.ignore
	}
	if changed("text-content") {
		cfg.Preferences.TextRenameContent = f.textContent
	}
}

// optionFlags are the batch post-processing flags of rename and preview.
type optionFlags struct {
	preset         string
	find           string
	replace        string
	caseSensitive  bool
	prefix         string
	suffix         string
	number         bool
	numberStart    int
	numberPadding  int
	numberPosition string
}

func (f *optionFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.preset, "preset", "", "cleanup preset: clean-defaults, remove-numbers, capitalize, lowercase or uppercase")
	fl.StringVar(&f.find, "find", "", "literal text to replace in generated names")
	fl.StringVar(&f.replace, "replace", "", "replacement for --find")
	fl.BoolVar(&f.caseSensitive, "case-sensitive", false, "match --find case-sensitively")
	fl.StringVar(&f.prefix, "prefix", "", "text prepended to every generated name")
	fl.StringVar(&f.suffix, "suffix", "", "text appended to every generated name")
	fl.BoolVar(&f.number, "number", false, "number names in batch order")
	fl.IntVar(&f.numberStart, "number-start", 1, "first sequence number")
	fl.IntVar(&f.numberPadding, "number-padding", 0, "zero-pad sequence numbers to this many digits")
	fl.StringVar(&f.numberPosition, "number-position", string(naming.NumberSuffix), "put the number before (prefix) or after (suffix) the name")
}

// options converts the flags into naming options, nil when none are set.
func (f *optionFlags) options() (*naming.Options, error) {
	preset := naming.Preset(strings.ToLower(strings.TrimSpace(f.preset)))
	if !preset.Valid() {
		return nil, fmt.Errorf("unknown preset %q", f.preset)
	}

	opts := &naming.Options{Preset: preset, Prefix: f.prefix, Suffix: f.suffix}
	if f.find != "" {
		opts.FindReplace = &naming.FindReplace{Find: f.find, Replace: f.replace, CaseSensitive: f.caseSensitive}
	}
	if f.number {
		pos := naming.NumberPosition(strings.ToLower(f.numberPosition))
		if pos != naming.NumberPrefix && pos != naming.NumberSuffix {
			return nil, fmt.Errorf("unknown number position %q (want prefix or suffix)", f.numberPosition)
		}
		opts.Sequence = &naming.Sequence{Start: f.numberStart, Padding: f.numberPadding, Position: pos}
	}
	if opts.Empty() {
		return nil, nil
	}
	return opts, nil
}

// loadEnv loads the project configuration and applies command flags.
func loadEnv(cmd *cobra.Command, flags *namingFlags) (*env, error) {
	root, err := projectRoot()
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadConfigFromDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	quiet := false
	if flags != nil {
		flags.apply(cmd, cfg)
		if err := config.Validate(cfg); err != nil {
			return nil, fmt.Errorf("invalid flags: %w", err)
		}
		quiet = flags.quiet
	}

	return &env{
		root:    root,
		cfg:     cfg,
		out:     cmd.OutOrStdout(),
		verbose: viper.GetBool("verbose"),
		quiet:   quiet,
	}, nil
}

// documentPath resolves a document argument against the project root.
func (e *env) documentPath(arg string) (string, error) {
	path := arg
	if !filepath.IsAbs(path) {
		path = filepath.Join(e.root, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", arg, err)
	}
	return abs, nil
}

// styleRegistry builds the text-style resolver from the styles section.
// It returns nil when neither a local file nor an endpoint is configured.
func (e *env) styleRegistry() (*styles.Registry, error) {
	sc := e.cfg.Styles
	if sc.LocalFile == "" && sc.Endpoint == "" {
		return nil, nil
	}

	opts := []styles.Option{
		styles.WithTimeout(e.cfg.StyleTimeout()),
		styles.WithVerbose(e.verbose),
	}
	if sc.LocalFile != "" {
		path := sc.LocalFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(e.root, path)
		}
		local, err := styles.LoadLocalStyles(path)
		if err != nil {
			return nil, err
		}
		opts = append(opts, styles.WithLocalStyles(local))
	}
	if sc.Endpoint != "" {
		opts = append(opts, styles.WithImporter(styles.NewHTTPImporter(sc.Endpoint)))
	}
	return styles.NewRegistry(sc.CacheSize, opts...)
}

// newDriver builds a driver from the configuration. The returned close
// function releases the style registry.
func (e *env) newDriver(opts *naming.Options) (*rename.Driver, func(), error) {
	filter, err := rename.NewFilter(e.cfg.RenameFilters())
	if err != nil {
		return nil, nil, err
	}
	registry, err := e.styleRegistry()
	if err != nil {
		return nil, nil, err
	}

	var resolver naming.StyleResolver
	closeFn := func() {}
	if registry != nil {
		resolver = registry
		closeFn = registry.Close
	}

	gen := naming.NewGenerator(e.cfg.Casing(), e.cfg.Convention(),
		naming.Preferences{TextRenameContent: e.cfg.Preferences.TextRenameContent}, resolver)

	driverOpts := []rename.DriverOption{rename.WithOptions(opts), rename.WithVerbose(e.verbose)}
	if !e.quiet {
		driverOpts = append(driverOpts, rename.WithProgress(NewCLIProgressReporter(os.Stderr)))
	}
	return rename.NewDriver(gen, filter, driverOpts...), closeFn, nil
}
