package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdconv"
	"github.com/alnah/go-mdconv/internal/config"
)

// Sentinel errors for CLI setup.
var (
	ErrInvalidFlags   = errors.New("invalid flags")
	ErrInvalidTimeout = errors.New("invalid timeout")
)

// defaultTimeout bounds a single file conversion when nothing else is set.
const defaultTimeout = 30 * time.Second

// maxStdinSize caps what is read from standard input.
const maxStdinSize = 64 << 20

// configLoadError records which config was requested, for hints.
type configLoadError struct {
	name string
	err  error
}

func (e *configLoadError) Error() string { return e.err.Error() }
func (e *configLoadError) Unwrap() error { return e.err }

// run parses args and converts the requested input.
func run(ctx context.Context, args []string, env *Environment, newPool poolFactory) error {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(env.Stdout)
			return nil
		}
		return fmt.Errorf("%w: %v (see mdconv --help)", ErrInvalidFlags, err)
	}
	if flags.common.help {
		printUsage(env.Stdout)
		return nil
	}
	if flags.common.version {
		printVersion(env.Stdout)
		return nil
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: expected one input, got %d", ErrInvalidFlags, len(positional))
	}

	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	timeout, err := resolveTimeout(flags.timeout, envCfg.Timeout, cfg)
	if err != nil {
		return err
	}

	var forced mdconv.Direction
	if cfg.Direction != "" {
		// Validate above guarantees the name parses.
		forced, _ = mdconv.ParseDirection(cfg.Direction)
	}

	css, err := resolveCSSContent(cfg.CSS.File)
	if err != nil {
		return err
	}

	params := &conversionParams{
		css:        css,
		standalone: cfg.Markdown.Standalone,
		preview:    cfg.Preview.Enabled,
		timeout:    timeout,
		now:        env.Now,
	}
	opts := buildOptions(cfg, timeout)

	inputPath, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}

	if inputPath == stdinPath {
		return runStdin(ctx, forced, flags.output, params, opts, env, newPool)
	}

	files, err := discoverFiles(inputPath, resolveOutputDir(flags.output, cfg), forced)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoFiles, inputPath)
	}

	poolSize := min(mdconv.ResolvePoolSize(cfg.Workers), len(files))
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", poolSize)
	}
	pool, err := newPool(poolSize, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			fmt.Fprintf(env.Stderr, "warning: %v\n", cerr)
		}
	}()

	results := convertBatch(ctx, pool, files, params)
	printResults(results, flags.common.quiet, flags.common.verbose, env)
	return batchError(results)
}

// loadConfig loads the config named by the flag, else by MDCONV_CONFIG.
// With neither set, an empty config is returned.
func loadConfig(flagName, envName string) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, &configLoadError{name: name, err: fmt.Errorf("loading config: %w", err)}
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.direction != "" {
		cfg.Direction = flags.direction
	}
	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}

	// HTML to Markdown
	if flags.html.headingStyle != "" {
		cfg.HTML.HeadingStyle = flags.html.headingStyle
	}
	if flags.html.codeBlockStyle != "" {
		cfg.HTML.CodeBlockStyle = flags.html.codeBlockStyle
	}
	if flags.html.bulletMarker != "" {
		cfg.HTML.BulletListMarker = flags.html.bulletMarker
	}
	if flags.html.linkStyle != "" {
		cfg.HTML.LinkStyle = flags.html.linkStyle
	}
	if len(flags.html.preserve) > 0 {
		cfg.HTML.Preserve = flags.html.preserve
	}

	// Markdown to HTML
	if flags.markdown.standalone {
		cfg.Markdown.Standalone = true
	}
	if flags.markdown.hardWraps {
		cfg.Markdown.HardWraps = true
	}
	if flags.markdown.rawHTML {
		cfg.Markdown.AllowRawHTML = true
	}
	if flags.markdown.highlightStyle != "" {
		cfg.Markdown.HighlightStyle = flags.markdown.highlightStyle
	}

	// Styling
	if flags.assets.style != "" {
		cfg.Style = flags.assets.style
	}
	if flags.assets.css != "" {
		cfg.CSS.File = flags.assets.css
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}

	// Preview
	if flags.preview.enabled {
		cfg.Preview.Enabled = true
	}
	if flags.preview.width > 0 {
		cfg.Preview.Width = flags.preview.width
	}
	if flags.preview.height > 0 {
		cfg.Preview.Height = flags.preview.height
	}
	if flags.preview.fullPage {
		cfg.Preview.FullPage = true
	}

	// Disable flags
	if flags.markdown.noHighlight {
		off := false
		cfg.Markdown.Highlight = &off
	}
	if flags.markdown.noSpecial {
		off := false
		cfg.Markdown.SpecialBlocks = &off
	}
}

// resolveTimeout picks the per-file timeout: flag > env > config > default.
func resolveTimeout(flagValue string, envValue time.Duration, cfg *config.Config) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, flagValue, err)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: must be positive, got %s", ErrInvalidTimeout, flagValue)
		}
		return d, nil
	}
	if envValue > 0 {
		return envValue, nil
	}
	d, err := cfg.TimeoutDuration()
	if err != nil {
		return 0, err
	}
	if d > 0 {
		return d, nil
	}
	return defaultTimeout, nil
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output location from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// resolveCSSContent reads the extra CSS file, if any.
func resolveCSSContent(cssFile string) (string, error) {
	if cssFile == "" {
		return "", nil
	}
	content, err := os.ReadFile(cssFile) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadCSS, err)
	}
	return string(content), nil
}

// buildOptions turns the merged config into converter options.
func buildOptions(cfg *config.Config, timeout time.Duration) []mdconv.Option {
	opts := []mdconv.Option{
		mdconv.WithHTMLOptions(cfg.HTML.HTMLOptions()),
		mdconv.WithMarkdownOptions(cfg.Markdown.MarkdownOptions()),
		mdconv.WithPreviewSettings(cfg.Preview.PreviewSettings()),
	}
	if cfg.Style != "" {
		opts = append(opts, mdconv.WithStyle(cfg.Style))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, mdconv.WithAssetPath(cfg.Assets.BasePath))
	}
	if timeout > 0 {
		opts = append(opts, mdconv.WithTimeout(timeout))
	}
	return opts
}

// runStdin converts standard input and writes to output, or to stdout when
// output is empty. The direction cannot be inferred and must be given.
func runStdin(ctx context.Context, d mdconv.Direction, output string, params *conversionParams, opts []mdconv.Option, env *Environment, newPool poolFactory) error {
	if d == "" {
		return fmt.Errorf("%w: stdin needs --direction", ErrUnknownExtension)
	}

	content, err := io.ReadAll(io.LimitReader(env.Stdin, maxStdinSize))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	pool, err := newPool(1, opts...)
	if err != nil {
		return err
	}
	defer pool.Close()

	conv, err := pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer pool.Release(conv)

	if params.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, params.timeout)
		defer cancel()
	}

	input := mdconv.Input{Content: string(content), Direction: d}
	if d == mdconv.MarkdownToHTML {
		input.Standalone = params.standalone
		input.CSS = params.css
		// Previews need a file to sit next to.
		input.Preview = params.preview && output != ""
		if wd, err := os.Getwd(); err == nil {
			input.SourceDir = wd
		}
	}

	result, err := conv.Convert(ctx, input)
	if err != nil {
		return err
	}

	if output == "" {
		if _, err := env.Stdout.Write(result.Output); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(output), dirPermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrCreateOutputDir, err)
	}
	// #nosec G306 -- converted documents are meant to be readable
	if err := os.WriteFile(output, result.Output, filePermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	if len(result.Preview) > 0 {
		// #nosec G306 -- previews are meant to be readable
		if err := os.WriteFile(previewPath(output), result.Preview, filePermissions); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
	}
	return nil
}
