// Package main provides the webpilot tool server. It reads XML tool
// calls from stdin, executes them against a shared browser session
// pool, and writes JSON outcomes to stdout.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/entrhq/webpilot/pkg/browser"
	"github.com/entrhq/webpilot/pkg/config"
	"github.com/entrhq/webpilot/pkg/logging"
	"github.com/entrhq/webpilot/pkg/prompt"
	"github.com/entrhq/webpilot/pkg/tools"
	browsertools "github.com/entrhq/webpilot/pkg/tools/browser"
)

const version = "0.1.0"

// CLIConfig holds command-line configuration.
type CLIConfig struct {
	ConfigFile  string
	TemplateDir string
	Headless    bool
	BrowserType string
	MaxSessions int
	ListTools   bool
	ShowVersion bool
}

func main() {
	cli := parseFlags()

	if cli.ShowVersion {
		fmt.Printf("webpilot v%s\n", version)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nShutting down...")
		cancel()
	}()

	if err := run(ctx, cli); err != nil {
		cancel()
		fmt.Fprintf(os.Stderr, "webpilot: %v\n", err)
		os.Exit(1)
	}
	cancel()
}

func parseFlags() *CLIConfig {
	cli := &CLIConfig{}

	flag.StringVar(&cli.ConfigFile, "config", "", "Path to configuration file (default: ~/.webpilot/config.json)")
	flag.StringVar(&cli.TemplateDir, "templates", "", "Directory of prompt template YAML files to load")
	flag.BoolVar(&cli.Headless, "headless", true, "Run the browser without a window")
	flag.StringVar(&cli.BrowserType, "browser", "", "Browser engine: chromium, firefox, or webkit (default from config)")
	flag.IntVar(&cli.MaxSessions, "max-sessions", 0, "Maximum concurrent sessions (default from config)")
	flag.BoolVar(&cli.ListTools, "list-tools", false, "Print the tool catalog and exit")
	flag.BoolVar(&cli.ShowVersion, "version", false, "Show version and exit")
	flag.Parse()

	return cli
}

func run(ctx context.Context, cli *CLIConfig) error {
	if err := config.Initialize(cli.ConfigFile); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	log, err := logging.NewLogger("webpilot")
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer log.Close()

	browserCfg := config.GetBrowser()
	if !browserCfg.Enabled() {
		return fmt.Errorf("browser tooling is disabled in config")
	}

	browserType := browserCfg.BrowserType()
	if cli.BrowserType != "" {
		browserType = cli.BrowserType
	}
	maxSessions := browserCfg.MaxSessions()
	if cli.MaxSessions > 0 {
		maxSessions = cli.MaxSessions
	}
	headless := browserCfg.Headless() && cli.Headless

	engine := browser.NewPlaywrightEngine(browserType, headless)
	manager := browser.NewSessionManager(engine, browser.PoolOptions{
		MaxSessions: maxSessions,
		Viewport: browser.Viewport{
			Width:  browserCfg.ViewportWidth(),
			Height: browserCfg.ViewportHeight(),
		},
		Timeout: browserCfg.DefaultTimeout(),
	})
	defer manager.Cleanup()

	registry := browsertools.NewToolRegistry(manager)
	registry.RegisterTools()

	if cli.ListTools {
		printToolCatalog(registry)
		return nil
	}

	prompts := prompt.NewManager()
	if cli.TemplateDir != "" {
		if err := prompts.LoadDirectory(cli.TemplateDir); err != nil {
			return fmt.Errorf("failed to load templates: %w", err)
		}
	}

	log.Infof("webpilot v%s started (browser=%s, capacity=%d, templates=%d, run=%s)",
		version, browserType, maxSessions, len(prompts.List()), log.RunID())

	return serve(ctx, registry, log)
}

// serve reads tool calls from stdin and writes outcomes to stdout.
// Input is one XML tool call per block; blocks are separated by blank
// lines or complete on </tool>.
func serve(ctx context.Context, registry *browsertools.ToolRegistry, log *logging.Logger) error {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 10*1024*1024)
	encoder := json.NewEncoder(os.Stdout)

	var block strings.Builder
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}

		line := scanner.Text()
		block.WriteString(line)
		block.WriteString("\n")

		if !strings.Contains(line, "</tool>") {
			continue
		}

		text := block.String()
		block.Reset()

		outcome := dispatch(ctx, registry, text, log)
		if err := encoder.Encode(outcome); err != nil {
			return fmt.Errorf("failed to write outcome: %w", err)
		}
	}

	return scanner.Err()
}

// dispatch parses and executes a single tool call, converting every
// failure into an error outcome so the caller always gets JSON back.
func dispatch(ctx context.Context, registry *browsertools.ToolRegistry, text string, log *logging.Logger) *tools.Outcome {
	call, _, err := tools.ParseToolCall(text)
	if err != nil {
		log.Warnf("rejected malformed tool call: %v", err)
		return tools.Fail("invalid_call", err.Error())
	}

	tool, ok := registry.GetTool(call.ToolName)
	if !ok {
		log.Warnf("unknown tool requested: %s", call.ToolName)
		return tools.Fail("unknown_tool", fmt.Sprintf("unknown tool: %s", call.ToolName))
	}

	outcome, err := tool.Execute(ctx, call.GetArgumentsXML())
	if err != nil {
		log.Warnf("tool %s rejected arguments: %v", call.ToolName, err)
		return tools.Fail("invalid_arguments", err.Error())
	}

	if outcome.Status == tools.StatusOK {
		log.Infof("tool %s completed", call.ToolName)
	} else {
		log.Infof("tool %s failed: %s", call.ToolName, outcome.Kind)
	}
	return outcome
}

func printToolCatalog(registry *browsertools.ToolRegistry) {
	for _, tool := range registry.GetTools() {
		fmt.Printf("%s\n  %s\n\n", tool.Name(), tool.Description())
	}
}
