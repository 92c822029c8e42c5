// Package main is the entry point for the Timely TUI application.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/timely-planner/timely-tui/internal/api"
	"github.com/timely-planner/timely-tui/internal/config"
	"github.com/timely-planner/timely-tui/internal/logging"
	"github.com/timely-planner/timely-tui/internal/session"
	"github.com/timely-planner/timely-tui/internal/tui"
)

const version = "0.1.0"

const helpText = `timely-tui - Terminal client for the Timely task planner

USAGE:
    timely-tui [OPTIONS]

OPTIONS:
    -h, --help         Show this help message
    -v, --version      Show version information
    --init             Create a template config file
    --logout           Forget the stored session and exit
    --view <route>     Start in a view: all, work, home, personal, study, weekly

CONFIGURATION:
    Config file: ~/.config/timely-tui/config.yaml
    Every setting can also be set through the environment (see --init).
    TIMELY_TOKEN overrides the stored session token.

KEYBINDINGS:
    Navigation:
        j/k         Move down/up
        gg/G        Go to top/bottom
        Ctrl+d/u    Half page down/up
        Tab         Switch between menu and tasks
        1-6         All, Work, Home, Personal, Study, Weekly

    Task Actions:
        a           Add task (category views)
        dd          Delete task
        yy          Copy task
        s           Sort by date/title (All view)
        Enter       Expand/collapse group (All view)

    Other:
        r           Refresh
        O           Log out
        ?           Show help
        q           Quit
`

const configTemplate = `# Timely TUI Configuration
# Location: ~/.config/timely-tui/config.yaml

api:
  # Base URL of the Timely server (env: TIMELY_API_URL)
  base_url: "https://timely-server-puce.vercel.app/api"
  # Per-request timeout (env: TIMELY_API_TIMEOUT)
  timeout: 30s

ui:
  # View shown after startup when signed in (env: TIMELY_START_VIEW)
  start_view: all
  # Initial sort of the All view: date or title (env: TIMELY_SORT_BY)
  sort_by: date
  # How long status messages stay visible (env: TIMELY_NOTICE_DURATION)
  notice_duration: 3s
  # Mirror success and error messages as desktop notifications
  desktop_notifications: false

log:
  # debug, info, warn or error (env: TIMELY_LOG_LEVEL)
  level: info
  # Defaults to ~/.local/state/timely-tui/timely.log (env: TIMELY_LOG_PATH)
  # path: ""
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Define flags
	var (
		showHelp    bool
		showVersion bool
		initConfig  bool
		logout      bool
		startView   string
	)

	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version")
	flag.BoolVar(&showVersion, "v", false, "Show version (shorthand)")
	flag.BoolVar(&initConfig, "init", false, "Create template config file")
	flag.BoolVar(&logout, "logout", false, "Forget the stored session")
	flag.StringVar(&startView, "view", "", "Start in the given view")

	flag.Usage = func() {
		fmt.Print(helpText)
	}

	flag.Parse()

	// Handle flags
	if showHelp {
		fmt.Print(helpText)
		return nil
	}

	if showVersion {
		fmt.Printf("timely-tui version %s\n", version)
		return nil
	}

	if initConfig {
		return createConfigTemplate()
	}

	if logout {
		sess := session.New(&config.TokenStore{}, session.WithLogger(logging.Discard()))
		sess.Init()
		sess.Invalidate("logout")
		fmt.Println("Signed out.")
		return nil
	}

	// Normal application flow
	return runApp(startView)
}

// createConfigTemplate creates a template configuration file.
func createConfigTemplate() error {
	path, err := config.ConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config file already exists: %s\n", path)
		fmt.Print("Overwrite? [y/N]: ")

		var response string
		fmt.Scanln(&response)

		if response != "y" && response != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	// Ensure directory exists
	if _, err := config.ConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Write template
	if err := os.WriteFile(path, []byte(configTemplate), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Config file created: %s\n", path)
	return nil
}

// runApp starts the main TUI application.
func runApp(startView string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logPath, err := cfg.LogPath()
	if err != nil {
		return fmt.Errorf("failed to resolve log path: %w", err)
	}
	log, logFile, err := logging.Setup(logPath, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer logFile.Close()

	// Restore the session from storage
	sess := session.New(&config.TokenStore{}, session.WithLogger(log))
	res := sess.Init()

	client := api.NewClient(cfg.API.BaseURL, sess)
	client.SetLogger(log)
	client.SetHTTPClient(&http.Client{Timeout: cfg.API.Timeout})

	if startView == "" {
		startView = cfg.UI.StartView
	}
	if !res.Valid() {
		log.WithField("status", res.Status.String()).Info("no valid session, starting at login")
	}
	log.WithFields(logrus.Fields{
		"api":  client.BaseURL(),
		"view": startView,
	}).Info("starting")

	// Create and run TUI
	app := tui.NewApp(sess, client, cfg, log, startView, res.Err)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}
