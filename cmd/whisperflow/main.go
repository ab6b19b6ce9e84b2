package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/leonardotrapani/whisperflow/internal/bus"
	"github.com/leonardotrapani/whisperflow/internal/config"
	"github.com/leonardotrapani/whisperflow/internal/daemon"
	"github.com/leonardotrapani/whisperflow/internal/deps"
	"github.com/leonardotrapani/whisperflow/internal/pipeline"
	"github.com/leonardotrapani/whisperflow/internal/tui"
	"github.com/spf13/cobra"
)

func main() {
	_ = rootCmd.Execute()
}

var rootCmd = &cobra.Command{
	Use:   "whisperflow",
	Short: "Streaming voice dictation from the terminal",
}

func init() {
	rootCmd.AddCommand(
		serveCmd(),
		toggleCmd(),
		statusCmd(),
		versionCmd(),
		stopCmd(),
		runCmd(),
		configureCmd(),
		doctorCmd(),
	)
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := daemon.New()
			if err != nil {
				return fmt.Errorf("failed to create daemon: %w", err)
			}
			return d.Run()
		},
	}
}

func toggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle",
		Short: "Start or stop a dictation session",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := bus.SendCommand('t')
			if err != nil {
				return fmt.Errorf("failed to toggle dictation: %w", err)
			}
			fmt.Print(resp)
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Get current session status",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := bus.SendCommand('s')
			if err != nil {
				return fmt.Errorf("failed to get status: %w", err)
			}
			fmt.Print(resp)
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Get protocol version",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := bus.SendCommand('v')
			if err != nil {
				return fmt.Errorf("failed to get version: %w", err)
			}
			fmt.Print(resp)
			return nil
		},
	}
}

func stopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := bus.SendCommand('q')
			if err != nil {
				return fmt.Errorf("failed to stop daemon: %w", err)
			}
			fmt.Print(resp)
			return nil
		},
	}
}

func runCmd() *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a single dictation session in the foreground",
		Long: `Run one dictation session without the daemon: record until the stop key
or Ctrl-C, then drain the transcription queue and leave the full
transcript on the clipboard.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(lang)
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "override the configured language (\"auto\" or ISO-639-1 code)")

	return cmd
}

func runSession(lang string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if lang != "" {
		cfg.Engine.Language = lang
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	p.Run(context.Background())
	fmt.Println(tui.StyleMuted.Render("recording... press " + cfg.Hotkey.StopKey + " or Ctrl-C to stop"))

	select {
	case sig := <-sigCh:
		log.Printf("Received signal %v, finishing session", sig)
		p.Stop()
	case <-p.Done():
	}

	fmt.Println(tui.StyleSuccess.Render("transcript delivered"))
	return nil
}

func configureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "configure",
		Short: "Interactive configuration setup",
		Long: `Interactive configuration wizard for whisperflow.
This will guide you through setting up:
- The transcription engine (local whisper-cli or the OpenAI API)
- Voice activity detection
- Output and notification preferences`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigure()
		},
	}
}

func runConfigure() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	result, err := tui.Run(cfg)
	if err != nil {
		return fmt.Errorf("configuration wizard error: %w", err)
	}

	if result.Cancelled {
		fmt.Println("Configuration cancelled.")
		return nil
	}

	if err := result.Config.Validate(); err != nil {
		fmt.Printf("Configuration validation failed: %v\n", err)
		return err
	}

	if err := config.Save(result.Config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println(tui.StyleSuccess.Render("Configuration saved successfully!"))

	configPath, _ := config.GetConfigPath()
	fmt.Printf("Config file location: %s\n", configPath)

	return nil
}

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check external dependencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			printStatus("pw-record", deps.CheckPwRecord())
			printStatus("whisper-cli", deps.CheckWhisperCli())
			return nil
		},
	}
}

func printStatus(name string, s deps.Status) {
	if s.Installed {
		line := fmt.Sprintf("[ok] %s: %s", name, s.Path)
		if s.Version != "" {
			line += " (" + s.Version + ")"
		}
		fmt.Println(tui.StyleSuccess.Render(line))
	} else {
		fmt.Println(tui.StyleError.Render("[missing] " + name))
	}
}
