// Package tui holds the interactive configuration wizard.
package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/leonardotrapani/whisperflow/internal/config"
)

// Result carries the wizard outcome back to the CLI.
type Result struct {
	Config    *config.Config
	Cancelled bool
}

// Run walks the user through the settings that matter most and returns the
// updated configuration. The caller validates and saves it.
func Run(cfg *config.Config) (Result, error) {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Transcription engine").
				Description("whisper-cpp runs locally through whisper-cli; openai uses the cloud API").
				Options(
					huh.NewOption("whisper-cpp (local)", "whisper-cpp"),
					huh.NewOption("OpenAI API", "openai"),
				).
				Value(&cfg.Engine.Provider),

			huh.NewInput().
				Title("Whisper model path").
				Description("whisper.cpp model file, e.g. ggml-large-v3-turbo.bin (whisper-cpp only)").
				Value(&cfg.Engine.ModelPath),

			huh.NewInput().
				Title("OpenAI API key").
				Description("leave empty to use the OPENAI_API_KEY environment variable").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.Engine.APIKey),

			huh.NewInput().
				Title("Language").
				Description("\"auto\" or an ISO-639-1 code like en, it, es").
				Value(&cfg.Engine.Language),
		),

		huh.NewGroup(
			huh.NewInput().
				Title("Silero VAD model path").
				Description("ONNX model for live speech detection; empty uses energy detection").
				Value(&cfg.VAD.ModelPath),

			huh.NewSelect[string]().
				Title("Output mode").
				Options(
					huh.NewOption("Paste with clipboard fallback", "fallback"),
					huh.NewOption("Paste keystroke only", "paste"),
					huh.NewOption("Clipboard only", "clipboard"),
				).
				Value(&cfg.Output.Mode),

			huh.NewInput().
				Title("Stop key").
				Description("key that ends a dictation session, e.g. ctrl").
				Value(&cfg.Hotkey.StopKey),

			huh.NewSelect[string]().
				Title("Notifications").
				Options(
					huh.NewOption("Desktop", "desktop"),
					huh.NewOption("Log only", "log"),
					huh.NewOption("None", "none"),
				).
				Value(&cfg.Notifications.Type),
		),
	)

	fmt.Println(StyleHeader.Render("whisperflow configuration"))

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return Result{Config: cfg, Cancelled: true}, nil
		}
		return Result{}, err
	}

	return Result{Config: cfg}, nil
}
