package narration

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	ps "github.com/mitchellh/go-ps"
)

var (
	lookPathFunc    = exec.LookPath
	processesFunc   = ps.Processes
	commandFunc     = exec.CommandContext
	ErrNoAudioTool  = errors.New("no audio player found (tried mpg123, ffplay, afplay)")
	ErrNoSpeechTool = errors.New("no speech synthesizer found")
)

// CommandPlayer plays audio through the first available command-line player.
type CommandPlayer struct{}

func (CommandPlayer) Play(ctx context.Context, audio []byte) error {
	f, err := os.CreateTemp("", "calmind-*.mp3")
	if err != nil {
		return fmt.Errorf("failed to create temp audio file: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(audio); err != nil {
		f.Close()
		return fmt.Errorf("failed to write temp audio file: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	players := [][]string{
		{"mpg123", "-q"},
		{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
		{"afplay"},
	}
	for _, p := range players {
		if _, err := lookPathFunc(p[0]); err != nil {
			continue
		}
		args := append(append([]string{}, p[1:]...), f.Name())
		return commandFunc(ctx, p[0], args...).Run()
	}
	return ErrNoAudioTool
}

// SystemSynthesizer speaks through the platform's text-to-speech command.
type SystemSynthesizer struct{}

func (SystemSynthesizer) Say(ctx context.Context, text string) error {
	name, args, err := synthCommand(text)
	if err != nil {
		return err
	}
	return commandFunc(ctx, name, args...).Run()
}

// LocalVoice names the on-device speech command that would be used.
func LocalVoice() (string, error) {
	name, _, err := synthCommand("")
	return name, err
}

func synthCommand(text string) (string, []string, error) {
	switch runtime.GOOS {
	case "darwin":
		if _, err := lookPathFunc("say"); err == nil {
			return "say", []string{text}, nil
		}
	case "windows":
		script := "Add-Type -AssemblyName System.Speech; " +
			"(New-Object System.Speech.Synthesis.SpeechSynthesizer).Speak('" + strings.ReplaceAll(text, "'", "''") + "')"
		return "powershell", []string{"-NoProfile", "-Command", script}, nil
	}

	if speechDispatcherRunning() {
		if _, err := lookPathFunc("spd-say"); err == nil {
			return "spd-say", []string{"-w", text}, nil
		}
	}
	for _, name := range []string{"espeak-ng", "espeak"} {
		if _, err := lookPathFunc(name); err == nil {
			return name, []string{text}, nil
		}
	}
	return "", nil, ErrNoSpeechTool
}

func speechDispatcherRunning() bool {
	procs, err := processesFunc()
	if err != nil {
		return false
	}
	for _, p := range procs {
		if strings.HasPrefix(p.Executable(), "speech-dispatch") {
			return true
		}
	}
	return false
}
