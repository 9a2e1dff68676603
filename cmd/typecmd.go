package cmd

import (
	"fmt"
	"time"

	"github.com/ShreyashPatil123/Panther-update-sub001/internal/nav"
	"github.com/ShreyashPatil123/Panther-update-sub001/internal/output"
	"github.com/ShreyashPatil123/Panther-update-sub001/internal/platform"
	"github.com/spf13/cobra"
)

// TypeReport is the output of a standalone type run.
type TypeReport struct {
	OK      bool     `yaml:"ok"                json:"ok"`
	Action  string   `yaml:"action"            json:"action"`
	Text    string   `yaml:"text,omitempty"    json:"text,omitempty"`
	Chord   string   `yaml:"chord,omitempty"   json:"chord,omitempty"`
	Backend string   `yaml:"backend"           json:"backend"`
	Keys    int      `yaml:"keys"              json:"keys"`
	Skipped []string `yaml:"skipped,omitempty" json:"skipped,omitempty"`
}

var typeCmd = &cobra.Command{
	Use:   "type [text]",
	Short: "Send raw keystrokes through a backend",
	Long: `Type sends keystrokes without locating or focusing anything first.
With the virtual-key backend the events land in whatever window is
foreground, so treat it as a debugging tool. A chord (e.g. "ctrl+l") is
pressed before the text; --commit appends Enter.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runType,
}

func init() {
	rootCmd.AddCommand(typeCmd)
	typeCmd.Flags().String("text", "", "Text to type (alternative to positional arg)")
	typeCmd.Flags().String("chord", "", "Key combo pressed first (e.g. \"ctrl+l\", \"alt+tab\")")
	typeCmd.Flags().String("backend", "virtual-key", "Keystroke backend: virtual-key, protocol")
	typeCmd.Flags().Int("delay", 0, "Delay between keystrokes in ms (0 = config default)")
	typeCmd.Flags().Bool("commit", false, "Press Enter after the text")
	addPageFlags(typeCmd)
	typeCmd.Flags().Bool("pretty", false, "Indent JSON output")
}

func runType(cmd *cobra.Command, args []string) error {
	text, _ := cmd.Flags().GetString("text")
	if len(args) > 0 {
		text = args[0]
	}
	chordStr, _ := cmd.Flags().GetString("chord")
	if text == "" && chordStr == "" {
		return fmt.Errorf("specify --text, --chord, or a positional text argument")
	}

	backendStr, _ := cmd.Flags().GetString("backend")
	backend, err := nav.ParseBackend(backendStr)
	if err != nil {
		return err
	}

	cfg, err := loadNavConfig(cmd)
	if err != nil {
		return err
	}

	delay := cfg.Timing.CharDelay()
	if ms, _ := cmd.Flags().GetInt("delay"); ms > 0 {
		delay = time.Duration(ms) * time.Millisecond
	}

	ctx := cmd.Context()

	var in platform.Inputter
	if backend == nav.BackendProtocol {
		session, err := attachBrowser(ctx, cfg)
		if err != nil {
			return err
		}
		defer session.Close()
		page, err := pickPage(ctx, session, cmd)
		if err != nil {
			return err
		}
		in = page.Keys(ctx)
	} else {
		provider, err := platform.NewProvider()
		if err != nil {
			return err
		}
		in = provider.Inputter
	}

	report := TypeReport{
		OK:      true,
		Action:  "type",
		Text:    text,
		Chord:   chordStr,
		Backend: string(backend),
	}

	if chordStr != "" {
		keys, err := platform.ParseChord(chordStr)
		if err != nil {
			return err
		}
		if err := pressChord(in, keys, cfg.Timing.ChordHold()); err != nil {
			return err
		}
		report.Keys += len(keys)
	}

	if text != "" {
		keys, skipped := nav.CompileURL(text)
		report.Skipped = skipped
		for _, ks := range keys {
			if err := pressKeystroke(in, ks, cfg.Timing.KeyHold()); err != nil {
				return err
			}
			time.Sleep(delay)
		}
		report.Keys += len(keys)
	}

	if commit, _ := cmd.Flags().GetBool("commit"); commit {
		if err := pressKeystroke(in, platform.Keystroke{VK: platform.VKReturn}, cfg.Timing.KeyHold()); err != nil {
			return err
		}
		report.Keys++
	}

	return output.Print(report)
}

// pressKeystroke emits one full down/up pair, wrapping in Shift when the
// character needs it. The ups always run so no modifier is stranded.
func pressKeystroke(in platform.Inputter, ks platform.Keystroke, hold time.Duration) error {
	if ks.Shift {
		if err := in.KeyDown(platform.VKShift); err != nil {
			return err
		}
		defer in.KeyUp(platform.VKShift)
	}
	if err := in.KeyDown(ks.VK); err != nil {
		return err
	}
	time.Sleep(hold)
	return in.KeyUp(ks.VK)
}

// pressChord holds every key of the combo in press order and releases in
// reverse. Keys already down are released even when a later press fails.
func pressChord(in platform.Inputter, keys []platform.Keystroke, hold time.Duration) error {
	var firstErr error
	var held []platform.VK
	for _, ks := range keys {
		if err := in.KeyDown(ks.VK); err != nil {
			firstErr = err
			break
		}
		held = append(held, ks.VK)
	}
	if firstErr == nil {
		time.Sleep(hold)
	}
	for i := len(held) - 1; i >= 0; i-- {
		if err := in.KeyUp(held[i]); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
