package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/emacsmirror/chatgpt-shell/internal/config"
	"github.com/emacsmirror/chatgpt-shell/internal/render"
	"github.com/emacsmirror/chatgpt-shell/internal/transport"
)

var rootCmd = &cobra.Command{
	Use:   "chatgpt-shell",
	Short: "Annotate, render and act on transcript markdown",
	Long: `chatgpt-shell scans an LLM transcript for fenced code blocks and
inline markdown, renders them non-destructively, and can navigate
between blocks or execute a block through its language's interpreter.

Examples:
  chatgpt-shell render transcript.md
  chatgpt-shell blocks transcript.md
  chatgpt-shell exec transcript.md --block 0
  chatgpt-shell next transcript.md --point 120
  chatgpt-shell view transcript.md`,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

var (
	aliasFile    string
	promptPrefix string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&aliasFile, "aliases", "", "Path to a YAML language-alias table")
	rootCmd.PersistentFlags().StringVar(&promptPrefix, "prompt-prefix", "> ", "Line prefix marking a prompt boundary")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// readTranscript reads the transcript from the file argument or stdin.
func readTranscript(args []string) (string, error) {
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("no transcript file given and stdin is a terminal")
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// readSnapshot streams the transcript through a transport.Buffer so every
// scan runs against an atomic snapshot with prompt boundaries marked.
// Prompt lines are detected by --prompt-prefix; extra holds additional
// boundary offsets supplied on the command line.
func readSnapshot(args []string, extra []int) (transport.Snapshot, error) {
	text, err := readTranscript(args)
	if err != nil {
		return transport.Snapshot{}, err
	}
	var buf transport.Buffer
	buf.Append(text)
	for _, off := range promptOffsets(text, promptPrefix) {
		buf.MarkPrompt(off)
	}
	for _, off := range extra {
		buf.MarkPrompt(off)
	}
	buf.Finish()
	return buf.Snapshot(), nil
}

// promptOffsets returns the start offset of every line beginning with
// prefix.
func promptOffsets(text, prefix string) []int {
	if prefix == "" {
		return nil
	}
	var out []int
	start := 0
	for start <= len(text) {
		if strings.HasPrefix(text[start:], prefix) {
			out = append(out, start)
		}
		next := strings.IndexByte(text[start:], '\n')
		if next < 0 {
			break
		}
		start += next + 1
	}
	return out
}

// loadConfig reads the config file, layering the --aliases table on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if aliasFile != "" {
		aliases, err := config.LoadAliasFile(aliasFile)
		if err != nil {
			return nil, err
		}
		if cfg.Aliases == nil {
			cfg.Aliases = map[string]string{}
		}
		for k, v := range aliases {
			cfg.Aliases[k] = v
		}
	}
	return cfg, nil
}

// themeFromConfig applies theme overrides onto the default theme.
func themeFromConfig(cfg *config.Config) *render.Theme {
	theme := render.DefaultTheme()
	if cfg == nil {
		return theme
	}
	overrides := map[string]string{
		render.FaceLink:       cfg.Theme.Link,
		render.FaceInlineCode: cfg.Theme.InlineCode,
		render.FaceDocMarkup:  cfg.Theme.DocMarkup,
	}
	for face, color := range overrides {
		if color != "" {
			theme.SetFace(face, lipgloss.NewStyle().Foreground(lipgloss.Color(color)))
		}
	}
	if cfg.Theme.HeadingColors != "" {
		for i, c := range strings.Split(cfg.Theme.HeadingColors, ",") {
			if i >= 8 {
				break
			}
			c = strings.TrimSpace(c)
			if c == "" {
				continue
			}
			theme.SetFace(fmt.Sprintf("%s-%d", render.FaceHeading, i+1),
				lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c)))
		}
	}
	return theme
}

// notifier routes transient failure notices to stderr.
type notifier struct{}

func (notifier) Notifyf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "chatgpt-shell: "+format+"\n", args...)
}
