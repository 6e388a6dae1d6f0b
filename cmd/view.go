package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/emacsmirror/chatgpt-shell/internal/action"
	"github.com/emacsmirror/chatgpt-shell/internal/blocks"
	"github.com/emacsmirror/chatgpt-shell/internal/clipboard"
	"github.com/emacsmirror/chatgpt-shell/internal/nav"
	"github.com/emacsmirror/chatgpt-shell/internal/render"
)

func init() {
	rootCmd.AddCommand(viewCmd)
}

var viewCmd = &cobra.Command{
	Use:   "view [file]",
	Short: "Interactively page through a decorated transcript",
	Long: `view renders the transcript into a pager.

Keys:
  n / p    next / previous item (block body or prompt boundary)
  c        copy the body of the block at point
  x        execute the block at point
  q        quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := readSnapshot(args, nil)
		if err != nil {
			return err
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		model := blocks.Resolve(snap.Text)
		host := render.NewTerminal(themeFromConfig(cfg))
		host.SetText(snap.Text)
		renderer := render.New(render.NewHighlighter(cfg.Render.HighlightStyle))

		execYes = true // the pager has no prompt surface; x is explicit enough
		m := &viewModel{
			text:       snap.Text,
			model:      model,
			prompts:    snap.Prompts,
			rendered:   host.Draw(renderer.Render(model, snap.Text)),
			dispatcher: buildDispatcher(cfg),
			results:    make(chan action.Result, 1),
		}
		_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
		return err
	},
}

type actionResultMsg action.Result

type viewModel struct {
	text       string
	model      *blocks.Model
	prompts    []int
	rendered   string
	dispatcher *action.Dispatcher
	results    chan action.Result

	vp     viewport.Model
	ready  bool
	point  int
	status string
	width  int
}

func (m *viewModel) Init() tea.Cmd { return nil }

func (m *viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if !m.ready {
			m.vp = viewport.New(msg.Width, msg.Height-1)
			m.vp.SetContent(m.rendered)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = msg.Height - 1
		}
	case actionResultMsg:
		m.status = formatResult(action.Result(msg))
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "n":
			m.move(true)
		case "p":
			m.move(false)
		case "c":
			m.copyBlock()
		case "x":
			return m, m.execBlock()
		}
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

// move advances point to the next or previous item and scrolls to it.
// Decorations only ever hide or replace text within a line, so source
// line numbers map 1:1 onto rendered line numbers.
func (m *viewModel) move(forward bool) {
	var target int
	var ok bool
	if forward {
		target, ok = nav.NextItem(m.model, m.prompts, m.point)
	} else {
		target, ok = nav.PrevItem(m.model, m.prompts, m.point)
	}
	if !ok {
		m.status = "no movement"
		return
	}
	m.point = target
	m.vp.SetYOffset(strings.Count(m.text[:target], "\n"))
	m.status = fmt.Sprintf("point %d", target)
}

func (m *viewModel) copyBlock() {
	b := m.model.BlockAt(m.point)
	if b == nil {
		m.status = "point is not inside a block"
		return
	}
	if err := clipboard.CopyText(b.Body.Text(m.text)); err != nil {
		m.status = err.Error()
		return
	}
	m.status = "copied block body"
}

func (m *viewModel) execBlock() tea.Cmd {
	b := m.model.BlockAt(m.point)
	if b == nil {
		m.status = "point is not inside a block"
		return nil
	}
	lang := b.LanguageText(m.text)
	started, err := m.dispatcher.Dispatch(context.Background(), b.Body.Start, lang,
		b.Body.Text(m.text), nil, func(r action.Result) { m.results <- r })
	if err != nil {
		if errors.Is(err, action.ErrBusy) {
			m.status = "busy: block action still running"
		} else {
			m.status = err.Error()
		}
		return nil
	}
	if !started {
		return nil
	}
	m.status = "running " + lang + " block..."
	results := m.results
	return func() tea.Msg { return actionResultMsg(<-results) }
}

func formatResult(r action.Result) string {
	if r.Err != nil {
		return "execution failed: " + r.Err.Error()
	}
	switch r.Output.Kind {
	case action.OutputImage:
		return "image: " + r.Output.Path
	case action.OutputFile:
		return "file: " + r.Output.Path
	case action.OutputNone:
		return "no output"
	}
	out := strings.TrimSpace(r.Output.Text)
	if idx := strings.IndexByte(out, '\n'); idx >= 0 {
		out = out[:idx] + " …"
	}
	return out
}

func (m *viewModel) View() string {
	if !m.ready {
		return "loading..."
	}
	status := m.status
	if status == "" {
		status = fmt.Sprintf("%d blocks · n/p navigate · c copy · x exec · q quit", len(m.model.Blocks))
	}
	return m.vp.View() + "\n" + runewidth.Truncate(status, max(m.width, 1), "…")
}
