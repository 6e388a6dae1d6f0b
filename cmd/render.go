package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emacsmirror/chatgpt-shell/internal/blocks"
	"github.com/emacsmirror/chatgpt-shell/internal/render"
)

func init() {
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render a transcript with markdown decorations",
	Args:  cobra.MaximumNArgs(1),
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
		renderer := render.New(render.NewHighlighter(cfg.Render.HighlightStyle))
		host := render.NewTerminal(themeFromConfig(cfg))
		host.SetText(snap.Text)

		fmt.Fprint(cmd.OutOrStdout(), host.Draw(renderer.Render(model, snap.Text)))
		return nil
	},
}
