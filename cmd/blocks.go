package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emacsmirror/chatgpt-shell/internal/blocks"
)

func init() {
	rootCmd.AddCommand(blocksCmd)
}

var blocksCmd = &cobra.Command{
	Use:   "blocks [file]",
	Short: "List the source blocks in a transcript",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := readSnapshot(args, nil)
		if err != nil {
			return err
		}
		text := snap.Text

		model := blocks.Resolve(text)
		if len(model.Blocks) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no source blocks")
			return nil
		}
		for i, b := range model.Blocks {
			lang := b.LanguageText(text)
			if lang == "" {
				lang = "(none)"
			}
			first := b.Body.Text(text)
			if idx := strings.IndexByte(first, '\n'); idx >= 0 {
				first = first[:idx]
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%2d  %-12s %s  %s\n", i, lang, b.Body, first)
		}
		return nil
	},
}
