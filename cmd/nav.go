package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emacsmirror/chatgpt-shell/internal/blocks"
	"github.com/emacsmirror/chatgpt-shell/internal/nav"
)

var (
	navPoint   int
	navPrompts string
)

func init() {
	for _, c := range []*cobra.Command{nextCmd, prevCmd} {
		c.Flags().IntVar(&navPoint, "point", 0, "Current point offset")
		c.Flags().StringVar(&navPrompts, "prompts", "", "Comma-separated prompt boundary offsets")
		rootCmd.AddCommand(c)
	}
}

var nextCmd = &cobra.Command{
	Use:   "next [file]",
	Short: "Print the next block or prompt boundary after --point",
	Args:  cobra.MaximumNArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return runNav(cmd, args, true) },
}

var prevCmd = &cobra.Command{
	Use:   "prev [file]",
	Short: "Print the previous block or prompt boundary before --point",
	Args:  cobra.MaximumNArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return runNav(cmd, args, false) },
}

func runNav(cmd *cobra.Command, args []string, forward bool) error {
	extra, err := parsePrompts(navPrompts)
	if err != nil {
		return err
	}
	snap, err := readSnapshot(args, extra)
	if err != nil {
		return err
	}

	model := blocks.Resolve(snap.Text)
	var target int
	var ok bool
	if forward {
		target, ok = nav.NextItem(model, snap.Prompts, navPoint)
	} else {
		target, ok = nav.PrevItem(model, snap.Prompts, navPoint)
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "no movement")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), target)
	return nil
}

func parsePrompts(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("bad prompt offset %q: %w", p, err)
		}
		out = append(out, n)
	}
	sort.Ints(out)
	return out, nil
}
