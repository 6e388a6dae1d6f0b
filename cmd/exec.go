package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emacsmirror/chatgpt-shell/internal/action"
	"github.com/emacsmirror/chatgpt-shell/internal/blocks"
	"github.com/emacsmirror/chatgpt-shell/internal/config"
)

var (
	execBlock int
	execAt    int
	execYes   bool
)

func init() {
	execCmd.Flags().IntVar(&execBlock, "block", -1, "Block index to execute (see 'blocks')")
	execCmd.Flags().IntVar(&execAt, "at", -1, "Execute the block containing this offset")
	execCmd.Flags().BoolVarP(&execYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(execCmd)
}

var execCmd = &cobra.Command{
	Use:   "exec [file]",
	Short: "Execute a source block through its language's action",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := readSnapshot(args, nil)
		if err != nil {
			return err
		}
		text := snap.Text
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		model := blocks.Resolve(text)
		block, err := pickBlock(model)
		if err != nil {
			return err
		}
		lang := block.LanguageText(text)
		if lang == "" {
			return fmt.Errorf("block has no language tag")
		}

		dispatcher := buildDispatcher(cfg)
		done := make(chan action.Result, 1)
		started, err := dispatcher.Dispatch(context.Background(), block.Body.Start, lang,
			block.Body.Text(text), nil, func(r action.Result) { done <- r })
		if err != nil {
			return err
		}
		if !started {
			// Confirmation declined: a normal cancellation.
			return nil
		}
		return reportResult(cmd, <-done)
	},
}

func pickBlock(model *blocks.Model) (*blocks.SourceBlock, error) {
	switch {
	case execBlock >= 0:
		if execBlock >= len(model.Blocks) {
			return nil, fmt.Errorf("block %d out of range (%d blocks)", execBlock, len(model.Blocks))
		}
		return &model.Blocks[execBlock], nil
	case execAt >= 0:
		if b := model.BlockAt(execAt); b != nil {
			return b, nil
		}
		return nil, fmt.Errorf("no block at offset %d", execAt)
	default:
		return nil, fmt.Errorf("pass --block or --at to pick a block")
	}
}

func reportResult(cmd *cobra.Command, res action.Result) error {
	if res.Err != nil {
		// Already notified; the session stays usable.
		return nil
	}
	switch res.Output.Kind {
	case action.OutputImage:
		fmt.Fprintf(cmd.OutOrStdout(), "[image] %s\n", res.Output.Path)
	case action.OutputFile:
		fmt.Fprintf(cmd.OutOrStdout(), "[file %s]\n%s", res.Output.Path, res.Output.Text)
	case action.OutputText:
		fmt.Fprint(cmd.OutOrStdout(), res.Output.Text)
	}
	return nil
}

// buildDispatcher wires the config tables and the shell delegate into a
// dispatcher for CLI use.
func buildDispatcher(cfg *config.Config) *action.Dispatcher {
	custom := map[string]action.Custom{}
	for lang, ac := range cfg.Actions {
		command := ac.Command
		confirm := ac.Confirm
		custom[strings.ToLower(lang)] = action.Custom{
			Confirm: confirm,
			Run: func(ctx context.Context, body string) (string, error) {
				c := exec.CommandContext(ctx, "sh", "-c", command)
				c.Stdin = strings.NewReader(body)
				out, err := c.CombinedOutput()
				return string(out), err
			},
		}
	}
	opts := action.Options{
		Aliases:  action.NewAliasTable(cfg.Aliases),
		Custom:   custom,
		Delegate: action.NewShellDelegate(),
		Notify:   notifier{},
	}
	if !execYes {
		opts.Confirm = ttyConfirmer{}
	}
	return action.NewDispatcher(opts)
}

// ttyConfirmer prompts on stderr and reads a y/N answer from stdin.
type ttyConfirmer struct{}

func (ttyConfirmer) Confirm(prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
