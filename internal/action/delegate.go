package action

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ShellDelegate executes block bodies through locally installed
// interpreters, feeding the body on stdin. It is the default stand-in for
// the org-babel collaborator.
type ShellDelegate struct {
	interpreters map[string][]string
}

// NewShellDelegate returns a delegate covering the common interpreted
// languages. The caller may extend the mapping with Register.
func NewShellDelegate() *ShellDelegate {
	return &ShellDelegate{interpreters: map[string][]string{
		"python":     {"python3"},
		"javascript": {"node"},
		"ruby":       {"ruby"},
		"perl":       {"perl"},
		"lua":        {"lua"},
		"bash":       {"bash"},
		"sh":         {"sh"},
		"gnuplot":    {"gnuplot"},
		"dot":        {"dot", "-Tpng"},
	}}
}

// Register adds or replaces the interpreter argv for lang.
func (d *ShellDelegate) Register(lang string, argv []string) {
	d.interpreters[lang] = argv
}

// HasDelegate reports whether lang maps to an interpreter present on PATH.
func (d *ShellDelegate) HasDelegate(lang string) bool {
	argv, ok := d.interpreters[lang]
	if !ok {
		return false
	}
	_, err := exec.LookPath(argv[0])
	return err == nil
}

// DefaultParams returns the delegate defaults for lang. File-producing
// languages are redirected to a temp output path so their artifacts can
// be surfaced inline.
func (d *ShellDelegate) DefaultParams(lang string) Params {
	p := Params{"results": "output"}
	switch lang {
	case "gnuplot", "dot":
		p["file"] = filepath.Join(os.TempDir(), "chatgpt-shell-"+lang+".png")
	}
	return p
}

// Execute runs body through lang's interpreter. Stdout is the output;
// stderr is folded into the returned error. When params carry a "file"
// target and the interpreter produced it, the path is returned instead of
// stdout so the dispatcher can inline the artifact.
func (d *ShellDelegate) Execute(ctx context.Context, lang, body string, params Params) (string, error) {
	argv, ok := d.interpreters[lang]
	if !ok {
		return "", fmt.Errorf("no interpreter registered for %s", lang)
	}

	args := argv[1:]
	if out := params["file"]; out != "" && argv[0] == "dot" {
		args = append(append([]string{}, args...), "-o", out)
	}

	cmd := exec.CommandContext(ctx, argv[0], args...)
	cmd.Stdin = strings.NewReader(body)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("%s: %s", err, msg)
		}
		return "", err
	}

	if out := params["file"]; out != "" {
		if info, statErr := os.Stat(out); statErr == nil && info.Size() > 0 {
			return out, nil
		}
	}
	return stdout.String(), nil
}
