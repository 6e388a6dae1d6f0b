// Package clipboard copies text to the system clipboard by shelling out
// to the platform utility. It backs the copy-body affordance attached to
// opening fences.
package clipboard

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// CopyText copies text to the system clipboard.
func CopyText(text string) error {
	switch runtime.GOOS {
	case "darwin":
		return pipeTo(text, "pbcopy")
	case "linux":
		return copyTextLinux(text)
	default:
		return fmt.Errorf("clipboard not supported on %s", runtime.GOOS)
	}
}

func copyTextLinux(text string) error {
	// Wayland first, then X11.
	for _, util := range [][]string{
		{"wl-copy"},
		{"xclip", "-selection", "clipboard"},
	} {
		if _, err := exec.LookPath(util[0]); err == nil {
			return pipeTo(text, util[0], util[1:]...)
		}
	}
	return fmt.Errorf("no clipboard utility found (install wl-copy or xclip)")
}

func pipeTo(text, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
