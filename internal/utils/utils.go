package utils

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"
	"unicode"

	"github.com/goombaio/namegenerator"
)

// GenerateWorkspaceName returns a random two-word name for a workspace whose
// directory yields no usable name
func GenerateWorkspaceName() string {
	gen := namegenerator.NewNameGenerator(time.Now().UTC().UnixNano())
	return strings.ReplaceAll(gen.Generate(), "_", "-")
}

// SanitizeWorkspaceName normalizes a directory basename into a workspace
// name: lowercase, alphanumerics and dashes only, no leading/trailing or
// doubled dashes. Returns "" when nothing usable is left.
func SanitizeWorkspaceName(dirName string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			return unicode.ToLower(r)
		default:
			return '-'
		}
	}, dirName)

	var b strings.Builder
	prevDash := true // swallow leading dashes
	for _, r := range mapped {
		if r == '-' {
			if prevDash {
				continue
			}
			prevDash = true
		} else {
			prevDash = false
		}
		b.WriteRune(r)
	}

	return strings.TrimSuffix(b.String(), "-")
}

// CopyToClipboard copies the given text to the system clipboard using the
// platform's clipboard tool
func CopyToClipboard(text string) error {
	var name string
	var args []string

	switch runtime.GOOS {
	case "darwin":
		name = "pbcopy"
	case "linux":
		name = "xclip"
		args = []string{"-selection", "clipboard"}
	case "windows":
		name = "clip"
	default:
		return fmt.Errorf("clipboard not supported on %s", runtime.GOOS)
	}

	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("clipboard tool %s not found: %w", name, err)
	}

	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running %s: %w", name, err)
	}
	return nil
}
