package probe

import (
	"context"
	"os/exec"
	"strings"

	"codeberg.org/mutker/questagent/internal/errors"
)

// run executes an external tool and returns its combined output. Tool
// errors still return whatever output was produced: listings that contain
// "error:" lines are classification input, not failures.
func run(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	text := strings.TrimRight(string(out), "\n")

	if err != nil {
		if len(text) > 0 {
			return text, nil
		}
		return "", errors.New().Wrap(errors.ErrProbeFailed, err)
	}

	return text, nil
}
