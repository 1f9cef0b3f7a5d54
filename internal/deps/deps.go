package deps

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Requirement defines an external program karaoke relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		switch {
		case cmd == "":
			status.Detail = "command not configured"
		default:
			if _, err := exec.LookPath(cmd); err != nil {
				status.Detail = fmt.Sprintf("binary %q not found", cmd)
			} else {
				status.Available = true
			}
		}
		results = append(results, status)
	}
	return results
}

// CheckPythonModule reports whether python can import module.
func CheckPythonModule(ctx context.Context, python, module string, optional bool) Status {
	python = strings.TrimSpace(python)
	status := Status{
		Name:        "Python module " + module,
		Command:     python,
		Description: fmt.Sprintf("Required for %s forced alignment", module),
		Optional:    optional,
	}
	if python == "" {
		status.Detail = "python interpreter not configured"
		return status
	}
	if _, err := exec.LookPath(python); err != nil {
		status.Detail = fmt.Sprintf("binary %q not found", python)
		return status
	}

	checkCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()
	out, err := exec.CommandContext(checkCtx, python, "-c", "import "+module).CombinedOutput()
	if err != nil {
		detail := strings.TrimSpace(string(out))
		if idx := strings.LastIndex(detail, "\n"); idx >= 0 {
			detail = detail[idx+1:]
		}
		if detail == "" {
			detail = err.Error()
		}
		status.Detail = detail
		return status
	}
	status.Available = true
	return status
}
