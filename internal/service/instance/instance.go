package instance

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/oshokin/daylight/internal/logger"
)

// ErrAlreadyRunning is returned when another process with the same executable name exists.
var ErrAlreadyRunning = errors.New("another instance is already running")

// Guard detects and optionally terminates other processes running the same executable.
type Guard struct {
	// name is the executable name to look for.
	name string
	// pid is this process, never reported or killed.
	pid int
	// processes lists the process table.
	processes func() ([]ps.Process, error)
	// kill terminates a process by id.
	kill func(pid int) error
}

// New creates a guard for the executable name; ".exe" is appended on Windows when missing.
func New(name string) *Guard {
	if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(name), ".exe") {
		name += ".exe"
	}

	return &Guard{
		name:      name,
		pid:       os.Getpid(),
		processes: ps.Processes,
		kill:      killProcess,
	}
}

// ExecutableName returns the file name of the running binary.
func ExecutableName() (string, error) {
	path, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable: %w", err)
	}

	return filepath.Base(path), nil
}

// Name returns the executable name the guard looks for.
func (g *Guard) Name() string {
	return g.name
}

// Others returns the ids of other processes running the executable.
func (g *Guard) Others() ([]int, error) {
	processList, err := g.processes()
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	var result []int

	for _, process := range processList {
		if process.Pid() == g.pid {
			continue
		}

		if process.Executable() != g.name {
			continue
		}

		result = append(result, process.Pid())
	}

	return result, nil
}

// Check returns ErrAlreadyRunning when another instance exists.
func (g *Guard) Check() error {
	others, err := g.Others()
	if err != nil {
		return err
	}

	if len(others) > 0 {
		return fmt.Errorf("%w: %s (pid %v)", ErrAlreadyRunning, g.name, others)
	}

	return nil
}

// Terminate kills every other instance.
func (g *Guard) Terminate(ctx context.Context) error {
	others, err := g.Others()
	if err != nil {
		return err
	}

	for _, pid := range others {
		if err = g.kill(pid); err != nil {
			return fmt.Errorf("terminate %s (pid %d): %w", g.name, pid, err)
		}

		logger.InfoKV(ctx, "Terminated previous instance", "name", g.name, "pid", pid)
	}

	return nil
}

func killProcess(pid int) error {
	runningProcess, err := os.FindProcess(pid)
	if err != nil {
		return err
	}

	return runningProcess.Kill()
}
