package cli

import "fmt"

// RunOptions contains all the configuration for the Run command.
type RunOptions struct {
	DirPath   string
	Headless  bool
	Watch     bool
	JSON      bool
	Debug     bool
	Folded    bool
	Height    int
	SessionID string
	Fresh     bool
	RedisURL  string
}

// Execute handles the 'run' command logic, dispatching to Session or Watch mode.
func Execute(opts RunOptions) error {
	if opts.Watch {
		if opts.Headless {
			return fmt.Errorf("--watch and --headless cannot be used together")
		}
		return RunWatch(opts)
	}

	return RunSession(opts)
}
