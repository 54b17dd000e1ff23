package runner

import (
	"fmt"
	"strconv"
	"strings"
)

// CommandKind identifies what a parsed input line asks the runner to do.
type CommandKind int

const (
	// CommandNoop re-renders the current frame (empty input).
	CommandNoop CommandKind = iota
	// CommandQuery sets the search filter.
	CommandQuery
	// CommandClear removes the search filter.
	CommandClear
	// CommandMove shifts the cursor by Delta rows.
	CommandMove
	// CommandTop jumps the cursor to the first row.
	CommandTop
	// CommandBottom jumps the cursor to the last row.
	CommandBottom
	// CommandGoto focuses the entry with TargetID.
	CommandGoto
	// CommandChildren lists the direct children of the focused entry.
	CommandChildren
	// CommandOpen expands the focused entry (folded hosts).
	CommandOpen
	// CommandClose collapses the focused entry (folded hosts).
	CommandClose
	// CommandFling starts a kinetic glide at Velocity rows per second.
	CommandFling
	// CommandHelp prints the command summary.
	CommandHelp
	// CommandQuit ends the session.
	CommandQuit
)

// Command is one parsed input line.
type Command struct {
	Kind     CommandKind
	Query    string
	Delta    int
	TargetID string
	Velocity float64
}

// ParseCommand interprets a sanitized input line. Known verbs navigate;
// a leading slash forces a search; any other text becomes the search filter,
// which is what makes plain typing filter the outline.
func ParseCommand(text string) (Command, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Command{Kind: CommandNoop}, nil
	}

	// Slash always means search, so verbs stay reachable as filters ("/ls").
	if strings.HasPrefix(text, "/") {
		q := strings.TrimSpace(text[1:])
		if q == "" {
			return Command{Kind: CommandClear}, nil
		}
		return Command{Kind: CommandQuery, Query: q}, nil
	}

	fields := strings.Fields(text)
	verb, args := fields[0], fields[1:]

	switch verb {
	case "exit", "quit", "q":
		return Command{Kind: CommandQuit}, nil
	case "help", "?":
		return Command{Kind: CommandHelp}, nil
	case "j", "down":
		return moveCommand(1, args)
	case "k", "up":
		return moveCommand(-1, args)
	case "g", "top":
		return Command{Kind: CommandTop}, nil
	case "G", "bottom":
		return Command{Kind: CommandBottom}, nil
	case "ls", "children":
		return Command{Kind: CommandChildren}, nil
	case "open":
		return Command{Kind: CommandOpen, TargetID: firstArg(args)}, nil
	case "close":
		return Command{Kind: CommandClose, TargetID: firstArg(args)}, nil
	case "goto", "jump":
		if len(args) == 0 {
			return Command{}, fmt.Errorf("%s requires an entry id", verb)
		}
		return Command{Kind: CommandGoto, TargetID: args[0]}, nil
	case "fling", "f":
		if len(args) == 0 {
			return Command{}, fmt.Errorf("%s requires a velocity in rows per second", verb)
		}
		v, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return Command{}, fmt.Errorf("invalid velocity %q: %w", args[0], err)
		}
		return Command{Kind: CommandFling, Velocity: v}, nil
	}

	// Everything else filters the outline.
	return Command{Kind: CommandQuery, Query: text}, nil
}

func moveCommand(direction int, args []string) (Command, error) {
	count := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return Command{}, fmt.Errorf("invalid count %q", args[0])
		}
		count = n
	}
	return Command{Kind: CommandMove, Delta: direction * count}, nil
}

func firstArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

// HelpText summarizes the line grammar for interactive sessions.
const HelpText = `Commands:
  <text>        filter the outline (every word matches a title prefix)
  /<text>       force a filter (use when the text collides with a verb)
  /             clear the filter
  j/down [n]    move the cursor down
  k/up [n]      move the cursor up
  g/top         jump to the first row
  G/bottom      jump to the last row
  goto <id>     focus an entry by id
  ls            list the children of the focused entry
  open [id]     expand an entry (folded mode)
  close [id]    collapse an entry (folded mode)
  fling <v>     kinetic scroll at v rows/second (negative scrolls up)
  help, ?       show this message
  exit, quit    end the session`
