package types

import (
	"fmt"
	"regexp"
	"runtime"
	"strings"

	"github.com/mattn/go-shellwords"
)

// Command is an external command. Configurations declare it either as a
// single string, run as-is through the platform shell, or as an argument
// list, run directly.
type Command struct {
	Line string
	Args []string
}

// ParseCommand returns the shell form of a command line. The line is kept
// verbatim; on POSIX systems it is rejected when the shell could not
// tokenize it.
func ParseCommand(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{}, nil
	}
	if runtime.GOOS != "windows" {
		if _, err := shellwords.Parse(line); err != nil {
			return Command{}, fmt.Errorf("parse command %q: %w", line, err)
		}
	}
	return Command{Line: line}, nil
}

// NewCommand builds a command from explicit arguments
func NewCommand(args ...string) Command {
	return Command{Args: append([]string(nil), args...)}
}

// IsZero reports whether no command is declared
func (c Command) IsZero() bool {
	return c.Line == "" && len(c.Args) == 0
}

// Name returns the executable of the command
func (c Command) Name() string {
	if fields := strings.Fields(c.Line); len(fields) > 0 {
		return strings.Trim(fields[0], `"'`)
	}
	if len(c.Args) == 0 {
		return ""
	}
	return c.Args[0]
}

// Argv returns the process arguments: the platform shell invocation for a
// command line, the arguments themselves otherwise.
func (c Command) Argv() []string {
	if c.Line == "" {
		return c.Args
	}
	if runtime.GOOS == "windows" {
		return []string{"cmd", "/C", c.Line}
	}
	return []string{"sh", "-c", c.Line}
}

// String renders the command as a single line the platform shell runs with
// the same arguments.
func (c Command) String() string {
	if c.Line != "" {
		return c.Line
	}
	parts := make([]string, len(c.Args))
	for i, arg := range c.Args {
		parts[i] = quoteArg(arg)
	}
	return strings.Join(parts, " ")
}

const shellSpecial = " \t\n\"'\\$`&|;<>()*?[]#~!{}"

func quoteArg(arg string) string {
	if runtime.GOOS == "windows" {
		if arg == "" || strings.ContainsAny(arg, " \t\"") {
			return `"` + strings.ReplaceAll(arg, `"`, `\"`) + `"`
		}
		return arg
	}
	if arg != "" && !strings.ContainsAny(arg, shellSpecial) {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}

// References reports whether the command line mentions the given tool
func (c Command) References(tool string) bool {
	if tool == "" || c.IsZero() {
		return false
	}
	return strings.Contains(strings.ToLower(c.String()), strings.ToLower(tool))
}

var swdPort = regexp.MustCompile(`(?i)port=swd(\s+sn=\S*)?`)

// BindSerial returns a copy of the command where the serial number is added
// to the SWD connect parameters (port=swd sn=<serial>). An existing sn=
// parameter is replaced. The second result reports whether a port=swd
// parameter was found.
func (c Command) BindSerial(serial string) (Command, bool) {
	if c.Line != "" {
		loc := swdPort.FindStringIndex(c.Line)
		if loc == nil {
			return c, false
		}
		port := loc[0] + len("port=swd")
		return Command{Line: c.Line[:port] + " sn=" + serial + c.Line[loc[1]:]}, true
	}

	out := make([]string, 0, len(c.Args)+1)
	bound := false
	for i := 0; i < len(c.Args); i++ {
		arg := c.Args[i]
		out = append(out, arg)
		if bound || !strings.EqualFold(arg, "port=swd") {
			continue
		}
		bound = true
		out = append(out, "sn="+serial)
		if i+1 < len(c.Args) && strings.HasPrefix(strings.ToLower(c.Args[i+1]), "sn=") {
			i++
		}
	}
	return Command{Args: out}, bound
}

// MarshalText renders the command as a single line
func (c Command) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses a single command line
func (c *Command) UnmarshalText(text []byte) error {
	parsed, err := ParseCommand(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
