package domain

import "strings"

// Command is an external process invocation.
type Command struct {
	// Name is the executable, resolved against PATH when not absolute.
	Name string

	// Args are the arguments passed after Name.
	Args []string

	// Env holds "KEY=VALUE" overrides applied on top of the process environment.
	Env []string

	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Quiet suppresses streaming of the process output into the logger.
	Quiet bool
}

// String renders the command line for log and error messages.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// CommandResult holds the captured output of a finished command.
type CommandResult struct {
	Stdout []byte
	Stderr []byte
}
