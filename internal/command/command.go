// Package command parses the editor's colon command line.
//
// Supported commands:
//
//	:w [path]       write, optionally to a new path
//	:wq [path], :x  write then quit
//	:q, :q!         quit, forcing past unsaved changes with !
//	:e[!] path      open another file (also :o)
//	:cd path        change the working directory
//	:g n, :n        go to line n (1-based)
//	:lua code       run Lua against the buffer
package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Errors wrapped by ParseError.
var (
	// ErrUnknownCommand indicates the command name is not recognized.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrMissingArgument indicates a command needs an argument it did not get.
	ErrMissingArgument = errors.New("missing argument")

	// ErrInvalidArgument indicates an argument could not be interpreted.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEmpty indicates a blank command line.
	ErrEmpty = errors.New("empty command")
)

// ParseError reports why a command line was rejected.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Input)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Kind identifies a command.
type Kind uint8

const (
	Write Kind = iota
	WriteQuit
	Quit
	Edit
	ChangeDir
	Goto
	Lua
)

var kindNames = [...]string{
	Write:     "write",
	WriteQuit: "write-quit",
	Quit:      "quit",
	Edit:      "edit",
	ChangeDir: "cd",
	Goto:      "goto",
	Lua:       "lua",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Command is a parsed command line.
type Command struct {
	Kind Kind

	// Arg is the path for Write, WriteQuit, Edit and ChangeDir, and the
	// source for Lua. Empty when not given.
	Arg string

	// Line is the 1-based target of Goto.
	Line int

	// Force is set by a trailing ! on the command name.
	Force bool
}

// Parse parses a command line. A leading ':' is optional.
func Parse(input string) (Command, error) {
	line := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(input), ":"))
	if line == "" {
		return Command{}, &ParseError{Input: input, Err: ErrEmpty}
	}

	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	if n, err := strconv.Atoi(name); err == nil {
		return gotoLine(input, n, arg)
	}

	force := strings.HasSuffix(name, "!")
	name = strings.TrimSuffix(name, "!")

	switch name {
	case "w", "write":
		return Command{Kind: Write, Arg: arg, Force: force}, nil

	case "wq", "x", "exit":
		return Command{Kind: WriteQuit, Arg: arg, Force: force}, nil

	case "q", "quit":
		if arg != "" {
			return Command{}, &ParseError{Input: input, Err: ErrInvalidArgument}
		}
		return Command{Kind: Quit, Force: force}, nil

	case "e", "edit", "o", "open":
		if arg == "" {
			return Command{}, &ParseError{Input: input, Err: ErrMissingArgument}
		}
		return Command{Kind: Edit, Arg: arg, Force: force}, nil

	case "cd":
		if arg == "" {
			return Command{}, &ParseError{Input: input, Err: ErrMissingArgument}
		}
		return Command{Kind: ChangeDir, Arg: arg}, nil

	case "g", "goto":
		if arg == "" {
			return Command{}, &ParseError{Input: input, Err: ErrMissingArgument}
		}
		n, err := strconv.Atoi(arg)
		if err != nil {
			return Command{}, &ParseError{Input: input, Err: ErrInvalidArgument}
		}
		return gotoLine(input, n, "")

	case "lua":
		if arg == "" {
			return Command{}, &ParseError{Input: input, Err: ErrMissingArgument}
		}
		return Command{Kind: Lua, Arg: arg}, nil
	}

	return Command{}, &ParseError{Input: input, Err: ErrUnknownCommand}
}

func gotoLine(input string, n int, rest string) (Command, error) {
	if rest != "" {
		return Command{}, &ParseError{Input: input, Err: ErrInvalidArgument}
	}
	return Command{Kind: Goto, Line: n}, nil
}
