package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fyerfyer/illogical/pkg/circuit"
)

// Regular expressions for parsing session scripts
var (
	nodeRegex       = regexp.MustCompile(`^(\w+)\s*=\s*(\w+)(?:\(([01])\))?$`)
	connectRegex    = regexp.MustCompile(`^(\w+)(?:\.(\w+))?\s*->\s*(\w+)\.(\w+)$`)
	disconnectRegex = regexp.MustCompile(`^disconnect\s+(\w+)(?:\.(\w+))?\s*->\s*(\w+)\.(\w+)$`)
	toggleRegex     = regexp.MustCompile(`^toggle\s+(\w+)$`)
	removeRegex     = regexp.MustCompile(`^remove\s+(\w+)$`)
	evalRegex       = regexp.MustCompile(`^eval\s+(\w+)$`)
	tickRegex       = regexp.MustCompile(`^tick$`)
)

// CommandType identifies a session script statement
type CommandType int

const (
	CmdNode CommandType = iota
	CmdConnect
	CmdDisconnect
	CmdToggle
	CmdRemove
	CmdTick
	CmdEval
)

// String returns a string representation of the command type
func (t CommandType) String() string {
	switch t {
	case CmdNode:
		return "node"
	case CmdConnect:
		return "connect"
	case CmdDisconnect:
		return "disconnect"
	case CmdToggle:
		return "toggle"
	case CmdRemove:
		return "remove"
	case CmdTick:
		return "tick"
	case CmdEval:
		return "eval"
	default:
		return "unknown"
	}
}

// Command is one parsed script statement. Which fields are set depends on Type.
type Command struct {
	Line    int
	Type    CommandType
	Name    string           // node name for node, toggle, remove and eval
	Kind    circuit.GateKind // node only
	Initial bool             // node only, INPUT(1)
	From    string           // source node for connect and disconnect
	FromOut string           // source socket label, "out" when omitted
	To      string           // target node for connect and disconnect
	ToIn    string           // target socket label
}

// Script is an ordered replay of editor gestures
type Script struct {
	Name     string
	Commands []Command
}

// ParseScriptFile reads a session script from disk
func ParseScriptFile(filename string) (*Script, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return ParseScript(file, name)
}

// ParseScript reads session script statements, one per line. Blank lines
// and anything after '#' are ignored.
func ParseScript(r io.Reader, name string) (*Script, error) {
	script := &Script{Name: name, Commands: make([]Command, 0)}
	declared := make(map[string]bool)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		cmd, err := parseCommand(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", name, lineNo, err)
		}
		cmd.Line = lineNo

		if err := checkNames(cmd, declared); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", name, lineNo, err)
		}

		script.Commands = append(script.Commands, cmd)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading script: %w", err)
	}

	return script, nil
}

// parseCommand matches one trimmed line against the statement forms.
// Keyword forms are tried before the bare connect form.
func parseCommand(line string) (Command, error) {
	if matches := disconnectRegex.FindStringSubmatch(line); matches != nil {
		return Command{
			Type:    CmdDisconnect,
			From:    matches[1],
			FromOut: defaultSocket(matches[2]),
			To:      matches[3],
			ToIn:    matches[4],
		}, nil
	}

	if matches := toggleRegex.FindStringSubmatch(line); matches != nil {
		return Command{Type: CmdToggle, Name: matches[1]}, nil
	}

	if matches := removeRegex.FindStringSubmatch(line); matches != nil {
		return Command{Type: CmdRemove, Name: matches[1]}, nil
	}

	if matches := evalRegex.FindStringSubmatch(line); matches != nil {
		return Command{Type: CmdEval, Name: matches[1]}, nil
	}

	if tickRegex.MatchString(line) {
		return Command{Type: CmdTick}, nil
	}

	if matches := connectRegex.FindStringSubmatch(line); matches != nil {
		return Command{
			Type:    CmdConnect,
			From:    matches[1],
			FromOut: defaultSocket(matches[2]),
			To:      matches[3],
			ToIn:    matches[4],
		}, nil
	}

	if matches := nodeRegex.FindStringSubmatch(line); matches != nil {
		kind, err := circuit.ParseGateKind(matches[2])
		if err != nil {
			return Command{}, err
		}
		if matches[3] != "" && kind != circuit.INPUT {
			return Command{}, fmt.Errorf("initial state is only valid for INPUT, got %s", kind)
		}
		return Command{
			Type:    CmdNode,
			Name:    matches[1],
			Kind:    kind,
			Initial: matches[3] == "1",
		}, nil
	}

	return Command{}, fmt.Errorf("unrecognized statement: %q", line)
}

// checkNames rejects redeclared nodes and references to undeclared ones
func checkNames(cmd Command, declared map[string]bool) error {
	switch cmd.Type {
	case CmdNode:
		if declared[cmd.Name] {
			return fmt.Errorf("node %q declared twice", cmd.Name)
		}
		declared[cmd.Name] = true
	case CmdConnect, CmdDisconnect:
		for _, name := range []string{cmd.From, cmd.To} {
			if !declared[name] {
				return fmt.Errorf("undeclared node %q", name)
			}
		}
	case CmdToggle, CmdEval:
		if !declared[cmd.Name] {
			return fmt.Errorf("undeclared node %q", cmd.Name)
		}
	case CmdRemove:
		if !declared[cmd.Name] {
			return fmt.Errorf("undeclared node %q", cmd.Name)
		}
		delete(declared, cmd.Name)
	}
	return nil
}

func defaultSocket(name string) string {
	if name == "" {
		return "out"
	}
	return name
}
