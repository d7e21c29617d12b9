// Package dispatcher parses command lines and runs them against the store.
package dispatcher

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ASHISH26940/txkv/internal/script"
	"github.com/VictoriaMetrics/metrics"
	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
)

// DataStore is the interface the dispatcher needs from the storage layer.
// By depending on an interface, we can easily mock the store in our tests.
type DataStore interface {
	Set(key string, value int)
	Get(key string) (int, bool)
	Unset(key string) bool
	CountEqualTo(value int) int
	Begin()
	Commit() bool
	Rollback() bool
}

// Options configures a Dispatcher. The zero value is usable.
type Options struct {
	Echo    bool         // write each input line before its result
	Prompt  string       // prefix of result lines, "> " when empty
	Logger  hclog.Logger // nil discards logs
	Metrics *metrics.Set // nil creates a private set
}

type handler func(args []string) (string, error)

type command struct {
	arity int // -1 accepts any number of arguments
	usage string
	run   handler
}

// Dispatcher executes command lines and writes their results to out.
type Dispatcher struct {
	store    DataStore
	out      io.Writer
	echo     bool
	prompt   string
	logger   hclog.Logger
	metrics  *metrics.Set
	commands map[string]command
}

// New creates a new Dispatcher instance.
func New(store DataStore, out io.Writer, opts Options) *Dispatcher {
	d := &Dispatcher{
		store:   store,
		out:     out,
		echo:    opts.Echo,
		prompt:  opts.Prompt,
		logger:  opts.Logger,
		metrics: opts.Metrics,
	}
	if d.prompt == "" {
		d.prompt = "> "
	}
	if d.logger == nil {
		d.logger = hclog.NewNullLogger()
	}
	if d.metrics == nil {
		d.metrics = metrics.NewSet()
	}
	d.registerCommands()
	return d
}

// Metrics returns the set holding the dispatcher's counters.
func (d *Dispatcher) Metrics() *metrics.Set {
	return d.metrics
}

// registerCommands sets up the command table.
func (d *Dispatcher) registerCommands() {
	d.commands = map[string]command{
		"set":        {2, "SET command needs to be in the form of SET variableName variableValue", d.handleSet},
		"get":        {1, "GET command needs to be in the form of GET variableName", d.handleGet},
		"unset":      {1, "UNSET command needs to be in the form of UNSET variableName", d.handleUnset},
		"numequalto": {1, "NUMEQUALTO command needs to be in the form of NUMEQUALTO variableValue", d.handleNumEqualTo},
		"begin":      {0, "BEGIN command doesn't take any input", d.handleBegin},
		"rollback":   {0, "ROLLBACK command doesn't take any input", d.handleRollback},
		"commit":     {0, "COMMIT command doesn't take any input", d.handleCommit},
		"end":        {-1, "", d.handleEnd},
	}
}

// Run executes every line read from r until input is exhausted or ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context, r io.Reader) error {
	return script.Replay(ctx, r, d.Execute)
}

// RunFile executes the commands in the file at path.
func (d *Dispatcher) RunFile(ctx context.Context, path string) error {
	return script.ReplayFile(ctx, path, d.Execute)
}

// Execute runs a single command line. Validation failures are written to the
// output and do not produce an error; only output failures do.
// A blank line is treated as an unknown command.
func (d *Dispatcher) Execute(line string) error {
	if d.echo {
		if _, err := fmt.Fprintln(d.out, line); err != nil {
			return errors.Wrap(err, "write echo")
		}
	}

	var name string
	var args []string
	if tokens := strings.Fields(line); len(tokens) > 0 {
		name = strings.ToLower(tokens[0])
		args = tokens[1:]
	}

	result, err := d.dispatch(name, args)
	if err != nil {
		var verr *Error
		if !errors.As(err, &verr) {
			return err
		}
		d.logger.Debug("rejected command", "line", line, "code", verr.Code)
		d.metrics.GetOrCreateCounter(fmt.Sprintf(`txkv_rejected_commands_total{code=%q}`, verr.Code)).Inc()
		result = verr.Msg
	}
	if result == "" {
		return nil
	}
	if _, err := fmt.Fprintln(d.out, result); err != nil {
		return errors.Wrap(err, "write result")
	}
	return nil
}

func (d *Dispatcher) dispatch(name string, args []string) (string, error) {
	cmd, ok := d.commands[name]
	if !ok {
		return "", newError(CodeUnknownCommand, "No corresponding command found")
	}
	if cmd.arity >= 0 && len(args) != cmd.arity {
		return "", newError(CodeArity, cmd.usage)
	}
	d.metrics.GetOrCreateCounter(fmt.Sprintf(`txkv_commands_total{command=%q}`, name)).Inc()
	return cmd.run(args)
}

func (d *Dispatcher) handleSet(args []string) (string, error) {
	value, err := parseValue(args[1], "SET")
	if err != nil {
		return "", err
	}
	d.store.Set(args[0], value)
	return "", nil
}

func (d *Dispatcher) handleGet(args []string) (string, error) {
	value, ok := d.store.Get(args[0])
	if !ok {
		return d.prompt + "NULL", nil
	}
	return d.prompt + strconv.Itoa(value), nil
}

func (d *Dispatcher) handleUnset(args []string) (string, error) {
	if !d.store.Unset(args[0]) {
		return "No record found in the database, no changes made", nil
	}
	return "", nil
}

func (d *Dispatcher) handleNumEqualTo(args []string) (string, error) {
	value, err := parseValue(args[0], "NUMEQUALTO")
	if err != nil {
		return "", err
	}
	return d.prompt + strconv.Itoa(d.store.CountEqualTo(value)), nil
}

func (d *Dispatcher) handleBegin([]string) (string, error) {
	d.store.Begin()
	return "", nil
}

func (d *Dispatcher) handleRollback([]string) (string, error) {
	if !d.store.Rollback() {
		return d.prompt + "NO TRANSACTION", nil
	}
	return "", nil
}

func (d *Dispatcher) handleCommit([]string) (string, error) {
	if !d.store.Commit() {
		return d.prompt + "NO TRANSACTION", nil
	}
	return "", nil
}

// handleEnd accepts END without effect; the session runs until input is exhausted.
func (d *Dispatcher) handleEnd([]string) (string, error) {
	return "", nil
}

// parseValue converts a token to a value in the 32-bit signed range.
func parseValue(tok, cmdName string) (int, error) {
	v, err := strconv.ParseInt(tok, 10, 32)
	if err != nil {
		return 0, newError(CodeNotANumber,
			fmt.Sprintf("Your input %s is not a number. %s can be only applied to numbers", tok, cmdName))
	}
	return int(v), nil
}
