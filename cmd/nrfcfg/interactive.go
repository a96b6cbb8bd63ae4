package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/ezrec/nrfcfg/image"
	"github.com/ezrec/nrfcfg/register"
	"github.com/ezrec/nrfcfg/script"
	"github.com/ezrec/nrfcfg/session"
)

// Interactive is a line editing command loop over a session. Every line is
// a script line, except for the few commands handled by the loop itself.
type Interactive struct {
	sess   *session.Session
	parser *script.Parser
	table  string
	rl     *readline.Instance
	out    io.Writer
}

// NewInteractive creates the command loop. Equates defined at the prompt
// persist for the rest of the loop. The register table path is reloaded by
// the verify command; an empty path is the nRF24L01+ table.
func NewInteractive(sess *session.Session, parser *script.Parser, table string) (repl *Interactive, err error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "nrfcfg> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		err = fmt.Errorf("readline: %w", err)
		return
	}

	repl = &Interactive{
		sess:   sess,
		parser: parser,
		table:  table,
		rl:     rl,
		out:    rl.Stdout(),
	}

	return
}

// Run reads and executes lines until end of input or quit.
func (repl *Interactive) Run() {
	defer repl.rl.Close()

	saved := repl.sess.Output
	repl.sess.Output = repl.out
	defer func() { repl.sess.Output = saved }()

	remove := repl.sess.Observers.Add(func() {
		err := printStatus(repl.out, repl.sess.Schema)
		if err != nil {
			fmt.Fprintln(repl.out, err)
		}
	})
	defer remove()

	repl.printHelp()

	for {
		line, err := repl.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		switch strings.ToLower(strings.Fields(input)[0]) {
		case "help", "?":
			repl.printHelp()
		case "quit", "exit", "q":
			return
		case "form":
			err = printForm(repl.out, repl.sess.Schema)
		case "frames":
			err = printFrames(repl.out, image.CaptureDirty(repl.sess.Schema))
		case "status":
			err = printStatus(repl.out, repl.sess.Schema)
		case "verify":
			var fresh *register.Schema
			fresh, err = loadSchema(repl.table)
			if err == nil {
				err = verify(repl.out, repl.sess.Schema, fresh)
			}
		default:
			err = repl.exec(input)
		}

		if err != nil {
			fmt.Fprintln(repl.out, err)
		}
	}
}

// exec parses and runs a single script line. Equates it defines are kept
// as predefines for later lines, and a later .equ of the same name
// replaces them.
func (repl *Interactive) exec(line string) (err error) {
	words := strings.Fields(line)
	if len(words) > 1 && words[0] == ".equ" {
		old, ok := repl.parser.Undefine(words[1])
		if ok {
			defer func() {
				if err != nil {
					repl.parser.Predefine(words[1], old)
				}
			}()
		}
	}

	prog, err := repl.parser.Parse(strings.NewReader(line))
	if err != nil {
		return
	}

	for name, value := range repl.parser.Equate {
		if name != "LINENO" {
			repl.parser.Predefine(name, value)
		}
	}

	return repl.sess.Run(prog)
}

func (repl *Interactive) printHelp() {
	fmt.Fprintln(repl.out, `
Commands:
  set NAME VALUE     - Write a field or register (0x.. hex, 0b.. binary, decimal)
  reset [NAME]       - Restore a field, a register, or everything to power-on
  show [NAME]        - Show a field, a register, or the summary
  expect NAME VALUE  - Check a field or register value
  .equ NAME VALUE    - Define or redefine an equate, usable in $(...)
  form               - Show the configuration form
  frames             - Show SPI write frames of changed registers
  status             - Show channel, data rate and address width
  verify             - Replay SPI frames into a device model and read back
  help               - Show this help
  quit               - Exit`)
}
