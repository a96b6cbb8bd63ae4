// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package session edits the registers of a schema from user text and
// scripts, and keeps dependent views up to date.
package session

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/ezrec/nrfcfg/bitvec"
	"github.com/ezrec/nrfcfg/register"
	"github.com/ezrec/nrfcfg/script"
)

// Session state. A schema, its views, and where show output goes.
type Session struct {
	Verbose   bool               // If set, enables verbose logging.
	Schema    *register.Schema   // Registers being edited.
	Observers register.Observers // Views refreshed after each committed change.
	Output    io.Writer          // Destination of show commands.
}

// New creates a session editing schema. Show output is discarded until
// Output is set.
func New(schema *register.Schema) *Session {
	return &Session{
		Schema: schema,
		Output: io.Discard,
	}
}

// target is a named bit range: a field, or a whole register.
type target struct {
	name  string
	size  int
	get   func() *bitvec.Vector
	set   func(value *bitvec.Vector) error
	reset func() error
}

// lookup resolves name as a field first, then as a register.
func (s *Session) lookup(name string) (t target, err error) {
	fl, err := s.Schema.Field(name)
	if err == nil {
		t = target{
			name: name,
			size: fl.Size(),
			get:  fl.Bits,
			set:  fl.SetBits,
			reset: func() error {
				value, _ := fl.Register().ResetValue().Range(fl.Lsb, fl.Msb)
				return fl.SetBits(value)
			},
		}
		return
	}

	reg, rerr := s.Schema.Register(name)
	if rerr != nil {
		return
	}

	err = nil
	t = target{
		name: name,
		size: reg.Size(),
		get:  reg.Value,
		set:  reg.SetValue,
		reset: func() error {
			reg.Reset()
			return nil
		},
	}

	return
}

// set decodes text and writes it, without notifying.
func (s *Session) set(name, text string) (err error) {
	defer func() {
		if err != nil {
			err = &ErrRejected{Name: name, Value: text, Err: err}
		}
	}()

	t, err := s.lookup(name)
	if err != nil {
		return
	}

	value, err := script.ParseValue(text, t.size)
	if err != nil {
		return
	}

	if s.Verbose {
		log.Printf("set %v = %v", name, value)
	}

	return t.set(value)
}

// Set decodes text for the named field or register and commits it. Text
// that cannot be decoded for the destination is rejected with ErrRejected
// and leaves the schema unchanged. Observers are notified after a commit.
func (s *Session) Set(name, text string) (err error) {
	err = s.set(name, text)
	if err != nil {
		return
	}

	s.Observers.Notify()
	return
}

// reset restores a register, a field, or with an empty name the whole
// schema, to the power-on value.
func (s *Session) reset(name string) (err error) {
	if s.Verbose {
		log.Printf("reset %v", name)
	}

	if len(name) == 0 {
		s.Schema.Reset()
		return
	}

	reg, err := s.Schema.Register(name)
	if err == nil {
		reg.Reset()
		return
	}

	t, err := s.lookup(name)
	if err != nil {
		return
	}

	return t.reset()
}

// Reset restores a register, a field, or with an empty name the whole
// schema, to the power-on value, and notifies observers.
func (s *Session) Reset(name string) (err error) {
	err = s.reset(name)
	if err != nil {
		return
	}

	s.Observers.Notify()
	return
}

// Expect checks that the named field or register holds the value text.
func (s *Session) Expect(name, text string) (err error) {
	t, err := s.lookup(name)
	if err != nil {
		return
	}

	want, err := script.ParseValue(text, t.size)
	if err != nil {
		err = &ErrRejected{Name: name, Value: text, Err: err}
		return
	}

	got := t.get()
	if !got.Equal(want) {
		err = &ErrMismatch{Name: name, Want: want.HexString(), Got: got.HexString()}
	}

	return
}

// Show writes the named register's table, the named field's value, or with
// an empty name the whole summary, to w.
func (s *Session) Show(w io.Writer, name string) (err error) {
	if len(name) == 0 {
		return s.Summary(w)
	}

	reg, err := s.Schema.Register(name)
	if err == nil {
		return summarize(w, reg)
	}

	fl, err := s.Schema.Field(name)
	if err != nil {
		return
	}

	_, err = fmt.Fprintf(w, "%v = %v\n", fl, fl.Text())
	return
}

// exec runs a single command. It reports whether the schema may have
// changed.
func (s *Session) exec(cmd script.Command) (changed bool, err error) {
	if s.Verbose {
		log.Printf("%v: %v", cmd.LineNo, cmd)
	}

	switch cmd.Op {
	case script.OpSet:
		changed = true
		err = s.set(cmd.Target, cmd.Value)
	case script.OpReset:
		changed = true
		err = s.reset(cmd.Target)
	case script.OpShow:
		err = s.Show(s.Output, cmd.Target)
	case script.OpExpect:
		err = s.Expect(cmd.Target, cmd.Value)
	default:
		err = fmt.Errorf("%w: %v", script.ErrCommandInvalid, cmd.Op)
	}

	return
}

// snapshot holds a copy of every register value of a schema.
type snapshot map[*register.Register]*bitvec.Vector

func (s *Session) snapshot() (snap snapshot) {
	snap = make(snapshot)
	for _, reg := range s.Schema.Registers() {
		snap[reg] = reg.Value()
	}
	return
}

// restore writes the snapshot values back.
func (s *Session) restore(snap snapshot) (err error) {
	for reg, value := range snap {
		err = errors.Join(err, reg.SetValue(value))
	}
	return
}

// Run applies the commands of a script in order, as one burst. Observers
// are notified once at the end if any command wrote to the schema. If a
// command fails the schema is restored to its state before Run, and the
// error is an ErrRuntime locating the command.
func (s *Session) Run(prog *script.Script) (err error) {
	snap := s.snapshot()

	var lineno int
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: errors.Join(err, s.restore(snap))}
		}
	}()

	changed := false
	for _, cmd := range prog.Commands {
		lineno = cmd.LineNo

		var wrote bool
		wrote, err = s.exec(cmd)
		if err != nil {
			return
		}
		changed = changed || wrote
	}

	if changed {
		s.Observers.Notify()
	}

	return
}
