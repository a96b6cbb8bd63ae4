// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package script

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"math/big"
	"regexp"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/nrfcfg/internal"
)

// Maximum depth of macros invoking macros.
const MACRO_DEPTH = 16

// Macro represents a macro definition.
type Macro struct {
	LineNo int      // Line number of the first line of the macro body.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

var (
	reParen = regexp.MustCompile(`\$\([^\$]*\)`)
)

// Parser is a single pass macro parser for register scripts.
type Parser struct {
	Verbose bool // If set, verbosely logs the parser actions.

	Equate map[string]string // Map of equates.
	Macro  map[string]*Macro // Map of macros.

	predefine map[string]string
	commands  []Command
	depth     int
}

// Predefine defines a new equate or redefines an existing equate. Predefined
// equates survive across calls to Parse.
func (p *Parser) Predefine(equ string, value string) {
	if p.predefine == nil {
		p.predefine = map[string]string{equ: value}
	} else {
		p.predefine[equ] = value
	}
}

// Undefine removes a predefined equate, returning its value.
func (p *Parser) Undefine(equ string) (value string, ok bool) {
	value, ok = p.predefine[equ]
	delete(p.predefine, equ)
	return
}

// parenEval does $(...) evaluations.
func (p *Parser) parenEval(expr string) (value *big.Int, err error) {
	thread := starlark.Thread{Name: "expr"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range p.Equate {
		x, ok := new(big.Int).SetString(str, 0)
		if !ok {
			// Ignore non-integer equates. They may be field names
			// or something else.
			continue
		}
		pred[key] = starlark.MakeBigInt(x)
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrParseExpression(expr), err)
		return
	}

	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	value = st_int.BigInt()
	if value.Sign() < 0 {
		value = nil
		err = ErrParseExpression(expr)
		return
	}

	return
}

// parseLine expands a single line into command words.
func (p *Parser) parseLine(line string, lineno int) (words []string, err error) {
	p.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	line = reParen.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := p.parenEval(str[2 : len(str)-1])
		if _err != nil {
			if err == nil {
				err = _err
			}
			return str
		}
		return value.String()
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)
	if len(words) == 0 {
		return
	}

	// .equ NAME VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := p.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		p.Equate[words[1]] = words[2]
		words = nil
		return
	}

	for n, word := range words {
		equate, ok := p.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	macro, ok := p.Macro[words[0]]
	if ok {
		err = p.expand(words[0], macro, words[1:])
		words = nil
		return
	}

	return
}

// expand parses the lines of a macro with its arguments bound as equates.
func (p *Parser) expand(name string, macro *Macro, args []string) (err error) {
	if len(args) != len(macro.Args) {
		err = ErrMacroSyntax
		return
	}

	if p.depth >= MACRO_DEPTH {
		err = ErrMacroNesting
		return
	}
	p.depth++

	old_equate := maps.Clone(p.Equate)
	for n, arg := range macro.Args {
		p.Equate[arg] = args[n]
	}
	defer func() {
		p.Equate = old_equate
		p.depth--
	}()

	for n, line := range macro.Lines {
		lineno := macro.LineNo + n

		var words []string
		words, err = p.parseLine(line, lineno)
		if err == nil {
			err = p.parseWords(words, lineno)
		}
		if err != nil {
			err = &ErrMacro{Macro: name, Line: lineno, Err: err}
			return
		}
	}

	return
}

// parseWords turns the words of a line into a command.
func (p *Parser) parseWords(words []string, lineno int) (err error) {
	if len(words) == 0 {
		return
	}

	op, ok := opMap[words[0]]
	if !ok {
		err = fmt.Errorf("%w: %v", ErrCommandInvalid, words[0])
		return
	}

	cmd := Command{
		LineNo: lineno,
		Words:  words,
		Op:     op,
	}

	args := words[1:]
	switch op {
	case OpSet, OpExpect:
		if len(args) != 2 {
			err = ErrCommandArgs
			return
		}
		err = checkValue(args[1])
		if err != nil {
			return
		}
		cmd.Target = args[0]
		cmd.Value = args[1]
	case OpReset, OpShow:
		if len(args) > 1 {
			err = ErrCommandArgs
			return
		}
		if len(args) == 1 {
			cmd.Target = args[0]
		}
	}

	p.commands = append(p.commands, cmd)

	return
}

// Parse parses an input stream into a Script.
func (p *Parser) Parse(input io.Reader) (script *Script, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	p.commands = nil
	p.depth = 0
	p.Macro = make(map[string]*Macro)
	p.Equate = maps.Collect(internal.IterSeq2Concat(maps.All(sysEquate), maps.All(p.predefine)))

	for scanner.Scan() {
		text := scanner.Text()
		lineno++

		if p.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		line, _, _ = strings.Cut(text, ";")
		line = strings.TrimSpace(line)
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := p.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
				Args:   words[2:],
			}
			p.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = p.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = p.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	script = &Script{
		Commands: p.commands,
	}
	p.commands = nil

	return
}
