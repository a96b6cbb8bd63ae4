// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/ezrec/nrfcfg/image"
	"github.com/ezrec/nrfcfg/nrf24"
	"github.com/ezrec/nrfcfg/register"
	"github.com/ezrec/nrfcfg/script"
	"github.com/ezrec/nrfcfg/session"
)

func loadSchema(path string) (schema *register.Schema, err error) {
	if len(path) == 0 {
		return nrf24.New()
	}

	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	return register.LoadYAML(inf)
}

func openInput(path string) (r io.ReadCloser, err error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

// checkStdio rejects flag combinations that would share stdin or stdout
// with a register image.
func checkStdio(load, save bool, run string, interactive, printing bool) (err error) {
	if load && (run == "-" || interactive) {
		err = errors.New("-l reads stdin, and cannot be used with -s - or -i")
		return
	}

	if save && (printing || interactive) {
		err = errors.New("-o writes stdout, and cannot be used with -S, -F, -p, -V or -i")
		return
	}

	return
}

func main() {
	var table string
	var load bool
	var run string
	var save bool
	var dirty bool
	var summary bool
	var form bool
	var frames bool
	var check bool
	var interactive bool
	var verbose bool

	parser := &script.Parser{}

	flag.StringVar(&table, "t", "", "YAML register table (default: nRF24L01+)")
	flag.BoolVar(&load, "l", false, "Load a CBOR register image from stdin")
	flag.StringVar(&run, "s", "", "Register script to run, '-' for stdin")
	flag.BoolVar(&save, "o", false, "Write a CBOR register image to stdout")
	flag.BoolVar(&dirty, "d", false, "Only write registers changed from power-on")
	flag.BoolVar(&summary, "S", false, "Print the register summary")
	flag.BoolVar(&form, "F", false, "Print the configuration form")
	flag.BoolVar(&frames, "p", false, "Print the SPI write frames of changed registers")
	flag.BoolVar(&check, "V", false, "Verify the SPI write frames against a device model")
	flag.BoolVar(&interactive, "i", false, "Interactive mode")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.Func("D", "Predefine a script equate, NAME=VALUE", func(arg string) error {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || len(name) == 0 {
			return fmt.Errorf("%v: expected NAME=VALUE", arg)
		}
		parser.Predefine(name, value)
		return nil
	})

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	err := checkStdio(load, save, run, interactive, summary || form || frames || check)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	schema, err := loadSchema(table)
	if err != nil {
		log.Fatalf("%v: %v", table, err)
	}

	sess := session.New(schema)
	sess.Verbose = verbose
	sess.Output = os.Stdout
	if save {
		sess.Output = os.Stderr
	}
	parser.Verbose = verbose

	if load {
		img, err := image.Decode(os.Stdin)
		if err != nil {
			log.Fatalf("stdin: %v", err)
		}
		err = image.Apply(schema, img)
		if err != nil {
			log.Fatalf("stdin: %v", err)
		}
	}

	if len(run) != 0 {
		inf, err := openInput(run)
		if err != nil {
			log.Fatalf("%v: %v", run, err)
		}
		prog, err := parser.Parse(inf)
		inf.Close()
		if err != nil {
			log.Fatalf("%v: %v", run, err)
		}
		err = sess.Run(prog)
		if err != nil {
			log.Fatalf("%v: %v", run, err)
		}
	}

	if interactive {
		repl, err := NewInteractive(sess, parser, table)
		if err != nil {
			log.Fatalf("%v: %v", os.Args[0], err)
		}
		repl.Run()
	}

	if form {
		err = printForm(os.Stdout, schema)
		if err != nil {
			log.Fatal(err)
		}
	}

	if summary {
		err = sess.Summary(os.Stdout)
		if err != nil {
			log.Fatal(err)
		}
	}

	if frames {
		err = printFrames(os.Stdout, image.CaptureDirty(schema))
		if err != nil {
			log.Fatal(err)
		}
	}

	if check {
		fresh, err := loadSchema(table)
		if err != nil {
			log.Fatalf("%v: %v", table, err)
		}
		err = verify(os.Stdout, schema, fresh)
		if err != nil {
			log.Fatal(err)
		}
	}

	if save {
		img := image.Capture(schema)
		if dirty {
			img = image.CaptureDirty(schema)
		}

		err = image.Encode(os.Stdout, img)
		if err != nil {
			log.Fatalf("stdout: %v", err)
		}
	}
}
