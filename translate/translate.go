// Package translate formats user visible messages for the host locale.
package translate

import (
	"io"
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

// DefaultLocale is used when the host reports no locale.
const DefaultLocale = "en-US"

var printer *message.Printer

func init() {
	printer = NewPrinter()
}

// NewPrinter returns a message printer matching the host locales.
func NewPrinter() *message.Printer {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("nrfcfg: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{DefaultLocale}
	}

	return message.NewPrinter(message.MatchLanguage(locales...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}

// Fprintf writes a translated en-US Printf() format to w.
func Fprintf(w io.Writer, key message.Reference, args ...any) (n int, err error) {
	return printer.Fprintf(w, key, args...)
}
