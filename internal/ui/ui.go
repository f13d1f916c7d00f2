// Package ui renders lookup results and failures for the terminal.
// Rendering is kept out of the provider so the same lookup can serve the
// HTTP API and scripted callers.
package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"

	"github.com/fleveque/company-lookup/internal/model"
	"github.com/fleveque/company-lookup/internal/provider"
)

const notAvailable = "N/A"

// UI writes plain or colored text to a single writer.
type UI struct {
	Out          io.Writer
	Output       *termenv.Output
	ColorEnabled bool
}

// New creates a UI. Colors are used only when out is a color-capable terminal
// and NO_COLOR is unset, so piped output stays plain.
func New(out io.Writer) *UI {
	output := termenv.NewOutput(out)

	_, noColor := os.LookupEnv("NO_COLOR")
	return &UI{
		Out:          out,
		Output:       output,
		ColorEnabled: !noColor && output.ColorProfile() != termenv.Ascii,
	}
}

// Linef writes a plain line.
func (u *UI) Linef(format string, args ...any) {
	fmt.Fprintln(u.Out, fmt.Sprintf(format, args...))
}

// Headingf writes a line in blue.
func (u *UI) Headingf(format string, args ...any) {
	u.colored("4", format, args...)
}

// Errorf writes a line in red.
func (u *UI) Errorf(format string, args ...any) {
	u.colored("1", format, args...)
}

func (u *UI) colored(color string, format string, args ...any) {
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	if u.ColorEnabled {
		msg = u.Output.String(msg).Foreground(u.Output.Color(color)).String()
	}
	fmt.Fprintln(u.Out, msg)
}

// RenderCompany prints the name, website and technologies of a record.
// It reports false when the record is empty and nothing was printed.
func (u *UI) RenderCompany(rec model.CompanyRecord) bool {
	if rec.Empty() {
		return false
	}

	u.Linef("")
	u.Headingf("--- Company Data ---")
	u.Linef("Name: %s", orNA(rec.Name()))
	u.Linef("Website: %s", orNA(rec.Website()))

	techs := rec.Technologies()
	if len(techs) == 0 {
		u.Linef("Technologies: %s or none listed", notAvailable)
		return true
	}

	u.Linef("Technologies:")
	for _, tech := range techs {
		u.Linef("  - %s", tech)
	}
	return true
}

// RenderLookupError prints the message for the kind of failure in err.
func (u *UI) RenderLookupError(input string, err error) {
	var (
		httpErr   *provider.HTTPError
		decodeErr *provider.DecodeError
	)

	switch {
	case errors.Is(err, provider.ErrMissingCredential):
		u.Errorf("Error: AMPLEMARKET_API_KEY not found in .env file or environment variables.")
	case errors.Is(err, provider.ErrNotFound):
		u.Errorf("Error: Company not found for '%s'. (404)", input)
	case errors.As(err, &httpErr):
		u.Errorf("HTTP Error: %s", httpErr)
		u.Linef("Response Content: %s", httpErr.Body)
	case errors.As(err, &decodeErr):
		u.Errorf("Error: Could not decode JSON response from API.")
		u.Linef("Response Content: %s", decodeErr.Body)
	case errors.Is(err, provider.ErrConnection):
		u.Errorf("Error Connecting: %s", detail(err, provider.ErrConnection))
	case errors.Is(err, provider.ErrTimeout):
		u.Errorf("Timeout Error: %s", detail(err, provider.ErrTimeout))
	case errors.Is(err, provider.ErrRequest):
		u.Errorf("An Unexpected Error Occurred: %s", detail(err, provider.ErrRequest))
	default:
		u.Errorf("An Unexpected Error Occurred: %v", err)
	}
}

// RenderNoData prints the closing line shown after any failed lookup.
func (u *UI) RenderNoData() {
	u.Linef("")
	u.Linef("No data retrieved.")
}

// detail drops the sentinel's own text from the front of a wrapped error.
func detail(err, sentinel error) string {
	return strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
}

func orNA(value string, ok bool) string {
	if !ok {
		return notAvailable
	}
	return value
}
