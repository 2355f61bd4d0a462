package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	domainerrors "nexus/internal/domain/errors"
)

// response is the JSON envelope of every command's output.
type response struct {
	Status string                  `json:"status"` // "ok" or "error"
	Data   any                     `json:"data,omitempty"`
	Error  *domainerrors.ErrorInfo `json:"error,omitempty"`
}

// printer renders command results as text or JSON.
type printer struct {
	format string
	out    io.Writer
	errOut io.Writer
}

func newPrinter(opts *RootOptions, out io.Writer) *printer {
	return &printer{format: opts.Format, out: out, errOut: out}
}

// success writes data. In text mode text renders it, in JSON mode data is encoded as is.
func (p *printer) success(data any, text func(w io.Writer)) error {
	if p.format == formatJSON {
		return p.encode(response{Status: "ok", Data: data})
	}

	w := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	text(w)

	return w.Flush()
}

// failure writes err using the user-facing error view.
func (p *printer) failure(err error) {
	info := domainerrors.NewErrorInfo(err)

	if p.format == formatJSON {
		_ = p.encode(response{Status: "error", Error: info})

		return
	}

	if info.Details != nil {
		fmt.Fprintf(p.errOut, "error: %s: %s (%v)\n", info.Code, info.Message, info.Details)

		return
	}
	fmt.Fprintf(p.errOut, "error: %s: %s\n", info.Code, info.Message)
}

func (p *printer) encode(v any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
