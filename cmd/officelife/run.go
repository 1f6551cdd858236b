package main

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/iota-uz/officelife/pkg/execution"
	"github.com/iota-uz/officelife/pkg/serrors"
)

// decode turns key=value arguments into a request.
func decode[R any](args []string) (*R, error) {
	values, err := execution.ParseArgs(args)
	if err != nil {
		return nil, &usageError{err: err}
	}
	req := new(R)
	if err := execution.DecodeRequest(values, req); err != nil {
		return nil, err
	}
	return req, nil
}

// operation builds a RunE that decodes args into R, calls fn and prints
// its result as JSON.
func operation[R, T any](fn func(a *app) func(context.Context, *R) (T, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		req, err := decode[R](args)
		if err != nil {
			return report(cmd.ErrOrStderr(), err)
		}
		return withApp(cmd.Context(), func(ctx context.Context, a *app) error {
			out, err := fn(a)(ctx, req)
			if err != nil {
				return report(cmd.ErrOrStderr(), err)
			}
			return printJSON(cmd.OutOrStdout(), out)
		})
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type failure struct {
	Kind   string               `json:"kind"`
	Code   string               `json:"code"`
	Error  string               `json:"error"`
	Fields []serrors.FieldError `json:"fields,omitempty"`
}

// report prints err in its classified shape and returns it unchanged so
// the process exits non-zero.
func report(w io.Writer, err error) error {
	kind := serrors.KindOf(err)
	_ = printJSON(w, failure{
		Kind:   kind.String(),
		Code:   kind.Code(),
		Error:  err.Error(),
		Fields: serrors.FieldsOf(err),
	})
	return err
}
