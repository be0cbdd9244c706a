// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package validator

import (
	"fmt"
	"io"
	"strings"
)

// SemanticError is the error returned
// for every clause that fails validation.
//
// The fields are kept separate so that
// callers can inspect them; Error joins
// them into the message shown to the user.
type SemanticError struct {
	// Text is the rendered clause or
	// expression that the error is about.
	Text string
	// Msg describes the problem.
	Msg string
	// Expected and Actual, if set, are
	// the expected and actual values or types.
	Expected string
	Actual   string
	// Err is the underlying cause, if any.
	Err error
}

func newError(text, msg, expected, actual string, cause error) *SemanticError {
	return &SemanticError{
		Text:     text,
		Msg:      msg,
		Expected: expected,
		Actual:   actual,
		Err:      cause,
	}
}

func errorf(text, f string, args ...interface{}) *SemanticError {
	return newError(text, fmt.Sprintf(f, args...), "", "", nil)
}

// Error implements error
func (e *SemanticError) Error() string {
	var out strings.Builder
	if e.Text != "" {
		fmt.Fprintf(&out, "`%s', ", e.Text)
	}
	out.WriteString(e.Msg)
	if e.Expected != "" {
		out.WriteByte(' ')
		out.WriteString(e.Expected)
	}
	if e.Actual != "" {
		fmt.Fprintf(&out, ", but was `%s'", e.Actual)
	}
	return out.String()
}

// Unwrap returns the underlying cause.
func (e *SemanticError) Unwrap() error { return e.Err }

// WriteTo implements io.WriterTo
//
// WriteTo writes a plaintext representation
// of the error to dst, including the text
// associated with the error on its own line.
func (e *SemanticError) WriteTo(dst io.Writer) (int64, error) {
	var n int
	var err error
	if e.Text == "" {
		n, err = fmt.Fprintf(dst, "%s\n", e.Error())
	} else {
		n, err = fmt.Fprintf(dst, "in clause:\n\t%s\n%s\n", e.Text, e.Error())
	}
	return int64(n), err
}
