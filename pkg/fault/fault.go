/*
Copyright © 2026 The rv Authors

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU Affero General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU Affero General Public License for more details.

You should have received a copy of the GNU Affero General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

// Package fault defines the failure kinds reported by rv and the process
// exit status each one maps to. Every failure is terminal for the command
// that raised it; nothing here is retried.
package fault

import (
	"errors"
	"fmt"
)

type Kind int

const (
	Unknown Kind = iota
	InvalidArchitecture
	MissingRequiredOption
	InvalidOption
	EnvironmentNotFound
	ExternalToolFailure
	IOFailure
)

var kindToString = []string{
	"error",
	"invalid architecture",
	"missing required option",
	"invalid option",
	"environment not found",
	"external tool failure",
	"I/O failure",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindToString) {
		return kindToString[Unknown]
	}
	return kindToString[k]
}

// Exit codes. A failing external tool propagates its own status instead of
// ExitToolFailure whenever it reported one. rv's own codes are taken from
// sysexits.h so they stay clear of the small statuses compilers and
// binutils return (gcc exits 4 on an internal compiler error).
const (
	ExitSuccess       = 0
	ExitToolFailure   = 1
	ExitUsage         = 64 // EX_USAGE
	ExitNoEnvironment = 69 // EX_UNAVAILABLE
	ExitIOFailure     = 74 // EX_IOERR
)

type Error struct {
	Kind   Kind
	Msg    string
	Hint   string // remediation, printed after the message
	Stderr string // captured stream of a failed tool, printed verbatim
	Status int    // exit status of a failed tool
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Kind.String()
	if e.Msg != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, err error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or Unknown.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) && fe != nil {
		return fe.Kind
	}
	return Unknown
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// ExitCode maps an error to the status the process should exit with.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var fe *Error
	if !errors.As(err, &fe) || fe == nil {
		return ExitToolFailure
	}
	switch fe.Kind {
	case InvalidArchitecture, MissingRequiredOption, InvalidOption:
		return ExitUsage
	case EnvironmentNotFound:
		return ExitNoEnvironment
	case IOFailure:
		return ExitIOFailure
	case ExternalToolFailure:
		if fe.Status > 0 {
			return fe.Status
		}
		return ExitToolFailure
	}
	return ExitToolFailure
}
