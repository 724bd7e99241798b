// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tinyframe

import "errors"

var (
	// ErrInvalidArgument reports an invalid configuration (a send buffer too
	// small for the header or trailer) or a multipart call made with no send
	// in progress.
	ErrInvalidArgument = errors.New("tinyframe: invalid argument")

	// ErrTooLong reports that a payload length cannot be expressed in the
	// configured LEN field width.
	ErrTooLong = errors.New("tinyframe: payload too long")

	// ErrTableFull reports that a listener table has no free slot.
	ErrTableFull = errors.New("tinyframe: listener table full")

	// ErrLocked reports that the send lock could not be claimed.
	ErrLocked = errors.New("tinyframe: send lock contention")

	// ErrNotFound names the case of a remove/renew call finding no matching
	// listener. The Remove*Listener and RenewIDListener methods report that
	// case by returning false; they do not return this error.
	ErrNotFound = errors.New("tinyframe: listener not found")

	// ErrNoSink reports that the instance has no byte-sink hook configured.
	ErrNoSink = errors.New("tinyframe: no byte sink configured")

	// ErrMultipartPending reports that a multipart send is in progress and
	// a conflicting operation (e.g. a new Send) was attempted.
	ErrMultipartPending = errors.New("tinyframe: multipart send already in progress")
)

// ErrorReporter is the optional diagnostic sink: report(format, args...).
// It has no control-flow impact; the engine calls it best-effort from
// synchronous code paths only.
type ErrorReporter func(format string, args ...any)
