// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tinyframe

import "github.com/sirupsen/logrus"

// NewLogrusReporter adapts a logrus.FieldLogger into an ErrorReporter, so
// Config.ErrorReporter can route parser/transmit diagnostics into the
// host's existing structured logging.
func NewLogrusReporter(log logrus.FieldLogger) ErrorReporter {
	return func(format string, args ...any) {
		log.Warnf(format, args...)
	}
}

// NewLogrusFieldReporter is like NewLogrusReporter but tags every line with
// a fixed set of fields (e.g. peer, instance name) useful when several
// Instances share one logger.
func NewLogrusFieldReporter(log logrus.FieldLogger, fields logrus.Fields) ErrorReporter {
	entry := log.WithFields(fields)
	return func(format string, args ...any) {
		entry.Warnf(format, args...)
	}
}
