// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

// MessageSeverity is a bit set of diagnostic message severities.
type MessageSeverity uint32

// Message severities, lowest first
const (
	SeverityVerbose MessageSeverity = 1 << iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

func (s MessageSeverity) String() string {
	return flagString(uint32(s), []string{"verbose", "info", "warning", "error"})
}

// MessageType is a bit set of diagnostic message categories.
type MessageType uint32

// Message categories
const (
	TypeGeneral MessageType = 1 << iota
	TypeValidation
	TypePerformance
)

func (t MessageType) String() string {
	return flagString(uint32(t), []string{"general", "validation", "performance"})
}

func flagString(bits uint32, names []string) string {
	var set []string
	for i, n := range names {
		if bits&(1<<uint(i)) != 0 {
			set = append(set, n)
		}
	}
	if len(set) == 0 {
		return "none"
	}
	return strings.Join(set, "|")
}

// Message is a single message emitted by the runtime or a validation layer.
type Message struct {
	Severity MessageSeverity
	Type     MessageType
	Layer    string
	Code     int32
	Text     string
}

// MessageFilter selects which messages reach a callback.
type MessageFilter struct {
	Severities MessageSeverity
	Types      MessageType
}

// DefaultMessageFilter passes verbose, warning and error messages of every type.
var DefaultMessageFilter = MessageFilter{
	Severities: SeverityVerbose | SeverityWarning | SeverityError,
	Types:      TypeGeneral | TypeValidation | TypePerformance,
}

// Accepts reports whether m passes the filter.
func (f MessageFilter) Accepts(m Message) bool {
	return f.Severities&m.Severity != 0 && f.Types&m.Type != 0
}

// DebugCallback receives diagnostic messages. It may be called from
// threads owned by the runtime. Returning true asks the runtime to
// abort the call that triggered the message.
type DebugCallback func(Message) bool

// DebugDescriptor describes a debug callback to install.
type DebugDescriptor struct {
	Filter   MessageFilter
	Callback DebugCallback
}

// NewDebugDescriptor returns a descriptor whose callback only sees
// messages accepted by filter, whatever the runtime delivers.
func NewDebugDescriptor(filter MessageFilter, cb DebugCallback) DebugDescriptor {
	return DebugDescriptor{
		Filter: filter,
		Callback: func(m Message) bool {
			if !filter.Accepts(m) {
				return false
			}
			return cb(m)
		},
	}
}

// LogCallback returns a callback writing every message to logger. It
// never aborts the triggering call.
func LogCallback(logger log.FieldLogger) DebugCallback {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return func(m Message) bool {
		entry := logger.WithFields(log.Fields{
			"severity": m.Severity,
			"type":     m.Type,
			"layer":    m.Layer,
			"code":     m.Code,
		})
		switch {
		case m.Severity&SeverityError != 0:
			entry.Error(m.Text)
		case m.Severity&SeverityWarning != 0:
			entry.Warn(m.Text)
		case m.Severity&SeverityInfo != 0:
			entry.Info(m.Text)
		default:
			entry.Debug(m.Text)
		}
		return false
	}
}

// AttachDiagnostics installs a logging debug callback into instance.
// With diagnostics disabled it does nothing and returns a nil Messenger.
func AttachDiagnostics(instance Instance, diagnostics bool, logger log.FieldLogger) (Messenger, error) {
	if !diagnostics {
		return nil, nil
	}
	provider := instance.DebugProvider()
	if provider == nil {
		return nil, fmt.Errorf("%w: %w", ErrDebugMessengerCreationFailed,
			errors.New(DiagnosticsExtension+" entry points not resolved"))
	}
	messenger, err := provider.CreateMessenger(NewDebugDescriptor(DefaultMessageFilter, LogCallback(logger)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDebugMessengerCreationFailed, err)
	}
	return messenger, nil
}
