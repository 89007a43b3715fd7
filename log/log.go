package log

import (
	"fmt"
	"io"
	"sync"
)

// Level is the logging level: None, Error, Warn, Info, Verbose, or Debug
type Level int

const (
	// None means that the log should never write
	None Level = iota

	// Error means that only errors will be written
	Error

	// Warn means that errors and warnings will be written
	Warn

	// Info logging writes info, warning, and error
	Info

	// Verbose logs everything but debug-level messages
	Verbose

	// Debug logs every message
	Debug
)

var prefixes = map[Level]string{
	Error:   "[ERR] ",
	Warn:    "[WRN] ",
	Info:    "[INF] ",
	Verbose: "[VRB] ",
	Debug:   "[DBG] ",
}

// Log is a fairly basic leveled logger.  Messages at Info and above are
// also forwarded to an assigned Sender, so a connected client sees what
// an operator would.  A nil *Log discards everything, which keeps
// provider code free of nil checks.
type Log struct {
	mu     sync.Mutex
	w      io.Writer
	lvl    Level
	sender Sender
}

// CreateLog makes a logger writing to w at the Info level.
func CreateLog(w io.Writer) *Log {
	return &Log{w: w, lvl: Info}
}

// SetLevel adjusts the logger's level.
func (l *Log) SetLevel(lvl Level) {
	if l == nil {
		return
	}

	l.mu.Lock()
	l.lvl = lvl
	l.mu.Unlock()
}

// AssignSender attaches a sender that receives a copy of every message
// written at Info or above.
func (l *Log) AssignSender(s Sender) {
	if l == nil {
		return
	}

	l.mu.Lock()
	l.sender = s
	l.mu.Unlock()
}

// Debugf will write if the log level is at least Debug.
func (l *Log) Debugf(msg string, v ...interface{}) {
	l.writeIf(Debug, msg, v...)
}

// Verbosef will write if the log level is at least Verbose.
func (l *Log) Verbosef(msg string, v ...interface{}) {
	l.writeIf(Verbose, msg, v...)
}

// Infof will write if the log level is at least Info.
func (l *Log) Infof(msg string, v ...interface{}) {
	l.writeIf(Info, msg, v...)
}

// Warnf will write if the log level is at least Warn.
func (l *Log) Warnf(msg string, v ...interface{}) {
	l.writeIf(Warn, msg, v...)
}

// Errorf will write if the log level is at least Error.
func (l *Log) Errorf(msg string, v ...interface{}) {
	l.writeIf(Error, msg, v...)
}

// Printf always writes, regardless of the level set.
func (l *Log) Printf(msg string, v ...interface{}) {
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.write(msg, v...)
}

func (l *Log) writeIf(lvl Level, msg string, v ...interface{}) {
	if l == nil {
		return
	}

	l.mu.Lock()
	enabled := l.lvl >= lvl
	sender := l.sender
	if enabled {
		l.write(prefixes[lvl]+msg, v...)
	}
	l.mu.Unlock()

	// Forwarding happens outside the lock; the sender may log through a
	// connection with its own locking.
	if sender != nil && lvl <= Info {
		sender.SendMessage(lvl, fmt.Sprintf(msg, v...))
	}
}

func (l *Log) write(msg string, v ...interface{}) {
	if len(v) == 0 {
		l.w.Write([]byte(msg))
		return
	}

	l.w.Write([]byte(fmt.Sprintf(msg, v...)))
}
