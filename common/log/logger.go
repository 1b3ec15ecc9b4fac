// Copyright 2018 The aquachain Authors
// This file is part of the aquachain library.
//
// The aquachain library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The aquachain library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the aquachain library. If not, see <http://www.gnu.org/licenses/>.

package log

import (
	"sync/atomic"
	"time"

	"github.com/go-stack/stack"
)

// Lvl is a log level, ordered from most to least severe.
type Lvl int

const (
	LvlCrit Lvl = iota
	LvlError
	LvlWarn
	LvlInfo
	LvlDebug
	LvlTrace
)

// String returns the name of a Lvl.
func (l Lvl) String() string {
	switch l {
	case LvlCrit:
		return "crit"
	case LvlError:
		return "eror"
	case LvlWarn:
		return "warn"
	case LvlInfo:
		return "info"
	case LvlDebug:
		return "dbug"
	case LvlTrace:
		return "trce"
	default:
		return "unknown"
	}
}

// Record is a single log event.
type Record struct {
	Time     time.Time
	Lvl      Lvl
	Msg      string
	Ctx      []interface{}
	Call     stack.Call
	KeyNames RecordKeyNames
}

// RecordKeyNames holds the names used for the built-in record fields
// when a Format flattens a Record into text.
type RecordKeyNames struct {
	Time string
	Msg  string
	Lvl  string
}

// Handler writes a Record somewhere: a stream, a file, a filter, etc.
//
// Handlers may be composed: LvlFilterHandler wraps another Handler and
// drops records below a level, CallerFileHandler wraps another Handler
// and adds caller info to the context, and so on.
type Handler interface {
	Log(r *Record) error
}

// FuncHandler turns a function into a Handler.
type FuncHandler func(r *Record) error

func (h FuncHandler) Log(r *Record) error {
	return h(r)
}

// DiscardHandler discards every record it is given.
func DiscardHandler() Handler {
	return FuncHandler(func(r *Record) error { return nil })
}

// swapHandler wraps another handler that may be swapped out
// dynamically at runtime in a thread-safe fashion.
type swapHandler struct {
	handler atomic.Value
}

func (h *swapHandler) Log(r *Record) error {
	v := h.handler.Load()
	if v == nil {
		return nil
	}
	return v.(Handler).Log(r)
}

func (h *swapHandler) Swap(newHandler Handler) {
	h.handler.Store(newHandler)
}

func (h *swapHandler) Get() Handler {
	v := h.handler.Load()
	if v == nil {
		return nil
	}
	return v.(Handler)
}

// LoggerI is the interface implemented by *logger, usable by callers
// that only need a logging sink without depending on the concrete type.
type LoggerI interface {
	New(ctx ...interface{}) LoggerI
	Trace(msg string, ctx ...interface{})
	Debug(msg string, ctx ...interface{})
	Info(msg string, ctx ...interface{})
	Warn(msg string, ctx ...interface{})
	Error(msg string, ctx ...interface{})
	Crit(msg string, ctx ...interface{})
	GetHandler() Handler
	SetHandler(h Handler)
}

// logger writes Records built from a fixed context plus per-call
// key/value pairs to a swappable Handler.
type logger struct {
	ctx []interface{}
	h   *swapHandler
}

func (l *logger) write(msg string, lvl Lvl, ctx []interface{}) {
	l.writeskip(1, msg, lvl, ctx)
}

// writeskip writes a record, skipping `skip` additional stack frames
// when resolving the caller (used so package-level helpers like Warn()
// report the caller's line, not write's).
func (l *logger) writeskip(skip int, msg string, lvl Lvl, ctx []interface{}) {
	r := &Record{
		Time: time.Now(),
		Lvl:  lvl,
		Msg:  msg,
		Ctx:  newContext(l.ctx, ctx),
		Call: stack.Caller(2 + skip),
		KeyNames: RecordKeyNames{
			Time: "t",
			Msg:  "msg",
			Lvl:  "lvl",
		},
	}
	l.h.Log(r)
}

func newContext(prefix []interface{}, suffix []interface{}) []interface{} {
	normalizedSuffix := normalize(suffix)
	newCtx := make([]interface{}, 0, len(prefix)+len(normalizedSuffix))
	newCtx = append(newCtx, prefix...)
	newCtx = append(newCtx, normalizedSuffix...)
	return newCtx
}

func normalize(ctx []interface{}) []interface{} {
	if len(ctx)%2 != 0 {
		ctx = append(ctx, nil, "log: ignored odd key/value pair")
	}
	return ctx
}

func (l *logger) New(ctx ...interface{}) LoggerI {
	child := &logger{newContext(l.ctx, ctx), new(swapHandler)}
	child.SetHandler(l.h)
	return child
}

func (l *logger) Trace(msg string, ctx ...interface{}) { l.write(msg, LvlTrace, ctx) }
func (l *logger) Debug(msg string, ctx ...interface{}) { l.write(msg, LvlDebug, ctx) }
func (l *logger) Info(msg string, ctx ...interface{})  { l.write(msg, LvlInfo, ctx) }
func (l *logger) Warn(msg string, ctx ...interface{})  { l.write(msg, LvlWarn, ctx) }
func (l *logger) Error(msg string, ctx ...interface{}) { l.write(msg, LvlError, ctx) }
func (l *logger) Crit(msg string, ctx ...interface{})  { l.write(msg, LvlCrit, ctx) }

func (l *logger) GetHandler() Handler {
	return l.h.Get()
}

func (l *logger) SetHandler(h Handler) {
	l.h.Swap(h)
}
