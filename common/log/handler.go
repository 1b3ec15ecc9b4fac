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
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/energicryptocurrency/egihash/common/log/term"
)

// StreamHandler writes each Record to wr, formatted by fmtr. Writes are
// serialized with a mutex unless NoSync is set, matching the tradeoff
// every caller of this package makes between throughput and the risk of
// interleaved lines from concurrent goroutines.
func StreamHandler(wr io.Writer, fmtr Format) Handler {
	h := FuncHandler(func(r *Record) error {
		_, err := wr.Write(fmtr.Format(r))
		return err
	})
	return syncHandler(wr, h)
}

func syncHandler(wr io.Writer, h Handler) Handler {
	if NoSync {
		return h
	}
	var mu sync.Mutex
	return FuncHandler(func(r *Record) error {
		mu.Lock()
		defer mu.Unlock()
		return h.Log(r)
	})
}

// LvlFilterHandler returns a Handler that only writes records whose level
// is at or above maxLvl (i.e. at least as severe) to h.
func LvlFilterHandler(maxLvl Lvl, h Handler) Handler {
	return FuncHandler(func(r *Record) error {
		if r.Lvl > maxLvl {
			return nil
		}
		return h.Log(r)
	})
}

// CallerFileHandler adds a "caller" context value with the file and line
// of the call site that produced the Record before passing it to h.
func CallerFileHandler(h Handler) Handler {
	return FuncHandler(func(r *Record) error {
		call := fmt.Sprintf("%+v", r.Call)
		r.Ctx = append(r.Ctx, "caller", call)
		return h.Log(r)
	})
}

// MultiHandler dispatches every Record to all of the given handlers,
// stopping at (and returning) the first error.
func MultiHandler(hs ...Handler) Handler {
	return FuncHandler(func(r *Record) error {
		for _, h := range hs {
			if err := h.Log(r); err != nil {
				return err
			}
		}
		return nil
	})
}

// isTerminal reports whether wr is attached to a terminal, used to decide
// whether to colorize TerminalFormat output.
func isTerminal(wr io.Writer) bool {
	if f, ok := wr.(*os.File); ok {
		return term.IsTty(f.Fd())
	}
	return false
}
