// Copyright 2019 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package seqlib provides a library of ready-made circuit models for seqsim.
//
// Every constructor returns a fresh sealed model; constructors panic on
// construction errors since the circuits are static.
//
package seqlib

import (
	"sort"

	"github.com/db47h/seqsim"
)

func must(err error) {
	if err != nil {
		panic(err)
	}
}

var circuits = map[string]func() *seqsim.Model{
	"shiftcount": ShiftCount,
	"jklatch":    JKLatch,
	"xorand":     XorAnd,
	"upcounter8": UpCounter8,
}

// Lookup builds the named circuit. It returns false if the name is not in
// the library.
//
func Lookup(name string) (*seqsim.Model, bool) {
	fn, ok := circuits[name]
	if !ok {
		return nil, false
	}
	return fn(), true
}

// Names returns the names of all library circuits in lexical order.
//
func Names() []string {
	n := make([]string, 0, len(circuits))
	for name := range circuits {
		n = append(n, name)
	}
	sort.Strings(n)
	return n
}
