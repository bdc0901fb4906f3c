// Package scenario loads and runs HCL scenario files: which netlist to load
// and which wires to query, optionally with one wire overridden.
//
// A scenario looks like this:
//
//	netlist = "input.txt"
//
//	query "part1" {
//	  wire = "a"
//	}
//
//	query "part2" {
//	  wire = "a"
//	  override {
//	    wire  = "b"
//	    value = query.part1
//	  }
//	}
//
// Override values are HCL expressions. They are evaluated just before their
// query runs, with the answers of earlier queries available as the object
// variable `query`. A value may only refer to queries declared before it.
package scenario
