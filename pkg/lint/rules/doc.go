// Package rules provides the built-in docstyle rules.
//
// Each rule adapts one check of the line style checker in pkg/style to the
// lint engine: it maps its options onto style.Options, turns violations into
// diagnostics and converts line fixes into byte-offset edits.
//
// Rules register themselves with lint.DefaultRegistry during init.
package rules
