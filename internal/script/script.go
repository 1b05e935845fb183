// Package script replays edit scripts against a string list.
//
// A script is a YAML document naming the initial items and a sequence of
// steps. Each step is one user action on a multi-selection accessor:
//
//	items: [A, B, C, D]
//	max_size: 8
//	steps:
//	  - op: select
//	    indexes: [1, 2]
//	  - op: lower
//	  - op: undo
//
// The runner prints the list, the selection and the history state after
// every step, which makes scripts useful for reproducing selection and
// undo behaviour by hand.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Operation names.
const (
	OpSelect = "select"
	OpAdd    = "add"
	OpClone  = "clone"
	OpRemove = "remove"
	OpRaise  = "raise"
	OpLower  = "lower"
	OpTop    = "top"
	OpBottom = "bottom"
	OpEdit   = "edit"
	OpUndo   = "undo"
	OpRedo   = "redo"
	OpBegin  = "begin"
	OpEnd    = "end"
	OpSave   = "save"
	OpCheck  = "check"
	OpCopy   = "copy"
	OpPaste  = "paste"
)

var knownOps = map[string]bool{
	OpSelect: true, OpAdd: true, OpClone: true, OpRemove: true,
	OpRaise: true, OpLower: true, OpTop: true, OpBottom: true,
	OpEdit: true, OpUndo: true, OpRedo: true, OpBegin: true,
	OpEnd: true, OpSave: true, OpCheck: true, OpCopy: true, OpPaste: true,
}

// ErrUnknownOp is returned for a step with an unrecognised op.
var ErrUnknownOp = errors.New("unknown op")

// Script is a parsed edit script.
type Script struct {
	Items   []string `yaml:"items"`
	MaxSize int      `yaml:"max_size"`
	Steps   []Step   `yaml:"steps"`
}

// Step is one action.
type Step struct {
	Op string `yaml:"op"`

	// Indexes is the selection for select.
	Indexes []int `yaml:"indexes,omitempty"`

	// Value is the item for add, the new value for edit and the macro
	// label for begin.
	Value string `yaml:"value,omitempty"`

	// Values are the items for add.
	Values []string `yaml:"values,omitempty"`
}

// Parse decodes a script. Unknown keys and ops are errors.
func Parse(data []byte) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return &s, nil
		}
		return nil, fmt.Errorf("parse script: %w", err)
	}

	for i, step := range s.Steps {
		if !knownOps[step.Op] {
			return nil, fmt.Errorf("step %d: %w %q", i+1, ErrUnknownOp, step.Op)
		}
	}
	if s.MaxSize < 0 {
		return nil, fmt.Errorf("parse script: max_size must not be negative (value: %d)", s.MaxSize)
	}
	return &s, nil
}
