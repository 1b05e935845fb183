package accessor

import (
	"go.uber.org/zap"

	"github.com/undisbeliever/untech-editor-sub002/internal/engine/command"
)

// Edit sets field of the selected item to value.
func Edit[T, V comparable](a *Single[T], field command.Field[T, V], value V) bool {
	i, ok := a.Selected()
	if !ok {
		return a.declined("edit " + field.Name)
	}
	cmd := command.NewEdit(a.target(), a.Parent(), i, field, value)
	if cmd == nil {
		return a.declined("edit "+field.Name, zap.Int("index", i))
	}
	if editDuplicatesName(&a.core, a.Parent(), i, field, value) {
		return a.declined("edit "+field.Name, zap.String("reason", "duplicate name"))
	}
	a.push(cmd)
	return true
}

// EditMerge sets field of the selected item to value as part of a
// continuous gesture. The first edit of a gesture passes first; the edits
// that follow merge into it and undo as one step.
func EditMerge[T, V comparable](a *Single[T], field command.Field[T, V], value V, first bool) bool {
	i, ok := a.Selected()
	if !ok {
		return a.declined("edit " + field.Name)
	}
	cmd := command.NewEditMerge(a.target(), a.Parent(), i, field, value, first)
	if cmd == nil {
		return a.declined("edit "+field.Name, zap.Int("index", i))
	}
	if editDuplicatesName(&a.core, a.Parent(), i, field, value) {
		return a.declined("edit "+field.Name, zap.String("reason", "duplicate name"))
	}
	a.push(cmd)
	return true
}

// BeginEdit starts an interactive edit of field of the selected item.
// Preview values with SetValue and Redo, then finish with Commit.
// Returns nil if nothing is selected.
func BeginEdit[T, V comparable](a *Single[T], field command.Field[T, V]) *command.IncompleteCommand[T, V] {
	i, ok := a.Selected()
	if !ok {
		a.declined("edit " + field.Name)
		return nil
	}
	return command.NewIncomplete(a.target(), a.Parent(), i, field)
}

// Commit finishes an interactive edit. A changed value is recorded and
// pushed to the history, which is when the resource is marked dirty.
// Otherwise, or if the value would duplicate a name, the preview is undone
// and neither the history nor the resource is touched. Returns true if the
// edit was pushed.
func Commit[T, V comparable](a *Single[T], cmd *command.IncompleteCommand[T, V]) bool {
	if cmd == nil {
		return false
	}
	at := cmd.At()
	if !cmd.HasChanged() || editDuplicatesName(&a.core, at.Parent, at.Child, cmd.Field(), cmd.New()) {
		cmd.Undo()
		return a.declined("commit", zap.Stringer("at", at))
	}
	cmd.Record()
	a.push(cmd)
	return true
}

// EditSelected applies transform to field of every selected item. Items
// that do not change are left out; nothing is recorded if none change.
func EditSelected[T, V comparable](a *Multi[T], field command.Field[T, V], transform func(V) V) bool {
	sel := a.sel.Selected()
	cmd := command.NewEditMultiple(a.target(), a.Parent(), sel, field, transform)
	if cmd == nil {
		return a.declined("edit "+field.Name, zap.Ints("indexes", sel.Values()))
	}
	if a.duplicatesName(a.Parent(), func(items []T) []T {
		for _, i := range sel.Values() {
			v := field.Ref(&items[i])
			*v = transform(*v)
		}
		return items
	}) {
		return a.declined("edit "+field.Name, zap.String("reason", "duplicate name"))
	}
	a.push(cmd)
	return true
}

// EditSelectedPairs applies transform to field of every selected child.
func EditSelectedPairs[T, V comparable](a *Nested[T], field command.Field[T, V], transform func(V) V) bool {
	sel := a.sel.Selected()
	cmd := command.NewEditPairs(a.target(), sel, field, transform)
	if cmd == nil {
		return a.declined("edit "+field.Name, zap.Stringers("pairs", sel.Values()))
	}
	for parent, children := range sel.Groups() {
		if a.duplicatesName(parent, func(items []T) []T {
			for _, i := range children.Values() {
				v := field.Ref(&items[i])
				*v = transform(*v)
			}
			return items
		}) {
			return a.declined("edit "+field.Name, zap.String("reason", "duplicate name"))
		}
	}
	a.push(cmd)
	return true
}

// editDuplicatesName reports whether setting field of item i to value
// would duplicate a name.
func editDuplicatesName[T, V comparable](l *core[T], parent, i int, field command.Field[T, V], value V) bool {
	return l.duplicatesName(parent, func(items []T) []T {
		*field.Ref(&items[i]) = value
		return items
	})
}
