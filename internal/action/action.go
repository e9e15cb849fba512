// Package action names the operations key and mouse bindings can
// dispatch and routes them to registered handlers.
package action

import (
	"fmt"
	"sort"
)

// Handler runs one dispatched action. arg carries the binding's
// argument, "" when the binding has none.
type Handler func(arg string) error

// Registry maps action names to handler functions.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds an action handler, replacing any previous handler for
// the name.
func (r *Registry) Register(name string, handler Handler) {
	r.handlers[name] = handler
}

// Dispatch executes the handler for a given action. It reports whether
// a handler was registered.
func (r *Registry) Dispatch(name, arg string) (bool, error) {
	handler, ok := r.handlers[name]
	if !ok {
		return false, nil
	}
	if err := handler(arg); err != nil {
		return true, fmt.Errorf("action %s: %w", name, err)
	}
	return true, nil
}

// Has checks if an action is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.handlers[name]
	return ok
}

// Names returns the registered action names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Entry describes one cataloged action for listings.
type Entry struct {
	Name        string
	Description string
}

// catalog lists the actions a config may reference. The stack actions
// ActivateKeyTable, PopKeyTable and ClearKeyTableStack are resolved by
// the engine and included here so configs referencing them validate.
var catalog = map[string]string{
	"ActivateKeyTable":             "push a key table activation",
	"PopKeyTable":                  "pop the top key table activation",
	"ClearKeyTableStack":           "drop every key table activation",
	"ActivateCopyMode":             "enter copy mode in the current pane",
	"CopySelection":                "copy the selection to the clipboard",
	"PasteClipboard":               "paste the clipboard into the current pane",
	"SelectTextAtMouseCursor":      "begin a selection at the pointer",
	"ExtendSelectionToMouseCursor": "extend the selection to the pointer",
	"CompleteSelection":            "finish the selection and copy it",
	"SelectWord":                   "select the word under the pointer",
	"SelectLine":                   "select the line under the pointer",
	"OpenLinkAtMouseCursor":        "open the hyperlink under the pointer",
	"SpawnTab":                     "open a new tab",
	"CloseCurrentTab":              "close the current tab",
	"ActivateTabRelative":          "focus the tab at a relative offset",
	"SplitHorizontal":              "split the current pane horizontally",
	"SplitVertical":                "split the current pane vertically",
	"ActivatePaneDirection":        "focus the pane in a direction",
	"AdjustPaneSize":               "resize the current pane",
	"ScrollByPage":                 "scroll the viewport by pages",
	"IncreaseFontSize":             "increase the font size",
	"DecreaseFontSize":             "decrease the font size",
	"ResetFontSize":                "reset the font size",
	"ToggleFullScreen":             "toggle the window's fullscreen state",
	"SendString":                   "send literal text to the current pane",
	"ReloadConfiguration":          "reload the configuration file",
	"ShowDebugOverlay":             "open the debug overlay",
	"Nop":                          "do nothing, swallowing the key",
}

// Known reports whether name is a cataloged action.
func Known(name string) bool {
	_, ok := catalog[name]
	return ok
}

// Catalog returns every cataloged action sorted by name.
func Catalog() []Entry {
	entries := make([]Entry, 0, len(catalog))
	for name, desc := range catalog {
		entries = append(entries, Entry{Name: name, Description: desc})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}
