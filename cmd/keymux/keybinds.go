package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/sahilm/fuzzy"

	"github.com/keymux/keymux/internal/action"
	"github.com/keymux/keymux/internal/config"
)

// bindingRow is one display line of `keybinds list`.
type bindingRow struct {
	table  string
	key    string
	mods   string
	action string
	arg    string
}

func (r bindingRow) searchText() string {
	return r.table + " " + r.mods + " " + r.key + " " + r.action
}

func collectRows(cfg *config.UserConfig) []bindingRow {
	var rows []bindingRow
	for _, b := range cfg.Keys {
		rows = append(rows, bindingRow{table: "default", key: b.Key, mods: b.Mods, action: b.Action, arg: b.Arg})
	}
	for name, bindings := range cfg.KeyTables {
		for _, b := range bindings {
			rows = append(rows, bindingRow{table: name, key: b.Key, mods: b.Mods, action: b.Action, arg: b.Arg})
		}
	}
	for _, m := range cfg.Mouse {
		key := fmt.Sprintf("%s x%d %s", m.Button, m.Streak, m.Event)
		rows = append(rows, bindingRow{table: "mouse", key: key, mods: m.Mods, action: m.Action, arg: m.Arg})
	}
	return rows
}

func filterRows(rows []bindingRow, pattern string) []bindingRow {
	if pattern == "" {
		return rows
	}
	texts := make([]string, len(rows))
	for i, r := range rows {
		texts[i] = r.searchText()
	}
	matches := fuzzy.Find(pattern, texts)
	filtered := make([]bindingRow, 0, len(matches))
	for _, m := range matches {
		filtered = append(filtered, rows[m.Index])
	}
	return filtered
}

func listKeybindings(filter, table string) error {
	userCfg, err := config.LoadUserConfig()
	if err != nil {
		log.Warn("failed to load config, listing defaults", "err", err)
		userCfg = config.DefaultConfig()
	}

	rows := collectRows(userCfg)
	if table != "" {
		kept := rows[:0]
		for _, r := range rows {
			if r.table == table {
				kept = append(kept, r)
			}
		}
		rows = kept
	}
	rows = filterRows(rows, filter)

	if len(rows) == 0 {
		fmt.Println("No bindings match")
		return nil
	}

	fmt.Printf("%-14s %-16s %-20s %s\n", "TABLE", "MODS", "KEY", "ACTION")
	for _, r := range rows {
		mods := r.mods
		if mods == "" {
			mods = "-"
		}
		act := r.action
		if r.arg != "" {
			act += "(" + r.arg + ")"
		}
		fmt.Printf("%-14s %-16s %-20s %s\n", r.table, mods, r.key, act)
	}

	if userCfg.Leader != nil {
		fmt.Printf("\nLeader: %s+%s (timeout %dms)\n",
			userCfg.Leader.Mods, userCfg.Leader.Key, userCfg.Leader.TimeoutMS)
	}
	return nil
}

func listActions(filter string) error {
	entries := action.Catalog()

	if filter != "" {
		texts := make([]string, len(entries))
		for i, e := range entries {
			texts[i] = e.Name + " " + e.Description
		}
		matches := fuzzy.Find(filter, texts)
		filtered := make([]action.Entry, 0, len(matches))
		for _, m := range matches {
			filtered = append(filtered, entries[m.Index])
		}
		entries = filtered
	}

	if len(entries) == 0 {
		fmt.Println("No actions match")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%-32s %s\n", e.Name, e.Description)
	}
	return nil
}
