package main

import (
	"fmt"
	"strconv"
)

// Display preferences carried over from the browser client. Stored locally,
// never sent to the backend.
const (
	prefTheme     = "theme"
	prefFontScale = "font-scale"
)

func (a *app) cmdPrefs(args []string) error {
	if len(args) < 1 {
		theme, err := a.store.GetPreference(prefTheme)
		if err != nil {
			return err
		}
		scale, err := a.store.GetPreference(prefFontScale)
		if err != nil {
			return err
		}
		if theme == "" {
			theme = "light"
		}
		if scale == "" {
			scale = "1"
		}
		fmt.Printf("  theme:      %s\n  font-scale: %s\n", theme, scale)
		fmt.Println("\nSet with: prolearn prefs set <theme|font-scale> <value>")
		return nil
	}

	switch args[0] {
	case "get":
		if len(args) < 2 {
			return fmt.Errorf("usage: prefs get <key>")
		}
		v, err := a.store.GetPreference(args[1])
		if err != nil {
			return err
		}
		fmt.Println(v)
		return nil

	case "set":
		if len(args) < 3 {
			return fmt.Errorf("usage: prefs set <key> <value>")
		}
		key, value := args[1], args[2]
		switch key {
		case prefTheme:
			if value != "light" && value != "dark" {
				return fmt.Errorf("theme must be light or dark")
			}
		case prefFontScale:
			f, err := strconv.ParseFloat(value, 64)
			if err != nil || f < 0.5 || f > 2 {
				return fmt.Errorf("font-scale must be a number between 0.5 and 2")
			}
		default:
			return fmt.Errorf("unknown preference %q", key)
		}
		if err := a.store.SetPreference(key, value); err != nil {
			return err
		}
		fmt.Printf("%s = %s\n", key, value)
		return nil

	default:
		return fmt.Errorf("unknown prefs command: %s", args[0])
	}
}
