package main

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/keymux/keymux/internal/config"
)

func printConfigPath() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	fmt.Println(path)
	return nil
}

// findEditor returns the user's editor, checking $EDITOR and $VISUAL
// before falling back to common editors on PATH.
func findEditor() (string, error) {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor, nil
	}
	if editor := os.Getenv("VISUAL"); editor != "" {
		return editor, nil
	}
	for _, editor := range []string{"vim", "vi", "nano", "emacs"} {
		if path, err := exec.LookPath(editor); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no editor found; set $EDITOR or install vim, vi, nano or emacs")
}

func editConfigFile() error {
	// Loading first guarantees the file exists before the editor opens.
	if _, err := config.LoadUserConfig(); err != nil {
		log.Warn("existing config has errors", "err", err)
	}

	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	editor, err := findEditor()
	if err != nil {
		return err
	}

	cmd := exec.Command(editor, path) // #nosec G204 - editor comes from the user's environment
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}

	if _, err := config.LoadFromFile(path); err != nil {
		return fmt.Errorf("edited config is invalid: %w", err)
	}
	fmt.Println("Configuration OK")
	return nil
}

func resetConfigToDefaults() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		fmt.Printf("This will overwrite %s with defaults. Continue? [y/N] ", path)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("Aborted")
			return nil
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove config file: %w", err)
		}
	}

	// LoadUserConfig recreates the default file when none exists.
	if _, err := config.LoadUserConfig(); err != nil {
		return fmt.Errorf("failed to write default config: %w", err)
	}
	fmt.Printf("Configuration reset to defaults: %s\n", path)
	return nil
}

func validateConfigFile(path string) error {
	if path == "" {
		var err error
		path, err = config.GetConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
	}

	userCfg, err := config.LoadFromFile(path)
	if err != nil {
		return err
	}
	if _, err := config.Compile(userCfg); err != nil {
		return err
	}
	fmt.Printf("%s: OK\n", path)
	return nil
}
