package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

func shouldUseTUI(cmd *cobra.Command) (bool, error) {
	value, err := cmd.Root().PersistentFlags().GetString("ui")
	if err != nil {
		return false, err
	}
	mode, err := readUIMode(value)
	if err != nil {
		return false, err
	}
	switch mode {
	case uiModeOn:
		return true, nil
	case uiModeOff:
		return false, nil
	default:
		return isTerminal(os.Stdout), nil
	}
}
