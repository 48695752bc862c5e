package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/eiannone/keyboard"
	"github.com/mattn/go-isatty"
)

// confirm prints prompt and reads a yes/no answer. A single keypress is
// enough when a keyboard is available; otherwise it falls back to reading a
// line. Non-interactive stdin (pipes, CI) answers no, since there is nobody
// to ask.
func confirm(prompt string) (bool, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		fmt.Println("Non-interactive mode detected. Use --force to skip confirmation.")
		return false, nil
	}

	fmt.Print(prompt)

	char, key, err := keyboard.GetSingleKey()
	if err != nil {
		return confirmLine()
	}
	fmt.Printf("%c\n", char)

	if key == keyboard.KeyCtrlC || key == keyboard.KeyEsc {
		return false, nil
	}
	return char == 'y' || char == 'Y', nil
}

// confirmLine is the line-based fallback for terminals the keyboard
// package cannot open.
func confirmLine() (bool, error) {
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("failed to read response: %w", err)
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
