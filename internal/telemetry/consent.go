package telemetry

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// PromptConsent asks the user whether to enable anonymous telemetry and
// persists the answer on the given config. Non-interactive sessions are
// treated as a decline so scripts and CI never hang on the prompt.
func PromptConsent(cfg *Config) (bool, error) {
	if !isInteractive() {
		cfg.Disable()
		if err := cfg.Save(); err != nil {
			return false, err
		}
		return false, nil
	}

	printConsentNotice()
	enabled := readConsentAnswer(os.Stdin)

	if enabled {
		cfg.Enable()
	} else {
		cfg.Disable()
	}
	if err := cfg.Save(); err != nil {
		return false, err
	}

	if enabled {
		fmt.Println("✅ Telemetry enabled. Thank you for helping improve GameForge!")
	} else {
		fmt.Println("✅ Telemetry disabled. You can enable it anytime with: gameforge config telemetry enable")
	}
	fmt.Println()

	return enabled, nil
}

// printConsentNotice explains exactly what is and is not collected.
func printConsentNotice() {
	fmt.Println()
	fmt.Println("╭──────────────────────────────────────────────────────────────╮")
	fmt.Println("│  📊 Help improve GameForge?                                  │")
	fmt.Println("│                                                              │")
	fmt.Println("│  GameForge collects anonymous usage statistics to improve    │")
	fmt.Println("│  the product. No personal data or game content is ever       │")
	fmt.Println("│  collected.                                                  │")
	fmt.Println("│                                                              │")
	fmt.Println("│  What we collect:                                            │")
	fmt.Println("│  • Run outcomes (accepted, abandoned) and pass counts        │")
	fmt.Println("│  • Provider and model names, OS and architecture             │")
	fmt.Println("│                                                              │")
	fmt.Println("│  What we DON'T collect:                                      │")
	fmt.Println("│  • Your game descriptions or generated code                  │")
	fmt.Println("│  • API keys, file paths, usernames, or IP addresses          │")
	fmt.Println("│                                                              │")
	fmt.Println("│  You can change this anytime with:                           │")
	fmt.Println("│    gameforge config telemetry disable                        │")
	fmt.Println("╰──────────────────────────────────────────────────────────────╯")
	fmt.Println()
	fmt.Print("Enable anonymous telemetry? [Y/n] ")
}

// readConsentAnswer reads one line and interprets it. Empty input and read
// errors default the same way the prompt suggests: empty means yes, an
// unreadable stdin means no.
func readConsentAnswer(r io.Reader) bool {
	input, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && input == "" {
		return false
	}

	input = strings.TrimSpace(strings.ToLower(input))
	return input == "" || input == "y" || input == "yes"
}

// isInteractive returns true if stdin is a terminal.
func isInteractive() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
