package cmd

import (
	"fmt"
	"os"
	"os/exec"
)

// RunExtension runs an external subcommand: an executable named
// mcj-<name> found on PATH, in the manner of git extensions. The data
// file locations are passed through the environment.
func RunExtension(name string, args []string) error {
	path, err := exec.LookPath("mcj-" + name)
	if err != nil {
		return fmt.Errorf("unknown command %q and no mcj-%s executable on PATH", name, name)
	}

	cmd := exec.Command(path, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(),
		"MCJ_DIR="+*dataDir,
		"MCJ_PORTFOLIO_FILE="+portfolioPath(),
		"MCJ_JOURNAL_FILE="+journalPath(),
		"MCJ_TRADELOG_FILE="+tradeLogPath(),
	)
	return cmd.Run()
}
