package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/stmdeploy/cmd/stmdeploy"
	"github.com/arthur-debert/stmdeploy/pkg/style"
)

func main() {
	rootCmd := stmdeploy.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
