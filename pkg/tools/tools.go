// Package tools locates the STM32 command line tools on the host.
package tools

import (
	"os"
	"os/exec"

	"github.com/arthur-debert/stmdeploy/pkg/errors"
)

// ProgrammerName is the executable name of the STM32CubeProgrammer CLI.
// Flash commands referencing it go through probe resolution.
const ProgrammerName = "STM32_Programmer_CLI"

// Environment variables overriding the PATH lookup
const (
	EnvCubeIDE    = "STM32_CUBE_IDE_EXE"
	EnvProgrammer = "STM32_PROGRAMMER_CLI_EXE"
)

var (
	cubeIDENames    = []string{"stm32cubeide", "stm32cubeidec"}
	programmerNames = []string{ProgrammerName}
)

// Tool describes how to find one executable
type Tool struct {
	Name  string
	Env   string
	Names []string
}

// CubeIDE is the STM32CubeIDE executable (headless build)
var CubeIDE = Tool{Name: "STM32CubeIDE", Env: EnvCubeIDE, Names: cubeIDENames}

// Programmer is the STM32CubeProgrammer CLI
var Programmer = Tool{Name: "STM32CubeProgrammer", Env: EnvProgrammer, Names: programmerNames}

// Locator finds tools. LookPath and Getenv default to the os/exec and os
// implementations.
type Locator struct {
	LookPath func(file string) (string, error)
	Getenv   func(key string) string
}

// NewLocator returns a locator using the host PATH and environment
func NewLocator() *Locator {
	return &Locator{LookPath: exec.LookPath, Getenv: os.Getenv}
}

// Find returns the executable path of tool. The environment variable wins
// over the PATH lookup.
func (l *Locator) Find(tool Tool) (string, error) {
	if tool.Env != "" {
		if exe := l.Getenv(tool.Env); exe != "" {
			if _, err := l.LookPath(exe); err != nil {
				return "", errors.Wrapf(err, errors.ErrToolNotFound,
					"%s from %s is not executable: %s", tool.Name, tool.Env, exe)
			}
			return exe, nil
		}
	}
	for _, name := range tool.Names {
		if exe, err := l.LookPath(name); err == nil {
			return exe, nil
		}
	}
	return "", errors.Newf(errors.ErrToolNotFound, "%s executable not found", tool.Name).
		WithDetail("env", tool.Env).
		WithDetail("names", tool.Names)
}
