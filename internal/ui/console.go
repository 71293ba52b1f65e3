// Package ui provides the interactive console surface: a spinner for long
// stages and colored status lines on stderr. Quiet mode suppresses all of it
// so scripted runs see only the final result on stdout.
package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

type Console struct {
	spinner *spinner.Spinner
	quiet   bool
}

func NewConsole(quiet bool) *Console {
	if quiet {
		return &Console{quiet: true}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	return &Console{spinner: s}
}

// StartStage shows a spinner labeled with the running stage.
func (c *Console) StartStage(label string) {
	if c.quiet {
		return
	}
	c.spinner.Suffix = " " + label
	if !c.spinner.Active() {
		c.spinner.Start()
	}
}

func (c *Console) StopStage() {
	if c.quiet {
		return
	}
	if c.spinner.Active() {
		c.spinner.Stop()
	}
}

// Announcef highlights a one-line notice, such as which model was picked.
func (c *Console) Announcef(format string, args ...any) {
	if c.quiet {
		return
	}
	c.StopStage()
	fmt.Fprintln(os.Stderr, color.CyanString(fmt.Sprintf(format, args...)))
}

func (c *Console) Successf(format string, args ...any) {
	if c.quiet {
		return
	}
	c.StopStage()
	fmt.Fprintln(os.Stderr, color.GreenString("✓ ")+fmt.Sprintf(format, args...))
}

func (c *Console) Errorf(format string, args ...any) {
	if c.quiet {
		return
	}
	c.StopStage()
	fmt.Fprintln(os.Stderr, color.RedString("✗ ")+fmt.Sprintf(format, args...))
}
