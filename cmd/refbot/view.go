package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fwojciec/refbot"
	"github.com/fwojciec/refbot/tui"
)

// Run executes the view command.
func (c *ViewCmd) Run(deps *Dependencies) error {
	pages, err := resolvePages(deps, c.Corpus, c.Query)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", refbot.ErrorMessage(err))
		return err
	}

	model, err := tui.NewModel(pages, time.Duration(deps.Config.Expiry))
	if err != nil {
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(deps.Stdout))
	_, err = program.Run()
	return err
}
