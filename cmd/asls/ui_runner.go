package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"asls/internal/ui"
	"asls/internal/workspace"
)

type loadOutcome struct {
	result *workspace.LoadResult
	err    error
}

// loadWithUI runs LoadFiles while a progress model renders the events the
// workspace reports through events.
func loadWithUI(ctx context.Context, title string, ws *workspace.Workspace, files []string, events chan workspace.Progress) (*workspace.LoadResult, error) {
	outcomeCh := make(chan loadOutcome, 1)
	go func() {
		res, err := ws.LoadFiles(ctx, files)
		outcomeCh <- loadOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
