package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"vellum/internal/emit"
	"vellum/internal/ui"
)

type emitOutcome struct {
	result emit.RunResult
	err    error
}

// runEmitWithUI drives the pipeline behind the progress view. The
// pipeline runs on its own goroutine and feeds the view through the
// event channel; closing the channel is what lets the view finish.
func runEmitWithUI(ctx context.Context, title string, units []string, req *emit.Request) (emit.RunResult, error) {
	if req == nil {
		return emit.RunResult{}, fmt.Errorf("missing emit request")
	}
	events := make(chan emit.Event, 256)
	outcomeCh := make(chan emitOutcome, 1)

	go func() {
		reqCopy := *req
		reqCopy.Progress = emit.ChannelSink{Ch: events}
		res, err := emit.Run(ctx, &reqCopy)
		outcomeCh <- emitOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, units, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
