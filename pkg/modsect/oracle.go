package modsect

import (
	"errors"

	"github.com/manifoldco/promptui"
)

// An Oracle answers the prompts raised during a run: the question of whether the
// problem still occurs with the current group of folders active, and the
// retry/skip/abort choice of the rename protocol.
//
// Valid answers are "y", "n" and "a" for the reproduce question and "r", "s" and "a"
// for the rename protocol. Unrecognized or empty answers cause a re-prompt.
// Embeddings substitute GUI dialogs or scripted answers behind this interface.
type Oracle interface {
	Ask(prompt string) (string, error)
}

// OracleFunc adapts a plain function to the Oracle interface.
type OracleFunc func(prompt string) (string, error)

// Ask calls f.
func (f OracleFunc) Ask(prompt string) (string, error) {
	return f(prompt)
}

// ConsoleOracle asks the operator on the terminal.
type ConsoleOracle struct{}

// Ask prompts on the terminal and returns the entered answer.
// An interrupted or closed prompt is reported as an abort answer.
func (ConsoleOracle) Ask(prompt string) (string, error) {
	p := promptui.Prompt{
		Label: prompt,
	}
	answer, err := p.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrAbort) {
			return "a", nil
		}
		return "", err
	}
	return answer, nil
}
