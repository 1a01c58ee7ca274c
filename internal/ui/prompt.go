package ui

import (
	"github.com/AlecAivazis/survey/v2"
)

// Asker asks one question and returns the answer, or def when the answer
// is left empty.
type Asker func(message, help, def string) (string, error)

// Ask prompts on the terminal.
func Ask(message, help, def string) (string, error) {
	answer := def

	err := survey.AskOne(&survey.Input{
		Message: message,
		Help:    help,
		Default: def,
	}, &answer, survey.WithValidator(survey.Required))
	if err != nil {
		return "", err
	}

	return answer, nil
}
