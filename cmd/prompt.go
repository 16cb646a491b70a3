package cmd

import (
	"github.com/manifoldco/promptui"
	"github.com/pkg/errors"
)

// ConfirmAction uses a prompt to confirm an action. It returns false with
// deniedText logged when the user declines.
func ConfirmAction(actionText, deniedText string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     actionText,
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		switch {
		case errors.Is(err, promptui.ErrAbort):
			log.Warn(deniedText)
			return false, nil
		case errors.Is(err, promptui.ErrInterrupt):
			return false, errors.New("keyboard interrupt, closing")
		case errors.Is(err, promptui.ErrEOF):
			return false, errors.New("no input received, closing")
		default:
			return false, err
		}
	}
	return true, nil
}
