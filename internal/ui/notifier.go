package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog/log"
)

// DialogNotifier shows session messages as modal dialogs on a window.
type DialogNotifier struct {
	window fyne.Window
}

func NewDialogNotifier(w fyne.Window) *DialogNotifier {
	return &DialogNotifier{window: w}
}

// ShowError shows message to the user; err is only logged.
func (n *DialogNotifier) ShowError(title, message string, err error) {
	log.Debug().Err(err).Str("title", title).Msg("showing error dialog")
	n.show(title, message, theme.ErrorIcon())
}

func (n *DialogNotifier) ShowWarning(title, message string) {
	log.Debug().Str("title", title).Msg("showing warning dialog")
	n.show(title, message, theme.WarningIcon())
}

func (n *DialogNotifier) show(title, message string, icon fyne.Resource) {
	content := container.NewHBox(widget.NewIcon(icon), widget.NewLabel(message))
	dialog.NewCustom(title, "OK", content, n.window).Show()
}
