// Package notify raises the desktop notification shown when the countdown
// reaches its target.
package notify

import (
	"github.com/ncruces/zenity"
	"github.com/rs/zerolog/log"

	"github.com/iburimskiy/keys-countdown/internal/config"
)

// Notifier shows a desktop notification with title and message.
type Notifier func(title, message string) error

// Desktop is the zenity-backed Notifier.
func Desktop(title, message string) error {
	return zenity.Notify(message, zenity.Title(title))
}

// Arrival announces the end of the countdown for a page.
type Arrival struct {
	notify Notifier
	page   config.PageConfig
}

// NewArrival builds an Arrival for page. A nil notifier means Desktop.
func NewArrival(page config.PageConfig, notifier Notifier) *Arrival {
	if notifier == nil {
		notifier = Desktop
	}
	return &Arrival{notify: notifier, page: page}
}

func (a *Arrival) Title() string {
	return a.page.Title
}

func (a *Arrival) Message() string {
	return a.page.Heading + " - vacation mode activated!"
}

// Show raises the notification. Failures are logged and reported.
func (a *Arrival) Show() error {
	if err := a.notify(a.Title(), a.Message()); err != nil {
		log.Warn().Err(err).Msg("failed to show arrival notification")
		return err
	}
	log.Info().Str("title", a.Title()).Msg("arrival notification shown")
	return nil
}
