package bot

import "strings"

const (
	CommandFotd = "fotd"
	CommandFish = "fish"
	CommandHelp = "fish-help"
)

const (
	prefixPrivate = '?'
	prefixPublic  = '!'
)

// Request is a chat message that addresses the bot.
type Request struct {
	Command string
	// Private requests are answered with a direct message to the author.
	Private bool
}

// ParseCommand splits the delivery prefix from the command word. Messages
// without a known prefix aren't meant for the bot.
func ParseCommand(content string) (Request, bool) {
	if content == "" {
		return Request{}, false
	}

	var private bool
	switch content[0] {
	case prefixPrivate:
		private = true
	case prefixPublic:
		private = false
	default:
		return Request{}, false
	}

	return Request{Command: strings.TrimSpace(content[1:]), Private: private}, true
}
