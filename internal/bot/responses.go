package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/faideww/fish-of-the-day/internal/fetch"
	"github.com/faideww/fish-of-the-day/internal/fish"
	"github.com/faideww/fish-of-the-day/internal/store"
)

// ErrFishDisabled is returned when the random fish command is turned off.
var ErrFishDisabled = errors.New("fish command disabled")

const (
	msgUnreachable   = "Sorry! I can't seem to access the database right now. Please try again later."
	msgInternalError = "Sorry! There was an internal error handling your request."
	msgFishDisabled  = "Sorry! The !fish command is not enabled at the moment."
)

const helpText = `Hi! I'm the Fish of the Day bot!
Here's a list of my commands (replace '!' with '?' if you'd rather I DM you the message):
**!fish-help** - Displays this message
**!fotd** - Posts the current Fish of the Day
**!fish** - Posts a random fish

Be patient, it sometimes takes me a little while to find a suitable fish!

The database I use can be found at https://www.fishbase.se/`

type FotdSource interface {
	Get(ctx context.Context) (store.Entry, error)
}

type FishSource interface {
	Acquire(ctx context.Context, p fish.Purpose) (fish.Record, error)
}

type Responder struct {
	fotd        FotdSource
	random      FishSource
	fishEnabled bool
	logger      *log.Logger
}

func NewResponder(fotd FotdSource, random FishSource, fishEnabled bool, logger *log.Logger) *Responder {
	if logger == nil {
		logger = log.Default()
	}
	return &Responder{fotd: fotd, random: random, fishEnabled: fishEnabled, logger: logger}
}

// Respond answers a command word. userId is empty for anonymous requests
// such as direct messages.
func (r *Responder) Respond(ctx context.Context, command, userId string) Reply {
	switch command {
	case CommandFotd:
		e, err := r.fotd.Get(ctx)
		if err != nil {
			return r.failure(command, err)
		}
		return FormatFotd(e)
	case CommandFish:
		if !r.fishEnabled {
			return r.failure(command, ErrFishDisabled)
		}
		rec, err := r.random.Acquire(ctx, fish.PurposeRandom)
		if err != nil {
			return r.failure(command, err)
		}
		return FormatRandom(rec, userId)
	case CommandHelp:
		return HelpReply()
	default:
		return NoReply{}
	}
}

func (r *Responder) failure(command string, err error) Reply {
	r.logger.Error("command failed", "command", command, "err", err)

	switch {
	case errors.Is(err, ErrFishDisabled):
		return TextReply{Text: msgFishDisabled}
	case errors.Is(err, fetch.ErrFetch), errors.Is(err, fish.ErrExtraction):
		return TextReply{Text: msgUnreachable}
	default:
		return TextReply{Text: msgInternalError}
	}
}

func FormatFotd(e store.Entry) Reply {
	if !e.IsSet() {
		return TextReply{Text: msgInternalError}
	}

	text := fmt.Sprintf("The Fish of the Day for %s is %s", e.FormattedDate(), describe(*e.Fish))
	if fish.IsRare(*e.Fish) {
		text = "It actually happened! " + text
	}
	return withImage(text, *e.Fish)
}

func FormatRandom(rec fish.Record, userId string) Reply {
	text := "Your random fish is " + describe(rec)

	switch {
	case userId != "" && fish.IsRare(rec):
		text = fmt.Sprintf("Hi %s! You actually did it! %s", mention(userId), text)
	case userId != "":
		text = fmt.Sprintf("Hi %s! %s", mention(userId), text)
	case fish.IsRare(rec):
		text = "No one will believe you! " + text
	}
	return withImage(text, rec)
}

func HelpReply() Reply {
	return TextReply{Text: helpText}
}

func describe(rec fish.Record) string {
	switch {
	case rec.HasCommonName():
		return fmt.Sprintf("**%s** (*%s*)", rec.CommonName, rec.ScientificName)
	case rec.HasGenus():
		return fmt.Sprintf("*%s*, from the family **%s**", rec.ScientificName, rec.Genus)
	default:
		return fmt.Sprintf("*%s*", rec.ScientificName)
	}
}

func withImage(text string, rec fish.Record) Reply {
	if !rec.HasImage() {
		return TextReply{Text: text}
	}
	return MediaReply{Text: text, ImageURL: rec.ImageURL}
}

// mention format: <@USERID>
func mention(userId string) string {
	return "<@" + userId + ">"
}
