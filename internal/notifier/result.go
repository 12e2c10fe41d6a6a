package notifier

import (
	"errors"
	"os"

	"github.com/jmylchreest/chime/internal/player"
)

// Kind classifies why a notification did not play.
type Kind int

const (
	KindNone Kind = iota
	KindNoPlayerAvailable
	KindPlaybackFailed
	KindFileNotFound
	KindIOError
)

// KindNames maps kinds to their display names.
var KindNames = map[Kind]string{
	KindNone:              "none",
	KindNoPlayerAvailable: "no_player_available",
	KindPlaybackFailed:    "playback_failed",
	KindFileNotFound:      "file_not_found",
	KindIOError:           "io_error",
}

func (k Kind) String() string {
	if name, ok := KindNames[k]; ok {
		return name
	}
	return "unknown"
}

// KindOf maps an error from the lower layers to a Kind.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, player.ErrNoPlayer):
		return KindNoPlayerAvailable
	case errors.Is(err, player.ErrPlaybackFailed):
		return KindPlaybackFailed
	case errors.Is(err, os.ErrNotExist):
		return KindFileNotFound
	default:
		return KindIOError
	}
}

// Result is the outcome of a notification.
type Result struct {
	Played  bool
	Kind    Kind
	Player  string // Player that succeeded
	File    string // File that was (or would have been) played
	Message string // Human-readable status line
	Err     error
}

// OK reports whether the sound was played.
func (r Result) OK() bool {
	return r.Played
}
