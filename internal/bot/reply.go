package bot

// Reply is what the bot sends back for a command: a TextReply, a
// MediaReply or NoReply when the message wasn't a command.
type Reply interface {
	isReply()
}

type TextReply struct {
	Text string
}

// MediaReply carries text plus an image that gets downloaded and attached
// when the message is sent.
type MediaReply struct {
	Text     string
	ImageURL string
}

type NoReply struct{}

func (TextReply) isReply() {}
func (MediaReply) isReply() {}
func (NoReply) isReply() {}
