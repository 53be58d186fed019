package bot

import (
	"bytes"
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
)

const attachmentName = "fotd.jpg"

// ImageFetcher downloads image bytes for media replies.
type ImageFetcher interface {
	FetchImage(ctx context.Context, url string) ([]byte, error)
}

// sender is the part of *discordgo.Session the handler needs.
type sender interface {
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
}

type Handler struct {
	responder *Responder
	images    ImageFetcher
	logger    *log.Logger
}

func NewHandler(responder *Responder, images ImageFetcher, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{responder: responder, images: images, logger: logger}
}

// Setup registers the message handler on the session and returns a func
// that removes it.
func Setup(session *discordgo.Session, h *Handler) func() {
	session.Identify.Intents = discordgo.IntentGuildMessages |
		discordgo.IntentDirectMessages |
		discordgo.IntentMessageContent

	remove := session.AddHandler(h.onMessage)
	return remove
}

func (h *Handler) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	botId := ""
	if s.State != nil && s.State.User != nil {
		botId = s.State.User.ID
	}
	h.handle(context.Background(), s, botId, m)
}

func (h *Handler) handle(ctx context.Context, s sender, botId string, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == botId {
		return
	}

	req, ok := ParseCommand(m.Content)
	if !ok {
		return
	}

	// Direct messages are answered anonymously.
	userId := ""
	if m.GuildID != "" {
		userId = m.Author.ID
	}

	reply := h.responder.Respond(ctx, req.Command, userId)
	if _, ok := reply.(NoReply); ok {
		return
	}

	h.logger.Info("command", "command", req.Command, "private", req.Private, "guild", m.GuildID, "user", m.Author.ID)

	channelId := m.ChannelID
	if req.Private {
		ch, err := s.UserChannelCreate(m.Author.ID)
		if err != nil {
			h.logREST("failed to open dm channel", err)
			return
		}
		channelId = ch.ID
	}

	if err := h.send(ctx, s, channelId, reply); err != nil {
		h.logREST("send failed", err)
	}
}

func (h *Handler) send(ctx context.Context, s sender, channelId string, reply Reply) error {
	switch r := reply.(type) {
	case TextReply:
		_, err := s.ChannelMessageSend(channelId, r.Text)
		return err
	case MediaReply:
		img, err := h.images.FetchImage(ctx, r.ImageURL)
		if err != nil {
			h.logger.Warn("image download failed, sending text only", "url", r.ImageURL, "err", err)
			_, err := s.ChannelMessageSend(channelId, r.Text)
			return err
		}
		_, err = s.ChannelMessageSendComplex(channelId, &discordgo.MessageSend{
			Content: r.Text,
			Files: []*discordgo.File{
				{Name: attachmentName, ContentType: "image/jpeg", Reader: bytes.NewReader(img)},
			},
		})
		return err
	default:
		return fmt.Errorf("unexpected reply %T", reply)
	}
}

func (h *Handler) logREST(msg string, err error) {
	if rerr, ok := err.(*discordgo.RESTError); ok && rerr.Message != nil {
		h.logger.Error(msg, "code", rerr.Message.Code, "msg", rerr.Message.Message)
	} else {
		h.logger.Error(msg, "err", err)
	}
}
