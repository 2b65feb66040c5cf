package display

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	rangeerr "github.com/KirkDiggler/dnd-range-bot/internal/errors"
	"github.com/KirkDiggler/dnd-range-bot/internal/measurement"
)

// DefaultTransientLimit is how many recent measurement modifiers the embed keeps
const DefaultTransientLimit = 5

const embedColor = 0x3498db

// Discord rejects field values over 1024 characters and embeds over 6000
const (
	fieldValueLimit = 1024
	availableBudget = 4000
)

// MessageSender is the part of *discordgo.Session the display needs
type MessageSender interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordConfig holds configuration for the Discord display
type DiscordConfig struct {
	Session        MessageSender
	ChannelID      string
	TransientLimit int
}

// Discord keeps one embed in a channel listing the available range
// modifiers and the latest measured ones. The first render posts the
// message, later renders edit it.
type Discord struct {
	session        MessageSender
	channelID      string
	transientLimit int

	mu         sync.Mutex
	messageID  string
	modifiers  []string
	transients []measurement.TransientModifier
}

// NewDiscord creates a Discord backed modifier display
func NewDiscord(cfg *DiscordConfig) (*Discord, error) {
	if cfg == nil || cfg.Session == nil {
		return nil, rangeerr.InvalidArgument("discord session is required")
	}
	if cfg.ChannelID == "" {
		return nil, rangeerr.InvalidArgument("discord channel ID is required")
	}

	limit := cfg.TransientLimit
	if limit <= 0 {
		limit = DefaultTransientLimit
	}

	return &Discord{
		session:        cfg.Session,
		channelID:      cfg.ChannelID,
		transientLimit: limit,
	}, nil
}

// Refresh re-renders the embed with a new modifier list
func (d *Discord) Refresh(ctx context.Context, modifiers []string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.modifiers = append([]string(nil), modifiers...)
	return d.render()
}

// PushTransient adds a measured modifier to the embed
func (d *Discord) PushTransient(ctx context.Context, modifier measurement.TransientModifier) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.transients = append(d.transients, modifier)
	if len(d.transients) > d.transientLimit {
		d.transients = d.transients[len(d.transients)-d.transientLimit:]
	}
	return d.render()
}

// render must be called with mu held
func (d *Discord) render() error {
	embed := d.buildEmbed()

	if d.messageID == "" {
		msg, err := d.session.ChannelMessageSendComplex(d.channelID, &discordgo.MessageSend{
			Embeds: []*discordgo.MessageEmbed{embed},
		})
		if err != nil {
			return fmt.Errorf("failed to create range modifier message: %w", err)
		}
		d.messageID = msg.ID
		return nil
	}

	_, err := d.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel: d.channelID,
		ID:      d.messageID,
		Embed:   embed,
	})
	if err != nil {
		return fmt.Errorf("failed to update range modifier message: %w", err)
	}

	return nil
}

func (d *Discord) buildEmbed() *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "🎯 Range Modifiers",
		Color: embedColor,
	}

	chunks := chunkLines(d.modifiers)
	if len(chunks) == 0 {
		chunks = []string{"No range modifiers"}
	}
	for i, chunk := range chunks {
		name := "Available"
		if i > 0 {
			name = "Available (cont.)"
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  name,
			Value: chunk,
		})
	}

	if len(d.transients) > 0 {
		lines := make([]string, 0, len(d.transients))
		for i := len(d.transients) - 1; i >= 0; i-- {
			m := d.transients[i]
			lines = append(lines, fmt.Sprintf("%s (%s %s)", m.Text(), formatDistance(m.Distance), m.Units))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Last Measured",
			Value: truncate(strings.Join(lines, "\n"), fieldValueLimit),
		})
	}

	return embed
}

// chunkLines packs lines into field values of at most fieldValueLimit bytes,
// splitting only between lines. Lines past availableBudget are summarized.
func chunkLines(lines []string) []string {
	var (
		chunks  []string
		current strings.Builder
		used    int
	)

	add := func(line string) {
		if current.Len() > 0 && current.Len()+1+len(line) > fieldValueLimit {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte('\n')
		}
		current.WriteString(line)
		used += len(line) + 1
	}

	for i, line := range lines {
		line = truncate(line, fieldValueLimit)
		if used+len(line) > availableBudget {
			add(fmt.Sprintf("...and %d more", len(lines)-i))
			break
		}
		add(line)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}

// truncate cuts s to at most limit bytes without splitting a rune
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit - len("...")
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
