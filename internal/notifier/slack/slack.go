package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/swiss-tournament/internal/metrics"
	"github.com/mauv0809/swiss-tournament/internal/notifier"
	"github.com/mauv0809/swiss-tournament/internal/tournament"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	return NewNotifierWithAPI(slack.New(token), channelID, metrics)
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-channel", "dry-run-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendPairings(pairings []tournament.Pairing, dryRun bool) error {
	_, _, err := s.sendMessage(formatPairings(pairings), dryRun)
	return err
}

func (s *Notifier) SendStandings(standings []tournament.Standing, dryRun bool) error {
	_, _, err := s.sendMessage(formatStandings(standings), dryRun)
	return err
}

// formatPairings lists the next round's tables, with the bye last.
func formatPairings(pairings []tournament.Pairing) slack.Message {
	blocks := make([]slack.Block, 0, len(pairings)+1)

	headerText := slack.NewTextBlockObject("plain_text", "♟️ Next Round Pairings", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(pairings) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No players registered yet.", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	table := 0
	for _, p := range pairings {
		var text string
		if p.Bye {
			text = fmt.Sprintf("*Bye:* %s (#%d)", p.Name1, p.ID1)
		} else {
			table++
			text = fmt.Sprintf("*Table %d:* %s (#%d) vs %s (#%d)", table, p.Name1, p.ID1, p.Name2, p.ID2)
		}
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatStandings renders the standings table. Tied players share a rank.
func formatStandings(standings []tournament.Standing) slack.Message {
	blocks := make([]slack.Block, 0, len(standings)+1)

	headerText := slack.NewTextBlockObject("plain_text", "🏆 Standings 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(standings) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No standings available yet. Go play some matches!", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	rank := 0
	for i, st := range standings {
		if i == 0 || standings[i-1].Wins != st.Wins {
			rank = i + 1
		}
		var medal string
		switch rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}

		playerText := fmt.Sprintf("%d. %s %s\n> Wins: %d | Played: %d", rank, medal, st.Name, st.Wins, st.Matches)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", playerText, true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}
