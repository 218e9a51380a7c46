package slack

import (
	"context"
	"time"

	"github.com/slack-go/slack"
	"go.uber.org/zap"

	"github.com/jflowers/slackfeeder-sub000/internal/export"
)

const (
	historyPageSize = 200
	pagePause       = 300 * time.Millisecond
)

// FetchHistory pulls the full history of a conversation between oldest and
// latest (Slack timestamp strings, either may be empty) as one batch per
// API page. Threads are expanded: every message with replies contributes
// additional batches holding its reply pages, so adjacent batches overlap
// on the thread root and deduplication is left to the caller.
func (c *Client) FetchHistory(ctx context.Context, channelID, oldest, latest string) ([]export.Batch, error) {
	var batches []export.Batch
	cursor := ""
	pages := 0

	for {
		params := &slack.GetConversationHistoryParameters{
			ChannelID: channelID,
			Limit:     historyPageSize,
			Oldest:    oldest,
			Latest:    latest,
			Cursor:    cursor,
			Inclusive: true,
		}

		var resp *slack.GetConversationHistoryResponse
		err := withRetry(ctx, c.logger, func() error {
			var e error
			resp, e = c.api.GetConversationHistoryContext(ctx, params)
			return e
		})
		if err != nil {
			return nil, WrapError(c.logger, "fetch history for "+channelID, err)
		}

		page := make(export.Batch, 0, len(resp.Messages))
		for _, msg := range resp.Messages {
			page = append(page, rawFromSlack(msg))
		}
		batches = append(batches, page)
		pages++

		for _, msg := range resp.Messages {
			if msg.ReplyCount == 0 || msg.ThreadTimestamp != msg.Timestamp {
				continue
			}
			replyBatches, err := c.fetchReplies(ctx, channelID, msg.ThreadTimestamp, oldest, latest)
			if err != nil {
				return nil, err
			}
			batches = append(batches, replyBatches...)
		}

		if !resp.HasMore || resp.ResponseMetaData.NextCursor == "" {
			break
		}
		cursor = resp.ResponseMetaData.NextCursor

		select {
		case <-time.After(pagePause):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	c.logger.Info("Fetched conversation history",
		zap.String("channel", channelID),
		zap.Int("pages", pages),
		zap.Int("batches", len(batches)))
	return batches, nil
}

// fetchReplies pulls every page of a thread as separate batches.
func (c *Client) fetchReplies(ctx context.Context, channelID, threadTS, oldest, latest string) ([]export.Batch, error) {
	var batches []export.Batch
	cursor := ""

	for {
		params := &slack.GetConversationRepliesParameters{
			ChannelID: channelID,
			Timestamp: threadTS,
			Limit:     historyPageSize,
			Oldest:    oldest,
			Latest:    latest,
			Cursor:    cursor,
			Inclusive: true,
		}

		var (
			msgs    []slack.Message
			hasMore bool
			next    string
		)
		err := withRetry(ctx, c.logger, func() error {
			var e error
			msgs, hasMore, next, e = c.api.GetConversationRepliesContext(ctx, params)
			return e
		})
		if err != nil {
			return nil, WrapError(c.logger, "fetch thread "+threadTS, err)
		}

		page := make(export.Batch, 0, len(msgs))
		for _, msg := range msgs {
			page = append(page, rawFromSlack(msg))
		}
		batches = append(batches, page)

		if !hasMore || next == "" {
			return batches, nil
		}
		cursor = next

		select {
		case <-time.After(pagePause):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func rawFromSlack(msg slack.Message) export.RawMessage {
	raw := export.RawMessage{
		Ts:       msg.Timestamp,
		User:     msg.User,
		Username: msg.Username,
		Text:     msg.Text,
		ThreadTs: msg.ThreadTimestamp,
	}
	for _, f := range msg.Files {
		raw.Files = append(raw.Files, export.File{ID: f.ID, Name: f.Name})
	}
	return raw
}
