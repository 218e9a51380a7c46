package slack

import (
	"context"
	"time"

	"github.com/slack-go/slack"
	"go.uber.org/zap"

	"github.com/jflowers/slackfeeder-sub000/internal/people"
)

// ConversationMembers returns the user IDs of every member of a
// conversation, following pagination.
func (c *Client) ConversationMembers(ctx context.Context, channelID string) ([]string, error) {
	var members []string
	cursor := ""

	for {
		params := &slack.GetUsersInConversationParameters{
			ChannelID: channelID,
			Limit:     historyPageSize,
			Cursor:    cursor,
		}

		var (
			page []string
			next string
		)
		err := withRetry(ctx, c.logger, func() error {
			var e error
			page, next, e = c.api.GetUsersInConversationContext(ctx, params)
			return e
		})
		if err != nil {
			return nil, WrapError(c.logger, "list members of "+channelID, err)
		}

		members = append(members, page...)
		if next == "" {
			return members, nil
		}
		cursor = next
	}
}

// LookupUser fetches a user's profile and maps it to a person record. Bots
// and deleted users return ok=false without an error so the resolver can
// cache the outcome. Implements people.Lookup.
func (c *Client) LookupUser(ctx context.Context, id string) (people.Person, bool, error) {
	var user *slack.User
	err := withRetry(ctx, c.logger, func() error {
		var e error
		user, e = c.api.GetUserInfoContext(ctx, id)
		return e
	})
	if err != nil {
		if Classify(err) == KindNotFound {
			c.logger.Debug("User not found", zap.String("user", id))
			return people.Person{}, false, nil
		}
		return people.Person{}, false, WrapError(c.logger, "look up user "+id, err)
	}

	if user.IsBot || user.Deleted {
		return people.Person{}, false, nil
	}

	return personFromUser(*user), true, nil
}

// AllConversations enumerates every channel, group, and DM visible to the
// token, for reference-file generation. Part of people.RefSource.
func (c *Client) AllConversations(ctx context.Context) ([]people.Conversation, error) {
	var out []people.Conversation
	cursor := ""

	for {
		params := &slack.GetConversationsParameters{
			Types:           []string{"public_channel", "private_channel", "im", "mpim"},
			Limit:           historyPageSize,
			Cursor:          cursor,
			ExcludeArchived: true,
		}

		var (
			channels []slack.Channel
			next     string
		)
		err := withRetry(ctx, c.logger, func() error {
			var e error
			channels, next, e = c.api.GetConversationsContext(ctx, params)
			return e
		})
		if err != nil {
			return nil, WrapError(c.logger, "list conversations", err)
		}

		for _, ch := range channels {
			out = append(out, people.Conversation{
				ID:     ch.ID,
				Name:   ch.NameNormalized,
				IsIM:   ch.IsIM,
				IsMPIM: ch.IsMpIM,
				User:   ch.User,
			})
		}

		if next == "" {
			return out, nil
		}
		cursor = next

		select {
		case <-time.After(pagePause):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// AllUsers enumerates every non-bot, non-deleted workspace user, for
// reference-file generation. Part of people.RefSource.
func (c *Client) AllUsers(ctx context.Context) ([]people.Person, error) {
	var users []slack.User
	err := withRetry(ctx, c.logger, func() error {
		var e error
		users, e = c.api.GetUsersContext(ctx)
		return e
	})
	if err != nil {
		return nil, WrapError(c.logger, "list users", err)
	}

	var out []people.Person
	for _, u := range users {
		if u.IsBot || u.Deleted || u.ID == "USLACKBOT" {
			continue
		}
		out = append(out, personFromUser(u))
	}
	return out, nil
}

// personFromUser maps a Slack profile to a person record, preferring the
// display name, then the real name, then the login name.
func personFromUser(u slack.User) people.Person {
	name := u.Profile.DisplayNameNormalized
	if name == "" {
		name = u.Profile.RealNameNormalized
	}
	if name == "" {
		name = u.Name
	}
	return people.Person{
		SlackID:     u.ID,
		Email:       u.Profile.Email,
		DisplayName: name,
	}
}
