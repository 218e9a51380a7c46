// Package share reconciles Drive folder permissions with conversation
// membership, honoring per-person opt-outs and per-conversation allow-lists.
package share

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/jflowers/slackfeeder-sub000/internal/people"
)

// MemberSource supplies live conversation membership when the reference
// file does not list members.
type MemberSource interface {
	ConversationMembers(ctx context.Context, channelID string) ([]string, error)
}

// Members derives the member identifiers of a conversation. The reference
// file wins; a live lookup is next; a comma-separated display-name title is
// the last resort for DMs and group DMs captured from the browser.
func Members(ctx context.Context, conv people.Conversation, src MemberSource, logger *zap.Logger) []string {
	if len(conv.Members) > 0 {
		return conv.Members
	}

	if src != nil && conv.ID != "" {
		members, err := src.ConversationMembers(ctx, conv.ID)
		if err != nil {
			logger.Warn("Failed to list conversation members",
				zap.String("channel", conv.ID), zap.Error(err))
		} else if len(members) > 0 {
			return members
		}
	}

	if conv.IsIM && conv.User != "" {
		return []string{conv.User}
	}
	return people.ParseMemberNames(conv.Title())
}

// matchesAllow reports whether a person matches any allow-list entry by
// Slack ID, email, or display name, case-insensitive.
func matchesAllow(p people.Person, allow []string) bool {
	for _, entry := range allow {
		e := strings.ToLower(strings.TrimSpace(entry))
		if e == "" {
			continue
		}
		if strings.ToLower(p.SlackID) == e ||
			strings.ToLower(p.Email) == e ||
			strings.ToLower(p.DisplayName) == e {
			return true
		}
	}
	return false
}

// ComputeRecipients resolves member identifiers to the set of emails a
// folder should be shared with. The map value is whether to send a
// notification email. Members without a resolvable email are skipped, as
// are share opt-outs; a non-empty allow-list restricts recipients to the
// people it names.
func ComputeRecipients(ctx context.Context, members, allow []string, resolver *people.Resolver, dir *people.Directory, logger *zap.Logger) map[string]bool {
	optOutShare := dir.OptOutShare()
	optOutNotify := dir.OptOutNotify()

	out := make(map[string]bool)
	for _, member := range members {
		p, ok := resolver.Resolve(ctx, member)
		if !ok {
			logger.Debug("Skipping unresolvable member", zap.String("member", member))
			continue
		}
		if p.Email == "" || !people.ValidEmail(p.Email) {
			logger.Debug("Skipping member without a usable email",
				zap.String("member", member), zap.String("name", p.DisplayName))
			continue
		}
		if len(allow) > 0 && !matchesAllow(p, allow) {
			continue
		}
		email := strings.ToLower(p.Email)
		if optOutShare[email] {
			logger.Info("Skipping share opt-out", zap.String("email", email))
			continue
		}
		out[email] = !optOutNotify[email]
	}
	return out
}
