package export

import "regexp"

// mentionPattern matches Slack user mentions in message text, either the
// wire format <@U12345678> or a bare @U12345678.
var mentionPattern = regexp.MustCompile(`<@(U[A-Z0-9]+)>|@(U[A-Z0-9]+)`)

// ReplaceUserMentions rewrites user-ID mentions in message text as
// @DisplayName, preserving the mention context. IDs that fail to resolve
// are left as they were.
func ReplaceUserMentions(text string, resolve NameResolver) string {
	if text == "" || resolve == nil {
		return text
	}

	return mentionPattern.ReplaceAllStringFunc(text, func(match string) string {
		sub := mentionPattern.FindStringSubmatch(match)
		id := sub[1]
		if id == "" {
			id = sub[2]
		}
		if name, ok := resolve(id); ok && name != "" {
			return "@" + name
		}
		return match
	})
}
