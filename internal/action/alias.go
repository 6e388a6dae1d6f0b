package action

import "strings"

// AliasTable resolves raw fence language tokens to canonical identifiers.
// Lookup is case-insensitive. Tokens missing from the table still resolve
// to themselves when they look like an interpreter name (lowercase
// letters, digits, '-', '+'), matching the naming convention delegates
// key on.
type AliasTable struct {
	m map[string]string
}

// DefaultAliases is the stock mapping merged under any user-supplied one.
var DefaultAliases = map[string]string{
	"js":       "javascript",
	"ts":       "typescript",
	"py":       "python",
	"rb":       "ruby",
	"golang":   "go",
	"shell":    "bash",
	"zsh":      "bash",
	"objc":     "objective-c",
	"md":       "markdown",
	"yml":      "yaml",
	"pl":       "perl",
	"graphviz": "dot",
}

// NewAliasTable builds a table from user aliases layered over the
// defaults. Keys and values are lowercased.
func NewAliasTable(user map[string]string) *AliasTable {
	t := &AliasTable{m: make(map[string]string, len(DefaultAliases)+len(user))}
	for k, v := range DefaultAliases {
		t.m[strings.ToLower(k)] = strings.ToLower(v)
	}
	for k, v := range user {
		t.m[strings.ToLower(k)] = strings.ToLower(v)
	}
	return t
}

// Resolve maps raw to a canonical identifier. ok=false means the token is
// neither aliased nor shaped like a known identifier.
func (t *AliasTable) Resolve(raw string) (string, bool) {
	token := strings.ToLower(strings.TrimSpace(raw))
	if token == "" {
		return "", false
	}
	if canonical, ok := t.m[token]; ok {
		return canonical, true
	}
	if validIdentifier(token) {
		return token, true
	}
	return "", false
}

func validIdentifier(token string) bool {
	if token[0] < 'a' || token[0] > 'z' {
		return false
	}
	for i := 0; i < len(token); i++ {
		b := token[i]
		if b >= 'a' && b <= 'z' || b >= '0' && b <= '9' || b == '-' || b == '+' {
			continue
		}
		return false
	}
	return true
}
