package news

import "strings"

// SplitList turns a comma-separated field into its entries, trimming each
// one. Blank and duplicate entries are kept.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// JoinList is the inverse used to fill the edit fields.
func JoinList(items []string) string {
	return strings.Join(items, ", ")
}
