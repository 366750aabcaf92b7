package news

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// RoleAdmin is the only role the client distinguishes.
const RoleAdmin = "admin"

type User struct {
	ID        int64  `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// IsAdmin reports whether the user carries the admin role. It is a display
// hint only; the server decides what a token may do.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// DisplayName returns the name shown in headers, or fallback when unset.
func (u User) DisplayName(fallback string) string {
	if u.Name == "" {
		return fallback
	}
	return u.Name
}

// Joined formats CreatedAt as a short date, falling back to the raw value.
func (u User) Joined() string {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, u.CreatedAt); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return u.CreatedAt
}

// Tags holds an article's tags in whichever shape the server sent them.
type Tags struct {
	Text string
	List []string
}

// String renders tags for display and editing: lists are joined with ", ".
func (t Tags) String() string {
	if t.List != nil {
		return strings.Join(t.List, ", ")
	}
	return t.Text
}

func (t Tags) MarshalJSON() ([]byte, error) {
	if t.List != nil {
		return json.Marshal(t.List)
	}
	return json.Marshal(t.Text)
}

func (t *Tags) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*t = Tags{}
		return nil
	case len(data) > 0 && data[0] == '[':
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("tags: %w", err)
		}
		*t = Tags{List: list}
		return nil
	default:
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("tags: expected string or array: %w", err)
		}
		*t = Tags{Text: s}
		return nil
	}
}

type Article struct {
	ID          int64  `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Category    string `json:"category"`
	Tags        Tags   `json:"tags"`
	Source      string `json:"source"`
	Author      string `json:"author"`
	ImageURL    string `json:"image_url"`
	URL         string `json:"url,omitempty"`
}

type Preferences struct {
	Interests        []string `json:"interests"`
	PreferredSources []string `json:"preferred_sources"`
}

// FeedTerm is the search term used by the "For You" category.
func (p Preferences) FeedTerm() string {
	if len(p.Interests) > 0 {
		return p.Interests[0]
	}
	return DefaultFeedTerm
}

type Stats struct {
	TotalUsers    int64 `json:"total_users"`
	TotalArticles int64 `json:"total_articles"`
	TotalReads    int64 `json:"total_reads"`
}

// AuthResponse is the body returned by a successful login.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
