package news

import (
	"encoding/json"
	"testing"
)

func TestTagsUnmarshal(t *testing.T) {
	tests := []struct {
		input string
		want  string
		list  bool
	}{
		{`"rust, dns"`, "rust, dns", false},
		{`["rust","dns"]`, "rust, dns", true},
		{`[]`, "", true},
		{`null`, "", false},
		{`""`, "", false},
	}
	for _, tt := range tests {
		var tags Tags
		if err := json.Unmarshal([]byte(tt.input), &tags); err != nil {
			t.Errorf("Unmarshal(%s): unexpected error: %v", tt.input, err)
			continue
		}
		if got := tags.String(); got != tt.want {
			t.Errorf("Unmarshal(%s).String() = %q, want %q", tt.input, got, tt.want)
		}
		if (tags.List != nil) != tt.list {
			t.Errorf("Unmarshal(%s): list shape = %v, want %v", tt.input, tags.List != nil, tt.list)
		}
	}
}

func TestTagsUnmarshalRejectsObject(t *testing.T) {
	var tags Tags
	if err := json.Unmarshal([]byte(`{"a":1}`), &tags); err == nil {
		t.Error("expected error for object tags")
	}
}

func TestTagsMarshalKeepsShape(t *testing.T) {
	b, err := json.Marshal(Article{Title: "x", Tags: Tags{List: []string{"a", "b"}}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if _, ok := raw["tags"].([]any); !ok {
		t.Errorf("expected tags to stay an array, got %T", raw["tags"])
	}
}

func TestArticleDecode(t *testing.T) {
	body := `{"id":7,"title":"T","category":"Sports","tags":["a"],"image_url":"https://img","url":"https://x"}`
	var a Article
	if err := json.Unmarshal([]byte(body), &a); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if a.ID != 7 || a.ImageURL != "https://img" || a.URL != "https://x" {
		t.Errorf("unexpected article: %+v", a)
	}
}

func TestFeedTerm(t *testing.T) {
	if got := (Preferences{}).FeedTerm(); got != "news" {
		t.Errorf("FeedTerm() with no interests = %q, want news", got)
	}
	p := Preferences{Interests: []string{"Sports", "Tech"}}
	if got := p.FeedTerm(); got != "Sports" {
		t.Errorf("FeedTerm() = %q, want Sports", got)
	}
	// A blank first interest is passed through as-is.
	p = Preferences{Interests: []string{""}}
	if got := p.FeedTerm(); got != "" {
		t.Errorf("FeedTerm() with blank interest = %q, want empty", got)
	}
}

func TestInteractionConfirmation(t *testing.T) {
	tests := map[InteractionType]string{
		Like:     "Liked! Interaction saved to database.",
		Bookmark: "Bookmarked! Interaction saved to database.",
		Share:    "Shared! Interaction saved to database.",
	}
	for typ, want := range tests {
		if got := typ.Confirmation(); got != want {
			t.Errorf("%s.Confirmation() = %q, want %q", typ, got, want)
		}
	}
}

func TestUserHelpers(t *testing.T) {
	u := User{Role: "admin", CreatedAt: "2025-06-15T10:00:00Z"}
	if !u.IsAdmin() {
		t.Error("expected admin")
	}
	if got := u.DisplayName("User"); got != "User" {
		t.Errorf("DisplayName fallback = %q", got)
	}
	if got := u.Joined(); got != "Jun 15, 2025" {
		t.Errorf("Joined() = %q", got)
	}
	if got := (User{CreatedAt: "yesterday"}).Joined(); got != "yesterday" {
		t.Errorf("Joined() raw fallback = %q", got)
	}
}
