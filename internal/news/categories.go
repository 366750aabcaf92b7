package news

const (
	CategoryForYou = "For You"
	CategoryAll    = "All"

	// DefaultFeedTerm is searched by "For You" when no interests are saved.
	DefaultFeedTerm = "news"

	// DefaultArticleCategory preselects the admin form.
	DefaultArticleCategory = "Technology"
)

// ReaderCategories are the feed tabs, in display order.
var ReaderCategories = []string{
	CategoryForYou, CategoryAll,
	"Technology", "Health", "Business", "Science", "Environment",
	"Politics", "Sports", "Cricket", "Entertainment",
}

// ArticleCategories are the categories an admin can assign.
var ArticleCategories = []string{
	"Technology", "Health", "Business", "Science",
	"Environment", "Politics", "Sports", "Entertainment",
}

type InteractionType string

const (
	Like     InteractionType = "like"
	Bookmark InteractionType = "bookmark"
	Share    InteractionType = "share"
)

// Confirmation is shown after the server records the interaction.
func (t InteractionType) Confirmation() string {
	var verb string
	switch t {
	case Like:
		verb = "Liked!"
	case Bookmark:
		verb = "Bookmarked!"
	case Share:
		verb = "Shared!"
	default:
		verb = string(t)
	}
	return verb + " Interaction saved to database."
}

type Interaction struct {
	ArticleID int64           `json:"article_id"`
	Type      InteractionType `json:"type"`
}
