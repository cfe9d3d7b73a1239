package domain

// Link types accepted for external resources. Anything else is
// coerced to LinkTypeOther.
const (
	LinkTypeYoutube  = "youtube"
	LinkTypeBlog     = "blog"
	LinkTypeTutorial = "tutorial"
	LinkTypeOther    = "other"
)

// ExternalLink represents an external resource (video, article,
// tutorial) attached to one catalog entry. Like comments, links are
// stored outside the entry itself.
type ExternalLink struct {
	// ID is a short stable identifier, derived from the entry ID,
	// the title and the creation timestamp.
	ID string `json:"id"`

	// Title is the display title of the resource.
	Title string `json:"title"`

	// URL points at the resource.
	URL string `json:"url"`

	// Type classifies the resource: youtube, blog, tutorial or other.
	Type string `json:"type"`

	// Description is an optional free-text note.
	Description string `json:"description"`

	// AddedAt is the RFC3339 UTC creation time.
	AddedAt string `json:"added_at"`

	// Rating ranks the resource; new links start unrated at 0.
	Rating int `json:"rating"`
}

// NewExternalLink builds a link for an entry with a derived ID and a
// coerced type. The timestamp is fixed at creation.
func NewExternalLink(entryID, title, url, linkType, description string) ExternalLink {
	now := NowUTC()
	return ExternalLink{
		ID:          ItemID(entryID, title, now),
		Title:       title,
		URL:         url,
		Type:        CoerceLinkType(linkType),
		Description: description,
		AddedAt:     now,
		Rating:      0,
	}
}

// CoerceLinkType maps arbitrary input onto the known link types.
func CoerceLinkType(t string) string {
	switch t {
	case LinkTypeYoutube, LinkTypeBlog, LinkTypeTutorial, LinkTypeOther:
		return t
	default:
		return LinkTypeOther
	}
}
