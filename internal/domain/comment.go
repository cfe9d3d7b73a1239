package domain

// Comment represents user feedback attached to one catalog entry.
// Comments live outside the entry itself so that removing or
// re-adding a tool never touches its discussion history.
type Comment struct {
	// ID is a short stable identifier, derived from the entry ID,
	// the author and the creation timestamp.
	ID string `json:"id"`

	// Author is the display name of the commenter.
	Author string `json:"author"`

	// Content is the comment body.
	Content string `json:"content"`

	// Rating ranks the tool on a 1-5 scale.
	Rating int `json:"rating"`

	// Timestamp is the RFC3339 UTC creation time.
	Timestamp string `json:"timestamp"`

	// Likes counts upvotes on this comment.
	Likes int `json:"likes"`
}

// NewComment builds a comment for an entry with a derived ID and
// clamped rating. The timestamp is fixed at creation.
func NewComment(entryID, author, content string, rating int) Comment {
	now := NowUTC()
	return Comment{
		ID:        ItemID(entryID, author, now),
		Author:    author,
		Content:   content,
		Rating:    ClampRating(rating),
		Timestamp: now,
		Likes:     0,
	}
}

// ClampRating forces a rating onto the 1-5 scale.
// Unlike prices there is no "not provided" default: an absent rating
// still counts as the lowest grade.
func ClampRating(r int) int {
	if r < PriceMin {
		return PriceMin
	}
	if r > PriceMax {
		return PriceMax
	}
	return r
}
