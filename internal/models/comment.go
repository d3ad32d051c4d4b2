package models

import "time"

// Comment is attached feedback on a post. Deleting either the post or the
// comment author removes the comment.
type Comment struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`

	AuthorID int   `json:"author_id"`
	Author   *User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`

	PostID int   `json:"post_id"`
	Post   *Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}
