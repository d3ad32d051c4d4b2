package models

import "time"

// Post is a unit of content. The author column is nullable but carries an
// ON DELETE CASCADE action, so deleting a user removes their posts. The
// group reference is nulled out when the group is deleted and the post
// survives.
type Post struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`

	AuthorID *int  `json:"author_id"`
	Author   *User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`

	GroupID *int   `json:"group_id,omitempty"`
	Group   *Group `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL" json:"group,omitempty"`

	// Relative reference into the media store, empty when the post has no
	// image.
	Image string `json:"image,omitempty"`
}
