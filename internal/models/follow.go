package models

// Follow is a directed edge from a follower to an author. The (user, author)
// pair is unique; deleting either side removes the edge.
type Follow struct {
	ID       int  `gorm:"primaryKey" json:"id"`
	UserID   int  `gorm:"uniqueIndex:idx_follow_user_author" json:"user_id"`
	AuthorID int  `gorm:"uniqueIndex:idx_follow_user_author" json:"author_id"`
	User     User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Author   User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
}
