package models

// Group is a named community posts can be published into. Groups are
// created by administrative tooling, never by ordinary users.
type Group struct {
	ID          int    `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Slug        string `gorm:"unique;not null" json:"slug"`
	Description string `json:"description"`
}
