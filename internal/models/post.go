package models

import (
	"time"
)

type Post struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	Text    string    `gorm:"type:text;not null" json:"text"`
	PubDate time.Time `gorm:"autoCreateTime;index" json:"pub_date"` // set at creation, never updated
	UserID  uint      `gorm:"not null;index" json:"user_id"`
	User    User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	// Nullable on purpose: deleting a group clears the reference, the post survives.
	GroupID *uint  `gorm:"index" json:"group_id"`
	Group   *Group `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"group"`
}

// Preview returns a short listing excerpt of the post body.
func (p *Post) Preview() string {
	runes := []rune(p.Text)
	if len(runes) <= 15 {
		return p.Text
	}
	return string(runes[:15]) + "..."
}
