package models

import "time"

// BoardPostType categorizes classified-board posts.
type BoardPostType string

const (
	// BoardPostNeedNanny is a parent requesting childcare.
	BoardPostNeedNanny BoardPostType = "need_nanny"
	// BoardPostCanBabysit is a nanny offering childcare.
	BoardPostCanBabysit BoardPostType = "can_babysit"
	// BoardPostPlaydate proposes a playdate between families.
	BoardPostPlaydate BoardPostType = "playdate"
	// BoardPostAdvice asks the community for advice.
	BoardPostAdvice BoardPostType = "advice"
	// BoardPostOther is anything that fits no other category.
	BoardPostOther BoardPostType = "other"
)

// Valid reports whether the post type is one of the known values.
func (t BoardPostType) Valid() bool {
	switch t {
	case BoardPostNeedNanny, BoardPostCanBabysit, BoardPostPlaydate, BoardPostAdvice, BoardPostOther:
		return true
	}
	return false
}

// BoardPostStatus is the lifecycle state of a board post.
// active -> closed is terminal; closed posts cannot be reopened.
type BoardPostStatus string

const (
	// BoardPostActive accepts responses.
	BoardPostActive BoardPostStatus = "active"
	// BoardPostClosed no longer accepts responses.
	BoardPostClosed BoardPostStatus = "closed"
)

// BoardPost is a classified ad authored by one user.
// Selecting a responder forces the post closed.
type BoardPost struct {
	ID                  uint            `gorm:"primaryKey" json:"id"`
	AuthorID            uint            `gorm:"not null;index" json:"author_id"`
	Type                BoardPostType   `gorm:"type:varchar(20);not null;index" json:"type"`
	Description         string          `gorm:"type:text;not null" json:"description"`
	City                string          `gorm:"not null;index" json:"city"`
	District            string          `json:"district,omitempty"`
	DateFrom            *time.Time      `json:"date_from,omitempty"`
	DateUntil           *time.Time      `json:"date_until,omitempty"`
	Status              BoardPostStatus `gorm:"type:varchar(10);default:'active';index" json:"status"`
	ViewCount           int             `gorm:"default:0" json:"view_count"`
	SelectedResponderID *uint           `json:"selected_responder_id,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`

	// Relationships
	Author            User            `gorm:"foreignKey:AuthorID" json:"author"`
	Responses         []BoardResponse `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"responses"`
	SelectedResponder *User           `gorm:"foreignKey:SelectedResponderID" json:"selected_responder,omitempty"`

	// Saved is not persisted; annotated on bookmark listings.
	Saved bool `gorm:"-" json:"saved,omitempty"`
}

// TableName specifies the table name for GORM
func (BoardPost) TableName() string {
	return "board_posts"
}

// BoardResponse is one user's reply to a board post.
// A responder may reply at most once per post.
type BoardResponse struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	PostID      uint      `gorm:"not null;uniqueIndex:idx_post_responder" json:"post_id"`
	ResponderID uint      `gorm:"not null;uniqueIndex:idx_post_responder" json:"responder_id"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	Contacted   bool      `gorm:"default:false" json:"contacted"`
	CreatedAt   time.Time `json:"created_at"`

	// Relationships
	Responder User `gorm:"foreignKey:ResponderID" json:"responder"`
}

// TableName specifies the table name for GORM
func (BoardResponse) TableName() string {
	return "board_responses"
}

// SavedPost is a bookmark edge from a user to a board post, unique per pair.
type SavedPost struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_saved_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_saved_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Post BoardPost `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"post,omitempty"`
}

// TableName specifies the table name for GORM
func (SavedPost) TableName() string {
	return "saved_posts"
}
