package domain

import "time"

// TodoFilter narrows a listing by completion state.
type TodoFilter string

const (
	FilterAll       TodoFilter = "all"
	FilterPending   TodoFilter = "pending"
	FilterCompleted TodoFilter = "completed"
)

// Todo is the core aggregate. UserID is the owner reference and is immutable
// after creation; every repository query is filtered by it so one user can
// never observe another's todos.
type Todo struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"index;not null"`
	User        User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Title       string    `json:"title" gorm:"size:200;not null"`
	Description string    `json:"description" gorm:"size:1000"`
	IsDone      bool      `json:"is_done" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
