package models

import "time"

// Task is one to-do item owned by an Account.
type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
}

// TaskPatch carries a partial update; nil fields are left untouched.
type TaskPatch struct {
	Text      *string `json:"text,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	return p.Text == nil && p.Completed == nil
}

// Apply copies the set fields of p onto t.
func (p TaskPatch) Apply(t *Task) {
	if p.Text != nil {
		t.Text = *p.Text
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
}

type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // bcrypt hash, never serialized
	CreatedAt    time.Time `json:"createdAt"`
}

// Credentials is the body of the register and login requests.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
