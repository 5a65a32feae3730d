package domain

import (
	"fmt"
	"strings"
)

// UserID identifies one of the two users of the board.
type UserID string

const (
	User1 UserID = "user1"
	User2 UserID = "user2"
)

// AllUsers returns both user ids in display order.
func AllUsers() []UserID {
	return []UserID{User1, User2}
}

// ParseUserID converts raw input into a UserID. Surrounding whitespace is ignored.
func ParseUserID(s string) (UserID, error) {
	id := UserID(strings.TrimSpace(s))
	if !id.IsValid() {
		return "", fmt.Errorf("invalid user id %q: must be %s or %s", s, User1, User2)
	}
	return id, nil
}

// IsValid reports whether the id is user1 or user2.
func (u UserID) IsValid() bool {
	return u == User1 || u == User2
}

// Other returns the opposite user.
func (u UserID) Other() UserID {
	if u == User1 {
		return User2
	}
	return User1
}

func (u UserID) String() string {
	return string(u)
}

// User is a display label attached to a UserID.
type User struct {
	ID   UserID
	Name string
}

// DisplayName falls back to the id when no name is set.
func (u User) DisplayName() string {
	if strings.TrimSpace(u.Name) == "" {
		return string(u.ID)
	}
	return u.Name
}
