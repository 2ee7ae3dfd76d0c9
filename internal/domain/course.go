package domain

import "time"

type Course struct {
	ID        int64
	ShortName string
	FullName  string
}

// DisplayName is the "full - short" form used in notifications.
func (c Course) DisplayName() string {
	if c.ShortName == "" {
		return c.FullName
	}
	return c.FullName + " - " + c.ShortName
}

type User struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
	Email     string
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

type RoleAssignment struct {
	CourseID int64
	UserID   int64
	Role     RoleName
}

type Group struct {
	ID       int64
	CourseID int64
	Name     string
}

type GroupMember struct {
	GroupID int64
	UserID  int64
}

type Grouping struct {
	ID       int64
	CourseID int64
	Name     string
	GroupIDs []int64
}

// NotificationRecord is the audit entry written for every dispatched action.
type NotificationRecord struct {
	ID          string
	CourseID    int64
	StudentID   int64
	SenderID    int64
	RecipientID int64
	Signal      ActionSignal
	Subject     string
	CreatedAt   time.Time
}
