package domain

// User is a read-only snapshot of a user directory entry. It is referenced
// by id from orders and never persisted locally.
type User struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
	Email     string
	Phone     string
}
