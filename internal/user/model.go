package user

// User represents a user in the system. IDs are UUIDs issued at creation.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// GroupSummary is a group a user belongs to, as returned by the
// user-centric groups listing
type GroupSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
