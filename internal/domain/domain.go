package domain

// User is the identity record attached to sessions and chat envelopes.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// System is the sentinel sender for synthesized chat events. User id 0 is
// reserved: the users table starts its id sequence at 1, so no real account
// can collide with it.
var System = User{ID: 0, Name: "system", Email: "system"}

// Room is a named chat room. Membership lives in the members table, not here.
type Room struct {
	ID          int64  `json:"id"`
	OwnerID     int64  `json:"owner_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
