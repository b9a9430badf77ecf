package user

// User is the account record the backend creates on registration and returns
// on login. It is read-only on the client side.
type User struct {
	ID        int    `json:"id"`
	Nickname  string `json:"nickname"`
	CreatedAt string `json:"createdAt"`
}
