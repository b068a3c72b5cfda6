package user

// User is an account record. Password is stored as given; no endpoint exposes
// users yet.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
}
