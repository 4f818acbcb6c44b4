package domain

// User is the demo shopper profile kept in the session store. There is no
// real credential check; the password never leaves the sign-up handler.
type User struct {
	ID    string `json:"id"`
	First string `json:"first"`
	Last  string `json:"last"`
	Email string `json:"email"`
}
