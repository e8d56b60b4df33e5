package domain

type User struct {
	ID    string `db:"id" json:"id"`
	Email string `db:"email" json:"email"`
	Name  string `db:"name" json:"name"`
	Hash  string `db:"password_hash" json:"-"`
	Role  string `db:"role" json:"role"` // USER | ADMIN
}

// Actor is the caller identity threaded explicitly through every core
// operation. Handlers build it from the session user; the core never reads
// ambient state to find out who is calling.
type Actor struct {
	UserID     string
	Privileged bool // owner/admin role
}

func ActorFor(u *User) Actor {
	if u == nil {
		return Actor{}
	}
	return Actor{UserID: u.ID, Privileged: u.Role == "ADMIN"}
}
