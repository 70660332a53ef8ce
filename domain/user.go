package domain

type User struct {
	ID            string
	Username      string
	Email         string
	Password      string
	Role          Role
	Bio           string
	ProfilePicURL string
	CreatedAt     int64
}

type Artist struct {
	ID              string
	UserID          string
	StageName       string
	Bio             string
	IsVerified      bool
	ProfileImageURL string
}
