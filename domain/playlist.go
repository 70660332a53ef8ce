package domain

type Playlist struct {
	ID     string
	UserID string
	Name   string
}

type Follower struct {
	ID       string
	UserID   string
	ArtistID string
}

type Like struct {
	ID     string
	UserID string
	SongID string
}

type HistoryEntry struct {
	UserID     string
	SongID     string
	ActionType string
}
