package dto

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ArtistRegisterRequest struct {
	StageName string `json:"stage_name"`
	Bio       string `json:"bio"`
}

type UpdateBioRequest struct {
	Bio string `json:"bio"`
}

type CreatePlaylistRequest struct {
	Name string `json:"name"`
}

type AddSongRequest struct {
	SongID string `json:"song_id"`
}

type AssignAdRequest struct {
	SongID string `json:"song_id"`
	AdID   string `json:"ad_id"`
}

type TrackRequest struct {
	UserID string `json:"user_id"`
	SongID string `json:"song_id"`
	Action string `json:"action"`
}
