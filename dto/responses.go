package dto

import "github.com/anashalam/music-app-backend/domain"

type AuthResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

type UserProfile struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	Bio           string `json:"bio,omitempty"`
	ProfilePicURL string `json:"profile_pic,omitempty"`
}

type ArtistProfileResponse struct {
	ID              string        `json:"id"`
	StageName       string        `json:"stage_name"`
	Bio             string        `json:"bio,omitempty"`
	IsVerified      bool          `json:"is_verified"`
	ProfileImageURL string        `json:"profile_image,omitempty"`
	Followers       int64         `json:"followers"`
	Songs           []domain.Song `json:"songs"`
}

type PlaylistResponse struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Songs []domain.Song `json:"songs"`
}

type SongDetailsResponse struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	FileURL      string      `json:"file_url"`
	ThumbnailURL string      `json:"thumbnail_url,omitempty"`
	Views        int64       `json:"views"`
	Ad           *AdResponse `json:"ad,omitempty"`
}

type AdResponse struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	AdImageURL string `json:"ad_image"`
	TargetURL  string `json:"target_url,omitempty"`
	AdType     string `json:"ad_type"`
}

type DashboardResponse struct {
	TotalUsers   int64 `json:"total_users"`
	TotalArtists int64 `json:"total_artists"`
	TotalSongs   int64 `json:"total_songs"`
	TotalViews   int64 `json:"total_views"`
}

func NewUserProfile(u *domain.User) UserProfile {
	return UserProfile{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		Role:          string(u.Role),
		Bio:           u.Bio,
		ProfilePicURL: u.ProfilePicURL,
	}
}
