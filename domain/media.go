package domain

type Media struct {
	ID           string
	ArtistID     string
	Title        string
	Genre        string
	FileURL      string
	ThumbnailURL string
	Views        int64
	AdID         string
	CreatedAt    int64
}

// Song is the catalog projection joined with the owning artist's stage name.
type Song struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	FileURL      string `json:"file_url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Genre        string `json:"genre"`
	ArtistID     string `json:"artist_id,omitempty"`
	ArtistName   string `json:"artist_name"`
	Views        int64  `json:"views"`
}

type Ad struct {
	ID         string
	Title      string
	AdImageURL string
	TargetURL  string
	AdType     string
}
