package repository

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/anashalam/music-app-backend/domain"
)

func setupTestDB(t *testing.T) *testFixture {
	t.Helper()

	db, err := NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	// The in-memory database exists per connection, so the pool must not
	// open a second one.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return newFixture(t, db)
}

// setupFileDB opens a file-backed database with a production-like pool, for
// behavior that only shows up across multiple connections.
func setupFileDB(t *testing.T) (*testFixture, *sql.DB) {
	t.Helper()

	db, err := NewDatabase(filepath.Join(t.TempDir(), "app.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	ConfigureDatabase(db, 25, 5)
	t.Cleanup(func() { db.Close() })

	if err := RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return newFixture(t, db), db
}

func newFixture(t *testing.T, db *sql.DB) *testFixture {
	return &testFixture{
		t:         t,
		users:     NewUserRepository(db),
		artists:   NewArtistRepository(db),
		media:     NewMediaRepository(db),
		playlists: NewPlaylistRepository(db),
		social:    NewSocialRepository(db),
		ads:       NewAdRepository(db),
		history:   NewHistoryRepository(db),
	}
}

type testFixture struct {
	t         *testing.T
	users     UserRepository
	artists   ArtistRepository
	media     MediaRepository
	playlists PlaylistRepository
	social    SocialRepository
	ads       AdRepository
	history   HistoryRepository
}

func (f *testFixture) createUser(id, username string) *domain.User {
	f.t.Helper()
	user := &domain.User{
		ID:        id,
		Username:  username,
		Email:     username + "@example.com",
		Password:  "hashed",
		Role:      domain.RoleUser,
		CreatedAt: time.Now().Unix(),
	}
	if err := f.users.Create(context.Background(), user); err != nil {
		f.t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

func (f *testFixture) createArtist(id, userID, stageName string) *domain.Artist {
	f.t.Helper()
	artist := &domain.Artist{ID: id, UserID: userID, StageName: stageName}
	if err := f.artists.CreateWithRolePromotion(context.Background(), artist); err != nil {
		f.t.Fatalf("failed to create artist %s: %v", stageName, err)
	}
	return artist
}

func (f *testFixture) createMedia(id, artistID, title string, views int64) *domain.Media {
	f.t.Helper()
	m := &domain.Media{
		ID:        id,
		ArtistID:  artistID,
		Title:     title,
		Genre:     "Rock",
		FileURL:   "/uploads/" + id + ".mp3",
		CreatedAt: time.Now().Unix(),
	}
	if err := f.media.Create(context.Background(), m); err != nil {
		f.t.Fatalf("failed to create media %s: %v", title, err)
	}
	for i := int64(0); i < views; i++ {
		if err := f.media.IncrementViews(context.Background(), id); err != nil {
			f.t.Fatalf("failed to increment views: %v", err)
		}
	}
	return m
}

func TestUserCreateDuplicateUsername(t *testing.T) {
	f := setupTestDB(t)
	f.createUser("u1", "alice")

	err := f.users.Create(context.Background(), &domain.User{
		ID: "u2", Username: "alice", Email: "other@example.com",
		Password: "hashed", Role: domain.RoleUser,
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestUserFindByIDNotFound(t *testing.T) {
	f := setupTestDB(t)
	if _, err := f.users.FindByID(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestArtistRegistrationPromotesRole(t *testing.T) {
	f := setupTestDB(t)
	user := f.createUser("u1", "alice")
	f.createArtist("a1", user.ID, "DJ Alice")

	got, err := f.users.FindByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if got.Role != domain.RoleArtist {
		t.Errorf("expected role artist after registration, got %s", got.Role)
	}
}

func TestArtistRegistrationIsExactlyOnce(t *testing.T) {
	f := setupTestDB(t)
	user := f.createUser("u1", "alice")
	f.createArtist("a1", user.ID, "DJ Alice")

	err := f.artists.CreateWithRolePromotion(context.Background(), &domain.Artist{
		ID: "a2", UserID: user.ID, StageName: "Second Try",
	})
	if !errors.Is(err, domain.ErrAlreadyArtist) {
		t.Errorf("expected ErrAlreadyArtist, got %v", err)
	}
}

func TestIncrementViewsAccumulates(t *testing.T) {
	f := setupTestDB(t)
	user := f.createUser("u1", "alice")
	artist := f.createArtist("a1", user.ID, "DJ Alice")
	f.createMedia("m1", artist.ID, "Track One", 0)

	for i := 0; i < 5; i++ {
		if err := f.media.IncrementViews(context.Background(), "m1"); err != nil {
			t.Fatalf("IncrementViews returned error: %v", err)
		}
	}

	details, err := f.media.Details(context.Background(), "m1")
	if err != nil {
		t.Fatalf("Details returned error: %v", err)
	}
	if details.Views != 5 {
		t.Errorf("expected 5 views, got %d", details.Views)
	}
}

func TestIncrementViewsMissingSong(t *testing.T) {
	f := setupTestDB(t)
	if err := f.media.IncrementViews(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTrendingOrderAndLimit(t *testing.T) {
	f := setupTestDB(t)
	user := f.createUser("u1", "alice")
	artist := f.createArtist("a1", user.ID, "DJ Alice")
	f.createMedia("m1", artist.ID, "Low", 1)
	f.createMedia("m2", artist.ID, "High", 9)
	f.createMedia("m3", artist.ID, "Mid", 5)

	songs, err := f.media.Trending(context.Background(), 2)
	if err != nil {
		t.Fatalf("Trending returned error: %v", err)
	}
	if len(songs) != 2 {
		t.Fatalf("expected 2 songs, got %d", len(songs))
	}
	if songs[0].ID != "m2" || songs[1].ID != "m3" {
		t.Errorf("unexpected trending order: %s, %s", songs[0].ID, songs[1].ID)
	}
}

func TestSearchMatchesTitleGenreAndArtist(t *testing.T) {
	f := setupTestDB(t)
	user := f.createUser("u1", "alice")
	artist := f.createArtist("a1", user.ID, "DJ Alice")
	f.createMedia("m1", artist.ID, "Summer Nights", 0)

	for _, q := range []string{"summer", "ROCK", "dj ali"} {
		songs, err := f.media.Search(context.Background(), q)
		if err != nil {
			t.Fatalf("Search(%q) returned error: %v", q, err)
		}
		if len(songs) != 1 {
			t.Errorf("Search(%q): expected 1 song, got %d", q, len(songs))
		}
	}

	songs, err := f.media.Search(context.Background(), "nomatch")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(songs) != 0 {
		t.Errorf("expected no results, got %d", len(songs))
	}
}

func TestFindOwnershipWalksToUser(t *testing.T) {
	f := setupTestDB(t)
	user := f.createUser("u1", "alice")
	artist := f.createArtist("a1", user.ID, "DJ Alice")
	f.createMedia("m1", artist.ID, "Track One", 0)

	ownership, err := f.media.FindOwnership(context.Background(), "m1")
	if err != nil {
		t.Fatalf("FindOwnership returned error: %v", err)
	}
	if ownership.OwnerUserID != user.ID {
		t.Errorf("expected owner %s, got %s", user.ID, ownership.OwnerUserID)
	}
	if ownership.FileURL != "/uploads/m1.mp3" {
		t.Errorf("unexpected file url: %s", ownership.FileURL)
	}
}

func TestPlaylistOwnerScoping(t *testing.T) {
	f := setupTestDB(t)
	owner := f.createUser("u1", "alice")
	other := f.createUser("u2", "bob")

	p := &domain.Playlist{ID: "p1", UserID: owner.ID, Name: "Mine"}
	if err := f.playlists.Create(context.Background(), p); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if _, err := f.playlists.FindOwned(context.Background(), "p1", owner.ID); err != nil {
		t.Errorf("owner lookup failed: %v", err)
	}
	if _, err := f.playlists.FindOwned(context.Background(), "p1", other.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for non-owner, got %v", err)
	}
	if err := f.playlists.Delete(context.Background(), "p1", other.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting as non-owner, got %v", err)
	}
}

func TestPlaylistAddSongDuplicate(t *testing.T) {
	f := setupTestDB(t)
	user := f.createUser("u1", "alice")
	artist := f.createArtist("a1", user.ID, "DJ Alice")
	f.createMedia("m1", artist.ID, "Track One", 0)

	p := &domain.Playlist{ID: "p1", UserID: user.ID, Name: "Mine"}
	if err := f.playlists.Create(context.Background(), p); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := f.playlists.AddSong(context.Background(), "p1", "m1"); err != nil {
		t.Fatalf("AddSong returned error: %v", err)
	}
	if err := f.playlists.AddSong(context.Background(), "p1", "m1"); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected ErrConflict on duplicate, got %v", err)
	}
}

func TestPlaylistRemoveMissingSong(t *testing.T) {
	f := setupTestDB(t)
	user := f.createUser("u1", "alice")

	p := &domain.Playlist{ID: "p1", UserID: user.ID, Name: "Mine"}
	if err := f.playlists.Create(context.Background(), p); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := f.playlists.RemoveSong(context.Background(), "p1", "absent"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFollowDuplicateAndUnfollowNoop(t *testing.T) {
	f := setupTestDB(t)
	fan := f.createUser("u1", "fan")
	owner := f.createUser("u2", "alice")
	artist := f.createArtist("a1", owner.ID, "DJ Alice")

	follow := &domain.Follower{ID: "f1", UserID: fan.ID, ArtistID: artist.ID}
	if err := f.social.Follow(context.Background(), follow); err != nil {
		t.Fatalf("Follow returned error: %v", err)
	}

	dup := &domain.Follower{ID: "f2", UserID: fan.ID, ArtistID: artist.ID}
	if err := f.social.Follow(context.Background(), dup); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected ErrConflict on duplicate follow, got %v", err)
	}

	if err := f.social.Unfollow(context.Background(), fan.ID, artist.ID); err != nil {
		t.Fatalf("Unfollow returned error: %v", err)
	}
	// Removing again is still fine.
	if err := f.social.Unfollow(context.Background(), fan.ID, artist.ID); err != nil {
		t.Errorf("expected unfollow to be a no-op, got %v", err)
	}

	n, err := f.social.FollowerCount(context.Background(), artist.ID)
	if err != nil {
		t.Fatalf("FollowerCount returned error: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 followers, got %d", n)
	}
}

func TestLikeDuplicateAndLikedSongs(t *testing.T) {
	f := setupTestDB(t)
	fan := f.createUser("u1", "fan")
	owner := f.createUser("u2", "alice")
	artist := f.createArtist("a1", owner.ID, "DJ Alice")
	f.createMedia("m1", artist.ID, "Track One", 0)

	if err := f.social.Like(context.Background(), &domain.Like{ID: "l1", UserID: fan.ID, SongID: "m1"}); err != nil {
		t.Fatalf("Like returned error: %v", err)
	}
	if err := f.social.Like(context.Background(), &domain.Like{ID: "l2", UserID: fan.ID, SongID: "m1"}); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected ErrConflict on duplicate like, got %v", err)
	}

	songs, err := f.social.LikedSongs(context.Background(), fan.ID)
	if err != nil {
		t.Fatalf("LikedSongs returned error: %v", err)
	}
	if len(songs) != 1 || songs[0].ID != "m1" {
		t.Errorf("unexpected liked songs: %+v", songs)
	}
	if songs[0].ArtistName != "DJ Alice" {
		t.Errorf("expected joined artist name, got %q", songs[0].ArtistName)
	}
}

func TestMediaDeleteCascadesPlaylistEntries(t *testing.T) {
	f := setupTestDB(t)
	user := f.createUser("u1", "alice")
	artist := f.createArtist("a1", user.ID, "DJ Alice")
	f.createMedia("m1", artist.ID, "Track One", 0)

	p := &domain.Playlist{ID: "p1", UserID: user.ID, Name: "Mine"}
	if err := f.playlists.Create(context.Background(), p); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := f.playlists.AddSong(context.Background(), "p1", "m1"); err != nil {
		t.Fatalf("AddSong returned error: %v", err)
	}

	if err := f.media.Delete(context.Background(), "m1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	songs, err := f.playlists.Songs(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Songs returned error: %v", err)
	}
	if len(songs) != 0 {
		t.Errorf("expected playlist entry removed with song, got %d entries", len(songs))
	}
}

func TestIncrementViewsConcurrent(t *testing.T) {
	f, _ := setupFileDB(t)
	user := f.createUser("u1", "alice")
	artist := f.createArtist("a1", user.ID, "DJ Alice")
	f.createMedia("m1", artist.ID, "Track One", 0)

	const plays = 25
	var wg sync.WaitGroup
	errs := make(chan error, plays)
	for i := 0; i < plays; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- f.media.IncrementViews(context.Background(), "m1")
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("IncrementViews returned error: %v", err)
		}
	}

	details, err := f.media.Details(context.Background(), "m1")
	if err != nil {
		t.Fatalf("Details returned error: %v", err)
	}
	if details.Views != plays {
		t.Errorf("expected %d views, got %d", plays, details.Views)
	}
}

func TestForeignKeysEnforcedAcrossPool(t *testing.T) {
	f, db := setupFileDB(t)
	user := f.createUser("u1", "alice")
	artist := f.createArtist("a1", user.ID, "DJ Alice")
	f.createMedia("m1", artist.ID, "Track One", 0)

	p := &domain.Playlist{ID: "p1", UserID: user.ID, Name: "Mine"}
	if err := f.playlists.Create(context.Background(), p); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := f.playlists.AddSong(context.Background(), "p1", "m1"); err != nil {
		t.Fatalf("AddSong returned error: %v", err)
	}

	// Pin a few connections so the delete below runs on a fresh one.
	var held []*sql.Conn
	for i := 0; i < 5; i++ {
		conn, err := db.Conn(context.Background())
		if err != nil {
			t.Fatalf("failed to grab connection: %v", err)
		}
		held = append(held, conn)
	}
	defer func() {
		for _, conn := range held {
			conn.Close()
		}
	}()

	if err := f.media.Delete(context.Background(), "m1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	var dangling int
	if err := db.QueryRow(`SELECT COUNT(*) FROM playlist_songs WHERE song_id = 'm1'`).Scan(&dangling); err != nil {
		t.Fatalf("count query returned error: %v", err)
	}
	if dangling != 0 {
		t.Errorf("expected cascade to remove playlist entries, %d left", dangling)
	}

	// Referential checks hold on fresh connections too.
	err := f.media.Create(context.Background(), &domain.Media{
		ID: "m2", ArtistID: "no-such-artist", Title: "Orphan",
		FileURL: "/uploads/m2.mp3", CreatedAt: time.Now().Unix(),
	})
	if err == nil {
		t.Error("expected foreign key violation for unknown artist")
	}
}

func TestRollbackMigrationRevertsSchema(t *testing.T) {
	db, err := NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	if err := RollbackMigration(db); err != nil {
		t.Fatalf("RollbackMigration returned error: %v", err)
	}

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n); err == nil {
		t.Error("users table should be gone after rollback")
	}

	// Rolling back an empty database is a no-op.
	if err := RollbackMigration(db); err != nil {
		t.Errorf("rollback with nothing applied should succeed, got %v", err)
	}

	// The migration applies cleanly again.
	if err := RunMigrations(db); err != nil {
		t.Fatalf("failed to re-run migrations: %v", err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		t.Errorf("users table should exist after re-applying: %v", err)
	}
}

func TestAdAssignment(t *testing.T) {
	f := setupTestDB(t)
	user := f.createUser("u1", "alice")
	artist := f.createArtist("a1", user.ID, "DJ Alice")
	f.createMedia("m1", artist.ID, "Track One", 0)

	ad := &domain.Ad{ID: "ad1", Title: "Banner", AdImageURL: "/uploads/ad1.png", AdType: "BANNER"}
	if err := f.ads.Create(context.Background(), ad); err != nil {
		t.Fatalf("Create ad returned error: %v", err)
	}
	if err := f.media.AssignAd(context.Background(), "m1", "ad1"); err != nil {
		t.Fatalf("AssignAd returned error: %v", err)
	}

	details, err := f.media.Details(context.Background(), "m1")
	if err != nil {
		t.Fatalf("Details returned error: %v", err)
	}
	if details.Ad == nil || details.Ad.ID != "ad1" {
		t.Errorf("expected ad ad1 on song details, got %+v", details.Ad)
	}
}

func TestHistoryRecordDefaultsAction(t *testing.T) {
	f := setupTestDB(t)
	fan := f.createUser("u1", "fan")
	owner := f.createUser("u2", "alice")
	artist := f.createArtist("a1", owner.ID, "DJ Alice")
	f.createMedia("m1", artist.ID, "Track One", 0)

	err := f.history.Record(context.Background(), &domain.HistoryEntry{UserID: fan.ID, SongID: "m1"})
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
}
