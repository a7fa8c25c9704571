package out

import (
	"context"
	"fmt"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"

	"stringlog/internal/modules/repertoire/domain"
	repertoireout "stringlog/internal/modules/repertoire/port/out"
	apperrors "stringlog/internal/platform/errors"
)

const searchLimit = 20

type SpotifyTrackSearcher struct {
	client *spotify.Client
}

// NewSpotifyTrackSearcher authenticates with the client-credentials flow.
// The token source caches the access token and refreshes it on expiry.
// Without credentials every search reports ErrSearchUnavailable.
func NewSpotifyTrackSearcher(clientID, clientSecret string) repertoireout.TrackSearcher {
	if clientID == "" || clientSecret == "" {
		return unconfiguredSearcher{}
	}
	cfg := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}
	return NewSpotifyTrackSearcherWithClient(spotify.New(cfg.Client(context.Background())))
}

func NewSpotifyTrackSearcherWithClient(client *spotify.Client) *SpotifyTrackSearcher {
	return &SpotifyTrackSearcher{client: client}
}

func (s *SpotifyTrackSearcher) Search(ctx context.Context, query string) ([]domain.Track, error) {
	result, err := s.client.Search(ctx, query, spotify.SearchTypeTrack, spotify.Limit(searchLimit))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: spotify search: %v", apperrors.ErrSearchUnavailable, err)
	}
	tracks := []domain.Track{}
	if result == nil || result.Tracks == nil {
		return tracks, nil
	}
	for _, t := range result.Tracks.Tracks {
		tracks = append(tracks, toTrack(t))
	}
	return tracks, nil
}

func toTrack(t spotify.FullTrack) domain.Track {
	track := domain.Track{
		ID:         string(t.ID),
		Name:       t.Name,
		Album:      t.Album.Name,
		PreviewURL: t.PreviewURL,
		SpotifyURL: t.ExternalURLs["spotify"],
	}
	if len(t.Artists) > 0 {
		track.Artist = t.Artists[0].Name
	}
	images := t.Album.Images
	if len(images) > 0 {
		track.AlbumArt = images[0].URL
		track.AlbumArtSmall = images[0].URL
	}
	if len(images) > 2 {
		track.AlbumArtSmall = images[2].URL
	}
	return track
}

type unconfiguredSearcher struct{}

func (unconfiguredSearcher) Search(context.Context, string) ([]domain.Track, error) {
	return nil, fmt.Errorf("%w: set SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET", apperrors.ErrSearchUnavailable)
}
