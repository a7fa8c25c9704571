package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"stringlog/internal/modules/repertoire/domain"
	repertoireout "stringlog/internal/modules/repertoire/port/out"
	apperrors "stringlog/internal/platform/errors"
	"stringlog/internal/platform/sqlite"
)

type SQLiteSongRepository struct {
	db *sql.DB
}

func NewSQLiteSongRepository(ctx context.Context, db *sql.DB) (repertoireout.SongRepository, error) {
	repo := &SQLiteSongRepository{db: db}
	if err := repo.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteSongRepository) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS songs (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  artist TEXT NOT NULL DEFAULT '',
  album TEXT NOT NULL DEFAULT '',
  album_art TEXT NOT NULL DEFAULT '',
  spotify_id TEXT NOT NULL DEFAULT '',
  spotify_url TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL,
  total_practice_seconds INTEGER NOT NULL DEFAULT 0,
  difficulty INTEGER NOT NULL DEFAULT 0,
  notes TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL,
  last_practiced_at TEXT
);
`
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create songs table: %w", err)
	}
	return nil
}

const songColumns = `id, title, artist, album, album_art, spotify_id, spotify_url, status, total_practice_seconds, difficulty, notes, created_at, last_practiced_at`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *SQLiteSongRepository) Insert(ctx context.Context, song domain.Song) error {
	return insertSong(ctx, r.db, song)
}

func insertSong(ctx context.Context, db execer, song domain.Song) error {
	_, err := db.ExecContext(ctx, `INSERT INTO songs (`+songColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		song.ID,
		song.Title,
		song.Artist,
		song.Album,
		song.AlbumArt,
		song.SpotifyID,
		song.SpotifyURL,
		string(song.Status),
		song.TotalPracticeSec,
		song.Difficulty,
		song.Notes,
		sqlite.FormatTime(song.CreatedAt),
		sqlite.FormatOptionalTime(song.LastPracticedAt),
	)
	if err != nil {
		return fmt.Errorf("insert song: %w", err)
	}
	return nil
}

func (r *SQLiteSongRepository) Update(ctx context.Context, song domain.Song) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE songs SET title = ?, artist = ?, album = ?, album_art = ?, spotify_id = ?, spotify_url = ?, status = ?,
  total_practice_seconds = ?, difficulty = ?, notes = ?, last_practiced_at = ?
WHERE id = ?`,
		song.Title,
		song.Artist,
		song.Album,
		song.AlbumArt,
		song.SpotifyID,
		song.SpotifyURL,
		string(song.Status),
		song.TotalPracticeSec,
		song.Difficulty,
		song.Notes,
		sqlite.FormatOptionalTime(song.LastPracticedAt),
		song.ID,
	)
	if err != nil {
		return fmt.Errorf("update song: %w", err)
	}
	return requireRow(res, song.ID)
}

func (r *SQLiteSongRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM songs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete song: %w", err)
	}
	return requireRow(res, id)
}

func (r *SQLiteSongRepository) Get(ctx context.Context, id string) (domain.Song, error) {
	song, err := scanSong(r.db.QueryRowContext(ctx, `SELECT `+songColumns+` FROM songs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Song{}, fmt.Errorf("%w: song %s", apperrors.ErrNotFound, id)
	}
	return song, err
}

func (r *SQLiteSongRepository) List(ctx context.Context) ([]domain.Song, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+songColumns+` FROM songs`)
	if err != nil {
		return nil, fmt.Errorf("query songs: %w", err)
	}
	defer rows.Close()
	out := []domain.Song{}
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate songs: %w", err)
	}
	return out, nil
}

func (r *SQLiteSongRepository) ReplaceAll(ctx context.Context, songs []domain.Song) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace songs: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, `DELETE FROM songs`); err != nil {
		return fmt.Errorf("clear songs: %w", err)
	}
	for _, song := range songs {
		if err := insertSong(ctx, tx, song); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace songs: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSong(row scanner) (domain.Song, error) {
	var (
		song          domain.Song
		status        string
		createdAt     string
		lastPracticed sql.NullString
	)
	err := row.Scan(&song.ID, &song.Title, &song.Artist, &song.Album, &song.AlbumArt, &song.SpotifyID, &song.SpotifyURL,
		&status, &song.TotalPracticeSec, &song.Difficulty, &song.Notes, &createdAt, &lastPracticed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Song{}, err
		}
		return domain.Song{}, fmt.Errorf("scan song: %w", err)
	}
	song.Status = domain.Status(status)
	if song.CreatedAt, err = sqlite.ParseTime(createdAt); err != nil {
		return domain.Song{}, fmt.Errorf("%w: song %s: %v", apperrors.ErrDataIntegrity, song.ID, err)
	}
	if song.LastPracticedAt, err = sqlite.ParseOptionalTime(lastPracticed); err != nil {
		return domain.Song{}, fmt.Errorf("%w: song %s: %v", apperrors.ErrDataIntegrity, song.ID, err)
	}
	return song, nil
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: song %s", apperrors.ErrNotFound, id)
	}
	return nil
}
