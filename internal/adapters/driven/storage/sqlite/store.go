// Package sqlite persists the vector index as a directory artifact: a raw
// little-endian vector file alongside a SQLite metadata database. Vector
// files are generation-numbered and the database records which generation
// is current, so committing the metadata transaction is the single step
// that publishes a new index. Metadata rows are positionally aligned with
// vectors and cross-checked on load.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/edupath/edubot/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/edupath/edubot/internal/core/domain"
	"github.com/edupath/edubot/internal/core/ports/driven"
	"github.com/edupath/edubot/internal/vectorindex"
)

// Ensure Store implements the interface.
var _ driven.IndexStore = (*Store)(nil)

// File names inside the index directory. Each save writes a fresh
// generation-numbered vectors file; the metadata database records which
// generation is live.
const (
	vectorsFilePattern = "vectors-%06d.bin"
	vectorsFileGlob    = "vectors-*.bin"
	metadataFile       = "metadata.db"
)

// vectorsFileName returns the on-disk name for a vectors generation.
func vectorsFileName(gen int64) string {
	return fmt.Sprintf(vectorsFilePattern, gen)
}

// vectorsMagic guards against loading an unrelated binary file.
const vectorsMagic uint32 = 0x45425649 // "EBVI"

// Store persists a vector index under a single directory.
type Store struct {
	db  *sql.DB
	dir string
}

// NewStore opens (or creates) an index store at the given directory.
// If dir is empty, defaults to ~/.edubot/index.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, ".edubot", "index")
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dir, metadataFile)

	// WAL mode for better concurrency between the HTTP server and CLI.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening metadata database: %w", err)
	}

	s := &Store{
		db:  db,
		dir: dir,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	// Vectors files left behind by an interrupted save are unreferenced;
	// clear them so they cannot accumulate.
	s.pruneStaleVectors(context.Background())

	return s, nil
}

// migrate applies any pending SQL migrations from the embedded filesystem.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// Save persists the full index, replacing any previous artifact.
// The new vectors file lands under the next generation number first;
// a single transaction then swaps the metadata rows and points the
// recorded generation at it. Until that commit, readers keep seeing the
// previous index; if anything fails before it, the previous index is
// untouched and the new file is removed.
func (s *Store) Save(ctx context.Context, index *vectorindex.Index) error {
	if index == nil {
		return fmt.Errorf("%w: nil index", domain.ErrInvalidInput)
	}

	cur, hasCur, err := s.currentGeneration(ctx)
	if err != nil {
		return err
	}
	next := cur + 1

	newPath := filepath.Join(s.dir, vectorsFileName(next))
	entries := index.Entries()
	if err := s.writeVectors(newPath, entries, index.Dimension()); err != nil {
		os.Remove(newPath)
		return fmt.Errorf("writing vectors: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		os.Remove(newPath)
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM passages"); err != nil {
		os.Remove(newPath)
		return fmt.Errorf("clearing passages: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO passages (position, source_file, page, excerpt) VALUES (?, ?, ?, ?)")
	if err != nil {
		os.Remove(newPath)
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, entry := range entries {
		p := entry.Passage
		if _, err := stmt.ExecContext(ctx, i, p.SourceFile, p.Page, p.Excerpt); err != nil {
			os.Remove(newPath)
			return fmt.Errorf("inserting passage %d: %w", i, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO index_state (id, generation) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET generation = excluded.generation`,
		next,
	); err != nil {
		os.Remove(newPath)
		return fmt.Errorf("recording index generation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		os.Remove(newPath)
		return fmt.Errorf("committing index: %w", err)
	}

	// The old generation is unreferenced now; its removal is best-effort.
	if hasCur {
		os.Remove(filepath.Join(s.dir, vectorsFileName(cur)))
	}

	return nil
}

// currentGeneration reads the live vectors generation. The second return
// is false when no index has ever been saved.
func (s *Store) currentGeneration(ctx context.Context) (int64, bool, error) {
	var gen int64
	err := s.db.QueryRowContext(ctx,
		"SELECT generation FROM index_state WHERE id = 1").Scan(&gen)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("reading index generation: %w", err)
	}
	return gen, true, nil
}

// pruneStaleVectors removes vectors files that no generation references.
func (s *Store) pruneStaleVectors(ctx context.Context) {
	cur, hasCur, err := s.currentGeneration(ctx)
	if err != nil {
		return
	}

	matches, err := filepath.Glob(filepath.Join(s.dir, vectorsFileGlob))
	if err != nil {
		return
	}
	for _, path := range matches {
		if hasCur && filepath.Base(path) == vectorsFileName(cur) {
			continue
		}
		os.Remove(path)
	}
}

// writeVectors serializes the vector matrix to path.
// Layout: magic, count and dimension as uint32, then count*dim
// little-endian float32 values in row order.
func (s *Store) writeVectors(path string, entries []vectorindex.Entry, dim int) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	header := []uint32{vectorsMagic, uint32(len(entries)), uint32(dim)}
	for _, v := range header {
		if err := binary.Write(f, binary.LittleEndian, v); err != nil {
			f.Close()
			return err
		}
	}

	buf := make([]byte, 4)
	for _, entry := range entries {
		for _, v := range entry.Vector {
			binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
			if _, err := f.Write(buf); err != nil {
				f.Close()
				return err
			}
		}
	}

	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load restores the persisted index, reading the generation the
// metadata database points at.
func (s *Store) Load(ctx context.Context) (*vectorindex.Index, error) {
	gen, ok, err := s.currentGeneration(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: no index at %s", domain.ErrIndexNotFound, s.dir)
	}
	vecPath := filepath.Join(s.dir, vectorsFileName(gen))

	f, err := os.Open(vecPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: no index at %s", domain.ErrIndexNotFound, s.dir)
		}
		return nil, fmt.Errorf("opening vectors file: %w", err)
	}
	defer f.Close()

	var magic, count, dim uint32
	for _, p := range []*uint32{&magic, &count, &dim} {
		if err := binary.Read(f, binary.LittleEndian, p); err != nil {
			return nil, fmt.Errorf("reading vectors header: %w", err)
		}
	}
	if magic != vectorsMagic {
		return nil, fmt.Errorf("vectors file at %s has unrecognised format", vecPath)
	}

	vectors, err := readVectors(f, int(count), int(dim))
	if err != nil {
		return nil, fmt.Errorf("reading vectors: %w", err)
	}

	passages, err := s.loadPassages(ctx)
	if err != nil {
		return nil, err
	}

	if len(passages) != len(vectors) {
		return nil, fmt.Errorf("index at %s is inconsistent: %d vectors but %d metadata rows",
			s.dir, len(vectors), len(passages))
	}

	entries := make([]vectorindex.Entry, len(vectors))
	for i := range vectors {
		entries[i] = vectorindex.Entry{
			Vector:  vectors[i],
			Passage: passages[i],
		}
	}

	idx, err := vectorindex.Build(entries)
	if err != nil {
		return nil, fmt.Errorf("rebuilding index: %w", err)
	}
	return idx, nil
}

// readVectors reads count vectors of dim float32 values each.
func readVectors(r io.Reader, count, dim int) ([][]float32, error) {
	vectors := make([][]float32, count)
	buf := make([]byte, 4*dim)
	for i := range vectors {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("vector %d: %w", i, err)
		}
		vec := make([]float32, dim)
		for j := range vec {
			vec[j] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*j:]))
		}
		vectors[i] = vec
	}
	return vectors, nil
}

// loadPassages reads all passage metadata in position order.
func (s *Store) loadPassages(ctx context.Context) ([]domain.Passage, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT source_file, page, excerpt FROM passages ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("querying passages: %w", err)
	}
	defer rows.Close()

	var passages []domain.Passage
	for rows.Next() {
		var p domain.Passage
		if err := rows.Scan(&p.SourceFile, &p.Page, &p.Excerpt); err != nil {
			return nil, fmt.Errorf("scanning passage: %w", err)
		}
		passages = append(passages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating passages: %w", err)
	}
	return passages, nil
}

// Path returns the directory the index is persisted in.
func (s *Store) Path() string {
	return s.dir
}

// Close closes the metadata database.
func (s *Store) Close() error {
	return s.db.Close()
}
