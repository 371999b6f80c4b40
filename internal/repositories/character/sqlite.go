package character

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/KirkDiggler/rpg-sheet/internal/entities/pf2e"
	"github.com/KirkDiggler/rpg-sheet/internal/errors"
	"github.com/KirkDiggler/rpg-sheet/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-sheet/internal/pkg/sqlitemigrate"
	"github.com/KirkDiggler/rpg-sheet/internal/repositories/character/migrations"
)

var _ Repository = (*SQLiteRepository)(nil)

// SQLiteRepository stores sheets in a single SQLite file
type SQLiteRepository struct {
	db    *sql.DB
	clock clock.Clock
}

// SQLiteConfig contains configuration for the SQLite character repository.
type SQLiteConfig struct {
	Path  string
	Clock clock.Clock
}

// Validate validates the SQLiteConfig.
func (cfg *SQLiteConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("path", cfg.Path, vb)
	return vb.Build()
}

// NewSQLite opens the database at cfg.Path and applies embedded migrations
func NewSQLite(ctx context.Context, cfg *SQLiteConfig) (*SQLiteRepository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	dsn := filepath.Clean(cfg.Path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open sqlite db")
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "failed to ping sqlite db")
	}
	if err := sqlitemigrate.Apply(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "failed to run migrations")
	}

	return &SQLiteRepository{db: db, clock: c}, nil
}

// Close closes the SQLite handle
func (r *SQLiteRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// Create implements Repository
func (r *SQLiteRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateRecord(input.Character); err != nil {
		return nil, err
	}

	data, err := encodeRecord(input.Character)
	if err != nil {
		return nil, err
	}

	now := toMillis(r.clock.Now())
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO character_sheets (id, player_id, name, data, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		input.Character.ID,
		input.Character.PlayerID,
		input.Character.Name,
		string(data),
		now,
		now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errors.AlreadyExistsf("character with ID %s already exists", input.Character.ID)
		}
		return nil, errors.Wrapf(err, "failed to create character")
	}

	return &CreateOutput{Character: input.Character}, nil
}

// Get implements Repository
func (r *SQLiteRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	var data string
	err := r.db.QueryRowContext(ctx, `SELECT data FROM character_sheets WHERE id = ?`, input.ID).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundf("character with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get character")
	}

	record, err := pf2e.DecodeSimpleCharacter([]byte(data))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode character %s", input.ID)
	}

	return &GetOutput{Character: record}, nil
}

// Update implements Repository
func (r *SQLiteRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateRecord(input.Character); err != nil {
		return nil, err
	}

	data, err := encodeRecord(input.Character)
	if err != nil {
		return nil, err
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE character_sheets SET player_id = ?, name = ?, data = ?, updated_at = ? WHERE id = ?`,
		input.Character.PlayerID,
		input.Character.Name,
		string(data),
		toMillis(r.clock.Now()),
		input.Character.ID,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update character")
	}
	if err := requireRow(result, input.Character.ID); err != nil {
		return nil, err
	}

	return &UpdateOutput{Character: input.Character}, nil
}

// Delete implements Repository
func (r *SQLiteRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM character_sheets WHERE id = ?`, input.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete character")
	}
	if err := requireRow(result, input.ID); err != nil {
		return nil, err
	}

	return &DeleteOutput{}, nil
}

// ListByPlayerID implements Repository
func (r *SQLiteRepository) ListByPlayerID(
	ctx context.Context,
	input ListByPlayerIDInput,
) (*ListByPlayerIDOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, data FROM character_sheets WHERE player_id = ? ORDER BY name, id`,
		input.PlayerID,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list characters")
	}
	defer func() { _ = rows.Close() }()

	characters := []*pf2e.SimpleCharacter{}
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, errors.Wrapf(err, "failed to scan character")
		}
		record, err := pf2e.DecodeSimpleCharacter([]byte(data))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to decode character %s", id)
		}
		characters = append(characters, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to list characters")
	}

	return &ListByPlayerIDOutput{Characters: characters}, nil
}

func requireRow(result sql.Result, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return errors.Wrapf(err, "failed to read affected rows")
	}
	if n == 0 {
		return errors.NotFoundf("character with ID %s not found", id)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
