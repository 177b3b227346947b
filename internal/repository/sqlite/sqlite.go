package sqlite

import (
	"context"
	"database/sql"
	"time"

	"c4model/internal/domain"
	"c4model/internal/repository"

	"github.com/cockroachdb/errors"
	_ "modernc.org/sqlite"
)

// Repository implements repository.Repository using SQLite
type Repository struct {
	db *sql.DB
}

var _ repository.Repository = (*Repository)(nil)

// New creates a new SQLite repository
func New(dbPath string) (*Repository, error) {
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to migrate database")
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS workspaces (
		name TEXT PRIMARY KEY,
		description TEXT,
		version TEXT NOT NULL DEFAULT '1',
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS elements (
		workspace TEXT NOT NULL,
		key TEXT NOT NULL,
		alias TEXT NOT NULL,
		qualifier TEXT NOT NULL DEFAULT '',
		kind TEXT NOT NULL,
		label TEXT NOT NULL DEFAULT '',
		description TEXT,
		boundary TEXT,
		tags JSON,
		container_type TEXT,
		technology TEXT,
		PRIMARY KEY (workspace, key),
		FOREIGN KEY (workspace) REFERENCES workspaces(name) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS relationships (
		workspace TEXT NOT NULL,
		id TEXT NOT NULL,
		from_key TEXT NOT NULL,
		to_key TEXT NOT NULL,
		label TEXT NOT NULL DEFAULT '',
		technology TEXT,
		direction TEXT,
		tags JSON,
		PRIMARY KEY (workspace, id),
		FOREIGN KEY (workspace) REFERENCES workspaces(name) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_elements_alias ON elements(workspace, alias);
	CREATE INDEX IF NOT EXISTS idx_relationships_from ON relationships(workspace, from_key);
	CREATE INDEX IF NOT EXISTS idx_relationships_to ON relationships(workspace, to_key);
	`

	_, err := r.db.Exec(schema)
	return err
}

// SaveWorkspace replaces the stored content of a workspace
func (r *Repository) SaveWorkspace(ctx context.Context, ws *domain.Workspace) error {
	snap := ws.Snapshot()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO workspaces (name, description, version, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			description = excluded.description,
			version = excluded.version,
			updated_at = excluded.updated_at
	`, snap.Name, stringToNull(snap.Description), snap.Version, time.Now().UTC()); err != nil {
		return errors.Wrapf(err, "failed to upsert workspace %s", snap.Name)
	}

	// Clear existing content (replace-all semantics)
	if _, err := tx.ExecContext(ctx, `DELETE FROM relationships WHERE workspace = ?`, snap.Name); err != nil {
		return errors.Wrap(err, "failed to clear relationships")
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM elements WHERE workspace = ?`, snap.Name); err != nil {
		return errors.Wrap(err, "failed to clear elements")
	}

	elemStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO elements (`+elementColumns+`, workspace)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return errors.Wrap(err, "failed to prepare element statement")
	}
	defer elemStmt.Close()

	for _, rec := range snap.Elements {
		args, err := elementInsertArgs(rec)
		if err != nil {
			return errors.Wrapf(err, "failed to encode element %s", rec.Key)
		}
		if _, err := elemStmt.ExecContext(ctx, append(args, snap.Name)...); err != nil {
			return errors.Wrapf(err, "failed to insert element %s", rec.Key)
		}
	}

	relStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO relationships (`+relationshipColumns+`, workspace)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return errors.Wrap(err, "failed to prepare relationship statement")
	}
	defer relStmt.Close()

	for _, rel := range snap.Relationships {
		args, err := relationshipInsertArgs(rel)
		if err != nil {
			return errors.Wrapf(err, "failed to encode relationship %s", rel.ID)
		}
		if _, err := relStmt.ExecContext(ctx, append(args, snap.Name)...); err != nil {
			return errors.Wrapf(err, "failed to insert relationship %s", rel.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}

	return nil
}

// LoadWorkspace loads a workspace by name
func (r *Repository) LoadWorkspace(ctx context.Context, name string) (*domain.Workspace, error) {
	snap := &domain.Snapshot{Name: name}

	var description sql.NullString
	err := r.db.QueryRowContext(ctx, `
		SELECT description, version FROM workspaces WHERE name = ?
	`, name).Scan(&description, &snap.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(repository.ErrWorkspaceNotFound, "%q", name)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to query workspace")
	}
	snap.Description = nullToString(description)

	snap.Elements, err = r.queryElements(ctx, `WHERE workspace = ? ORDER BY key`, name)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+relationshipColumns+` FROM relationships WHERE workspace = ? ORDER BY id
	`, name)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query relationships")
	}
	defer rows.Close()

	for rows.Next() {
		var row relationshipRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, errors.Wrap(err, "failed to scan relationship")
		}
		rel, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		snap.Relationships = append(snap.Relationships, rel)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error iterating relationships")
	}

	ws, err := domain.RestoreWorkspace(snap)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to restore workspace %s", name)
	}
	return ws, nil
}

// ListWorkspaces returns a summary of every stored workspace
func (r *Repository) ListWorkspaces(ctx context.Context) ([]repository.WorkspaceInfo, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT w.name, w.description, w.version, w.updated_at,
			(SELECT COUNT(*) FROM elements e WHERE e.workspace = w.name),
			(SELECT COUNT(*) FROM relationships rel WHERE rel.workspace = w.name)
		FROM workspaces w
		ORDER BY w.name
	`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query workspaces")
	}
	defer rows.Close()

	infos := make([]repository.WorkspaceInfo, 0)
	for rows.Next() {
		var (
			info        repository.WorkspaceInfo
			description sql.NullString
		)
		if err := rows.Scan(&info.Name, &description, &info.Version, &info.UpdatedAt, &info.Elements, &info.Relationships); err != nil {
			return nil, errors.Wrap(err, "failed to scan workspace")
		}
		info.Description = nullToString(description)
		infos = append(infos, info)
	}

	return infos, rows.Err()
}

// GetElement returns a stored element, or nil if it does not exist
func (r *Repository) GetElement(ctx context.Context, workspace, key string) (*domain.ElementRecord, error) {
	recs, err := r.queryElements(ctx, `WHERE workspace = ? AND key = ?`, workspace, key)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}

// ListInstances returns the stored instances interned directly from the element key
func (r *Repository) ListInstances(ctx context.Context, workspace, key string) ([]domain.ElementRecord, error) {
	return r.queryElements(ctx, `WHERE workspace = ? AND alias = ? AND qualifier != '' ORDER BY key`, workspace, key)
}

// DeleteWorkspace removes a workspace and, by cascade, its content
func (r *Repository) DeleteWorkspace(ctx context.Context, name string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM workspaces WHERE name = ?`, name)
	if err != nil {
		return errors.Wrapf(err, "failed to delete workspace %s", name)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return errors.Wrapf(repository.ErrWorkspaceNotFound, "%q", name)
	}
	return nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) queryElements(ctx context.Context, where string, args ...any) ([]domain.ElementRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+elementColumns+` FROM elements `+where, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query elements")
	}
	defer rows.Close()

	recs := make([]domain.ElementRecord, 0)
	for rows.Next() {
		var row elementRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, errors.Wrap(err, "failed to scan element")
		}
		rec, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error iterating elements")
	}
	return recs, nil
}
