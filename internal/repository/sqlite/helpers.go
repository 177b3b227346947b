package sqlite

import (
	"database/sql"
	"encoding/json"

	"c4model/internal/domain"

	"github.com/cockroachdb/errors"
)

// ============================================================================
// Null Type Conversion Helpers
// ============================================================================

// nullToString safely converts sql.NullString to string
func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// stringToNull safely converts string to sql.NullString
func stringToNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// ============================================================================
// JSON Marshaling Helpers
// ============================================================================

// unmarshalJSONField safely unmarshals JSON from nullable string into target
func unmarshalJSONField(ns sql.NullString, target interface{}) error {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	return json.Unmarshal([]byte(ns.String), target)
}

// marshalTags marshals a tag list to nullable JSON. Empty lists are stored as NULL.
func marshalTags(tags []string) (sql.NullString, error) {
	if len(tags) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// ============================================================================
// Schema Evolution Guide
// ============================================================================
//
// To add a new column to the elements table:
// 1. Add field to elementRow struct (below)
// 2. Update scanArgs() - APPEND to end to match column order
// 3. Update elementColumns constant - APPEND to end
// 4. Update toDomain() and elementInsertArgs()
// 5. Add the column to migrate() in sqlite.go
// 6. Update relevant tests
//
// CRITICAL: Column order must match between elementColumns, scanArgs() and
// elementInsertArgs(). Same pattern applies to relationships.

// ============================================================================
// Element Row Scanner
// ============================================================================

const elementColumns = `key, alias, qualifier, kind, label, description, boundary, tags, container_type, technology`

// elementRow holds all columns from an element query for scanning
type elementRow struct {
	Key         string
	Alias       string
	Qualifier   string
	Kind        string
	Label       string
	Description sql.NullString
	Boundary    sql.NullString
	TagsJSON    sql.NullString
	Type        sql.NullString
	Technology  sql.NullString
}

// scanArgs returns pointers to all fields for sql.Scan()
// MUST match elementColumns order exactly
func (r *elementRow) scanArgs() []interface{} {
	return []interface{}{
		&r.Key,
		&r.Alias,
		&r.Qualifier,
		&r.Kind,
		&r.Label,
		&r.Description,
		&r.Boundary,
		&r.TagsJSON,
		&r.Type,
		&r.Technology,
	}
}

// toDomain converts the row to a snapshot record
func (r *elementRow) toDomain() (domain.ElementRecord, error) {
	rec := domain.ElementRecord{
		Key:         r.Key,
		Alias:       r.Alias,
		Qualifier:   r.Qualifier,
		Kind:        domain.ElementKind(r.Kind),
		Label:       r.Label,
		Description: nullToString(r.Description),
		Boundary:    domain.Boundary(nullToString(r.Boundary)),
		Type:        domain.ContainerType(nullToString(r.Type)),
		Technology:  nullToString(r.Technology),
	}
	if err := unmarshalJSONField(r.TagsJSON, &rec.Tags); err != nil {
		return domain.ElementRecord{}, errors.Wrapf(err, "failed to unmarshal tags of %s", r.Key)
	}
	return rec, nil
}

// elementInsertArgs returns values in elementColumns order
func elementInsertArgs(rec domain.ElementRecord) ([]any, error) {
	tags, err := marshalTags(rec.Tags)
	if err != nil {
		return nil, err
	}
	return []any{
		rec.Key,
		rec.Alias,
		rec.Qualifier,
		string(rec.Kind),
		rec.Label,
		stringToNull(rec.Description),
		stringToNull(string(rec.Boundary)),
		tags,
		stringToNull(string(rec.Type)),
		stringToNull(rec.Technology),
	}, nil
}

// ============================================================================
// Relationship Row Scanner
// ============================================================================

const relationshipColumns = `id, from_key, to_key, label, technology, direction, tags`

// relationshipRow holds all columns from a relationship query for scanning
type relationshipRow struct {
	ID         string
	From       string
	To         string
	Label      string
	Technology sql.NullString
	Direction  sql.NullString
	TagsJSON   sql.NullString
}

// scanArgs returns pointers to all fields for sql.Scan()
// MUST match relationshipColumns order exactly
func (r *relationshipRow) scanArgs() []interface{} {
	return []interface{}{
		&r.ID,
		&r.From,
		&r.To,
		&r.Label,
		&r.Technology,
		&r.Direction,
		&r.TagsJSON,
	}
}

// toDomain converts the row to a domain relationship
func (r *relationshipRow) toDomain() (domain.Relationship, error) {
	rel := domain.Relationship{
		ID:         r.ID,
		From:       r.From,
		To:         r.To,
		Label:      r.Label,
		Technology: nullToString(r.Technology),
		Direction:  domain.Direction(nullToString(r.Direction)),
	}
	if err := unmarshalJSONField(r.TagsJSON, &rel.Tags); err != nil {
		return domain.Relationship{}, errors.Wrapf(err, "failed to unmarshal tags of relationship %s", r.ID)
	}
	return rel, nil
}

// relationshipInsertArgs returns values in relationshipColumns order
func relationshipInsertArgs(rel domain.Relationship) ([]any, error) {
	tags, err := marshalTags(rel.Tags)
	if err != nil {
		return nil, err
	}
	return []any{
		rel.ID,
		rel.From,
		rel.To,
		rel.Label,
		stringToNull(rel.Technology),
		stringToNull(string(rel.Direction)),
		tags,
	}, nil
}
