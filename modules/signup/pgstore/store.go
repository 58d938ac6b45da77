// Package pgstore stores signup submissions in PostgreSQL.
package pgstore

import (
	"context"
	"embed"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/casadosaber/signup/modules/signup"
	"github.com/casadosaber/signup/pkg/pg"
)

// Migrations holds the goose migrations of the volunteers table.
//
//go:embed migrations/*.sql
var Migrations embed.FS

var (
	ErrInsertFailed  = errors.New("pgstore: insert failed")
	ErrInvalidRecord = errors.New("pgstore: record violates a table constraint")
)

// Migrate brings the volunteers table up to date.
func Migrate(ctx context.Context, pool *pgxpool.Pool, cfg pg.Config, log *slog.Logger) error {
	return pg.Migrate(ctx, pool, Migrations, "migrations", cfg, log)
}

// DB is the subset of *pgxpool.Pool the store needs.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store implements signup.Sink.
type Store struct {
	db DB
}

var _ signup.Sink = (*Store)(nil)

func New(db DB) *Store {
	return &Store{db: db}
}

const insertVolunteer = `
INSERT INTO volunteers (
    id, nome, email, telefone, nascimento, cpf, cep, cidade, estado,
    area, periodo, disponibilidade, language, created_at,
    resume_key, resume_filename, resume_mime_type, resume_size, resume_url
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9,
    $10, $11, $12, $13, $14,
    $15, $16, $17, $18, $19
)
RETURNING id`

// Save inserts v. A CPF that was already submitted yields
// signup.ErrSubmissionExists.
func (s *Store) Save(ctx context.Context, v signup.Volunteer) (uuid.UUID, error) {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}

	var resumeKey, resumeName, resumeType, resumeURL *string
	var resumeSize *int64
	if r := v.Curriculo; r != nil {
		resumeKey, resumeName, resumeType, resumeURL = &r.Key, &r.Filename, &r.MIMEType, &r.URL
		resumeSize = &r.Size
	}

	var id uuid.UUID
	err := s.db.QueryRow(ctx, insertVolunteer,
		v.ID, v.Nome, v.Email, v.Telefone, v.Nascimento, v.CPF, nullable(v.CEP), nullable(v.Cidade), nullable(v.Estado),
		v.Area, v.Periodo, v.Disponibilidade, v.Language, v.CreatedAt,
		resumeKey, resumeName, resumeType, resumeSize, resumeURL,
	).Scan(&id)

	switch {
	case err == nil:
		return id, nil
	case pg.IsDuplicateKeyError(err):
		return uuid.Nil, signup.ErrSubmissionExists
	case pg.IsCheckViolationError(err):
		return uuid.Nil, errors.Join(ErrInvalidRecord, err)
	default:
		return uuid.Nil, errors.Join(ErrInsertFailed, err)
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
