// Package sqlite implementa la persistencia local del servicio: sesiones,
// logins pendientes de 2FA, tickets y borradores de personal. Sustituye al
// almacenamiento del navegador del cliente original con una base embebida.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Open abre (o crea) la base SQLite, activa WAL y foreign keys y aplica el
// esquema. Usar ":memory:" en tests.
func Open(path string) (*sql.DB, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: crear directorio: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: abrir base: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: activar WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: activar foreign keys: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: migrar esquema: %w", err)
	}
	return db, nil
}

func migrate(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS sesiones (
		id          TEXT PRIMARY KEY,
		email       TEXT NOT NULL,
		perfil_json TEXT NOT NULL,
		creada_en   TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS logins_pendientes (
		id                 TEXT PRIMARY KEY,
		email              TEXT NOT NULL,
		token_sesion       TEXT NOT NULL,
		intentos_restantes INTEGER NOT NULL,
		expira_en          TEXT NOT NULL,
		creado_en          TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tickets (
		id          TEXT PRIMARY KEY,
		titulo      TEXT NOT NULL,
		descripcion TEXT NOT NULL DEFAULT '',
		prioridad   TEXT NOT NULL DEFAULT 'Media',
		estado      TEXT NOT NULL DEFAULT 'Abierto',
		creado_en   TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS miembros_borrador (
		id                 TEXT PRIMARY KEY,
		nombre             TEXT NOT NULL,
		email              TEXT NOT NULL DEFAULT '',
		celular            TEXT NOT NULL DEFAULT '',
		prioridad          TEXT NOT NULL DEFAULT 'Media',
		tipos              TEXT NOT NULL DEFAULT '',
		activo             INTEGER NOT NULL DEFAULT 1,
		fecha_creacion     TEXT NOT NULL,
		fecha_modificacion TEXT NOT NULL
	);
	`
	_, err := db.Exec(schema)
	return err
}
