/*
 * Copyright (c) 2026. MZCLM Authors -- All Rights Reserved
 *
 * This file is part of MZCLM project.
 *
 * MZCLM is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as the Free Software Foundation,
 * either version 3 of the License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */

package db

import (
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mzclm-dev/mzclm/internal/logger"
)

const schema = `
CREATE TABLE IF NOT EXISTS presets (
	zone     TEXT NOT NULL,
	name     TEXT NOT NULL,
	target   REAL NOT NULL,
	kp       REAL,
	ki       REAL,
	deadband REAL,
	mode     TEXT NOT NULL,
	PRIMARY KEY (zone, name)
);
CREATE TABLE IF NOT EXISTS zone_state (
	zone   TEXT PRIMARY KEY,
	target REAL NOT NULL,
	mode   TEXT NOT NULL,
	preset TEXT
);
CREATE TABLE IF NOT EXISTS controller_values (
	name  TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

func OpenDatabase(dbFile string) *Store {
	sqlDB, err := sqlx.Connect("sqlite3", dbFile)
	if err != nil {
		logger.L().Panic(err)
	}

	// Create tables if they don't exist
	if _, err := sqlDB.Exec(schema); err != nil {
		logger.L().Panic(err)
	}

	return &Store{db: sqlDB}
}
