// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Connections

Open supports SQLite (modernc.org/sqlite, the default) and PostgreSQL
(github.com/lib/pq):

	conn, err := db.Open(db.TypeSQLite, "file:whisky_survey.db")

SQLite connections always run with foreign keys enabled.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
SeedWhiskies adds the sample whiskies on first start.

# Tables

  - users: Survey participants (unique name)
  - whisky: Rateable whiskies with optional image file name
  - survey_response: One score (1-5) per user and whisky
  - response_tag: Smell and taste tags of a response
  - admin_session: Admin login sessions with expiry

# Relationships

	users 1──* survey_response
	whisky 1──* survey_response
	survey_response 1──* response_tag

All foreign keys use ON DELETE CASCADE.
*/
package db
