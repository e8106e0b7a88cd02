// Copyright (c) 2025 The digital-ballot-college Authors.
// Licensed under the MIT License. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: postgres or sqlite (default: postgres)
  - OrganizerKeySalt: Secret for organizer key HMAC (required)
  - ShutdownTimeout: Grace period for in-flight requests (default: 10s)

# CLI Flags

	-p                 Server port
	-d                 Database URL
	-t                 Database type
	--organizer-salt   Organizer key salt
	--shutdown-timeout Graceful shutdown timeout

# Environment Variables

Flags fall back to environment variables:

	PORT               → -p
	DATABASE_URL       → -d
	DATABASE_TYPE      → -t
	ORGANIZER_KEY_SALT → --organizer-salt
	SHUTDOWN_TIMEOUT   → --shutdown-timeout

CLI flags take precedence over environment variables. main loads a .env
file (if present) before parsing, so values from it behave like regular
environment variables.
*/
package cliparse
