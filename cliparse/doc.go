// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns an immutable Config value:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Sources

Later sources override earlier ones:

 1. Defaults()
 2. YAML file (--config or CONFIG_FILE)
 3. Environment variables
 4. CLI flags

The .env file (--env-file, default ".env"; missing file is ignored) is
loaded into the environment before anything is read, so its values sit
at step 3. Variables already set in the process win over it.

# Keys

	PORT                         -p, --port                 8000
	DATABASE_URL                 -d, --database-url         file:app.db
	DATABASE_TYPE                -t, --database-type        sqlite
	SECRET_KEY                   --secret-key               change-me
	ACCESS_TOKEN_EXPIRE_MINUTES  --token-expire-minutes     60
	ALGORITHM                    --algorithm                HS256
	ALLOWED_ORIGINS              --allowed-origins          *
	API_PREFIX                   --api-prefix               /api

ALLOWED_ORIGINS is comma separated. YAML keys are the lower-case
variable names (port, database_url, ...).

# Validation

ParseFlags returns an error when:

  - the token lifetime is outside 15-1440 minutes
  - the algorithm is not HS256, HS384 or HS512
  - the database type is not sqlite or postgres (sqlite3 and
    postgresql are accepted as aliases)
  - the port is outside 1-65535
*/
package cliparse
