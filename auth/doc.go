// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing and bearer token utilities.

# Passwords

Passwords are hashed with bcrypt at the default cost:

	hash, err := auth.HashPassword(plain)
	err = auth.VerifyPassword(hash, plain)

VerifyPassword returns ErrPasswordMismatch for any failure so callers
cannot tell a malformed hash from a wrong password.

# Tokens

Tokens are HMAC-signed JWTs. The subject holds the user id and exp holds
the expiry:

	ti, err := auth.NewTokenIssuer(secret, "HS256", 60*time.Minute)
	token, err := ti.IssueToken(userID)
	userID, err := ti.VerifyToken(token)

Only HS256, HS384 and HS512 are accepted. A token signed with any other
algorithm than the issuer's, or with a missing or past expiry, fails
with ErrInvalidToken.
*/
package auth
