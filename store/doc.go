// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the entity repository.

All access goes through a transaction:

	err := st.InTx(ctx, func(tx *store.Tx) error {
		ev, err := tx.GetEvent(ctx, eventID)
		if err != nil {
			return err
		}
		...
	})

InTx commits when the callback returns nil and rolls back otherwise.
Query methods are explicit about what they fetch; related rows are
loaded with separate calls rather than traversed implicitly.

# Errors

  - ErrNotFound: the row does not exist (wraps sql.ErrNoRows)
  - ErrDuplicate: a unique constraint rejected the write
  - ErrMissingReference: a foreign key rejected the write

Callers translate these into client-facing errors.
*/
package store
