package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPgCodeHelpers(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505"}
	fk := &pgconn.PgError{Code: "23503"}

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isUniqueViolation(fk))

	assert.True(t, isForeignKeyViolation(fk))
	assert.False(t, isForeignKeyViolation(unique))

	// También detecta el código cuando el error viene envuelto.
	wrapped := fmt.Errorf("delete vendor: %w", fk)
	assert.True(t, isForeignKeyViolation(wrapped))

	assert.False(t, isUniqueViolation(errors.New("otra cosa")))
}
