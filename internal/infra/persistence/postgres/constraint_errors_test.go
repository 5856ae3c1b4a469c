package postgres

import (
	"testing"

	"gahana/internal/errors"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestConstraintViolations(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		unique     bool
		foreignKey bool
		notNull    bool
		check      bool
	}{
		{name: "translated duplicate", err: errors.Wrap(gorm.ErrDuplicatedKey, "insert"), unique: true},
		{name: "raw duplicate", err: errors.New(`ERROR: duplicate key value violates unique constraint "stores_owner_id_key" (SQLSTATE 23505)`), unique: true},
		{name: "translated foreign key", err: gorm.ErrForeignKeyViolated, foreignKey: true},
		{name: "raw foreign key", err: errors.New("ERROR: insert or update violates foreign key constraint (SQLSTATE 23503)"), foreignKey: true},
		{name: "not null", err: errors.New(`ERROR: null value in column "name" violates not-null constraint (SQLSTATE 23502)`), notNull: true},
		{name: "translated check", err: gorm.ErrCheckConstraintViolated, check: true},
		{name: "raw check", err: errors.New(`ERROR: new row violates check constraint "chk_profiles_role" (SQLSTATE 23514)`), check: true},
		{name: "unrelated", err: errors.New("connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.unique, isUniqueConstraintViolation(tt.err))
			assert.Equal(t, tt.foreignKey, isForeignKeyConstraintViolation(tt.err))
			assert.Equal(t, tt.notNull, isNotNullConstraintViolation(tt.err))
			assert.Equal(t, tt.check, isCheckConstraintViolation(tt.err))
		})
	}
}
