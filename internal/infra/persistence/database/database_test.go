package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{
			name: "plain path",
			dsn:  "nexus.db",
			want: "file:nexus.db?_foreign_keys=on&_txlock=immediate&_busy_timeout=5000",
		},
		{
			name: "keeps existing query",
			dsn:  "file:nexus.db?_foreign_keys=on",
			want: "file:nexus.db?_foreign_keys=on&_txlock=immediate&_busy_timeout=5000",
		},
		{
			name: "memory store",
			dsn:  "file:t1?mode=memory&cache=shared",
			want: "file:t1?mode=memory&cache=shared&_foreign_keys=on&_txlock=immediate&_busy_timeout=5000",
		},
		{
			name: "caller settings win",
			dsn:  "file:nexus.db?_fk=1&_txlock=exclusive&_timeout=100",
			want: "file:nexus.db?_fk=1&_txlock=exclusive&_timeout=100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sqliteDSN(tt.dsn))
		})
	}
}
