package connection

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// GormTx returns a gorm handle whose statements run on tx. Repositories use it in
// WithTx so service level transactions opened on *sql.DB also cover gorm queries.
func GormTx(db *gorm.DB, tx *sql.Tx) *gorm.DB {
	if tx == nil {
		return db
	}
	gtx := db.Session(&gorm.Session{NewDB: true, Context: context.Background()})
	gtx.Statement.ConnPool = tx
	return gtx
}
