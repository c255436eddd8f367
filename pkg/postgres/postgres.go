package postgres

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
)

type Postgres struct {
	Database   *sql.DB
	SqlBuilder squirrel.StatementBuilderType
}

func NewDB(url string) (*Postgres, error) {
	driver := "postgres"
	db, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("error while opening database with driver `%s` and url `%s`. %w", driver, url, err)
	}

	return &Postgres{
		Database:   db,
		SqlBuilder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

func (p *Postgres) Close() error {
	if p.Database != nil {
		err := p.Database.Close()
		if err != nil {
			return err
		}

		return nil
	}

	return nil
}

type TxFunc func(tx *sql.Tx) error

// WithTx runs fn inside a transaction, rolling back on error or panic.
// Per-item serialization relies on fn taking a row lock
// (select ... for update) before mutating auction state.
func (p *Postgres) WithTx(fn TxFunc) (err error) {
	tx, err := p.Database.Begin()
	if err != nil {
		return fmt.Errorf("can't begin tx: %w", err)
	}

	defer func() {
		r := recover()
		switch {
		case r != nil:
			_ = tx.Rollback()
			panic(r)

		case err != nil:
			rbErr := tx.Rollback()
			if rbErr != nil {
				err = fmt.Errorf("can't rollback tx: %w. original error: %w", rbErr, err)
			}

		default:
			err = tx.Commit()
			if err != nil {
				err = fmt.Errorf("can't commit tx: %w", err)
			}
		}
	}()

	err = fn(tx)
	return
}
