// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// ConnHandler is a handler function which takes a context and a
// database connection which should be used solely from within the
// handler function. The connection is released after the handler
// returns.
type ConnHandler func(context.Context, Conn) error

// Pool represents a database connection pool. The relational KV store
// adapters acquire a connection per operation through it.
type Pool interface {
	Conn(ctx context.Context, handler ConnHandler) error
}

// TxHandler is a handler function which takes a context and an ongoing
// transaction. If the handler returns an error, the transaction is
// rolled back and otherwise it is committed.
type TxHandler func(context.Context, Tx) error

// Conn represents a database connection which is not shareable
// between goroutines.
type Conn interface {
	Queryer
	Tx(ctx context.Context, handler TxHandler) error

	// IsConn method prevents a non-Conn object (such as a Tx) to
	// mistakenly implement the Conn interface.
	IsConn()
}

// Tx represents a database transaction.
type Tx interface {
	Queryer

	// IsTx method prevents a non-Tx object (such as a Conn) to
	// mistakenly implement the Tx interface.
	IsTx()
}

// Queryer runs raw SQL statements.
type Queryer interface {
	Exec(ctx context.Context, sql string, args ...any) (count int64, err error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
}

// Rows is the result set of a Query call.
type Rows interface {
	Close()
	Err() error
	Next() bool
	Scan(dest ...any) error
	Values() ([]any, error)
}
