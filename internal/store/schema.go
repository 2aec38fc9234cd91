package store

// Schema is the DDL for the txmail database. The unique index on
// dedupe_hash is what makes InsertIfAbsent atomic.
const Schema = `
CREATE TABLE IF NOT EXISTS transactions (
    id           TEXT PRIMARY KEY,
    user_id      TEXT NOT NULL,
    merchant     TEXT NOT NULL,
    order_ref    TEXT,
    amount       REAL NOT NULL,
    date         TEXT NOT NULL,
    type         TEXT NOT NULL,
    dedupe_hash  TEXT NOT NULL UNIQUE,
    created_at   TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tx_user ON transactions(user_id);
CREATE INDEX IF NOT EXISTS idx_tx_type ON transactions(user_id, type);
CREATE INDEX IF NOT EXISTS idx_tx_merchant ON transactions(user_id, merchant);
CREATE INDEX IF NOT EXISTS idx_tx_date ON transactions(date DESC);
`
