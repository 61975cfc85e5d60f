package store

const schema = `
CREATE TABLE IF NOT EXISTS rankings (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    keyword    TEXT NOT NULL,
    date       TEXT NOT NULL,
    position   INTEGER NOT NULL DEFAULT 0,
    in_top     BOOLEAN NOT NULL DEFAULT 0,
    error      TEXT NOT NULL DEFAULT '',
    checked_at DATETIME NOT NULL,
    UNIQUE(keyword, date)
);

CREATE INDEX IF NOT EXISTS idx_rankings_keyword ON rankings(keyword);
CREATE INDEX IF NOT EXISTS idx_rankings_date ON rankings(date);

CREATE TABLE IF NOT EXISTS opportunity_runs (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    run_date        TEXT NOT NULL,
    topic           TEXT NOT NULL,
    score           INTEGER NOT NULL DEFAULT 0,
    features        TEXT NOT NULL DEFAULT '[]',
    already_ranking BOOLEAN NOT NULL DEFAULT 0,
    has_trend       BOOLEAN NOT NULL DEFAULT 0,
    trend_value     REAL NOT NULL DEFAULT 0,
    created_at      DATETIME NOT NULL,
    UNIQUE(run_date, topic)
);

CREATE INDEX IF NOT EXISTS idx_opportunity_runs_date ON opportunity_runs(run_date);
CREATE INDEX IF NOT EXISTS idx_opportunity_runs_score ON opportunity_runs(score);
`
