package reviewstore

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;

-- Reviews table: one row per scraped review, keyed by story.
CREATE TABLE IF NOT EXISTS reviews (
    review_id INTEGER PRIMARY KEY AUTOINCREMENT,
    sid TEXT NOT NULL,
    reviewer TEXT NOT NULL,         -- numeric user id or 'Guest'
    chapter TEXT,
    left_at INTEGER NOT NULL,       -- unix timestamp of the review
    body TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_reviews_sid ON reviews(sid);
CREATE INDEX IF NOT EXISTS idx_reviews_reviewer ON reviews(reviewer);

-- Postings table: inverted index over normalized review/story text.
-- doc_key identifies the indexed document ('<reviewer>/<sid>' for reviews,
-- 'story/<sid>' for chapter text).
CREATE TABLE IF NOT EXISTS postings (
    posting_id INTEGER PRIMARY KEY AUTOINCREMENT,
    term TEXT NOT NULL,
    doc_key TEXT NOT NULL,
    hits INTEGER NOT NULL DEFAULT 1,
    UNIQUE(term, doc_key)
);

CREATE INDEX IF NOT EXISTS idx_postings_term ON postings(term);
`
