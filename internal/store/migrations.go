package store

// migration holds a single schema migration with its target version and SQL.
// The applied version is kept in PRAGMA user_version so the file holds no
// bookkeeping tables.
type migration struct {
	version int
	sql     string
}

// Table and column names match the files earlier releases created, so
// existing databases open unchanged.
const tablesSQL = `CREATE TABLE IF NOT EXISTS subjects (
    SubjectCode TEXT PRIMARY KEY,    -- e.g. 'CS 212'
    Name        TEXT NOT NULL,
    Instructor  TEXT,
    Units       INTEGER,
    Goals       TEXT                 -- at most 100 characters
);

CREATE TABLE IF NOT EXISTS tasks (
    TaskID      INTEGER PRIMARY KEY AUTOINCREMENT,
    SubjectCode TEXT NOT NULL,
    TaskName    TEXT NOT NULL,
    Deadline    TEXT,                -- YYYY-MM-DD
    Priority    TEXT,                -- High / Medium / Low
    Status      TEXT,                -- Not Started / In Progress / Completed
    FOREIGN KEY (SubjectCode) REFERENCES subjects(SubjectCode) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS schedule (
    ScheduleID  INTEGER PRIMARY KEY AUTOINCREMENT,
    SubjectCode TEXT NOT NULL,
    Day         TEXT NOT NULL,       -- 'Mon','Tue','Wed','Thu','Fri','Sat','Sun'
    StartTime   TEXT NOT NULL,       -- 'HH:MM'
    EndTime     TEXT NOT NULL,       -- 'HH:MM'
    Room        TEXT,
    FOREIGN KEY (SubjectCode) REFERENCES subjects(SubjectCode) ON DELETE CASCADE
);
`

const indexesSQL = `CREATE INDEX IF NOT EXISTS idx_tasks_subject ON tasks(SubjectCode);
CREATE INDEX IF NOT EXISTS idx_schedule_subject ON schedule(SubjectCode);
`

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{version: 1, sql: tablesSQL},
	{version: 2, sql: indexesSQL},
}
