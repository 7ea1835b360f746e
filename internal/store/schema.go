package store

// Schema DDL for the workspace catalog. Models own their package files;
// a file unit is unique within a model, as is the package type.
const (
	createModels = `CREATE TABLE IF NOT EXISTS models (
    model_id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    workspace TEXT NOT NULL,
    nper INTEGER NOT NULL,
    structured INTEGER NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createPackages = `CREATE TABLE IF NOT EXISTS packages (
    package_id TEXT PRIMARY KEY,
    model_id TEXT NOT NULL,
    ftype TEXT NOT NULL,
    unit INTEGER NOT NULL,
    path TEXT NOT NULL,
    created_at TEXT NOT NULL,
    UNIQUE (model_id, ftype),
    UNIQUE (model_id, unit),
    FOREIGN KEY (model_id) REFERENCES models(model_id)
);`
)

// schemaDDL lists the statements run on open, in dependency order.
var schemaDDL = []string{
	createModels,
	createPackages,
}
