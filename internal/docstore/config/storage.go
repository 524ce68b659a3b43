package config

// Поддерживаемые хранилища.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// StorageConfig выбирает хранилище документов.
type StorageConfig struct {
	Driver        string `yaml:"driver" env:"DOCSTORE_STORAGE_DRIVER" env-default:"postgres"`
	SQLitePath    string `yaml:"sqlite_path" env:"DOCSTORE_SQLITE_PATH" env-default:"docstore.db"`
	MigrationsDir string `yaml:"migrations_dir" env:"DOCSTORE_MIGRATIONS_DIR" env-default:"migrations/docstore"`
}
