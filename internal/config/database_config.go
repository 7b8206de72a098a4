package config

type DatabaseConfig struct {
	File string `yaml:"file"` //path of the sqlite database file
}
