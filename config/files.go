package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// FileSystem is the file access the loader needs. Tests substitute it.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
	Getwd() (string, error)
}

type osFS struct{}

func (osFS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadEnv sets the variables of a .env file that are not already set.
func (osFS) LoadEnv(path string) error { return godotenv.Load(path) }

func (osFS) Getwd() (string, error) { return os.Getwd() }

// Files are the config and .env files a load reads. Empty means none.
type Files struct {
	Config string
	Env    string
}

// Locate returns the explicit paths in o, or the first existing file
// among the search paths. <PREFIX>_CONFIG names the config file when set.
func Locate(name string, o Options) Files {
	fsys := o.FileSystem
	if fsys == nil {
		fsys = osFS{}
	}
	f := Files{Config: o.ConfigFile, Env: o.EnvFile}
	if f.Config == "" {
		f.Config = os.Getenv(o.EnvPrefix + "_CONFIG")
	}
	if f.Config == "" {
		f.Config = firstExisting(fsys, configPaths(fsys, name))
	}
	if f.Env == "" {
		f.Env = firstExisting(fsys, []string{"./.env." + name, "./.env"})
	}
	return f
}

func configPaths(fsys FileSystem, name string) []string {
	paths := []string{"./" + name + ".yml", "./config.yml", "./config/config.yml"}
	if wd, err := fsys.Getwd(); err == nil {
		paths = append(paths, filepath.Join(wd, ".config", name, "config.yml"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", name, "config.yml"))
	}
	return paths
}

func firstExisting(fsys FileSystem, paths []string) string {
	for _, p := range paths {
		if fsys.Exists(p) {
			return p
		}
	}
	return ""
}
