package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/spf13/viper"

	"github.com/kbukum/recskit/logger"
)

// Options tune Load.
type Options struct {
	FileSystem FileSystem
	ConfigFile string
	EnvFile    string
	// EnvPrefix prefixes every environment variable, "RECS" by default.
	EnvPrefix string
}

// Option sets one of the Options.
type Option func(*Options)

// WithFileSystem replaces the file system used to find and load files.
func WithFileSystem(fs FileSystem) Option {
	return func(o *Options) { o.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) Option {
	return func(o *Options) { o.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) Option {
	return func(o *Options) { o.EnvFile = path }
}

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(o *Options) { o.EnvPrefix = prefix }
}

// Load fills cfg, a pointer to a struct with mapstructure tags, from the
// config file, then the .env file, then the environment. A variable named
// PREFIX_SHELL_GRACE_PERIOD sets the key shell.grace_period. A missing
// file is skipped; an unreadable one fails the load.
func Load(name string, cfg any, opts ...Option) error {
	o := Options{EnvPrefix: "RECS", FileSystem: osFS{}}
	for _, opt := range opts {
		opt(&o)
	}
	files := Locate(name, o)
	log := logger.Get("config")

	v := viper.New()
	if files.Config != "" && o.FileSystem.Exists(files.Config) {
		v.SetConfigFile(files.Config)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", files.Config, err)
		}
		log.Debug("config file loaded", logger.Fields("path", files.Config))
	}

	// variables already in the environment win over the .env file
	if files.Env != "" && o.FileSystem.Exists(files.Env) {
		if err := o.FileSystem.LoadEnv(files.Env); err != nil {
			log.Warn("failed to load .env file", logger.ErrorFields("load_env", err))
		}
	}

	v.SetEnvPrefix(o.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range keys(reflect.TypeOf(cfg), "") {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("binding %s: %w", key, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("decoding %s config: %w", name, err)
	}
	return nil
}

// keys lists the dotted mapstructure keys of the leaf fields of t.
func keys(t reflect.Type, prefix string) []string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	var out []string
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = strings.ToLower(f.Name)
		}
		key := prefix + name
		ft := f.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		// durations are int64s and other named scalars stay leaves
		if ft.Kind() == reflect.Struct {
			out = append(out, keys(ft, key+".")...)
			continue
		}
		out = append(out, key)
	}
	return out
}
