package cli

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/shelfgraph/pkg/btree"
	"github.com/matzehuels/shelfgraph/pkg/errors"
)

// defaultListen is the address used by serve when neither the flag nor the
// config file names one.
const defaultListen = ":8080"

// Config holds settings read from config.toml.
//
//	index_order = 5
//	cache_dir   = "/tmp/shelfgraph"
//	redis_addr  = "localhost:6379"
//	listen      = ":8080"
type Config struct {
	IndexOrder int    `toml:"index_order"`
	CacheDir   string `toml:"cache_dir"`
	RedisAddr  string `toml:"redis_addr"`
	Listen     string `toml:"listen"`
}

// configFile returns the default config file location.
func configFile() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// loadConfig reads the config file at path, or the default location when path
// is empty. A missing default file yields the defaults; a missing explicit
// file is an error.
func loadConfig(path string) (Config, error) {
	cfg := Config{Listen: defaultListen}

	explicit := path != ""
	if !explicit {
		p, err := configFile()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidPath, err, "open config")
	}
	defer f.Close()

	md, err := toml.NewDecoder(f).Decode(&cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return cfg, errors.New(errors.ErrCodeInvalidFormat, "config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if cfg.IndexOrder != 0 && cfg.IndexOrder < btree.MinOrder {
		return cfg, errors.New(errors.ErrCodeInvalidOrder, "config %s: index_order %d is below %d", path, cfg.IndexOrder, btree.MinOrder)
	}
	if cfg.Listen == "" {
		cfg.Listen = defaultListen
	}
	return cfg, nil
}
