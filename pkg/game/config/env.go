package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by LoadEnv.
const (
	EnvSeed     = "HIRO_SEED"
	EnvRenderer = "HIRO_RENDERER"
	EnvLanguage = "HIRO_LANG"
	EnvConfig   = "HIRO_CONFIG"
)

// Env is the launch settings taken from the process environment and .env.
type Env struct {
	Seed       int64
	HasSeed    bool
	Renderer   string
	Language   string
	ConfigPath string
}

// LoadEnv reads the .env files (".env" when none are given) and the process
// environment. A variable set in the environment wins over the file. A
// missing file is not an error.
func LoadEnv(files ...string) Env {
	vals, err := godotenv.Read(files...)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("config: ignoring .env: %v", err)
		}
		vals = map[string]string{}
	}
	get := func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return vals[key]
	}

	env := Env{
		Renderer:   get(EnvRenderer),
		Language:   get(EnvLanguage),
		ConfigPath: get(EnvConfig),
	}
	if s := get(EnvSeed); s != "" {
		seed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			log.Printf("config: %s=%q is not a number", EnvSeed, s)
		} else {
			env.Seed, env.HasSeed = seed, true
		}
	}
	return env
}
