package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Addr     string   `koanf:"addr"`
	Timezone string   `koanf:"timezone"`
	Rule     Rule     `koanf:"rule"`
	Database Database `koanf:"db"`
}

// Rule is the week rule used when a request names neither a profile nor rule parameters.
type Rule struct {
	MinDaysInFirstWeek int    `koanf:"mindays"`
	FirstDayOfWeek     string `koanf:"firstday"`
	Irregular          bool   `koanf:"irregular"`
	Calendar           string `koanf:"calendar"`
}

type Database struct {
	Enabled bool   `koanf:"enabled"`
	Host    string `koanf:"host"`
	Port    int    `koanf:"port"`
	User    string `koanf:"user"`
	Pass    string `koanf:"pass"`
	Name    string `koanf:"name"`
	Schema  string `koanf:"schema"`
}

func Defaults() Application {
	return Application{
		Addr:     ":8181",
		Timezone: "UTC",
		Rule: Rule{
			MinDaysInFirstWeek: 4,
			FirstDayOfWeek:     "monday",
			Irregular:          false,
			Calendar:           "iso",
		},
		Database: Database{
			Enabled: false,
			Host:    "localhost",
			Port:    5432,
			User:    "weekcal",
			Pass:    "",
			Name:    "weekcal",
			Schema:  "weekcal",
		},
	}
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "WEEKCAL_",
		TransformFunc: func(k, v string) (string, any) {
			// WEEKCAL_DB_HOST -> db.host
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "WEEKCAL_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
