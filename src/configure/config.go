package configure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/hibikitts/hibiki/src/global"
)

// default config
var defaultConf = global.ServerCfg{
	ConfigFile:        "config.yaml",
	Level:             "info",
	ApiBind:           ":3000",
	RedisTaskSetKey:   "hibiki:tasks",
	RedisOutputEvent:  "hibiki:events:inference",
	SpeedScale:        1.0,
	PitchScale:        0.0,
	IntonationScale:   1.0,
	PrePhonemeLength:  0.1,
	PostPhonemeLength: 0.1,

	InterrogativeUpspeak: true,
}

var Config = viper.New()

func initLog() {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetReportCaller(true)
	if l, err := log.ParseLevel(Config.GetString("level")); err == nil {
		log.SetLevel(l)
	}
}

func checkErr(err error) {
	if err != nil {
		log.WithError(err).Fatal("failed on configure")
	}
}

func validate(c *global.ServerCfg) error {
	var result error
	if c.RedisURI == "" {
		result = multierror.Append(result, fmt.Errorf("redis_uri is required"))
	}
	if c.RedisTaskSetKey == "" {
		result = multierror.Append(result, fmt.Errorf("redis_task_set_key is required"))
	}
	if c.RedisOutputEvent == "" {
		result = multierror.Append(result, fmt.Errorf("redis_output_event is required"))
	}
	if c.ApiBind == "" {
		result = multierror.Append(result, fmt.Errorf("api_bind is required"))
	}
	return result
}

func Init(ctx context.Context) global.Context {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetReportCaller(true)
	log.SetLevel(log.DebugLevel)

	// Default config
	b, _ := json.Marshal(defaultConf)
	defaultConfig := bytes.NewReader(b)
	viper.SetConfigType("json")
	checkErr(viper.ReadConfig(defaultConfig))
	checkErr(Config.MergeConfigMap(viper.AllSettings()))

	// Environment
	replacer := strings.NewReplacer(".", "_")
	Config.SetEnvKeyReplacer(replacer)
	Config.AllowEmptyEnv(true)
	Config.AutomaticEnv()

	// File
	Config.SetConfigFile(Config.GetString("config_file"))
	Config.AddConfigPath(".")
	if err := Config.ReadInConfig(); err != nil {
		log.Warning(err)
		log.Info("Using default config")
	} else {
		checkErr(Config.MergeInConfig())
	}

	// Log
	initLog()

	c := global.ServerCfg{}
	checkErr(Config.Unmarshal(&c))
	checkErr(validate(&c))

	return global.NewCtx(ctx, &c)
}
