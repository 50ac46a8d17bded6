package global

type ServerCfg struct {
	ConfigFile string `mapstructure:"config_file"`
	Level      string `mapstructure:"level"`

	ApiBind string   `mapstructure:"api_bind"`
	Cors    []string `mapstructure:"cors"`

	RedisURI         string `mapstructure:"redis_uri"`
	RedisTaskSetKey  string `mapstructure:"redis_task_set_key"`
	RedisOutputEvent string `mapstructure:"redis_output_event"`

	DefaultSpeaker int64 `mapstructure:"default_speaker"`

	SpeedScale        float64 `mapstructure:"speed_scale"`
	PitchScale        float64 `mapstructure:"pitch_scale"`
	IntonationScale   float64 `mapstructure:"intonation_scale"`
	PrePhonemeLength  float64 `mapstructure:"pre_phoneme_length"`
	PostPhonemeLength float64 `mapstructure:"post_phoneme_length"`

	InterrogativeUpspeak bool `mapstructure:"interrogative_upspeak"`
}
