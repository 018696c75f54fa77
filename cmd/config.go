package cmd

// Config carries the runtime settings loaded from the environment.
// All values are kept as strings; parsing happens at wiring time.
type Config struct {
	HTTPPort           string
	DBHost             string
	DBPort             string
	DBUser             string
	DBPassword         string
	DBName             string
	DBSslMode          string
	GeocoderBaseURL    string
	DefaultCenterLat   string
	DefaultCenterLng   string
	KafkaBrokers       string
	KafkaSnapshotTopic string
	RedisAddr          string
	SyncDebounce       string
}
