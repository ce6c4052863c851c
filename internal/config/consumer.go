package config

// ConsumerConfig configures the sales consumer process, which needs neither
// the database nor the admin credentials.
type ConsumerConfig struct {
	Env         string
	LogLevel    string
	RabbitMQURL string
	SalesLogDir string
}

// LoadConsumerConfig reads APP_ENV, LOG_LEVEL, RABBITMQ_URL (or AMQP_URL)
// and SALES_LOG_DIR.
func LoadConsumerConfig() ConsumerConfig {
	return ConsumerConfig{
		Env:         envStr("APP_ENV", "dev"),
		LogLevel:    envStr("LOG_LEVEL", "info"),
		RabbitMQURL: envStr("RABBITMQ_URL", envStr("AMQP_URL", "")),
		SalesLogDir: envStr("SALES_LOG_DIR", "logs"),
	}
}
