package config

// SeedConfig controls the optional demo-data seeding run at startup. It is
// passed explicitly into the seeder rather than read from ambient state.
type SeedConfig struct {
	Enabled  bool
	Doctors  int
	Patients int
}

// SMTPConfig holds the mail settings for payment receipts. A blank Host
// disables sending.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// AppConfig holds the application configuration
type AppConfig struct {
	DBURL        string
	RedisAddress string
	BearerToken  string
	SMTP         SMTPConfig
	Seed         SeedConfig
}

// GetBearerToken returns the BearerToken from the config
func (c *AppConfig) GetBearerToken() string {
	return c.BearerToken
}
