package configuration

import (
	"fmt"
	"os"
	"strconv"

	"github.com/ArnW0lf/ParaJose/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	App         App         `json:"app"`
	Database    Database    `json:"database"`
	RedisClient RedisClient `json:"redisClient"`
	Notifier    Notifier    `json:"notifier"`
	Gemini      Gemini      `json:"gemini"`
	Pexels      Pexels      `json:"pexels"`
	Facebook    Facebook    `json:"facebook"`
	Instagram   Instagram   `json:"instagram"`
	LinkedIn    LinkedIn    `json:"linkedin"`
	Twilio      Twilio      `json:"twilio"`
	TikTok      TikTok      `json:"tiktok"`
}

type App struct {
	Port      int    `json:"port"`
	SecretKey string `json:"secretKey"`
}

type Database struct {
	Psql  Db `json:"psql"`
	Mssql Db `json:"mssql"`
	Mongo Db `json:"mongo"`
}

type Db struct {
	Name     string `json:"name"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
}

type RedisClient struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Notifier holds the optional message-bus transports publish events fan out to.
type Notifier struct {
	PubsubProjectID     string `json:"pubsubProjectID"`
	PubsubTopic         string `json:"pubsubTopic"`
	ServiceBusNamespace string `json:"serviceBusNamespace"`
	ServiceBusQueue     string `json:"serviceBusQueue"`
}

type Gemini struct {
	APIKey string `json:"apiKey"`
	Model  string `json:"model"`
}

type Pexels struct {
	APIKey string `json:"apiKey"`
}

type Facebook struct {
	PageID      string `json:"pageId"`
	AccessToken string `json:"accessToken"`
}

type Instagram struct {
	AccountID string `json:"accountId"`
}

type LinkedIn struct {
	AccessToken string `json:"accessToken"`
}

type Twilio struct {
	AccountSID   string `json:"accountSid"`
	AuthToken    string `json:"authToken"`
	WhatsappFrom string `json:"whatsappFrom"`
}

type TikTok struct {
	ClientKey    string `json:"clientKey"`
	ClientSecret string `json:"clientSecret"`
	RedirectURI  string `json:"redirectURI"`
}

var C Config

func init() {
	LoadConfig()
	initApp(&C)
	initDatabase(&C)
	initPlatforms(&C)
}

func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Warn("Config file not found")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
	logger.GetLogger().WithField("config", name).Info("Config set up successfully")
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func initApp(C *Config) {
	if v := os.Getenv("SECRET_KEY"); v != "" {
		C.App.SecretKey = v
	}
	// Port resolution order (env overrides config): APP_PORT -> PORT -> config -> default 8000
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	}
	if C.App.Port == 0 {
		C.App.Port = 8000
	}
}

func initDatabase(C *Config) {
	if C.Database.Psql.Name == "" {
		C.Database.Psql.Name = os.Getenv("DB_NAME")
	}
	if C.Database.Psql.Host == "" {
		C.Database.Psql.Host = os.Getenv("DB_HOST")
	}
	if C.Database.Psql.User == "" {
		C.Database.Psql.User = os.Getenv("DB_USER")
	}
	if C.Database.Psql.Password == "" {
		C.Database.Psql.Password = os.Getenv("DB_PASSWORD")
	}
	if C.Database.Psql.Port == "" {
		C.Database.Psql.Port = os.Getenv("DB_PORT")
	}
	if C.Database.Psql.Port == "" {
		C.Database.Psql.Port = "5432"
	}

	// Optional MSSQL config via environment variables (Azure SQL in production)
	if v := os.Getenv("MSSQL_DB_NAME"); v != "" && C.Database.Mssql.Name == "" {
		C.Database.Mssql.Name = v
	}
	if v := os.Getenv("MSSQL_HOST"); v != "" && C.Database.Mssql.Host == "" {
		C.Database.Mssql.Host = v
	}
	if v := os.Getenv("MSSQL_USER"); v != "" && C.Database.Mssql.User == "" {
		C.Database.Mssql.User = v
	}
	if v := os.Getenv("MSSQL_PASSWORD"); v != "" && C.Database.Mssql.Password == "" {
		C.Database.Mssql.Password = v
	}
	if C.Database.Mssql.Port == "" {
		C.Database.Mssql.Port = "1433"
	}

	if C.Database.Mongo.Host == "" {
		C.Database.Mongo.Host = os.Getenv("MONGO_HOST")
	}
	if C.Database.Mongo.Port == "" {
		C.Database.Mongo.Port = os.Getenv("MONGO_PORT")
	}
	if C.Database.Mongo.User == "" {
		C.Database.Mongo.User = os.Getenv("MONGO_USER")
	}
	if C.Database.Mongo.Password == "" {
		C.Database.Mongo.Password = os.Getenv("MONGO_PASSWORD")
	}
	if C.Database.Mongo.Name == "" {
		C.Database.Mongo.Name = os.Getenv("MONGO_DB_NAME")
	}
}

// initPlatforms fills platform credentials from the environment when the
// config file leaves them empty. Env vars keep the original deployment shape.
func initPlatforms(C *Config) {
	setIfEmpty := func(dst *string, envKey string) {
		if *dst == "" {
			*dst = os.Getenv(envKey)
		}
	}
	setIfEmpty(&C.Gemini.APIKey, "GEMINI_API_KEY")
	if C.Gemini.Model == "" {
		C.Gemini.Model = "models/gemini-flash-latest"
	}
	setIfEmpty(&C.Pexels.APIKey, "PEXELS_API_KEY")
	setIfEmpty(&C.Facebook.PageID, "FACEBOOK_PAGE_ID")
	setIfEmpty(&C.Facebook.AccessToken, "FACEBOOK_ACCESS_TOKEN")
	setIfEmpty(&C.Instagram.AccountID, "INSTAGRAM_ACCOUNT_ID")
	setIfEmpty(&C.LinkedIn.AccessToken, "LINKEDIN_ACCESS_TOKEN")
	setIfEmpty(&C.Twilio.AccountSID, "TWILIO_ACCOUNT_SID")
	setIfEmpty(&C.Twilio.AuthToken, "TWILIO_AUTH_TOKEN")
	setIfEmpty(&C.Twilio.WhatsappFrom, "TWILIO_WHATSAPP_FROM")
	setIfEmpty(&C.TikTok.ClientKey, "TIKTOK_CLIENT_KEY")
	setIfEmpty(&C.TikTok.ClientSecret, "TIKTOK_CLIENT_SECRET")
	setIfEmpty(&C.TikTok.RedirectURI, "TIKTOK_REDIRECT_URI")
	setIfEmpty(&C.Notifier.PubsubProjectID, "PUBSUB_PROJECT_ID")
	setIfEmpty(&C.Notifier.PubsubTopic, "PUBSUB_TOPIC")
	setIfEmpty(&C.Notifier.ServiceBusNamespace, "SERVICEBUS_NAMESPACE")
	setIfEmpty(&C.Notifier.ServiceBusQueue, "SERVICEBUS_QUEUE")
	if C.Notifier.PubsubTopic == "" {
		C.Notifier.PubsubTopic = "publish-events"
	}
	if C.Notifier.ServiceBusQueue == "" {
		C.Notifier.ServiceBusQueue = "publish-events"
	}
}
