package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/icgc-argo/dac-api-sub000/pkg/db"
	"github.com/icgc-argo/dac-api-sub000/pkg/utils"
	"gopkg.in/yaml.v2"

	messagingDB "github.com/icgc-argo/dac-api-sub000/pkg/db/messaging"
	emailsending "github.com/icgc-argo/dac-api-sub000/pkg/messaging/email-sending"
	messagingTypes "github.com/icgc-argo/dac-api-sub000/pkg/messaging/types"
	smtpclient "github.com/icgc-argo/dac-api-sub000/pkg/smtp-client"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_MESSAGING_DB_USERNAME = "MESSAGING_DB_USERNAME"
	ENV_MESSAGING_DB_PASSWORD = "MESSAGING_DB_PASSWORD"

	ENV_SMTP_USERNAME = "SMTP_USERNAME"
	ENV_SMTP_PASSWORD = "SMTP_PASSWORD"
)

type config struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// DB configs
	DBConfigs struct {
		MessagingDB db.DBConfigYaml `json:"messaging_db" yaml:"messaging_db"`
	} `json:"db_configs" yaml:"db_configs"`

	MessagingConfigs messagingTypes.MessagingConfigs `json:"messaging_configs" yaml:"messaging_configs"`

	Intervals struct {
		LastSendAttemptLockDuration time.Duration `json:"last_send_attempt_lock_duration" yaml:"last_send_attempt_lock_duration"`
	} `json:"intervals" yaml:"intervals"`
}

var conf config

var (
	messagingDBService *messagingDB.MessagingDBService
)

func init() {
	// Read config from file
	yamlFile, err := os.ReadFile(os.Getenv(ENV_CONFIG_FILE_PATH))
	if err != nil {
		panic(err)
	}

	err = yaml.UnmarshalStrict(yamlFile, &conf)
	if err != nil {
		panic(err)
	}

	// Init logger:
	utils.InitLogger(
		conf.Logging.LogLevel,
		conf.Logging.IncludeSrc,
		conf.Logging.LogToFile,
		conf.Logging.Filename,
		conf.Logging.MaxSize,
		conf.Logging.MaxAge,
		conf.Logging.MaxBackups,
		conf.Logging.CompressOldLogs,
		conf.Logging.IncludeBuildInfo,
	)

	// Override secrets from environment variables
	secretsOverride()

	// init db
	initDBs()

	// init message sending
	initMessageSendingConfig()

	if conf.Intervals.LastSendAttemptLockDuration == 0 {
		conf.Intervals.LastSendAttemptLockDuration = 60 * time.Minute
	}
}

func secretsOverride() {
	if dbUsername := os.Getenv(ENV_MESSAGING_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.MessagingDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_MESSAGING_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.MessagingDB.Password = dbPassword
	}
}

func initDBs() {
	var err error
	messagingDBService, err = messagingDB.NewMessagingDBService(db.DBConfigFromYamlObj(conf.DBConfigs.MessagingDB))
	if err != nil {
		slog.Error("Error connecting to Messaging DB", slog.String("error", err.Error()))
		panic(err)
	}
}

func initMessageSendingConfig() {
	servers := smtpclient.SmtpServerList{}
	if err := servers.ReadFromFile(conf.MessagingConfigs.SmtpServerConfigPath); err != nil {
		slog.Error("Error reading SMTP server config", slog.String("error", err.Error()))
		panic(err)
	}

	if username := os.Getenv(ENV_SMTP_USERNAME); username != "" {
		for i := range servers.Servers {
			servers.Servers[i].SetUsername(username)
		}
	}
	if password := os.Getenv(ENV_SMTP_PASSWORD); password != "" {
		for i := range servers.Servers {
			servers.Servers[i].SetPassword(password)
		}
	}

	smtpClients, err := smtpclient.NewSmtpClients(servers)
	if err != nil {
		slog.Error("Error initialising SMTP clients", slog.String("error", err.Error()))
		panic(err)
	}

	emailsending.InitMessageSendingVariables(
		smtpClients,
		conf.MessagingConfigs.GlobalEmailTemplateConstants,
		messagingDBService,
	)
}
