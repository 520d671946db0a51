package main

import (
	"log/slog"
	"os"

	"github.com/icgc-argo/dac-api-sub000/pkg/application"
	"github.com/icgc-argo/dac-api-sub000/pkg/application/batch"
	"github.com/icgc-argo/dac-api-sub000/pkg/application/types"
	"github.com/icgc-argo/dac-api-sub000/pkg/db"
	"github.com/icgc-argo/dac-api-sub000/pkg/filestore"
	"github.com/icgc-argo/dac-api-sub000/pkg/utils"
	"gopkg.in/yaml.v2"

	appDB "github.com/icgc-argo/dac-api-sub000/pkg/db/application"
	messagingDB "github.com/icgc-argo/dac-api-sub000/pkg/db/messaging"
	emailsending "github.com/icgc-argo/dac-api-sub000/pkg/messaging/email-sending"
	messagingTypes "github.com/icgc-argo/dac-api-sub000/pkg/messaging/types"
	smtpclient "github.com/icgc-argo/dac-api-sub000/pkg/smtp-client"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_APPLICATION_DB_USERNAME = "APPLICATION_DB_USERNAME"
	ENV_APPLICATION_DB_PASSWORD = "APPLICATION_DB_PASSWORD"
	ENV_MESSAGING_DB_USERNAME   = "MESSAGING_DB_USERNAME"
	ENV_MESSAGING_DB_PASSWORD   = "MESSAGING_DB_PASSWORD"

	ENV_SMTP_USERNAME = "SMTP_USERNAME"
	ENV_SMTP_PASSWORD = "SMTP_PASSWORD"
)

type config struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// DB configs
	DBConfigs struct {
		ApplicationDB db.DBConfigYaml `json:"application_db" yaml:"application_db"`
		MessagingDB   db.DBConfigYaml `json:"messaging_db" yaml:"messaging_db"`
	} `json:"db_configs" yaml:"db_configs"`

	// Application lifecycle config
	LifecycleConfig *types.LifecycleConfig `json:"lifecycle_config" yaml:"lifecycle_config"`

	// Document file store config
	FilestorePath string `json:"filestore_path" yaml:"filestore_path"`

	// Messaging configs
	MessagingConfigs messagingTypes.MessagingConfigs `json:"messaging_configs" yaml:"messaging_configs"`
}

var conf config

var (
	applicationDBService *appDB.ApplicationDBService
	messagingDBService   *messagingDB.MessagingDBService
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

	// init application service and batch checks
	initApplicationService()
}

func secretsOverride() {
	if dbUsername := os.Getenv(ENV_APPLICATION_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.ApplicationDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_APPLICATION_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.ApplicationDB.Password = dbPassword
	}

	if dbUsername := os.Getenv(ENV_MESSAGING_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.MessagingDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_MESSAGING_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.MessagingDB.Password = dbPassword
	}
}

func initDBs() {
	var err error
	applicationDBService, err = appDB.NewApplicationDBService(db.DBConfigFromYamlObj(conf.DBConfigs.ApplicationDB))
	if err != nil {
		slog.Error("Error connecting to Application DB", slog.String("error", err.Error()))
		panic(err)
	}

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

func initApplicationService() {
	lifecycleConfig := types.DefaultLifecycleConfig()
	if conf.LifecycleConfig != nil {
		lifecycleConfig = *conf.LifecycleConfig
	}

	store, err := filestore.NewLocalStore(conf.FilestorePath)
	if err != nil {
		slog.Error("Error initialising document file store", slog.String("error", err.Error()))
		panic(err)
	}

	application.Init(
		applicationDBService,
		store,
		lifecycleConfig,
		conf.MessagingConfigs.AdminRecipients,
	)

	batch.Init(
		applicationDBService,
		lifecycleConfig,
	)
}
