package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/icgc-argo/dac-api-sub000/pkg/apihelpers"
	"github.com/icgc-argo/dac-api-sub000/pkg/application"
	"github.com/icgc-argo/dac-api-sub000/pkg/application/types"
	"github.com/icgc-argo/dac-api-sub000/pkg/db"
	"github.com/icgc-argo/dac-api-sub000/pkg/filestore"
	emailsending "github.com/icgc-argo/dac-api-sub000/pkg/messaging/email-sending"
	messagingTypes "github.com/icgc-argo/dac-api-sub000/pkg/messaging/types"
	smtpclient "github.com/icgc-argo/dac-api-sub000/pkg/smtp-client"
	"github.com/icgc-argo/dac-api-sub000/pkg/utils"
	"gopkg.in/yaml.v2"

	appDB "github.com/icgc-argo/dac-api-sub000/pkg/db/application"
	messagingDB "github.com/icgc-argo/dac-api-sub000/pkg/db/messaging"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_APPLICATION_DB_USERNAME = "APPLICATION_DB_USERNAME"
	ENV_APPLICATION_DB_PASSWORD = "APPLICATION_DB_PASSWORD"
	ENV_MESSAGING_DB_USERNAME   = "MESSAGING_DB_USERNAME"
	ENV_MESSAGING_DB_PASSWORD   = "MESSAGING_DB_PASSWORD"

	ENV_USER_JWT_SIGN_KEY    = "USER_JWT_SIGN_KEY"
	ENV_USER_JWT_EXPIRES_IN  = "USER_JWT_EXPIRES_IN"
	ENV_SERVICE_JWT_SIGN_KEY = "SERVICE_JWT_SIGN_KEY"
	ENV_SMTP_USERNAME        = "SMTP_USERNAME"
	ENV_SMTP_PASSWORD        = "SMTP_PASSWORD"
)

const (
	FILESTORE_TYPE_LOCAL = "local"
	FILESTORE_TYPE_S3    = "s3"
)

type config struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// Gin configs
	GinConfig struct {
		DebugMode    bool     `json:"debug_mode" yaml:"debug_mode"`
		AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
		Port         string   `json:"port" yaml:"port"`

		// Mutual TLS configs
		MTLS struct {
			Use              bool                        `json:"use" yaml:"use"`
			CertificatePaths apihelpers.CertificatePaths `json:"certificate_paths" yaml:"certificate_paths"`
		} `json:"mtls" yaml:"mtls"`
	} `json:"gin_config" yaml:"gin_config"`

	// user management configs
	UserJWTConfig struct {
		SignKey   string        `json:"sign_key" yaml:"sign_key"`
		ExpiresIn time.Duration `json:"expires_in" yaml:"expires_in"`
	} `json:"user_jwt_config" yaml:"user_jwt_config"`

	// machine caller configs
	ServiceJWTConfig struct {
		SignKey   string        `json:"sign_key" yaml:"sign_key"`
		ExpiresIn time.Duration `json:"expires_in" yaml:"expires_in"`
	} `json:"service_jwt_config" yaml:"service_jwt_config"`

	// DB configs
	DBConfigs struct {
		ApplicationDB db.DBConfigYaml `json:"application_db" yaml:"application_db"`
		MessagingDB   db.DBConfigYaml `json:"messaging_db" yaml:"messaging_db"`
	} `json:"db_configs" yaml:"db_configs"`

	// Application lifecycle config
	LifecycleConfig *types.LifecycleConfig `json:"lifecycle_config" yaml:"lifecycle_config"`

	// Document file store config
	FilestoreConfig struct {
		Type      string                  `json:"type" yaml:"type"`
		LocalPath string                  `json:"local_path" yaml:"local_path"`
		S3        filestore.S3StoreConfig `json:"s3" yaml:"s3"`
	} `json:"filestore_config" yaml:"filestore_config"`

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

	if !conf.GinConfig.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// Override secrets from environment variables
	secretsOverride()

	// init db
	initDBs()

	// init message sending
	initMessageSendingConfig()

	// init application service
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

	if signKey := os.Getenv(ENV_USER_JWT_SIGN_KEY); signKey != "" {
		conf.UserJWTConfig.SignKey = signKey
	}

	if expInVal := os.Getenv(ENV_USER_JWT_EXPIRES_IN); expInVal != "" {
		expiresIn, err := utils.ParseDurationString(expInVal)
		if err != nil {
			slog.Error("error during secretsOverride", slog.String("error", err.Error()), ENV_USER_JWT_EXPIRES_IN, expInVal)
			panic(err)
		}
		conf.UserJWTConfig.ExpiresIn = expiresIn
	}

	if signKey := os.Getenv(ENV_SERVICE_JWT_SIGN_KEY); signKey != "" {
		conf.ServiceJWTConfig.SignKey = signKey
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

	store, err := initFileStore()
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
}

func initFileStore() (filestore.Store, error) {
	switch conf.FilestoreConfig.Type {
	case FILESTORE_TYPE_S3:
		return filestore.NewS3Store(context.Background(), conf.FilestoreConfig.S3)
	default:
		return filestore.NewLocalStore(conf.FilestoreConfig.LocalPath)
	}
}
