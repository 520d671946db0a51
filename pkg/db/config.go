package db

import (
	"fmt"
)

type DBConfig struct {
	URI              string
	DBName           string
	Timeout          int
	MaxPoolSize      uint64
	IdleConnTimeout  int
	RunIndexCreation bool
}

type DBConfigYaml struct {
	ConnectionStr    string `json:"connection_str" yaml:"connection_str"`
	Username         string `json:"username" yaml:"username"`
	Password         string `json:"password" yaml:"password"`
	ConnectionPrefix string `json:"connection_prefix" yaml:"connection_prefix"`
	Timeout          int    `json:"timeout" yaml:"timeout"`
	IdleConnTimeout  int    `json:"idle_conn_timeout" yaml:"idle_conn_timeout"`
	MaxPoolSize      int    `json:"max_pool_size" yaml:"max_pool_size"`
	DBName           string `json:"db_name" yaml:"db_name"`
	RunIndexCreation bool   `json:"run_index_creation" yaml:"run_index_creation"`
}

// DBConfigFromYamlObj assembles the connection config from its yaml
// representation. Credentials may have been overridden from environment
// variables by the caller.
func DBConfigFromYamlObj(yamlObj DBConfigYaml) DBConfig {
	uri := fmt.Sprintf(`mongodb%s://%s:%s@%s`, yamlObj.ConnectionPrefix, yamlObj.Username, yamlObj.Password, yamlObj.ConnectionStr)
	if yamlObj.Username == "" && yamlObj.Password == "" {
		uri = fmt.Sprintf(`mongodb%s://%s`, yamlObj.ConnectionPrefix, yamlObj.ConnectionStr)
	}

	return DBConfig{
		URI:              uri,
		DBName:           yamlObj.DBName,
		Timeout:          yamlObj.Timeout,
		MaxPoolSize:      uint64(yamlObj.MaxPoolSize),
		IdleConnTimeout:  yamlObj.IdleConnTimeout,
		RunIndexCreation: yamlObj.RunIndexCreation,
	}
}
